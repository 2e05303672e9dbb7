package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maelcorre/bistrot-app/live"
	"github.com/maelcorre/bistrot-app/models"
	"github.com/maelcorre/bistrot-app/utils"
)

// OrderController is the admin view on persisted orders: listing, status
// transitions, the read flag for the notification badge, deletion.
type OrderController struct {
	DB  *gorm.DB
	Hub *live.Hub
}

func NewOrderController(db *gorm.DB, hub *live.Hub) *OrderController {
	return &OrderController{DB: db, Hub: hub}
}

// GetAllOrders -> list orders with items, optionally filtered by
// ?status=... and/or ?type=...
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	q := oc.DB.Preload("Items").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if orderType := c.Query("type"); orderType != "" {
		q = q.Where("type = ?", orderType)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetAllReservations -> the reservations panel
func (oc *OrderController) GetAllReservations(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("Items").
		Where("type = ?", models.OrderTypeReservation).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", orders)
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> move an order along its status flow. Reservations
// only go pending -> confirmed; other channels follow pending -> preparing
// -> ready -> delivered. Cancelling is allowed from any non-terminal state.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !order.CanTransition(body.Status) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("cannot move order from %q to %q", order.Status, body.Status))
		return
	}

	order.Status = body.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.Hub.BroadcastOrderUpdate(order)
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// AdvanceOrderStatus -> one-click "next step" used by the orders panel
func (oc *OrderController) AdvanceOrderStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	next := order.NextStatus()
	if next == order.Status {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("order in %q has no next status", order.Status))
		return
	}

	order.Status = next
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.Hub.BroadcastOrderUpdate(order)
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// MarkOrderRead -> clears the unread flag behind the notification badge
func (oc *OrderController) MarkOrderRead(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !order.IsRead {
		order.IsRead = true
		if err := oc.DB.Save(&order).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		oc.Hub.BroadcastOrderUpdate(order)
	}

	utils.RespondJSON(c, http.StatusOK, "Order marked as read", order)
}

// DeleteOrder
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	if err := oc.DB.Delete(&models.Order{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}
