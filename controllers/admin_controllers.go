package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maelcorre/bistrot-app/models"
	"github.com/maelcorre/bistrot-app/services"
	"github.com/maelcorre/bistrot-app/utils"
)

type AdminController struct {
	DB      *gorm.DB
	Monitor *services.NotificationMonitor
}

func NewAdminController(db *gorm.DB, monitor *services.NotificationMonitor) *AdminController {
	return &AdminController{DB: db, Monitor: monitor}
}

// GetNotificationSummary -> the same counts the websocket stream pushes,
// for the initial badge render
func (ac *AdminController) GetNotificationSummary(c *gin.Context) {
	summary, err := ac.Monitor.Snapshot()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification summary", summary)
}

// GetDashboardStats -> order volumes, revenue, status/channel breakdown and
// best sellers for the admin dashboard
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "admin" {
		utils.RespondError(c, http.StatusForbidden, errors.New("admin access required"))
		return
	}

	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalOrders  int64   `json:"total_orders"`
		TodayOrders  int64   `json:"today_orders"`
		TotalRevenue float64 `json:"total_revenue"`
		TodayRevenue float64 `json:"today_revenue"`
		OrderStats   struct {
			Pending   int64 `json:"pending"`
			Preparing int64 `json:"preparing"`
			Ready     int64 `json:"ready"`
			Delivered int64 `json:"delivered"`
			Confirmed int64 `json:"confirmed"`
			Cancelled int64 `json:"cancelled"`
		} `json:"order_stats"`
		ChannelStats struct {
			Delivery    int64 `json:"delivery"`
			Reservation int64 `json:"reservation"`
			Takeaway    int64 `json:"takeaway"`
			OnSite      int64 `json:"on_site"`
		} `json:"channel_stats"`
		TopItems []struct {
			MenuID  uint    `json:"menu_id"`
			Name    string  `json:"name"`
			Count   int64   `json:"count"`
			Revenue float64 `json:"revenue"`
		} `json:"top_items"`
	}

	ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	ac.DB.Model(&models.Order{}).Where("DATE(created_at) = ?", today).Count(&stats.TodayOrders)

	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.OrderStats.Pending)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPreparing).Count(&stats.OrderStats.Preparing)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusReady).Count(&stats.OrderStats.Ready)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusDelivered).Count(&stats.OrderStats.Delivered)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusConfirmed).Count(&stats.OrderStats.Confirmed)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusCancelled).Count(&stats.OrderStats.Cancelled)

	ac.DB.Model(&models.Order{}).Where("type = ?", models.OrderTypeDelivery).Count(&stats.ChannelStats.Delivery)
	ac.DB.Model(&models.Order{}).Where("type = ?", models.OrderTypeReservation).Count(&stats.ChannelStats.Reservation)
	ac.DB.Model(&models.Order{}).Where("type = ?", models.OrderTypeTakeaway).Count(&stats.ChannelStats.Takeaway)
	ac.DB.Model(&models.Order{}).Where("type = ?", models.OrderTypeOnSite).Count(&stats.ChannelStats.OnSite)

	// Revenue over non-cancelled orders
	ac.DB.Model(&models.Order{}).
		Where("status != ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&stats.TotalRevenue)
	ac.DB.Model(&models.Order{}).
		Where("status != ? AND DATE(created_at) = ?", models.OrderStatusCancelled, today).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&stats.TodayRevenue)

	// Best sellers from the order item snapshots
	ac.DB.Raw(`
		SELECT oi.menu_id AS menu_id, oi.name AS name,
		SUM(oi.quantity) AS count, SUM(oi.price * oi.quantity) AS revenue
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		WHERE o.status != 'cancelled'
		GROUP BY oi.menu_id, oi.name
		ORDER BY count DESC
		LIMIT 10
	`).Scan(&stats.TopItems)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
