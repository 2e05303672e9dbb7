package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maelcorre/bistrot-app/models"
	"github.com/maelcorre/bistrot-app/store"
	"github.com/maelcorre/bistrot-app/utils"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

// sessionFrom pulls the session resolved by the session middleware.
func sessionFrom(c *gin.Context) *store.Session {
	v, _ := c.Get("session")
	return v.(*store.Session)
}

// GetCart -> current lines, item count and subtotal
func (cc *CartController) GetCart(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Cart", sessionFrom(c).Cart())
}

// AddItem -> add one unit of a menu item to the cart
func (cc *CartController) AddItem(c *gin.Context) {
	var body struct {
		MenuID uint `json:"menu_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menu models.Menu
	if err := cc.DB.First(&menu, body.MenuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}
	if !menu.Available {
		utils.RespondError(c, http.StatusConflict, errors.New("menu item not available"))
		return
	}

	session := sessionFrom(c)
	session.AddItem(menu)
	utils.RespondJSON(c, http.StatusOK, "Item added", session.Cart())
}

// UpdateQuantity -> set a line's quantity; zero or less removes the line
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	var body struct {
		MenuID   uint `json:"menu_id" binding:"required"`
		Quantity int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session := sessionFrom(c)
	session.UpdateQuantity(body.MenuID, body.Quantity)
	utils.RespondJSON(c, http.StatusOK, "Cart updated", session.Cart())
}

// RemoveItem -> delete a line; removing an absent line is not an error
func (cc *CartController) RemoveItem(c *gin.Context) {
	menuID, err := strconv.ParseUint(c.Param("menu_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu_id"))
		return
	}

	session := sessionFrom(c)
	session.RemoveItem(uint(menuID))
	utils.RespondJSON(c, http.StatusOK, "Item removed", session.Cart())
}

// ClearCart -> empties the cart (and thereby resets the draft order)
func (cc *CartController) ClearCart(c *gin.Context) {
	session := sessionFrom(c)
	session.ClearCart()
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", session.Cart())
}
