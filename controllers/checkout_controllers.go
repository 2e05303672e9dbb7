package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maelcorre/bistrot-app/services"
	"github.com/maelcorre/bistrot-app/store"
	"github.com/maelcorre/bistrot-app/utils"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Checkout: checkout}
}

// Summary -> what the payment page shows: cart, draft and computed totals
func (cc *CheckoutController) Summary(c *gin.Context) {
	session := sessionFrom(c)
	cart := session.Cart()
	draft := session.Draft()

	fee := 0.0
	if draft.Type == "delivery" {
		fee = services.DeliveryFee
	}

	utils.RespondJSON(c, http.StatusOK, "Checkout summary", gin.H{
		"cart":         cart,
		"draft":        draft,
		"delivery_fee": fee,
		"total":        cart.Subtotal + fee,
	})
}

// Submit -> the payment step. Guard failures answer with a redirect target
// instead of an error page: empty cart sends the customer back to the cart,
// a missing channel back to the order-type selection.
func (cc *CheckoutController) Submit(c *gin.Context) {
	var body struct {
		PaymentMethod string `json:"payment_method" binding:"required,oneof=card cash"`
		WhatsApp      string `json:"whatsapp"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session := sessionFrom(c)
	order, err := cc.Checkout.Submit(session, services.CheckoutInput{
		Method:   body.PaymentMethod,
		WhatsApp: body.WhatsApp,
	})
	switch {
	case errors.Is(err, store.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{
			"status":   false,
			"message":  err.Error(),
			"redirect": "/cart",
		})
		return
	case errors.Is(err, store.ErrChannelNotChosen):
		c.JSON(http.StatusConflict, gin.H{
			"status":   false,
			"message":  err.Error(),
			"redirect": "/order",
		})
		return
	case err != nil:
		utils.ErrorLogger.Printf("Order submission failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not submit order, please retry"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order submitted", order)
}
