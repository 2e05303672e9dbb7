package controllers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/maelcorre/bistrot-app/models"
	"github.com/maelcorre/bistrot-app/utils"
)

// DraftController backs the checkout wizard: each step validates its form
// and writes the chosen channel plus its payload into the session draft.
type DraftController struct{}

func NewDraftController() *DraftController {
	return &DraftController{}
}

var phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

// GetDraft -> current draft order state
func (dc *DraftController) GetDraft(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Draft order", sessionFrom(c).Draft())
}

// SetDelivery -> choose the delivery channel with address details
func (dc *DraftController) SetDelivery(c *gin.Context) {
	var body struct {
		FirstName    string `json:"first_name" binding:"required"`
		LastName     string `json:"last_name" binding:"required"`
		Address      string `json:"address" binding:"required"`
		Apartment    string `json:"apartment"`
		City         string `json:"city" binding:"required"`
		PostalCode   string `json:"postal_code" binding:"required"`
		Instructions string `json:"instructions"`
		Time         string `json:"time"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Time == "" {
		body.Time = "asap"
	}

	session := sessionFrom(c)
	session.SetDelivery(models.DeliveryDetails{
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Address:      body.Address,
		Apartment:    body.Apartment,
		City:         body.City,
		PostalCode:   body.PostalCode,
		Instructions: body.Instructions,
		Time:         body.Time,
	})
	utils.RespondJSON(c, http.StatusOK, "Delivery selected", session.Draft())
}

// SetReservation -> choose the reservation channel with table booking details
func (dc *DraftController) SetReservation(c *gin.Context) {
	var body struct {
		FirstName       string `json:"first_name" binding:"required"`
		LastName        string `json:"last_name" binding:"required"`
		WhatsApp        string `json:"whatsapp" binding:"required"`
		Date            string `json:"date" binding:"required"`
		Time            string `json:"time" binding:"required"`
		Guests          int    `json:"guests" binding:"min=1"`
		SpecialRequests string `json:"special_requests"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !phoneRegex.MatchString(body.WhatsApp) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid whatsapp number"))
		return
	}

	session := sessionFrom(c)
	session.SetReservation(models.ReservationDetails{
		FirstName:       body.FirstName,
		LastName:        body.LastName,
		WhatsApp:        body.WhatsApp,
		Date:            body.Date,
		Time:            body.Time,
		Guests:          body.Guests,
		SpecialRequests: body.SpecialRequests,
	})
	utils.RespondJSON(c, http.StatusOK, "Reservation selected", session.Draft())
}

// SetTakeaway -> choose the takeaway channel
func (dc *DraftController) SetTakeaway(c *gin.Context) {
	var body struct {
		FirstName   string `json:"first_name" binding:"required"`
		LastName    string `json:"last_name" binding:"required"`
		IsOnSite    bool   `json:"is_on_site"`
		TableNumber string `json:"table_number"`
		PickupTime  string `json:"pickup_time"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.IsOnSite && body.TableNumber == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("table number is required when eating on site"))
		return
	}
	if body.PickupTime == "" {
		body.PickupTime = "asap"
	}

	session := sessionFrom(c)
	session.SetTakeaway(models.TakeawayDetails{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		IsOnSite:    body.IsOnSite,
		TableNumber: body.TableNumber,
		PickupTime:  body.PickupTime,
	})
	utils.RespondJSON(c, http.StatusOK, "Takeaway selected", session.Draft())
}

// SetOnSite -> choose the at-the-table channel
func (dc *DraftController) SetOnSite(c *gin.Context) {
	var body struct {
		TableNumber  string `json:"table_number" binding:"required"`
		CustomerName string `json:"customer_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session := sessionFrom(c)
	session.SetOnSite(models.TableDetails{
		TableNumber:  body.TableNumber,
		CustomerName: body.CustomerName,
	})
	utils.RespondJSON(c, http.StatusOK, "Table order selected", session.Draft())
}

// ResetDraft -> back to the unset state, e.g. when re-opening the wizard
func (dc *DraftController) ResetDraft(c *gin.Context) {
	session := sessionFrom(c)
	session.ResetDraft()
	utils.RespondJSON(c, http.StatusOK, "Draft reset", session.Draft())
}
