package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maelcorre/bistrot-app/models"
)

func TestDraftStartsUnset(t *testing.T) {
	d := NewDraft()

	assert.Equal(t, ChannelNone, d.Channel())
	assert.Equal(t, models.OrderStatusPending, d.Status())
	assert.Nil(t, d.Delivery())
	assert.Nil(t, d.Reservation())
	assert.Nil(t, d.Takeaway())
	assert.Nil(t, d.Table())
}

func TestDraftCarriesExactlyOnePayload(t *testing.T) {
	d := NewDraft()

	d.SetDelivery(models.DeliveryDetails{
		FirstName: "Marie",
		LastName:  "Dupont",
		Address:   "12 rue de la Paix",
		City:      "Paris",
	})
	assert.Equal(t, ChannelDelivery, d.Channel())
	assert.NotNil(t, d.Delivery())
	assert.Nil(t, d.Reservation())
	assert.Nil(t, d.Takeaway())
	assert.Nil(t, d.Table())

	// switching channel drops the previous payload
	d.SetReservation(models.ReservationDetails{
		FirstName: "Marie",
		Date:      "2026-09-14",
		Time:      "19:30",
		Guests:    4,
	})
	assert.Equal(t, ChannelReservation, d.Channel())
	assert.Nil(t, d.Delivery())
	assert.NotNil(t, d.Reservation())

	d.SetTakeaway(models.TakeawayDetails{FirstName: "Marie", PickupTime: "asap"})
	assert.Equal(t, ChannelTakeaway, d.Channel())
	assert.Nil(t, d.Reservation())
	assert.NotNil(t, d.Takeaway())

	d.SetOnSite(models.TableDetails{TableNumber: "7", CustomerName: "Marie"})
	assert.Equal(t, ChannelOnSite, d.Channel())
	assert.Nil(t, d.Takeaway())
	assert.NotNil(t, d.Table())
}

func TestDraftReselectingSameChannelOverwrites(t *testing.T) {
	d := NewDraft()

	d.SetDelivery(models.DeliveryDetails{Address: "12 rue de la Paix"})
	d.SetDelivery(models.DeliveryDetails{Address: "3 avenue Victor Hugo"})

	assert.Equal(t, ChannelDelivery, d.Channel())
	assert.Equal(t, "3 avenue Victor Hugo", d.Delivery().Address)
}

func TestDraftReset(t *testing.T) {
	d := NewDraft()
	d.SetOnSite(models.TableDetails{TableNumber: "3"})

	d.Reset()

	assert.Equal(t, ChannelNone, d.Channel())
	assert.Equal(t, models.OrderStatusPending, d.Status())
	assert.Nil(t, d.Table())
}
