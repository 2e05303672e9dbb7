package store

import (
	"github.com/maelcorre/bistrot-app/models"
)

// Channel is the chosen fulfillment channel of the draft order. Empty until
// the customer picks one.
type Channel string

const (
	ChannelNone        Channel = ""
	ChannelDelivery    Channel = models.OrderTypeDelivery
	ChannelReservation Channel = models.OrderTypeReservation
	ChannelTakeaway    Channel = models.OrderTypeTakeaway
	ChannelOnSite      Channel = models.OrderTypeOnSite
)

// Draft is the in-progress order shared across the checkout wizard. The
// channel payloads form a tagged union: exactly one is non-nil and it always
// matches the channel, so a delivery draft can never carry a reservation
// payload. Payload validation happens in the wizard steps (controllers),
// not here.
type Draft struct {
	channel     Channel
	status      string
	delivery    *models.DeliveryDetails
	reservation *models.ReservationDetails
	takeaway    *models.TakeawayDetails
	table       *models.TableDetails
}

func NewDraft() *Draft {
	return &Draft{status: models.OrderStatusPending}
}

func (d *Draft) Channel() Channel { return d.channel }
func (d *Draft) Status() string   { return d.status }

func (d *Draft) Delivery() *models.DeliveryDetails       { return d.delivery }
func (d *Draft) Reservation() *models.ReservationDetails { return d.reservation }
func (d *Draft) Takeaway() *models.TakeawayDetails       { return d.takeaway }
func (d *Draft) Table() *models.TableDetails             { return d.table }

// SetDelivery selects the delivery channel. Re-selecting a channel simply
// overwrites the previous choice and drops the other payloads.
func (d *Draft) SetDelivery(info models.DeliveryDetails) {
	d.reset()
	d.channel = ChannelDelivery
	d.delivery = &info
}

func (d *Draft) SetReservation(info models.ReservationDetails) {
	d.reset()
	d.channel = ChannelReservation
	d.reservation = &info
}

func (d *Draft) SetTakeaway(info models.TakeawayDetails) {
	d.reset()
	d.channel = ChannelTakeaway
	d.takeaway = &info
}

func (d *Draft) SetOnSite(info models.TableDetails) {
	d.reset()
	d.channel = ChannelOnSite
	d.table = &info
}

// Reset returns the draft to its initial unset state: no channel, no
// payloads, status pending.
func (d *Draft) Reset() {
	d.reset()
}

func (d *Draft) reset() {
	d.channel = ChannelNone
	d.status = models.OrderStatusPending
	d.delivery = nil
	d.reservation = nil
	d.takeaway = nil
	d.table = nil
}
