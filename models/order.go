package models

import (
	"time"
)

// Fulfillment channels. Exactly one channel payload is populated per order,
// matching Type.
const (
	OrderTypeDelivery    = "delivery"
	OrderTypeReservation = "reservation"
	OrderTypeTakeaway    = "takeaway"
	OrderTypeOnSite      = "on-site"
)

// Order lifecycle statuses. Reservations move pending -> confirmed, all
// other channels move pending -> preparing -> ready -> delivered.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"

	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
)

type DeliveryDetails struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Address      string `json:"address"`
	Apartment    string `json:"apartment,omitempty"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	Instructions string `json:"instructions,omitempty"`
	Time         string `json:"time"` // "asap", "30min", "1h", "2h"
}

type ReservationDetails struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	WhatsApp        string `json:"whatsapp"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Guests          int    `json:"guests"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

type TakeawayDetails struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsOnSite    bool   `json:"is_on_site"`
	TableNumber string `json:"table_number,omitempty"`
	PickupTime  string `json:"pickup_time"`
}

type TableDetails struct {
	TableNumber  string `json:"table_number"`
	CustomerName string `json:"customer_name"`
}

// PaymentInfo is the payment sub-record attached at checkout. Card payments
// are completed immediately, cash payments stay pending until settled on
// delivery or at the table.
type PaymentInfo struct {
	Method string     `gorm:"type:varchar(10)" json:"method"`
	Amount float64    `gorm:"type:decimal(10,2)" json:"amount"`
	Status string     `gorm:"type:varchar(10)" json:"status"`
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

type ContactInfo struct {
	WhatsApp string `gorm:"type:varchar(30)" json:"whatsapp"`
}

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(40);uniqueIndex;not null" json:"code"`
	Type        string      `gorm:"type:varchar(20);not null" json:"type"`
	Status      string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	IsRead      bool        `gorm:"not null;default:false" json:"is_read"`
	Subtotal    float64     `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DeliveryFee float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"delivery_fee"`
	Total       float64     `gorm:"type:decimal(10,2);not null" json:"total"`
	Payment     PaymentInfo `gorm:"embedded;embeddedPrefix:payment_" json:"payment_info"`
	Contact     ContactInfo `gorm:"embedded;embeddedPrefix:contact_" json:"contact_info"`

	Delivery    *DeliveryDetails    `gorm:"serializer:json" json:"delivery_info,omitempty"`
	Reservation *ReservationDetails `gorm:"serializer:json" json:"reservation_info,omitempty"`
	Takeaway    *TakeawayDetails    `gorm:"serializer:json" json:"takeaway_info,omitempty"`
	Table       *TableDetails       `gorm:"serializer:json" json:"table_info,omitempty"`

	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}

// NextStatus returns the status that follows the current one in the normal
// flow. Reservations only advance pending -> confirmed.
func (o *Order) NextStatus() string {
	if o.Type == OrderTypeReservation {
		if o.Status == OrderStatusPending {
			return OrderStatusConfirmed
		}
		return o.Status
	}
	switch o.Status {
	case OrderStatusPending:
		return OrderStatusPreparing
	case OrderStatusPreparing:
		return OrderStatusReady
	case OrderStatusReady:
		return OrderStatusDelivered
	}
	return o.Status
}

// CanTransition reports whether the order may move to the given status.
// Cancelling is allowed from any non-terminal state.
func (o *Order) CanTransition(to string) bool {
	if o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	return o.NextStatus() == to && to != o.Status
}
