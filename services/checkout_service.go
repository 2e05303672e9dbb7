package services

import (
	"fmt"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"github.com/maelcorre/bistrot-app/live"
	"github.com/maelcorre/bistrot-app/models"
	"github.com/maelcorre/bistrot-app/store"
	"github.com/maelcorre/bistrot-app/utils"
)

// DeliveryFee is the fixed surcharge applied to delivery orders only.
const DeliveryFee = 2.50

// CheckoutService turns a session's cart and draft order into a persisted
// order record. This is the only write against the order table on the
// customer side.
type CheckoutService struct {
	db  *gorm.DB
	hub *live.Hub
}

func NewCheckoutService(db *gorm.DB, hub *live.Hub) *CheckoutService {
	return &CheckoutService{db: db, hub: hub}
}

// CheckoutInput is what the payment step supplies on top of the session
// state. Method is "card" or "cash"; WhatsApp is the contact number for
// follow-up.
type CheckoutInput struct {
	Method   string
	WhatsApp string
}

// Submit builds the finalized order from the current cart and draft and
// writes it in one transaction. On success the session's cart is cleared and
// its draft reset; on any failure the session is left untouched so the
// customer can retry the same submission.
func (s *CheckoutService) Submit(session *store.Session, in CheckoutInput) (*models.Order, error) {
	if in.Method != models.PaymentMethodCard && in.Method != models.PaymentMethodCash {
		return nil, fmt.Errorf("unknown payment method %q", in.Method)
	}

	var order *models.Order
	err := session.Checkout(func(items []store.CartItem, subtotal float64, draft store.DraftView) error {
		now := time.Now()

		fee := 0.0
		if draft.Type == models.OrderTypeDelivery {
			fee = DeliveryFee
		}
		total := subtotal + fee

		paymentStatus := models.PaymentStatusPending
		if in.Method == models.PaymentMethodCard {
			paymentStatus = models.PaymentStatusCompleted
		}
		var paidAt *time.Time
		if paymentStatus == models.PaymentStatusCompleted {
			paidAt = &now
		}

		o := models.Order{
			Code:        generateOrderCode(),
			Type:        draft.Type,
			Status:      models.OrderStatusPending,
			IsRead:      false,
			Subtotal:    subtotal,
			DeliveryFee: fee,
			Total:       total,
			Payment: models.PaymentInfo{
				Method: in.Method,
				Amount: total,
				Status: paymentStatus,
				PaidAt: paidAt,
			},
			Contact:     models.ContactInfo{WhatsApp: in.WhatsApp},
			Delivery:    draft.Delivery,
			Reservation: draft.Reservation,
			Takeaway:    draft.Takeaway,
			Table:       draft.Table,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for _, it := range items {
			o.Items = append(o.Items, models.OrderItem{
				MenuID:    it.MenuID,
				Name:      it.Name,
				Price:     it.Price,
				Quantity:  it.Quantity,
				ImageURL:  it.ImageURL,
				CreatedAt: now,
			})
		}

		if err := s.db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&o).Error
		}); err != nil {
			return err
		}

		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s submitted: type=%s total=%.2f payment=%s",
		order.Code, order.Type, order.Total, order.Payment.Status)

	if s.hub != nil {
		s.hub.BroadcastOrderCreated(*order)
	}
	return order, nil
}

// orderSeq disambiguates codes generated within the same millisecond.
var orderSeq uint32

func generateOrderCode() string {
	seq := atomic.AddUint32(&orderSeq, 1) % 10000
	return fmt.Sprintf("ORD-%d-%04d", time.Now().UnixMilli(), seq)
}
