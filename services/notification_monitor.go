package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/maelcorre/bistrot-app/live"
	"github.com/maelcorre/bistrot-app/models"
	"github.com/maelcorre/bistrot-app/utils"
)

// NotificationSummary carries the back-office badge counts. Reservations are
// counted apart from the food channels, matching the two badges in the
// admin navigation.
type NotificationSummary struct {
	NewOrders       int64 `json:"new_orders"`
	NewReservations int64 `json:"new_reservations"`
	UnreadOrders    int64 `json:"unread_orders"`
}

// NotificationMonitor polls the order table and pushes the recomputed
// summary to the hub whenever the counts change. Counts are rebuilt from
// scratch on each tick; at restaurant volume that is cheaper than tracking
// deltas.
type NotificationMonitor struct {
	DB       *gorm.DB
	Hub      *live.Hub
	Interval time.Duration
	StopChan chan struct{}

	last *NotificationSummary
}

func NewNotificationMonitor(db *gorm.DB, hub *live.Hub) *NotificationMonitor {
	return &NotificationMonitor{
		DB:       db,
		Hub:      hub,
		Interval: 1 * time.Second,
		StopChan: make(chan struct{}),
	}
}

func (nm *NotificationMonitor) Start() {
	go func() {
		ticker := time.NewTicker(nm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				nm.check()
			case <-nm.StopChan:
				return
			}
		}
	}()
}

func (nm *NotificationMonitor) Stop() {
	close(nm.StopChan)
}

func (nm *NotificationMonitor) check() {
	summary, err := nm.Snapshot()
	if err != nil {
		utils.ErrorLogger.Printf("Error recomputing notification counts: %v", err)
		return
	}

	if nm.last != nil && *nm.last == *summary {
		return
	}
	nm.last = summary
	nm.Hub.BroadcastNotificationUpdate(summary)
}

// Snapshot recomputes the summary from the order table.
func (nm *NotificationMonitor) Snapshot() (*NotificationSummary, error) {
	var s NotificationSummary

	if err := nm.DB.Model(&models.Order{}).
		Where("status = ? AND type = ?", models.OrderStatusPending, models.OrderTypeReservation).
		Count(&s.NewReservations).Error; err != nil {
		return nil, err
	}
	if err := nm.DB.Model(&models.Order{}).
		Where("status = ? AND type != ?", models.OrderStatusPending, models.OrderTypeReservation).
		Count(&s.NewOrders).Error; err != nil {
		return nil, err
	}
	if err := nm.DB.Model(&models.Order{}).
		Where("is_read = ?", false).
		Count(&s.UnreadOrders).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
