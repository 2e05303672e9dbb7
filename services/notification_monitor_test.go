package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maelcorre/bistrot-app/models"
	"github.com/maelcorre/bistrot-app/utils"
)

func TestNotificationSnapshotCounts(t *testing.T) {
	utils.InitLogger()
	db := setupCheckoutDB(t)
	nm := NewNotificationMonitor(db, nil)

	orders := []models.Order{
		{Code: "ORD-1", Type: models.OrderTypeDelivery, Status: models.OrderStatusPending, IsRead: false},
		{Code: "ORD-2", Type: models.OrderTypeTakeaway, Status: models.OrderStatusPending, IsRead: true},
		{Code: "ORD-3", Type: models.OrderTypeReservation, Status: models.OrderStatusPending, IsRead: false},
		{Code: "ORD-4", Type: models.OrderTypeReservation, Status: models.OrderStatusConfirmed, IsRead: true},
		{Code: "ORD-5", Type: models.OrderTypeOnSite, Status: models.OrderStatusDelivered, IsRead: true},
	}
	for i := range orders {
		assert.NoError(t, db.Create(&orders[i]).Error)
	}

	s, err := nm.Snapshot()
	assert.NoError(t, err)

	assert.Equal(t, int64(2), s.NewOrders)
	assert.Equal(t, int64(1), s.NewReservations)
	assert.Equal(t, int64(2), s.UnreadOrders)
}

func TestNotificationSnapshotEmptyTable(t *testing.T) {
	utils.InitLogger()
	db := setupCheckoutDB(t)
	nm := NewNotificationMonitor(db, nil)

	s, err := nm.Snapshot()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), s.NewOrders)
	assert.Equal(t, int64(0), s.NewReservations)
	assert.Equal(t, int64(0), s.UnreadOrders)
}
