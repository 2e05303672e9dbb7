package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/maelcorre/bistrot-app/controllers"
	"github.com/maelcorre/bistrot-app/live"
	"github.com/maelcorre/bistrot-app/models"
	"github.com/maelcorre/bistrot-app/services"
	"github.com/maelcorre/bistrot-app/utils"
)

func setupAdminTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:admin_ctrl_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		panic(err)
	}
	db.Exec("DELETE FROM order_items")
	db.Exec("DELETE FROM orders")
	return db
}

func setupAdminRouter(db *gorm.DB, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("role", role)
		c.Next()
	})

	monitor := services.NewNotificationMonitor(db, live.NewHub())
	adminCtrl := controllers.NewAdminController(db, monitor)
	router.GET("/admin/notifications/summary", adminCtrl.GetNotificationSummary)
	router.GET("/admin/dashboard/stats", adminCtrl.GetDashboardStats)
	return router
}

func TestNotificationSummaryEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupAdminTestDB()
	router := setupAdminRouter(db, "staff")

	db.Create(&models.Order{Code: "ORD-A1", Type: models.OrderTypeDelivery, Status: models.OrderStatusPending})
	db.Create(&models.Order{Code: "ORD-A2", Type: models.OrderTypeReservation, Status: models.OrderStatusPending})
	db.Create(&models.Order{Code: "ORD-A3", Type: models.OrderTypeTakeaway, Status: models.OrderStatusDelivered, IsRead: true})

	w := doJSON(t, router, "GET", "/admin/notifications/summary", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	summary := dataOf(t, w)
	assert.Equal(t, float64(1), summary["new_orders"])
	assert.Equal(t, float64(1), summary["new_reservations"])
	assert.Equal(t, float64(2), summary["unread_orders"])
}

func TestDashboardStats(t *testing.T) {
	utils.InitLogger()
	db := setupAdminTestDB()
	router := setupAdminRouter(db, "admin")

	orders := []models.Order{
		{Code: "ORD-B1", Type: models.OrderTypeDelivery, Status: models.OrderStatusPending, Total: 30.00,
			Items: []models.OrderItem{{MenuID: 1, Name: "Coq au Vin", Price: 22.00, Quantity: 1}}},
		{Code: "ORD-B2", Type: models.OrderTypeTakeaway, Status: models.OrderStatusDelivered, Total: 44.00,
			Items: []models.OrderItem{{MenuID: 1, Name: "Coq au Vin", Price: 22.00, Quantity: 2}}},
		{Code: "ORD-B3", Type: models.OrderTypeDelivery, Status: models.OrderStatusCancelled, Total: 99.00,
			Items: []models.OrderItem{{MenuID: 2, Name: "Bouillabaisse", Price: 26.00, Quantity: 1}}},
	}
	for i := range orders {
		assert.NoError(t, db.Create(&orders[i]).Error)
	}

	w := doJSON(t, router, "GET", "/admin/dashboard/stats", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			TotalOrders  int64   `json:"total_orders"`
			TotalRevenue float64 `json:"total_revenue"`
			OrderStats   struct {
				Pending   int64 `json:"pending"`
				Delivered int64 `json:"delivered"`
				Cancelled int64 `json:"cancelled"`
			} `json:"order_stats"`
			ChannelStats struct {
				Delivery int64 `json:"delivery"`
				Takeaway int64 `json:"takeaway"`
			} `json:"channel_stats"`
			TopItems []struct {
				MenuID uint   `json:"menu_id"`
				Name   string `json:"name"`
				Count  int64  `json:"count"`
			} `json:"top_items"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, int64(3), resp.Data.TotalOrders)
	// cancelled orders never count toward revenue
	assert.InDelta(t, 74.00, resp.Data.TotalRevenue, 0.001)
	assert.Equal(t, int64(1), resp.Data.OrderStats.Pending)
	assert.Equal(t, int64(1), resp.Data.OrderStats.Delivered)
	assert.Equal(t, int64(1), resp.Data.OrderStats.Cancelled)
	assert.Equal(t, int64(2), resp.Data.ChannelStats.Delivery)
	assert.Equal(t, int64(1), resp.Data.ChannelStats.Takeaway)

	assert.NotEmpty(t, resp.Data.TopItems)
	assert.Equal(t, "Coq au Vin", resp.Data.TopItems[0].Name)
	assert.Equal(t, int64(3), resp.Data.TopItems[0].Count)
}

func TestDashboardStatsRequiresAdmin(t *testing.T) {
	utils.InitLogger()
	db := setupAdminTestDB()
	router := setupAdminRouter(db, "staff")

	w := doJSON(t, router, "GET", "/admin/dashboard/stats", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
