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
	"github.com/maelcorre/bistrot-app/middlewares"
	"github.com/maelcorre/bistrot-app/models"
	"github.com/maelcorre/bistrot-app/services"
	"github.com/maelcorre/bistrot-app/store"
	"github.com/maelcorre/bistrot-app/utils"
)

func setupCheckoutTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:checkout_ctrl_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.MenuCategory{}, &models.Menu{}, &models.Order{}, &models.OrderItem{}); err != nil {
		panic(err)
	}
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM order_items")
	db.Exec("DELETE FROM menus")

	category := models.MenuCategory{Name: "Plats Principaux"}
	db.Create(&category)
	soup := models.Menu{CategoryID: category.ID, Name: "Soupe à l'Oignon", Price: 8.50, Available: true}
	soup.ID = 1
	coq := models.Menu{CategoryID: category.ID, Name: "Coq au Vin", Price: 22.00, Available: true}
	coq.ID = 2
	db.Create(&soup)
	db.Create(&coq)
	return db
}

func setupCheckoutRouter(db *gorm.DB, sm *store.SessionManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middlewares.SessionMiddleware(sm))

	checkoutSvc := services.NewCheckoutService(db, live.NewHub())
	cartCtrl := controllers.NewCartController(db)
	draftCtrl := controllers.NewDraftController()
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)

	router.POST("/cart/items", cartCtrl.AddItem)
	router.PUT("/order-draft/delivery", draftCtrl.SetDelivery)
	router.PUT("/order-draft/takeaway", draftCtrl.SetTakeaway)
	router.GET("/checkout", checkoutCtrl.Summary)
	router.POST("/checkout", checkoutCtrl.Submit)
	return router
}

func TestCheckoutFullDeliveryFlow(t *testing.T) {
	utils.InitLogger()
	db := setupCheckoutTestDB()
	sm := store.NewSessionManager()
	router := setupCheckoutRouter(db, sm)

	w := doJSON(t, router, "POST", "/cart/items", "", gin.H{"menu_id": 1})
	assert.Equal(t, http.StatusOK, w.Code)
	token := w.Header().Get(middlewares.SessionHeader)

	doJSON(t, router, "POST", "/cart/items", token, gin.H{"menu_id": 2})
	doJSON(t, router, "POST", "/cart/items", token, gin.H{"menu_id": 2})

	w = doJSON(t, router, "PUT", "/order-draft/delivery", token, gin.H{
		"first_name":  "Marie",
		"last_name":   "Dupont",
		"address":     "12 rue de la Paix",
		"city":        "Paris",
		"postal_code": "75002",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// the summary carries the delivery surcharge
	w = doJSON(t, router, "GET", "/checkout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	summary := dataOf(t, w)
	assert.InDelta(t, 2.50, summary["delivery_fee"].(float64), 0.001)
	assert.InDelta(t, 55.00, summary["total"].(float64), 0.001)

	w = doJSON(t, router, "POST", "/checkout", token, gin.H{
		"payment_method": "card",
		"whatsapp":       "0612345678",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	order := dataOf(t, w)
	assert.Equal(t, "delivery", order["type"])
	assert.Equal(t, "pending", order["status"])
	assert.InDelta(t, 55.00, order["total"].(float64), 0.001)
	payment := order["payment_info"].(map[string]interface{})
	assert.Equal(t, "completed", payment["status"])

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCheckoutEmptyCartRedirects(t *testing.T) {
	utils.InitLogger()
	db := setupCheckoutTestDB()
	sm := store.NewSessionManager()
	router := setupCheckoutRouter(db, sm)

	w := doJSON(t, router, "POST", "/checkout", "", gin.H{"payment_method": "cash"})
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/cart", resp["redirect"])
}

func TestCheckoutWithoutChannelRedirects(t *testing.T) {
	utils.InitLogger()
	db := setupCheckoutTestDB()
	sm := store.NewSessionManager()
	router := setupCheckoutRouter(db, sm)

	w := doJSON(t, router, "POST", "/cart/items", "", gin.H{"menu_id": 1})
	token := w.Header().Get(middlewares.SessionHeader)

	w = doJSON(t, router, "POST", "/checkout", token, gin.H{"payment_method": "cash"})
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/order", resp["redirect"])
}

func TestCheckoutRejectsBadPaymentMethod(t *testing.T) {
	utils.InitLogger()
	db := setupCheckoutTestDB()
	sm := store.NewSessionManager()
	router := setupCheckoutRouter(db, sm)

	w := doJSON(t, router, "POST", "/checkout", "", gin.H{"payment_method": "cheque"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutCashTakeaway(t *testing.T) {
	utils.InitLogger()
	db := setupCheckoutTestDB()
	sm := store.NewSessionManager()
	router := setupCheckoutRouter(db, sm)

	w := doJSON(t, router, "POST", "/cart/items", "", gin.H{"menu_id": 1})
	token := w.Header().Get(middlewares.SessionHeader)

	w = doJSON(t, router, "PUT", "/order-draft/takeaway", token, gin.H{
		"first_name": "Luc",
		"last_name":  "Martin",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", "/checkout", token, gin.H{
		"payment_method": "cash",
		"whatsapp":       "0612345678",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	order := dataOf(t, w)
	assert.Equal(t, "takeaway", order["type"])
	assert.InDelta(t, 8.50, order["total"].(float64), 0.001)
	payment := order["payment_info"].(map[string]interface{})
	assert.Equal(t, "pending", payment["status"])
}
