package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maelcorre/bistrot-app/controllers"
	"github.com/maelcorre/bistrot-app/live"
	"github.com/maelcorre/bistrot-app/middlewares"
	"github.com/maelcorre/bistrot-app/services"
	"github.com/maelcorre/bistrot-app/store"
)

// SetupRouter wires every controller onto the engine. The storefront
// routes resolve a shopping session from X-Session-Token, the
// back-office routes sit behind JWT auth.
func SetupRouter(db *gorm.DB, hub *live.Hub, sessions *store.SessionManager, monitor *services.NotificationMonitor) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	checkoutSvc := services.NewCheckoutService(db, hub)

	userCtrl := controllers.NewUserController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	cartCtrl := controllers.NewCartController(db)
	draftCtrl := controllers.NewDraftController()
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)
	orderCtrl := controllers.NewOrderController(db, hub)
	adminCtrl := controllers.NewAdminController(db, monitor)
	liveCtrl := controllers.NewLiveController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/by-category", menuCtrl.GetMenuByCategory)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuByID)

	strict := middlewares.NewStrictRateLimiter()
	authPublic := r.Group("/")
	authPublic.Use(strict.Middleware())
	{
		authPublic.POST("/register", userCtrl.Register)
		authPublic.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      STOREFRONT (session-scoped)
	// ----------------------------------------------------------------
	shop := r.Group("/")
	shop.Use(middlewares.SessionMiddleware(sessions))
	{
		shop.GET("/cart", cartCtrl.GetCart)
		shop.POST("/cart/items", cartCtrl.AddItem)
		shop.PATCH("/cart/items", cartCtrl.UpdateQuantity)
		shop.DELETE("/cart/items/:menu_id", cartCtrl.RemoveItem)
		shop.DELETE("/cart", cartCtrl.ClearCart)

		shop.GET("/order-draft", draftCtrl.GetDraft)
		shop.PUT("/order-draft/delivery", draftCtrl.SetDelivery)
		shop.PUT("/order-draft/reservation", draftCtrl.SetReservation)
		shop.PUT("/order-draft/takeaway", draftCtrl.SetTakeaway)
		shop.PUT("/order-draft/on-site", draftCtrl.SetOnSite)
		shop.DELETE("/order-draft", draftCtrl.ResetDraft)

		shop.GET("/checkout", checkoutCtrl.Summary)
		shop.POST("/checkout", checkoutCtrl.Submit)
	}

	// ----------------------------------------------------------------
	//                      BACK OFFICE (JWT)
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.GET("/users", userCtrl.GetAllUsers)

		auth.POST("/categories", categoryCtrl.CreateCategory)
		auth.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		auth.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		auth.POST("/menus", menuCtrl.CreateMenu)
		auth.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
		auth.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)

		auth.GET("/orders", orderCtrl.GetAllOrders)
		auth.GET("/reservations", orderCtrl.GetAllReservations)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		auth.POST("/orders/:order_id/advance", orderCtrl.AdvanceOrderStatus)
		auth.POST("/orders/:order_id/read", orderCtrl.MarkOrderRead)
		auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

		auth.GET("/notifications/summary", adminCtrl.GetNotificationSummary)
		auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/:role", liveCtrl.Stream)
	}

	return r
}
