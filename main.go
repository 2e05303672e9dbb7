package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/maelcorre/bistrot-app/config"
	"github.com/maelcorre/bistrot-app/live"
	"github.com/maelcorre/bistrot-app/models"
	"github.com/maelcorre/bistrot-app/router"
	"github.com/maelcorre/bistrot-app/services"
	"github.com/maelcorre/bistrot-app/store"
	"github.com/maelcorre/bistrot-app/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	utils.InitLogger()
}

func main() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	autoMigrate(db)

	if err := config.SeedAdmin(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := config.SeedMenu(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed menu catalog: %v", err)
	}

	hub := live.NewHub()

	sessions := store.NewSessionManager()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			sessions.PruneIdle()
		}
	}()

	monitor := services.NewNotificationMonitor(db, hub)
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(db, hub, sessions, monitor)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
