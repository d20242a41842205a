package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/brewhaven/coffee-shop-api/config"
	"github.com/brewhaven/coffee-shop-api/database"
	"github.com/brewhaven/coffee-shop-api/models"
	"github.com/brewhaven/coffee-shop-api/router"
	"github.com/brewhaven/coffee-shop-api/services"
	"github.com/brewhaven/coffee-shop-api/utils"
)

func main() {
	utils.InitLogger()

	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.AdminUser{},
	); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := database.SeedDefaultData(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed default data: %v", err)
	}

	tracker := services.NewPaymentTracker()
	carts := services.NewSessionCartStore()
	simulator := services.NewPaymentSimulator(db, tracker, cfg.PaymentSimDelay)

	r := router.SetupRouter(db, simulator, tracker, carts, cfg.AllowedOrigins)

	utils.InfoLogger.Printf("BrewHaven Coffee API listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatalf("Server stopped: %v", err)
	}
}
