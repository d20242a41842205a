package database

import (
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/brewhaven/coffee-shop-api/models"
	"github.com/brewhaven/coffee-shop-api/utils"
)

// SeedDefaultData makes sure a fresh database is usable: one super
// admin account and a starter catalog. Both steps are idempotent.
func SeedDefaultData(db *gorm.DB) error {
	if err := seedSuperAdmin(db); err != nil {
		return err
	}
	return seedSampleProducts(db)
}

func seedSuperAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@gmail.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	var count int64
	if err := db.Model(&models.AdminUser{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.AdminUser{
		Email:          email,
		HashedPassword: string(hashed),
		FullName:       "Super Admin",
		Role:           models.RoleSuperAdmin,
		IsActive:       true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded super admin account: %s", email)
	return nil
}

func seedSampleProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{
			Name:        "Mondulkiri Arabica",
			Price:       4.50,
			Image:       "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=400",
			Description: "Single-origin arabica from the Mondulkiri highlands, medium roast with chocolate notes.",
			Category:    "Hot Coffee",
			Rating:      4.8,
			BrewTime:    "4 min",
			IsAvailable: true,
			Stock:       100,
		},
		{
			Name:        "Phnom Penh Cold Brew",
			Price:       5.25,
			Image:       "https://images.unsplash.com/photo-1517701550927-30cf4ba1dba5?w=400",
			Description: "Slow-steeped cold brew served over ice, smooth and low in acidity.",
			Category:    "Cold Coffee",
			Rating:      4.9,
			BrewTime:    "2 min",
			IsAvailable: true,
			Stock:       100,
		},
		{
			Name:        "Siem Reap Robusta",
			Price:       3.75,
			Image:       "https://images.unsplash.com/photo-1509042239860-f550ce710b93?w=400",
			Description: "Bold and earthy robusta, the classic Cambodian street coffee.",
			Category:    "Hot Coffee",
			Rating:      4.6,
			BrewTime:    "3 min",
			IsAvailable: true,
			Stock:       100,
		},
		{
			Name:        "Angkor Wat Espresso",
			Price:       3.50,
			Image:       "https://images.unsplash.com/photo-1510591509098-f4fdc6d0ff04?w=400",
			Description: "Double shot of intense espresso with a rich golden crema.",
			Category:    "Espresso",
			Rating:      4.7,
			BrewTime:    "2 min",
			IsAvailable: true,
			Stock:       100,
		},
		{
			Name:        "Tonle Sap Cappuccino",
			Price:       4.25,
			Image:       "https://images.unsplash.com/photo-1572442388796-11668a67e53d?w=400",
			Description: "Espresso topped with velvety steamed milk foam and cocoa dust.",
			Category:    "Espresso",
			Rating:      4.8,
			BrewTime:    "4 min",
			IsAvailable: true,
			Stock:       100,
		},
		{
			Name:        "Kampot Iced Coffee",
			Price:       4.00,
			Image:       "https://images.unsplash.com/photo-1461023058943-07fcbe16d735?w=400",
			Description: "Iced coffee sweetened with condensed milk, Kampot style.",
			Category:    "Cold Coffee",
			Rating:      4.5,
			BrewTime:    "3 min",
			IsAvailable: true,
			Stock:       100,
		},
	}

	if err := db.Create(&products).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded %d sample products", len(products))
	return nil
}
