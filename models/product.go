package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string    `gorm:"type:varchar(512)" json:"image"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:varchar(100);index" json:"category"`
	Rating      float64   `gorm:"type:decimal(3,1)" json:"rating"`
	BrewTime    string    `gorm:"type:varchar(50)" json:"brew_time"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
	Stock       int       `gorm:"default:100" json:"stock"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
