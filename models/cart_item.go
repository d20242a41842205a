package models

import "time"

// CartItem is one line of the shared persistent cart. ProductID is a
// weak reference; name and price are copied in at add-time so the line
// survives later product edits.
type CartItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProductID   uint      `gorm:"not null" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	SugarLevel  string    `gorm:"type:varchar(20);default:'regular'" json:"sugar_level"`
	Image       string    `gorm:"type:varchar(512)" json:"image"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
