package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// OrderLineItem is one entry of the embedded items list. Line items are
// stored denormalized on the order row so order history is immune to
// later product edits; they are never normalized into their own table.
type OrderLineItem struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	SugarLevel  string  `json:"sugar_level"`
}

type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	OrderNumber     string         `gorm:"type:varchar(32);uniqueIndex;not null" json:"order_number"`
	CustomerName    string         `gorm:"type:varchar(255);not null" json:"customer_name"`
	PhoneNumber     string         `gorm:"type:varchar(50);not null" json:"phone_number"`
	DeliveryAddress string         `gorm:"type:text" json:"delivery_address"`
	Items           datatypes.JSON `gorm:"not null" json:"items"`
	TotalAmount     float64        `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Currency        string         `gorm:"type:varchar(10);default:'USD'" json:"currency"`
	Status          string         `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus   string         `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentMethod   string         `gorm:"type:varchar(20);default:'khqr'" json:"payment_method"`
	KHQRMd5         string         `gorm:"type:varchar(128)" json:"khqr_md5"`
	Notes           string         `gorm:"type:text" json:"notes"`
	AdminNotes      string         `gorm:"type:text" json:"admin_notes"`
	CreatedAt       time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// LineItems decodes the embedded items column.
func (o *Order) LineItems() ([]OrderLineItem, error) {
	var items []OrderLineItem
	if len(o.Items) == 0 {
		return items, nil
	}
	err := json.Unmarshal(o.Items, &items)
	return items, err
}
