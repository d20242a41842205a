package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/brewhaven/coffee-shop-api/models"
	"github.com/brewhaven/coffee-shop-api/utils"
)

// Order payment statuses persisted on the order row.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// PaymentSimulator stands in for a real payment-gateway webhook. It is
// deliberately hidden behind the same two operations a gateway
// integration would use (generate payment request, poll status), so a
// real processor can replace it without touching the endpoints: only
// this goroutine changes into a webhook handler.
type PaymentSimulator struct {
	db      *gorm.DB
	tracker PaymentTracker
	delay   time.Duration
}

func NewPaymentSimulator(db *gorm.DB, tracker PaymentTracker, delay time.Duration) *PaymentSimulator {
	return &PaymentSimulator{
		db:      db,
		tracker: tracker,
		delay:   delay,
	}
}

// Start schedules a fire-and-forget payment confirmation for the order.
// Process shutdown abandons in-flight simulations.
func (s *PaymentSimulator) Start(orderNumber string) {
	s.tracker.Begin(orderNumber)
	go s.run(orderNumber)
}

func (s *PaymentSimulator) run(orderNumber string) {
	utils.InfoLogger.Printf("Simulating payment processing for order %s", orderNumber)

	time.Sleep(s.delay)

	// Single write attempt decides the terminal state. No retry.
	reference := fmt.Sprintf("demo_%s_%d", orderNumber, time.Now().Unix())
	result := s.db.Model(&models.Order{}).
		Where("order_number = ?", orderNumber).
		Updates(map[string]interface{}{
			"payment_status": PaymentStatusPaid,
			"khqr_md5":       reference,
		})

	if result.Error != nil || result.RowsAffected == 0 {
		s.tracker.Resolve(orderNumber, CheckStatusFailed)
		utils.ErrorLogger.Errorf("Failed to confirm payment for order %s: %v", orderNumber, result.Error)
		return
	}

	s.tracker.Resolve(orderNumber, CheckStatusPaid)
	utils.InfoLogger.Printf("Demo payment confirmed for order %s", orderNumber)
}
