package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brewhaven/coffee-shop-api/models"
	"github.com/brewhaven/coffee-shop-api/services"
	"github.com/brewhaven/coffee-shop-api/utils"
)

// KHQRController exposes the payment contract: generate a payment
// request, poll its status. Behind it sits the demo simulator; a real
// gateway integration replaces the simulator with a webhook handler
// without changing these two endpoints.
type KHQRController struct {
	DB        *gorm.DB
	Simulator *services.PaymentSimulator
	Tracker   services.PaymentTracker
}

func NewKHQRController(db *gorm.DB, simulator *services.PaymentSimulator, tracker services.PaymentTracker) *KHQRController {
	return &KHQRController{DB: db, Simulator: simulator, Tracker: tracker}
}

type KHQRGenerateRequest struct {
	OrderNumber string  `json:"order_number" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Currency    string  `json:"currency"`
}

// GenerateKHQR -> demo QR payload plus content hash and deep-link
// placeholder, then schedules the payment simulator for the order.
func (kc *KHQRController) GenerateKHQR(c *gin.Context) {
	var req KHQRGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	demoMd5 := fmt.Sprintf("demo_%s_%d", req.OrderNumber, time.Now().Unix())

	kc.Simulator.Start(req.OrderNumber)

	utils.RespondJSON(c, http.StatusOK, "KHQR generated", gin.H{
		"qr_data":  fmt.Sprintf("DEMO_QR_FOR_ORDER_%s", req.OrderNumber),
		"md5_hash": demoMd5,
		"deeplink": fmt.Sprintf("https://bakong.page.link/demo/%s", req.OrderNumber),
		"qr_image": nil,
	})
}

// PaymentStatus -> current payment state for an order. While a
// simulation is in flight the tracker hint overrides the stored row,
// so a client polling right after QR generation sees "processing".
func (kc *KHQRController) PaymentStatus(c *gin.Context) {
	orderNumber := c.Param("order_number")

	var order models.Order
	if err := kc.DB.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	status := order.PaymentStatus
	if check, ok := kc.Tracker.Get(orderNumber); ok {
		status = check.Status
	}

	utils.RespondJSON(c, http.StatusOK, "Payment status", gin.H{
		"order_number":   orderNumber,
		"payment_status": status,
		"transaction_data": gin.H{
			"order_number": orderNumber,
			"amount":       order.TotalAmount,
			"currency":     order.Currency,
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
			"demo":         true,
		},
	})
}

// SimulatePaid immediately settles an order, for testing without
// waiting out the simulator delay.
func (kc *KHQRController) SimulatePaid(c *gin.Context) {
	orderNumber := c.Param("order_number")

	result := kc.DB.Model(&models.Order{}).
		Where("order_number = ?", orderNumber).
		Updates(map[string]interface{}{
			"payment_status": services.PaymentStatusPaid,
			"khqr_md5":       "simulated_md5",
		})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	kc.Tracker.Resolve(orderNumber, services.CheckStatusPaid)

	utils.RespondJSON(c, http.StatusOK, "Payment simulated", gin.H{
		"order_number": orderNumber,
		"status":       services.PaymentStatusPaid,
	})
}

// ActivePayments -> monitoring view over in-flight payment checks.
func (kc *KHQRController) ActivePayments(c *gin.Context) {
	snapshot := kc.Tracker.Snapshot()

	utils.RespondJSON(c, http.StatusOK, "Active payment checks", gin.H{
		"active_payments": snapshot,
		"total_active":    kc.Tracker.ActiveCount(),
	})
}
