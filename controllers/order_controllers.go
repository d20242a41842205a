package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/brewhaven/coffee-shop-api/models"
	"github.com/brewhaven/coffee-shop-api/services"
	"github.com/brewhaven/coffee-shop-api/utils"
)

// Fulfillment statuses. Independent from payment_status: a paid order
// can still be pending fulfillment.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

var validOrderStatuses = map[string]bool{
	OrderStatusPending:   true,
	OrderStatusPreparing: true,
	OrderStatusCompleted: true,
	OrderStatusCancelled: true,
}

type OrderController struct {
	DB        *gorm.DB
	Simulator *services.PaymentSimulator
}

func NewOrderController(db *gorm.DB, simulator *services.PaymentSimulator) *OrderController {
	return &OrderController{DB: db, Simulator: simulator}
}

type orderLineItemRequest struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	SugarLevel  string  `json:"sugar_level"`
}

type OrderCreateRequest struct {
	CustomerName    string                 `json:"customer_name" binding:"required"`
	PhoneNumber     string                 `json:"phone_number" binding:"required"`
	DeliveryAddress string                 `json:"delivery_address"`
	Items           []orderLineItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount     float64                `json:"total_amount" binding:"required,gt=0"`
	Currency        string                 `json:"currency"`
	PaymentMethod   string                 `json:"payment_method"`
	Notes           string                 `json:"notes"`
}

// CreateOrder -> persist a new order and kick off the demo payment
// simulator. Inside one transaction the stock of every referenced live
// product is checked and decremented; insufficient stock rejects the
// order before anything is written. Line items with dangling product
// ids are accepted unchanged (cart references are weak).
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Currency == "" {
		req.Currency = "USD"
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "khqr"
	}

	lineItems := make([]models.OrderLineItem, 0, len(req.Items))
	for _, item := range req.Items {
		sugar := item.SugarLevel
		if sugar == "" {
			sugar = "regular"
		}
		lineItems = append(lineItems, models.OrderLineItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			SugarLevel:  sugar,
		})
	}

	itemsJSON, err := json.Marshal(lineItems)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	order := models.Order{
		OrderNumber:     utils.GenerateOrderNumber(),
		CustomerName:    req.CustomerName,
		PhoneNumber:     req.PhoneNumber,
		DeliveryAddress: req.DeliveryAddress,
		Items:           datatypes.JSON(itemsJSON),
		TotalAmount:     req.TotalAmount,
		Currency:        req.Currency,
		Status:          OrderStatusPending,
		PaymentStatus:   services.PaymentStatusPending,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	}

	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range lineItems {
			if item.ProductID == 0 {
				continue
			}

			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}

			if product.Stock < item.Quantity {
				return fmt.Errorf("insufficient stock for %s: %d left", product.Name, product.Stock)
			}

			if err := tx.Model(&product).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		return tx.Create(&order).Error
	})
	if err != nil {
		if strings.HasPrefix(err.Error(), "insufficient stock") {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.ErrorLogger.Errorf("Failed to create order for %s: %v", req.CustomerName, err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("failed to create order"))
		return
	}

	utils.InfoLogger.Printf("Order created: %s (%d items, total %.2f %s)",
		order.OrderNumber, len(lineItems), order.TotalAmount, order.Currency)

	oc.Simulator.Start(order.OrderNumber)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

func (oc *OrderController) GetOrderByNumber(c *gin.Context) {
	orderNumber := c.Param("order_number")

	var order models.Order
	if err := oc.DB.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetAllOrders -> admin listing, newest first, optional status filter.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	skip, limit := paginationParams(c)

	query := oc.DB.Model(&models.Order{}).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Offset(skip).Limit(limit).Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// SearchOrders -> case-insensitive substring match over order number,
// customer name and phone number.
func (oc *OrderController) SearchOrders(c *gin.Context) {
	raw := c.Query("query")
	if raw == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter required"))
		return
	}

	pattern := "%" + strings.ToLower(raw) + "%"
	var orders []models.Order
	if err := oc.DB.
		Where("LOWER(order_number) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(phone_number) LIKE ?",
			pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Search results", orders)
}

// GetOrdersByDateRange filters by the calendar date of creation,
// boundaries inclusive.
func (oc *OrderController) GetOrdersByDateRange(c *gin.Context) {
	const layout = "2006-01-02"

	start, err := time.Parse(layout, c.Query("start_date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid start_date, expected YYYY-MM-DD"))
		return
	}
	end, err := time.Parse(layout, c.Query("end_date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid end_date, expected YYYY-MM-DD"))
		return
	}

	var orders []models.Order
	if err := oc.DB.
		Where("DATE(created_at) >= ? AND DATE(created_at) <= ?", start.Format(layout), end.Format(layout)).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Orders in range", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrder -> admin partial update of status, payment_status and
// admin_notes. Orders are never deleted; they are only mutated.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	var req struct {
		Status        *string `json:"status"`
		PaymentStatus *string `json:"payment_status"`
		AdminNotes    *string `json:"admin_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		if !validOrderStatuses[*req.Status] {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown order status %q", *req.Status))
			return
		}
		updates["status"] = *req.Status
	}
	if req.PaymentStatus != nil {
		updates["payment_status"] = *req.PaymentStatus
	}
	if req.AdminNotes != nil {
		updates["admin_notes"] = *req.AdminNotes
	}

	if len(updates) > 0 {
		if err := oc.DB.Model(&order).Updates(updates).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !validOrderStatuses[req.Status] {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown order status %q", req.Status))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	if err := oc.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// MarkOrderPaid -> admin override, e.g. cash on delivery.
func (oc *OrderController) MarkOrderPaid(c *gin.Context) {
	orderNumber := c.Param("order_number")
	paymentMethod := c.DefaultQuery("payment_method", "cash")

	result := oc.DB.Model(&models.Order{}).
		Where("order_number = ?", orderNumber).
		Updates(map[string]interface{}{
			"payment_status": services.PaymentStatusPaid,
			"payment_method": paymentMethod,
		})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order marked as paid", gin.H{"order_number": orderNumber})
}

func (oc *OrderController) MarkOrderRefunded(c *gin.Context) {
	orderNumber := c.Param("order_number")

	result := oc.DB.Model(&models.Order{}).
		Where("order_number = ?", orderNumber).
		Update("payment_status", services.PaymentStatusRefunded)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order marked as refunded", gin.H{"order_number": orderNumber})
}
