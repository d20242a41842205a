package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brewhaven/coffee-shop-api/controllers"
	"github.com/brewhaven/coffee-shop-api/models"
	"github.com/brewhaven/coffee-shop-api/services"
	"github.com/brewhaven/coffee-shop-api/utils"
)

func setupTestDBForOrders() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:ordertest?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}); err != nil {
		panic(err)
	}
	return db
}

// the long delay keeps the simulator from flipping orders to paid
// while assertions are still running
func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	tracker := services.NewPaymentTracker()
	simulator := services.NewPaymentSimulator(db, tracker, time.Hour)
	orderCtrl := controllers.NewOrderController(db, simulator)

	router.POST("/orders", orderCtrl.CreateOrder)
	router.GET("/orders/:order_number", orderCtrl.GetOrderByNumber)

	router.GET("/admin/orders", orderCtrl.GetAllOrders)
	router.GET("/admin/orders/search", orderCtrl.SearchOrders)
	router.GET("/admin/orders/by-date-range", orderCtrl.GetOrdersByDateRange)
	router.PUT("/admin/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	router.POST("/admin/payments/:order_number/mark-paid", orderCtrl.MarkOrderPaid)
	router.POST("/admin/payments/:order_number/mark-refunded", orderCtrl.MarkOrderRefunded)

	return router
}

func placeOrder(t *testing.T, router *gin.Engine, payload map[string]interface{}) (*httptest.ResponseRecorder, models.Order) {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/orders", bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Data models.Order `json:"data"`
	}
	if w.Code == http.StatusCreated {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp.Data
}

func sampleOrderPayload(customer string, items []map[string]interface{}, total float64) map[string]interface{} {
	return map[string]interface{}{
		"customer_name":    customer,
		"phone_number":     "+855123456789",
		"delivery_address": "12 Street 240, Phnom Penh",
		"items":            items,
		"total_amount":     total,
	}
}

func TestCreateOrder(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	payload := sampleOrderPayload("Sokha Chan", []map[string]interface{}{
		{"product_name": "Mondulkiri Arabica", "quantity": 2, "price": 4.50},
	}, 9.00)

	w, order := placeOrder(t, router, payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "pending", order.PaymentStatus)
	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, "khqr", order.PaymentMethod)
	assert.Regexp(t, regexp.MustCompile(`^BH\d{8}[0-9A-F]{8}$`), order.OrderNumber)

	items, err := order.LineItems()
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Mondulkiri Arabica", items[0].ProductName)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "regular", items[0].SugarLevel)

	// lookup by number round-trips
	req, _ := http.NewRequest("GET", "/orders/"+order.OrderNumber, nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	req, _ = http.NewRequest("GET", "/orders/BH00000000DEADBEEF", nil)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusNotFound, w2.Code)
}

func TestOrderNumbersAreUnique(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		payload := sampleOrderPayload(fmt.Sprintf("Unique Customer %d", i), []map[string]interface{}{
			{"product_name": "Siem Reap Robusta", "quantity": 1, "price": 3.75},
		}, 3.75)
		w, order := placeOrder(t, router, payload)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.False(t, seen[order.OrderNumber], "duplicate order number %s", order.OrderNumber)
		seen[order.OrderNumber] = true
	}
}

func TestCreateOrderValidation(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	// no items
	w, _ := placeOrder(t, router, sampleOrderPayload("No Items", []map[string]interface{}{}, 5.0))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// missing customer name
	payload := sampleOrderPayload("", []map[string]interface{}{
		{"product_name": "Latte", "quantity": 1, "price": 4.0},
	}, 4.0)
	w, _ = placeOrder(t, router, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// zero quantity line item
	payload = sampleOrderPayload("Zero Qty", []map[string]interface{}{
		{"product_name": "Latte", "quantity": 0, "price": 4.0},
	}, 4.0)
	w, _ = placeOrder(t, router, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	product := models.Product{Name: "Stocked Brew", Price: 4.0, Category: "Hot Coffee", IsAvailable: true, Stock: 10}
	db.Create(&product)

	payload := sampleOrderPayload("Stock Buyer", []map[string]interface{}{
		{"product_id": product.ID, "product_name": product.Name, "quantity": 3, "price": 4.0},
	}, 12.0)
	w, _ := placeOrder(t, router, payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var reloaded models.Product
	db.First(&reloaded, product.ID)
	assert.Equal(t, 7, reloaded.Stock)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	product := models.Product{Name: "Scarce Brew", Price: 4.0, Category: "Hot Coffee", IsAvailable: true, Stock: 2}
	db.Create(&product)

	var before int64
	db.Model(&models.Order{}).Count(&before)

	payload := sampleOrderPayload("Greedy Buyer", []map[string]interface{}{
		{"product_id": product.ID, "product_name": product.Name, "quantity": 5, "price": 4.0},
	}, 20.0)
	w, _ := placeOrder(t, router, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// nothing was written: stock untouched, no order row
	var reloaded models.Product
	db.First(&reloaded, product.ID)
	assert.Equal(t, 2, reloaded.Stock)

	var after int64
	db.Model(&models.Order{}).Count(&after)
	assert.Equal(t, before, after)
}

func TestSearchOrders(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	payload := sampleOrderPayload("Dara Searchable", []map[string]interface{}{
		{"product_name": "Kampot Iced Coffee", "quantity": 1, "price": 4.0},
	}, 4.0)
	w, order := placeOrder(t, router, payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	// case-insensitive match on the customer name
	req, _ := http.NewRequest("GET", "/admin/orders/search?query=dara+search", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	var resp struct {
		Data []models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w2.Body.Bytes(), &resp))
	found := false
	for _, o := range resp.Data {
		if o.OrderNumber == order.OrderNumber {
			found = true
		}
	}
	assert.True(t, found)

	// match on the order number itself
	req, _ = http.NewRequest("GET", "/admin/orders/search?query="+order.OrderNumber, nil)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.NoError(t, json.Unmarshal(w2.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)

	// a blank query is rejected
	req, _ = http.NewRequest("GET", "/admin/orders/search", nil)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestOrdersByDateRange(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	payload := sampleOrderPayload("Range Customer", []map[string]interface{}{
		{"product_name": "Angkor Wat Espresso", "quantity": 1, "price": 3.5},
	}, 3.5)
	w, order := placeOrder(t, router, payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	today := time.Now().Format("2006-01-02")
	req, _ := http.NewRequest("GET", "/admin/orders/by-date-range?start_date="+today+"&end_date="+today, nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	var resp struct {
		Data []models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w2.Body.Bytes(), &resp))
	found := false
	for _, o := range resp.Data {
		if o.OrderNumber == order.OrderNumber {
			found = true
		}
	}
	assert.True(t, found)

	// malformed dates are rejected
	req, _ = http.NewRequest("GET", "/admin/orders/by-date-range?start_date=31-12-2024&end_date="+today, nil)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	payload := sampleOrderPayload("Status Customer", []map[string]interface{}{
		{"product_name": "Tonle Sap Cappuccino", "quantity": 1, "price": 4.25},
	}, 4.25)
	w, order := placeOrder(t, router, payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	body, _ := json.Marshal(map[string]string{"status": controllers.OrderStatusPreparing})
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/admin/orders/%d/status", order.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	var reloaded models.Order
	db.First(&reloaded, order.ID)
	assert.Equal(t, controllers.OrderStatusPreparing, reloaded.Status)

	// unknown statuses never reach the database
	body, _ = json.Marshal(map[string]string{"status": "teleported"})
	req, _ = http.NewRequest("PUT", fmt.Sprintf("/admin/orders/%d/status", order.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusBadRequest, w2.Code)

	db.First(&reloaded, order.ID)
	assert.Equal(t, controllers.OrderStatusPreparing, reloaded.Status)
}

func TestMarkOrderPaidAndRefunded(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForOrders()
	router := setupOrderRouter(db)

	payload := sampleOrderPayload("Cash Customer", []map[string]interface{}{
		{"product_name": "Phnom Penh Cold Brew", "quantity": 1, "price": 5.25},
	}, 5.25)
	w, order := placeOrder(t, router, payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	req, _ := http.NewRequest("POST", "/admin/payments/"+order.OrderNumber+"/mark-paid", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	var reloaded models.Order
	db.First(&reloaded, order.ID)
	assert.Equal(t, services.PaymentStatusPaid, reloaded.PaymentStatus)
	// payment_method defaults to cash when marked by hand
	assert.Equal(t, "cash", reloaded.PaymentMethod)

	req, _ = http.NewRequest("POST", "/admin/payments/"+order.OrderNumber+"/mark-refunded", nil)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	db.First(&reloaded, order.ID)
	assert.Equal(t, services.PaymentStatusRefunded, reloaded.PaymentStatus)

	req, _ = http.NewRequest("POST", "/admin/payments/BH00000000FEEDFACE/mark-paid", nil)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusNotFound, w2.Code)
}
