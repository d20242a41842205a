package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brewhaven/coffee-shop-api/controllers"
	"github.com/brewhaven/coffee-shop-api/models"
	"github.com/brewhaven/coffee-shop-api/utils"
)

func setupTestDBForProducts() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:producttest?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		panic(err)
	}
	return db
}

func setupProductRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	productCtrl := controllers.NewProductController(db)
	router.GET("/products", productCtrl.GetProducts)
	router.GET("/products/categories", productCtrl.GetCategories)
	router.GET("/products/category/:category", productCtrl.GetProductsByCategory)
	router.GET("/products/:product_id", productCtrl.GetProduct)

	router.GET("/admin/products", productCtrl.AdminGetProducts)
	router.POST("/admin/products", productCtrl.CreateProduct)
	router.POST("/admin/products/bulk", productCtrl.BulkImportProducts)
	router.PUT("/admin/products/:product_id", productCtrl.UpdateProduct)
	router.DELETE("/admin/products/:product_id", productCtrl.DeleteProduct)

	return router
}

type productListResponse struct {
	Status  bool             `json:"status"`
	Message string           `json:"message"`
	Data    []models.Product `json:"data"`
}

func TestPublicListHidesUnavailableProducts(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForProducts()
	router := setupProductRouter(db)

	db.Create(&models.Product{Name: "Visible Latte", Price: 4.0, Category: "Espresso", IsAvailable: true, Stock: 10})
	db.Create(&models.Product{Name: "Hidden Mocha", Price: 4.5, Category: "Espresso", IsAvailable: false, Stock: 10})

	req, _ := http.NewRequest("GET", "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp productListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, p := range resp.Data {
		assert.True(t, p.IsAvailable)
		assert.NotEqual(t, "Hidden Mocha", p.Name)
	}

	// the admin listing still sees everything
	req, _ = http.NewRequest("GET", "/admin/products", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	names := map[string]bool{}
	for _, p := range resp.Data {
		names[p.Name] = true
	}
	assert.True(t, names["Hidden Mocha"])
}

func TestCreateAndGetProduct(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForProducts()
	router := setupProductRouter(db)

	payload := map[string]interface{}{
		"name":        "Test Americano",
		"price":       3.25,
		"category":    "Hot Coffee",
		"description": "Plain and strong",
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", "/admin/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.Product `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.Data.ID)
	// defaults applied when the request omits them
	assert.True(t, created.Data.IsAvailable)
	assert.Equal(t, 100, created.Data.Stock)

	req, _ = http.NewRequest("GET", fmt.Sprintf("/products/%d", created.Data.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var fetched struct {
		Data models.Product `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Test Americano", fetched.Data.Name)
	assert.InDelta(t, 3.25, fetched.Data.Price, 0.001)

	// unknown id
	req, _ = http.NewRequest("GET", "/products/999999", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProductValidation(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForProducts()
	router := setupProductRouter(db)

	// missing name and non-positive price are both rejected
	for _, payload := range []map[string]interface{}{
		{"price": 3.0},
		{"name": "Free Coffee", "price": 0},
		{"name": "Negative Coffee", "price": -1.5},
	} {
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest("POST", "/admin/products", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForProducts()
	router := setupProductRouter(db)

	product := models.Product{Name: "Updatable Brew", Price: 4.0, Category: "Hot Coffee", IsAvailable: true, Stock: 50}
	db.Create(&product)

	body, _ := json.Marshal(map[string]interface{}{"price": 4.75, "is_available": false})
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/admin/products/%d", product.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Product
	assert.NoError(t, db.First(&updated, product.ID).Error)
	assert.InDelta(t, 4.75, updated.Price, 0.001)
	assert.False(t, updated.IsAvailable)
	// untouched fields survive a partial update
	assert.Equal(t, "Updatable Brew", updated.Name)
	assert.Equal(t, 50, updated.Stock)

	req, _ = http.NewRequest("DELETE", fmt.Sprintf("/admin/products/%d", product.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("DELETE", fmt.Sprintf("/admin/products/%d", product.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBulkImportProducts(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForProducts()
	router := setupProductRouter(db)

	payload := []map[string]interface{}{
		{"name": "Bulk Batch A", "price": 3.0, "category": "Bulk"},
		{"name": "Bulk Batch B", "price": 3.5, "category": "Bulk"},
		{"name": "Bulk Batch C", "price": 4.0, "category": "Bulk"},
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", "/admin/products/bulk", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Product{}).Where("category = ?", "Bulk").Count(&count)
	assert.Equal(t, int64(3), count)

	// one bad row rejects the whole batch
	payload = []map[string]interface{}{
		{"name": "Bulk Batch D", "price": 3.0, "category": "BulkFail"},
		{"name": "", "price": 3.5, "category": "BulkFail"},
	}
	body, _ = json.Marshal(payload)
	req, _ = http.NewRequest("POST", "/admin/products/bulk", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	db.Model(&models.Product{}).Where("category = ?", "BulkFail").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCategoriesEndpoint(t *testing.T) {
	utils.InitLogger()

	db := setupTestDBForProducts()
	router := setupProductRouter(db)

	db.Create(&models.Product{Name: "Cat Test 1", Price: 3.0, Category: "Cold Coffee", IsAvailable: true})
	db.Create(&models.Product{Name: "Cat Test 2", Price: 3.0, Category: "Cold Coffee", IsAvailable: true})
	db.Create(&models.Product{Name: "Cat Test 3", Price: 3.0, Category: "Tea", IsAvailable: false})

	req, _ := http.NewRequest("GET", "/products/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Categories []string `json:"categories"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	seen := map[string]int{}
	for _, cat := range resp.Data.Categories {
		seen[cat]++
	}
	assert.Equal(t, 1, seen["Cold Coffee"])
	// categories of unavailable products are not listed
	assert.Equal(t, 0, seen["Tea"])

	req, _ = http.NewRequest("GET", "/products/category/Cold Coffee", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var byCat productListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &byCat))
	for _, p := range byCat.Data {
		assert.Equal(t, "Cold Coffee", p.Category)
	}
	assert.GreaterOrEqual(t, len(byCat.Data), 2)
}
