package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brewhaven/coffee-shop-api/models"
	"github.com/brewhaven/coffee-shop-api/utils"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

type ProductCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	BrewTime    string  `json:"brew_time"`
	IsAvailable *bool   `json:"is_available"`
	Stock       *int    `json:"stock"`
}

type ProductUpdateRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Rating      *float64 `json:"rating"`
	BrewTime    *string  `json:"brew_time"`
	IsAvailable *bool    `json:"is_available"`
	Stock       *int     `json:"stock"`
}

func (r ProductCreateRequest) toModel() models.Product {
	product := models.Product{
		Name:        r.Name,
		Price:       r.Price,
		Image:       r.Image,
		Description: r.Description,
		Category:    r.Category,
		Rating:      r.Rating,
		BrewTime:    r.BrewTime,
		IsAvailable: true,
		Stock:       100,
	}
	if r.IsAvailable != nil {
		product.IsAvailable = *r.IsAvailable
	}
	if r.Stock != nil {
		product.Stock = *r.Stock
	}
	return product
}

func (r ProductUpdateRequest) changes() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Price != nil {
		updates["price"] = *r.Price
	}
	if r.Image != nil {
		updates["image"] = *r.Image
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Category != nil {
		updates["category"] = *r.Category
	}
	if r.Rating != nil {
		updates["rating"] = *r.Rating
	}
	if r.BrewTime != nil {
		updates["brew_time"] = *r.BrewTime
	}
	if r.IsAvailable != nil {
		updates["is_available"] = *r.IsAvailable
	}
	if r.Stock != nil {
		updates["stock"] = *r.Stock
	}
	return updates
}

func paginationParams(c *gin.Context) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return skip, limit
}

// GetProducts -> public catalog, available products only.
func (pc *ProductController) GetProducts(c *gin.Context) {
	skip, limit := paginationParams(c)

	var products []models.Product
	if err := pc.DB.Where("is_available = ?", true).
		Offset(skip).Limit(limit).
		Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// GetCategories -> distinct category names across available products.
func (pc *ProductController) GetCategories(c *gin.Context) {
	var categories []string
	if err := pc.DB.Model(&models.Product{}).
		Where("is_available = ? AND category <> ''", true).
		Distinct().
		Pluck("category", &categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product categories", gin.H{"categories": categories})
}

func (pc *ProductController) GetProductsByCategory(c *gin.Context) {
	category := c.Param("category")

	var products []models.Product
	if err := pc.DB.Where("is_available = ? AND category = ?", true, category).
		Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Products in category", products)
}

// AdminGetProducts -> unfiltered catalog for the admin panel.
func (pc *ProductController) AdminGetProducts(c *gin.Context) {
	skip, limit := paginationParams(c)

	var products []models.Product
	if err := pc.DB.Offset(skip).Limit(limit).Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product := req.toModel()
	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	var req ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := req.changes()
	if len(updates) > 0 {
		if err := pc.DB.Model(&product).Updates(updates).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	result := pc.DB.Delete(&models.Product{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": id})
}

// BulkImportProducts -> create many catalog rows in one transaction.
// All-or-nothing: one bad row rejects the whole batch.
func (pc *ProductController) BulkImportProducts(c *gin.Context) {
	var reqs []ProductCreateRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(reqs) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("empty product list"))
		return
	}

	products := make([]models.Product, 0, len(reqs))
	for _, req := range reqs {
		products = append(products, req.toModel())
	}

	if err := pc.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&products).Error
	}); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Bulk imported %d products", len(products))
	utils.RespondJSON(c, http.StatusCreated, fmt.Sprintf("%d products imported", len(products)), products)
}
