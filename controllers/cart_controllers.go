package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brewhaven/coffee-shop-api/models"
	"github.com/brewhaven/coffee-shop-api/services"
	"github.com/brewhaven/coffee-shop-api/utils"
)

type CartController struct {
	DB       *gorm.DB
	Sessions services.SessionCartStore
}

func NewCartController(db *gorm.DB, sessions services.SessionCartStore) *CartController {
	return &CartController{DB: db, Sessions: sessions}
}

func (cc *CartController) GetCartItems(c *gin.Context) {
	skip, limit := paginationParams(c)

	var items []models.CartItem
	if err := cc.DB.Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart items", items)
}

func (cc *CartController) AddCartItem(c *gin.Context) {
	var req struct {
		ProductID   uint    `json:"product_id" binding:"required"`
		ProductName string  `json:"product_name" binding:"required"`
		Quantity    int     `json:"quantity" binding:"required,gt=0"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		SugarLevel  string  `json:"sugar_level"`
		Image       string  `json:"image"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.SugarLevel == "" {
		req.SugarLevel = "regular"
	}

	item := models.CartItem{
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Price:       req.Price,
		SugarLevel:  req.SugarLevel,
		Image:       req.Image,
	}

	if err := cc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", item)
}

func (cc *CartController) DeleteCartItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("cart_item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid cart item id"))
		return
	}

	result := cc.DB.Delete(&models.CartItem{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("cart item not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", gin.H{"cart_item_id": id})
}

// ClearCart empties the whole persistent cart. Carts are ephemeral;
// they are also cleared on order submission by the storefront.
func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.DB.Where("1 = 1").Delete(&models.CartItem{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}

// ---- session carts (anonymous storefront visitors) ----

func (cc *CartController) GetSessionCart(c *gin.Context) {
	sessionID := c.Param("session_id")
	items := cc.Sessions.Get(sessionID)

	utils.RespondJSON(c, http.StatusOK, "Session cart", gin.H{
		"session_id":  sessionID,
		"items":       items,
		"total_items": len(items),
	})
}

func (cc *CartController) AddSessionCartItem(c *gin.Context) {
	sessionID := c.Param("session_id")

	var req struct {
		ProductID   uint    `json:"product_id" binding:"required"`
		ProductName string  `json:"product_name" binding:"required"`
		Quantity    int     `json:"quantity" binding:"required,gt=0"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		SugarLevel  string  `json:"sugar_level"`
		Image       string  `json:"image"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.SugarLevel == "" {
		req.SugarLevel = "regular"
	}

	merged := cc.Sessions.Add(sessionID, services.SessionCartItem{
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Price:       req.Price,
		SugarLevel:  req.SugarLevel,
		Image:       req.Image,
	})

	message := "Item added to cart"
	if merged {
		message = "Item quantity updated"
	}

	utils.RespondJSON(c, http.StatusOK, message, gin.H{
		"session_id":  sessionID,
		"total_items": len(cc.Sessions.Get(sessionID)),
	})
}

func (cc *CartController) RemoveSessionCartItem(c *gin.Context) {
	sessionID := c.Param("session_id")
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	if !cc.Sessions.Remove(sessionID, itemID) {
		utils.RespondError(c, http.StatusNotFound, errors.New("session not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", gin.H{
		"session_id":  sessionID,
		"total_items": len(cc.Sessions.Get(sessionID)),
	})
}

func (cc *CartController) ClearSessionCart(c *gin.Context) {
	sessionID := c.Param("session_id")

	if !cc.Sessions.Clear(sessionID) {
		utils.RespondError(c, http.StatusNotFound, errors.New("session not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart cleared", gin.H{
		"session_id":  sessionID,
		"total_items": 0,
	})
}
