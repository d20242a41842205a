package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/brewhaven/coffee-shop-api/middlewares"
	"github.com/brewhaven/coffee-shop-api/models"
	"github.com/brewhaven/coffee-shop-api/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Login -> authenticate an admin, return bearer token + sanitized
// account. Wrong email and wrong password are indistinguishable to the
// caller; a disabled account is 403.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var admin models.AdminUser
	if err := ac.DB.Where("email = ?", input.Email).First(&admin).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("incorrect email or password"))
		return
	}

	if !admin.IsActive {
		utils.RespondError(c, http.StatusForbidden, errors.New("admin account is disabled"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.HashedPassword), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("incorrect email or password"))
		return
	}

	now := time.Now()
	admin.LastLogin = &now
	if err := ac.DB.Model(&admin).Update("last_login", now).Error; err != nil {
		utils.ErrorLogger.Errorf("Failed to record last login for %s: %v", admin.Email, err)
	}

	token, err := utils.GenerateToken(admin.Email, admin.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("failed to generate token"))
		return
	}

	utils.InfoLogger.Printf("Admin login: %s (role=%s)", admin.Email, admin.Role)

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"admin":        admin,
	})
}

// Me -> the admin named by the presented token.
func (ac *AuthController) Me(c *gin.Context) {
	admin, ok := middlewares.CurrentAdmin(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("admin not found in context"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Current admin", admin)
}
