package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/brewhaven/coffee-shop-api/middlewares"
	"github.com/brewhaven/coffee-shop-api/models"
	"github.com/brewhaven/coffee-shop-api/services"
	"github.com/brewhaven/coffee-shop-api/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats -> headline numbers for the admin dashboard.
// Revenue counts orders with payment_status="paid" only; unpaid and
// refunded orders never contribute.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalOrders     int64   `json:"total_orders"`
		TotalRevenue    float64 `json:"total_revenue"`
		TotalProducts   int64   `json:"total_products"`
		PendingOrders   int64   `json:"pending_orders"`
		CompletedOrders int64   `json:"completed_orders"`
		TodayOrders     int64   `json:"today_orders"`
		TodayRevenue    float64 `json:"today_revenue"`
	}

	ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	ac.DB.Model(&models.Product{}).Count(&stats.TotalProducts)
	ac.DB.Model(&models.Order{}).
		Where("status IN ?", []string{OrderStatusPending, OrderStatusPreparing}).
		Count(&stats.PendingOrders)
	ac.DB.Model(&models.Order{}).
		Where("status = ?", OrderStatusCompleted).
		Count(&stats.CompletedOrders)
	ac.DB.Model(&models.Order{}).
		Where("DATE(created_at) = ?", today).
		Count(&stats.TodayOrders)

	ac.DB.Model(&models.Order{}).
		Where("payment_status = ?", services.PaymentStatusPaid).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&stats.TotalRevenue)
	ac.DB.Model(&models.Order{}).
		Where("payment_status = ? AND DATE(created_at) = ?", services.PaymentStatusPaid, today).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&stats.TodayRevenue)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// GetOrderStats -> per-day order count and paid revenue for the last N
// days (1..30, default 7), oldest day first.
func (ac *AdminController) GetOrderStats(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 || days > 30 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("days must be between 1 and 30"))
		return
	}

	type dayStat struct {
		Date    string  `json:"date"`
		Orders  int64   `json:"orders"`
		Revenue float64 `json:"revenue"`
	}

	stats := make([]dayStat, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := time.Now().AddDate(0, 0, -i).Format("2006-01-02")

		var stat dayStat
		stat.Date = day
		ac.DB.Model(&models.Order{}).
			Where("DATE(created_at) = ?", day).
			Count(&stat.Orders)
		ac.DB.Model(&models.Order{}).
			Where("payment_status = ? AND DATE(created_at) = ?", services.PaymentStatusPaid, day).
			Select("COALESCE(SUM(total_amount), 0)").
			Row().Scan(&stat.Revenue)

		stats = append(stats, stat)
	}

	utils.RespondJSON(c, http.StatusOK, "Order stats", stats)
}

// ---- admin account management (super admin only) ----

type AdminCreateRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role"`
}

var validAdminRoles = map[string]bool{
	models.RoleAdmin:      true,
	models.RoleSuperAdmin: true,
	models.RoleManager:    true,
}

func (ac *AdminController) CreateAdminUser(c *gin.Context) {
	var req AdminCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Role == "" {
		req.Role = models.RoleAdmin
	}
	if !validAdminRoles[req.Role] {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown role"))
		return
	}

	var count int64
	ac.DB.Model(&models.AdminUser{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("admin with this email already exists"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	admin := models.AdminUser{
		Email:          req.Email,
		HashedPassword: string(hashed),
		FullName:       req.FullName,
		Role:           req.Role,
		IsActive:       true,
	}

	if err := ac.DB.Create(&admin).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Admin account created: %s (role=%s)", admin.Email, admin.Role)
	utils.RespondJSON(c, http.StatusCreated, "Admin created", admin)
}

func (ac *AdminController) GetAdminUsers(c *gin.Context) {
	skip, limit := paginationParams(c)

	var admins []models.AdminUser
	if err := ac.DB.Offset(skip).Limit(limit).Find(&admins).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Admin accounts", admins)
}

func (ac *AdminController) GetAdminUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("admin_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid admin id"))
		return
	}

	var admin models.AdminUser
	if err := ac.DB.First(&admin, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("admin user not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Admin detail", admin)
}

func (ac *AdminController) UpdateAdminUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("admin_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid admin id"))
		return
	}

	var admin models.AdminUser
	if err := ac.DB.First(&admin, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("admin user not found"))
		return
	}

	var req struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
		FullName *string `json:"full_name"`
		Role     *string `json:"role"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		updates["hashed_password"] = string(hashed)
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Role != nil {
		if !validAdminRoles[*req.Role] {
			utils.RespondError(c, http.StatusBadRequest, errors.New("unknown role"))
			return
		}
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := ac.DB.Model(&admin).Updates(updates).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Admin updated", admin)
}

// DeleteAdminUser removes an admin account. Deleting the acting
// admin's own account is always rejected.
func (ac *AdminController) DeleteAdminUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("admin_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid admin id"))
		return
	}

	current, ok := middlewares.CurrentAdmin(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("admin not found in context"))
		return
	}
	if current.ID == uint(id) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cannot delete your own account"))
		return
	}

	result := ac.DB.Delete(&models.AdminUser{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("admin user not found"))
		return
	}

	utils.InfoLogger.Printf("Admin account %d deleted by %s", id, current.Email)
	utils.RespondJSON(c, http.StatusOK, "Admin deleted", gin.H{"admin_id": id})
}
