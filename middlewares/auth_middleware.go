package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brewhaven/coffee-shop-api/models"
	"github.com/brewhaven/coffee-shop-api/utils"
)

// Context keys set by AdminAuth.
const (
	ContextAdminKey = "admin"
	ContextRoleKey  = "role"
)

// AdminAuth validates the bearer token and loads the named admin
// account. Missing/invalid/expired token is 401; a valid token naming a
// disabled account is 403.
func AdminAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid authorization header format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		var admin models.AdminUser
		if err := db.Where("email = ?", claims.Email).First(&admin).Error; err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("admin account not found"))
			c.Abort()
			return
		}

		if !admin.IsActive {
			utils.RespondError(c, http.StatusForbidden, errors.New("admin account is disabled"))
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, admin)
		c.Set(ContextRoleKey, admin.Role)
		c.Next()
	}
}

// SuperAdminOnly gates admin-account management. Runs after AdminAuth.
func SuperAdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRoleKey)
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("no role found"))
			c.Abort()
			return
		}

		if role != models.RoleSuperAdmin {
			utils.RespondError(c, http.StatusForbidden, errors.New("super admin access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentAdmin pulls the authenticated admin out of the request
// context.
func CurrentAdmin(c *gin.Context) (models.AdminUser, bool) {
	v, exists := c.Get(ContextAdminKey)
	if !exists {
		return models.AdminUser{}, false
	}
	admin, ok := v.(models.AdminUser)
	return admin, ok
}
