package models

import "time"

// Admin roles. Role is a flat string tag; super_admin additionally
// unlocks the admin-account management endpoints.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
	RoleManager    = "manager"
)

type AdminUser struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	HashedPassword string     `gorm:"type:varchar(255);not null" json:"-"`
	FullName       string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Role           string     `gorm:"type:varchar(32);default:'admin'" json:"role"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
