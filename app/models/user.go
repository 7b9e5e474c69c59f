package models

import "gorm.io/gorm"

// Role values stored on User.Role. Authorization checks go through
// pkg/rbac rather than comparing identities at call sites.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is a storefront customer or back-office admin.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null"             json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null"             json:"-"` // bcrypt hash, never serialised
	Role     string `gorm:"size:50;default:customer"      json:"role"`
}
