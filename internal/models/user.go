package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleCompany UserRole = "company"
	RoleAdmin   UserRole = "admin"
)

// ValidRole reports whether r is one of the selectable roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleStudent, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// User is the stable authenticated identity record, independent of role.
// The ID is the Casdoor subject; Role stays nil until the user picks one
// during onboarding and is set at most once.
type User struct {
	ID    string    `json:"id" gorm:"primaryKey;size:255"`
	Name  string    `json:"name" gorm:"size:100"`
	Email string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role  *UserRole `json:"role" gorm:"type:varchar(20);index"`

	AvatarURL     *string `json:"avatar_url" gorm:"size:500"`
	EmailVerified bool    `json:"email_verified" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// HasRole reports whether the account has completed role selection.
func (u *User) HasRole() bool {
	return u != nil && u.Role != nil && *u.Role != ""
}
