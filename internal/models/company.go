package models

import (
	"time"

	"gorm.io/gorm"
)

// CompanyProfile is the company variant of the onboarding payload.
type CompanyProfile struct {
	ID     string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID string `json:"user_id" gorm:"uniqueIndex;not null;size:255"`

	CompanyName string  `json:"company_name" gorm:"not null;size:150"`
	LogoURL     *string `json:"logo_url" gorm:"size:500"`
	Website     *string `json:"website" gorm:"size:500"`
	Industry    string  `json:"industry" gorm:"not null;size:100;index"`
	Description *string `json:"description" gorm:"type:text"`
	Location    *string `json:"location" gorm:"size:150"`

	// Size buckets: "1-10", "11-50", "51-200", "201-500", "500+"
	Size    *string `json:"size" gorm:"size:20"`
	Founded *int    `json:"founded"`

	ContactEmail *string `json:"contact_email" gorm:"size:255"`
	ContactPhone *string `json:"contact_phone" gorm:"size:30"`

	ProfileCompleted bool `json:"profile_completed" gorm:"default:false"`
	Verified         bool `json:"verified" gorm:"default:false;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (CompanyProfile) TableName() string {
	return "company_profiles"
}
