package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StudentProfile is the student variant of the onboarding payload.
// One per account, enforced by the unique index on UserID.
type StudentProfile struct {
	ID     string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID string `json:"user_id" gorm:"uniqueIndex;not null;size:255"`

	FullName    string  `json:"full_name" gorm:"not null;size:100"`
	Course      string  `json:"course" gorm:"not null;size:150;index"`
	University  *string `json:"university" gorm:"size:150"`
	YearOfStudy string  `json:"year_of_study" gorm:"not null;size:20;index"`

	Skills    datatypes.JSON `json:"skills" gorm:"type:jsonb;default:'[]'"`
	Interests datatypes.JSON `json:"interests" gorm:"type:jsonb;default:'[]'"`

	LinkedinURL  *string `json:"linkedin_url" gorm:"size:500"`
	CVURL        *string `json:"cv_url" gorm:"size:500"`
	Bio          *string `json:"bio" gorm:"type:text"`
	Phone        *string `json:"phone" gorm:"size:30"`
	Location     *string `json:"location" gorm:"size:150"`
	PortfolioURL *string `json:"portfolio_url" gorm:"size:500"`
	GithubURL    *string `json:"github_url" gorm:"size:500"`

	ProfileCompleted bool `json:"profile_completed" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}
