package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobType string

const (
	JobInternship JobType = "internship"
	JobPartTime   JobType = "part-time"
	JobFullTime   JobType = "full-time"
)

type Job struct {
	ID        string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CompanyID string `json:"company_id" gorm:"not null;type:uuid;index"`

	Title        string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description  string  `json:"description" gorm:"not null;type:text"`
	Requirements *string `json:"requirements" gorm:"type:text"`
	Location     string  `json:"location" gorm:"not null;size:150;index"`
	Type         JobType `json:"type" gorm:"not null;type:varchar(20);index"`

	SalaryMin *int   `json:"salary_min"`
	SalaryMax *int   `json:"salary_max"`
	Currency  string `json:"currency" gorm:"size:10;default:KES"`

	Tags   datatypes.JSON `json:"tags" gorm:"type:jsonb;default:'[]'"`
	Skills datatypes.JSON `json:"skills" gorm:"type:jsonb;default:'[]'"`

	Deadline       *time.Time `json:"deadline" gorm:"index"`
	IsActive       bool       `json:"is_active" gorm:"default:true;index"`
	Featured       bool       `json:"featured" gorm:"default:false;index"`
	Remote         bool       `json:"remote" gorm:"default:false"`
	ApplicationURL *string    `json:"application_url" gorm:"size:500"`

	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Company      CompanyProfile `json:"company" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Applications []Application  `json:"-" gorm:"foreignKey:JobID"`

	// Computed, not stored
	ApplicationCount int `json:"application_count" gorm:"-"`
}

func (Job) TableName() string {
	return "jobs"
}
