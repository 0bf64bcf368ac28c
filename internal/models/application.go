package models

import "time"

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationReviewed  ApplicationStatus = "reviewed"
	ApplicationInterview ApplicationStatus = "interview"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
)

// Application links a student to a job posting. The composite unique
// index rejects the second of two concurrent submissions at the storage
// layer.
type Application struct {
	ID        string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	JobID     string `json:"job_id" gorm:"not null;type:uuid;index;uniqueIndex:idx_job_student"`
	StudentID string `json:"student_id" gorm:"not null;type:uuid;index;uniqueIndex:idx_job_student"`

	CoverLetter *string           `json:"cover_letter" gorm:"type:text"`
	CustomCVURL *string           `json:"custom_cv_url" gorm:"size:500"`
	Status      ApplicationStatus `json:"status" gorm:"type:varchar(20);default:pending;index"`
	Notes       *string           `json:"notes" gorm:"type:text"`

	AppliedAt     time.Time  `json:"applied_at" gorm:"autoCreateTime;index"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	InterviewDate *time.Time `json:"interview_date"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Job     Job            `json:"job" gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
	Student StudentProfile `json:"student" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

func (Application) TableName() string {
	return "applications"
}
