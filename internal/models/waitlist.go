package models

import "time"

// WaitlistEntry is a pre-launch signup. Email is the natural key.
type WaitlistEntry struct {
	ID    string   `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role  UserRole `json:"role" gorm:"type:varchar(20);default:student;index"`

	FullName    *string `json:"full_name" gorm:"size:100"`
	Course      *string `json:"course" gorm:"size:150"`
	CompanyName *string `json:"company_name" gorm:"size:150"`

	CreatedAt   time.Time  `json:"created_at"`
	InvitedAt   *time.Time `json:"invited_at" gorm:"index"`
	ConvertedAt *time.Time `json:"converted_at"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}
