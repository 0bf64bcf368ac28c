package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationProfileCompleted  NotificationType = "profile_completed"
	NotificationApplicationUpdate NotificationType = "application_update"
	NotificationNewApplication    NotificationType = "new_application"
	NotificationNewJob            NotificationType = "new_job"
	NotificationWaitlistInvite    NotificationType = "waitlist_invite"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

type Notification struct {
	ID     string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID string           `json:"user_id" gorm:"not null;size:255;index"`
	Type   NotificationType `json:"type" gorm:"not null;size:50;index"`

	Title   string         `json:"title" gorm:"not null;size:200"`
	Message string         `json:"message" gorm:"not null;type:text"`
	Data    datatypes.JSON `json:"data" gorm:"type:jsonb;default:'{}'"`
	Read    bool           `json:"read" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Notification) TableName() string {
	return "notifications"
}
