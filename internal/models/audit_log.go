package models

import "time"

// AuditLog is append-only; rows are never updated or deleted by the
// application.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Action string `gorm:"size:50;not null" json:"action"`

	AdminID  *uint `json:"admin_id"`
	TargetID *uint `json:"target_id"`

	Details   string `gorm:"type:text" json:"details"`
	IPAddress string `gorm:"size:45" json:"ip_address"`
	UserAgent string `gorm:"size:255" json:"user_agent"`

	CreatedAt time.Time `json:"created_at"`
}
