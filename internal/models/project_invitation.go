package models

import "time"

type ProjectInvitation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProjectID uint    `gorm:"index" json:"project_id"`
	Project   Project `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"project,omitempty"`

	ProfileID uint `gorm:"index" json:"profile_id"`

	RoleName string `gorm:"size:100" json:"role_name"`
	Status   string `gorm:"size:20;default:'PENDING'" json:"status"`

	ExpiresAt   *time.Time `json:"expires_at"`
	RespondedAt *time.Time `json:"responded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
