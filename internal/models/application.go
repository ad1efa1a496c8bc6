package models

import "time"

type Application struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CastingCallID uint        `gorm:"index:idx_application_call_profile,unique" json:"casting_call_id"`
	CastingCall   CastingCall `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"casting_call,omitempty"`

	ProfileID uint    `gorm:"index:idx_application_call_profile,unique" json:"profile_id"`
	Profile   Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"profile,omitempty"`

	Status  string `gorm:"size:20;default:'PENDING'" json:"status"`
	Message string `gorm:"size:2000" json:"message"`

	DecidedAt *time.Time `json:"decided_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
