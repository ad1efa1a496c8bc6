package models

import "time"

// StudioNote is a studio's private note about a talent profile. Never
// visible to the talent.
type StudioNote struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StudioID  uint `gorm:"index" json:"studio_id"`
	ProfileID uint `gorm:"index" json:"profile_id"`

	Note string `gorm:"size:2000;not null" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
