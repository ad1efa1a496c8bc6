package models

import "time"

type CastingCall struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StudioID uint `gorm:"index" json:"studio_id"`

	// Optional link: approved applicants can be added to this project.
	ProjectID *uint `json:"project_id"`

	Title       string     `gorm:"size:150;not null" json:"title"`
	Description string     `gorm:"size:3000" json:"description"`
	RoleName    string     `gorm:"size:100" json:"role_name"`
	Location    string     `gorm:"size:100" json:"location"`
	Status      string     `gorm:"size:20;default:'open'" json:"status"`
	Deadline    *time.Time `json:"deadline"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
