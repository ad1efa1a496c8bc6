package models

import "time"

type Project struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StudioID uint `gorm:"index" json:"studio_id"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"size:3000" json:"description"`
	Status      string `gorm:"size:20;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Scene struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProjectID uint `gorm:"index" json:"project_id"`

	Title    string `gorm:"size:150;not null" json:"title"`
	Position int    `gorm:"default:0" json:"position"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SceneAssignment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	SceneID   uint `gorm:"index" json:"scene_id"`
	ProfileID uint `gorm:"index" json:"profile_id"`

	RoleName string `gorm:"size:100" json:"role_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
