package models

import "time"

type ProjectMember struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProjectID uint `gorm:"index:idx_member_project_profile,unique" json:"project_id"`
	ProfileID uint `gorm:"index:idx_member_project_profile,unique" json:"profile_id"`

	RoleName string `gorm:"size:100" json:"role_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
