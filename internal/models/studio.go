package models

import "time"

type Studio struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"uniqueIndex" json:"tenant_id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Description  string `gorm:"size:2000" json:"description"`
	ContactEmail string `gorm:"size:100" json:"contact_email"`
	ContactPhone string `gorm:"size:20" json:"contact_phone"`
	Website      string `gorm:"size:255" json:"website"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
