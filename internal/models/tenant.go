package models

import "time"

type TenantType string

const (
	TenantTypeTalent TenantType = "TALENT"
	TenantTypeStudio TenantType = "STUDIO"
)

// Tenant is the namespace a user operates under. Its type decides which
// child record may exist for it: a TALENT tenant owns at most one Profile,
// a STUDIO tenant owns at most one Studio.
type Tenant struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TenantType TenantType `gorm:"size:20;not null" json:"tenant_type"`
	Name       string     `gorm:"size:100;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
