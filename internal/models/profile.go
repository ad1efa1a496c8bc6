package models

import "time"

type Profile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Nil for roster conversions that were never claimed by a user.
	TenantID *uint `gorm:"index" json:"tenant_id"`

	// Set when this profile was created by converting a studio's
	// external-actor record. Grants that studio read access.
	SourceActorID *uint `gorm:"index" json:"source_actor_id"`

	StageName string `gorm:"size:100;not null" json:"stage_name"`
	Bio       string `gorm:"size:2000" json:"bio"`
	Location  string `gorm:"size:100" json:"location"`
	Skills    string `gorm:"size:500" json:"skills"`
	Available bool   `gorm:"default:true" json:"available"`

	Images []ProfileImage `gorm:"constraint:OnDelete:CASCADE;" json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
