package models

import "time"

// ExternalActor is a studio roster entry for talent without an account.
// It can be converted into a Profile; the resulting profile keeps a
// source_actor_id back-reference.
type ExternalActor struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StudioID uint `gorm:"index" json:"studio_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100" json:"email"`
	Notes string `gorm:"size:1000" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
