package models

import "time"

// ProfileImage holds image metadata only; upload and storage of the binary
// happen outside this service.
type ProfileImage struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProfileID uint `gorm:"index" json:"profile_id"`

	URL       string `gorm:"size:500;not null" json:"url"`
	Position  int    `gorm:"default:0" json:"position"`
	IsPrimary bool   `gorm:"default:false" json:"is_primary"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
