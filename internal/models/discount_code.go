package models

import "time"

type DiscountCode struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code       string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	PercentOff int    `json:"percent_off"`

	MaxRedemptions int `gorm:"default:0" json:"max_redemptions"`
	Redeemed       int `gorm:"default:0" json:"redeemed"`

	ExpiresAt *time.Time `json:"expires_at"`
	Active    bool       `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
