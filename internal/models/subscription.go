package models

import "time"

type SubscriptionPlan struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string  `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Price    float64 `json:"price"`
	Interval string  `gorm:"size:20;default:'month'" json:"interval"`
	Active   bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Subscription struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`

	PlanID uint             `json:"plan_id"`
	Plan   SubscriptionPlan `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"plan,omitempty"`

	Status string `gorm:"size:20;default:'ACTIVE'" json:"status"`

	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	CancelAtPeriodEnd  bool      `gorm:"default:false" json:"cancel_at_period_end"`

	// Billing-provider preapproval id. Empty for grants created in-house.
	ExternalRef string `gorm:"size:100" json:"external_ref"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
