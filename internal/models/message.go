package models

import "time"

type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SenderUserID    uint `gorm:"index" json:"sender_user_id"`
	RecipientUserID uint `gorm:"index" json:"recipient_user_id"`

	Body   string     `gorm:"size:3000;not null" json:"body"`
	ReadAt *time.Time `json:"read_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
