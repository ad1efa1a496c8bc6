package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	action string,
	adminID *uint,
	targetID *uint,
	details any,
	ipAddress string,
	userAgent string,
) error {

	var detailsJSON string
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			detailsJSON = string(b)
		}
	}

	entry := models.AuditLog{
		Action:    action,
		AdminID:   adminID,
		TargetID:  targetID,
		Details:   detailsJSON,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	return l.db.Create(&entry).Error
}
