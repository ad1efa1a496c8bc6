package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	"github.com/CastingWorksHQ/casting-api/internal/models"
)

// MessageHandler covers direct messaging between users. Threads are the
// pair (me, other); there is no separate conversation table.
type MessageHandler struct {
	db *gorm.DB
}

func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{db: db}
}

type SendMessageRequest struct {
	RecipientUserID uint   `json:"recipient_user_id" binding:"required"`
	Body            string `json:"body" binding:"required,min=1,max=3000"`
}

func (h *MessageHandler) Send(c *gin.Context) {
	p := middleware.Principal(c)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.RecipientUserID == p.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot_message_self"})
		return
	}

	var recipientCount int64
	h.db.Model(&models.User{}).Where("id = ?", req.RecipientUserID).Count(&recipientCount)
	if recipientCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipient_not_found"})
		return
	}

	msg := models.Message{
		SenderUserID:    p.UserID,
		RecipientUserID: req.RecipientUserID,
		Body:            req.Body,
	}

	if err := h.db.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_send_message"})
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// ListThreads returns the most recent message per counterpart.
func (h *MessageHandler) ListThreads(c *gin.Context) {
	p := middleware.Principal(c)

	var msgs []models.Message
	if err := h.db.
		Where("sender_user_id = ? OR recipient_user_id = ?", p.UserID, p.UserID).
		Order("created_at DESC").
		Limit(500).
		Find(&msgs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_messages"})
		return
	}

	seen := make(map[uint]bool)
	threads := make([]models.Message, 0, len(msgs))
	for _, m := range msgs {
		other := m.SenderUserID
		if other == p.UserID {
			other = m.RecipientUserID
		}
		if seen[other] {
			continue
		}
		seen[other] = true
		threads = append(threads, m)
	}

	c.JSON(http.StatusOK, threads)
}

// Thread returns the full history with one counterpart and marks their
// messages read.
func (h *MessageHandler) Thread(c *gin.Context) {
	p := middleware.Principal(c)

	otherID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	var msgs []models.Message
	if err := h.db.
		Where("(sender_user_id = ? AND recipient_user_id = ?) OR (sender_user_id = ? AND recipient_user_id = ?)",
			p.UserID, otherID, otherID, p.UserID).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_messages"})
		return
	}

	now := time.Now()
	h.db.Model(&models.Message{}).
		Where("sender_user_id = ? AND recipient_user_id = ? AND read_at IS NULL", otherID, p.UserID).
		Update("read_at", now)

	c.JSON(http.StatusOK, msgs)
}
