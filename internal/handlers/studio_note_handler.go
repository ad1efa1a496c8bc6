package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/httperr"
	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/ownership"
)

// StudioNoteHandler manages a studio's private notes on talent profiles.
type StudioNoteHandler struct {
	db        *gorm.DB
	ownership *ownership.Resolver
}

func NewStudioNoteHandler(db *gorm.DB, own *ownership.Resolver) *StudioNoteHandler {
	return &StudioNoteHandler{db: db, ownership: own}
}

type CreateStudioNoteRequest struct {
	ProfileID uint   `json:"profile_id" binding:"required"`
	Note      string `json:"note" binding:"required,min=1,max=2000"`
}

type UpdateStudioNoteRequest struct {
	Note string `json:"note" binding:"required,min=1,max=2000"`
}

func (h *StudioNoteHandler) List(c *gin.Context) {
	p := middleware.Principal(c)

	studio, err := h.ownership.StudioFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	query := h.db.Where("studio_id = ?", studio.ID)
	if profileID := c.Query("profile_id"); profileID != "" {
		query = query.Where("profile_id = ?", profileID)
	}

	var notes []models.StudioNote
	if err := query.Order("updated_at DESC").Find(&notes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_notes"})
		return
	}

	c.JSON(http.StatusOK, notes)
}

func (h *StudioNoteHandler) Create(c *gin.Context) {
	p := middleware.Principal(c)

	studio, err := h.ownership.StudioFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req CreateStudioNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var profileCount int64
	h.db.Model(&models.Profile{}).Where("id = ?", req.ProfileID).Count(&profileCount)
	if profileCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile_not_found"})
		return
	}

	note := models.StudioNote{
		StudioID:  studio.ID,
		ProfileID: req.ProfileID,
		Note:      req.Note,
	}

	if err := h.db.Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_note"})
		return
	}

	c.JSON(http.StatusCreated, note)
}

func (h *StudioNoteHandler) Update(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	studio, err := h.ownership.StudioFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	note, err := h.fetchNote(id, studio.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req UpdateStudioNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	note.Note = req.Note
	if err := h.db.Save(note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_note"})
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *StudioNoteHandler) Delete(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	studio, err := h.ownership.StudioFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if _, err := h.fetchNote(id, studio.ID); err != nil {
		writeDomainError(c, err)
		return
	}

	if err := h.db.Delete(&models.StudioNote{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "note_deleted"})
}

func (h *StudioNoteHandler) fetchNote(id, studioID uint) (*models.StudioNote, error) {
	var note models.StudioNote
	err := h.db.Where("id = ? AND studio_id = ?", id, studioID).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}
