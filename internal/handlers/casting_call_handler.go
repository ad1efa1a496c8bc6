package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/ownership"
)

type CastingCallHandler struct {
	db        *gorm.DB
	ownership *ownership.Resolver
}

func NewCastingCallHandler(db *gorm.DB, own *ownership.Resolver) *CastingCallHandler {
	return &CastingCallHandler{db: db, ownership: own}
}

// --------- Requests ---------

type CreateCastingCallRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	RoleName    string     `json:"role_name"`
	Location    string     `json:"location"`
	ProjectID   *uint      `json:"project_id"`
	Deadline    *time.Time `json:"deadline"`
}

type UpdateCastingCallRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	RoleName    *string    `json:"role_name,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Status      *string    `json:"status,omitempty"`
	ProjectID   *uint      `json:"project_id,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// --------- Handlers ---------

func (h *CastingCallHandler) List(c *gin.Context) {
	p := middleware.Principal(c)

	studio, err := h.ownership.StudioFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	status := strings.ToLower(strings.TrimSpace(c.Query("status")))

	q := h.db.Where("studio_id = ?", studio.ID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var calls []models.CastingCall
	if err := q.Order("created_at DESC").Find(&calls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_casting_calls"})
		return
	}

	c.JSON(http.StatusOK, calls)
}

// BrowseOpen lists open calls across all studios for talent to apply to.
func (h *CastingCallHandler) BrowseOpen(c *gin.Context) {
	location := strings.ToLower(strings.TrimSpace(c.Query("location")))

	q := h.db.Where("status = ?", "open")
	if location != "" {
		q = q.Where("LOWER(location) = ?", location)
	}

	var calls []models.CastingCall
	if err := q.Order("created_at DESC").Limit(100).Find(&calls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_casting_calls"})
		return
	}

	c.JSON(http.StatusOK, calls)
}

func (h *CastingCallHandler) Create(c *gin.Context) {
	p := middleware.Principal(c)

	studio, err := h.ownership.StudioFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req CreateCastingCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.ProjectID != nil {
		if _, err := h.ownership.Project(c.Request.Context(), p, *req.ProjectID); err != nil {
			writeDomainError(c, err)
			return
		}
	}

	call := models.CastingCall{
		StudioID:    studio.ID,
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		RoleName:    req.RoleName,
		Location:    req.Location,
		Status:      "open",
		Deadline:    req.Deadline,
	}

	if err := h.db.Create(&call).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_casting_call"})
		return
	}

	c.JSON(http.StatusCreated, call)
}

func (h *CastingCallHandler) Get(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	call, err := h.ownership.CastingCall(c.Request.Context(), p, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, call)
}

func (h *CastingCallHandler) Update(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	call, err := h.ownership.CastingCall(c.Request.Context(), p, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req UpdateCastingCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Status != nil && *req.Status != "open" && *req.Status != "closed" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
		return
	}

	if req.ProjectID != nil {
		if _, err := h.ownership.Project(c.Request.Context(), p, *req.ProjectID); err != nil {
			writeDomainError(c, err)
			return
		}
		call.ProjectID = req.ProjectID
	}

	if req.Title != nil {
		call.Title = *req.Title
	}
	if req.Description != nil {
		call.Description = *req.Description
	}
	if req.RoleName != nil {
		call.RoleName = *req.RoleName
	}
	if req.Location != nil {
		call.Location = *req.Location
	}
	if req.Status != nil {
		call.Status = *req.Status
	}
	if req.Deadline != nil {
		call.Deadline = req.Deadline
	}

	if err := h.db.Save(call).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_casting_call"})
		return
	}

	c.JSON(http.StatusOK, call)
}

func (h *CastingCallHandler) Delete(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	call, err := h.ownership.CastingCall(c.Request.Context(), p, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	// Applications reference the call; they go first.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("casting_call_id = ?", call.ID).
			Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(call).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_casting_call"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
