package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	"github.com/CastingWorksHQ/casting-api/internal/ownership"
)

type ProfileHandler struct {
	db        *gorm.DB
	ownership *ownership.Resolver
}

func NewProfileHandler(db *gorm.DB, own *ownership.Resolver) *ProfileHandler {
	return &ProfileHandler{db: db, ownership: own}
}

// --------- Requests ---------

type UpdateProfileRequest struct {
	StageName *string `json:"stage_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Location  *string `json:"location,omitempty"`
	Skills    *string `json:"skills,omitempty"`
	Available *bool   `json:"available,omitempty"`
}

// --------- Handlers ---------

func (h *ProfileHandler) GetOwn(c *gin.Context) {
	p := middleware.Principal(c)

	profile, err := h.ownership.ProfileFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if err := h.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(profile, profile.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateOwn(c *gin.Context) {
	p := middleware.Principal(c)

	profile, err := h.ownership.ProfileFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.StageName != nil {
		profile.StageName = *req.StageName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Skills != nil {
		profile.Skills = *req.Skills
	}
	if req.Available != nil {
		profile.Available = *req.Available
	}

	if err := h.db.Save(profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetByID serves studios looking at applicant profiles; access runs
// through the ownership resolver (owner, admin, or converted-actor
// studio).
func (h *ProfileHandler) GetByID(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	profile, err := h.ownership.Profile(c.Request.Context(), p, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
