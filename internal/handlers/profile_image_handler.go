package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/httperr"
	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/ownership"
)

// ProfileImageHandler manages image metadata rows only; binaries live
// elsewhere.
type ProfileImageHandler struct {
	db        *gorm.DB
	ownership *ownership.Resolver
}

func NewProfileImageHandler(db *gorm.DB, own *ownership.Resolver) *ProfileImageHandler {
	return &ProfileImageHandler{db: db, ownership: own}
}

type AddProfileImageRequest struct {
	URL       string `json:"url" binding:"required,url"`
	Position  int    `json:"position"`
	IsPrimary bool   `json:"is_primary"`
}

type UpdateProfileImageRequest struct {
	Position  *int  `json:"position,omitempty"`
	IsPrimary *bool `json:"is_primary,omitempty"`
}

func (h *ProfileImageHandler) Add(c *gin.Context) {
	p := middleware.Principal(c)

	profile, err := h.ownership.ProfileFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req AddProfileImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	image := models.ProfileImage{
		ProfileID: profile.ID,
		URL:       req.URL,
		Position:  req.Position,
		IsPrimary: req.IsPrimary,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if req.IsPrimary {
			if err := h.demoteCurrentPrimary(tx, profile.ID); err != nil {
				return err
			}
		}
		return tx.Create(&image).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_add_image"})
		return
	}

	c.JSON(http.StatusCreated, image)
}

func (h *ProfileImageHandler) Update(c *gin.Context) {
	p := middleware.Principal(c)

	profile, err := h.ownership.ProfileFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var image models.ProfileImage
	if err := h.db.
		Where("id = ? AND profile_id = ?", id, profile.ID).
		First(&image).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "image_not_found", "Image not found.")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_image"})
		return
	}

	var req UpdateProfileImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Position != nil {
		image.Position = *req.Position
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if req.IsPrimary != nil && *req.IsPrimary && !image.IsPrimary {
			if err := h.demoteCurrentPrimary(tx, profile.ID); err != nil {
				return err
			}
			image.IsPrimary = true
		}
		if req.IsPrimary != nil && !*req.IsPrimary {
			image.IsPrimary = false
		}
		return tx.Save(&image).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_image"})
		return
	}

	c.JSON(http.StatusOK, image)
}

func (h *ProfileImageHandler) Delete(c *gin.Context) {
	p := middleware.Principal(c)

	profile, err := h.ownership.ProfileFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	result := h.db.
		Where("id = ? AND profile_id = ?", id, profile.ID).
		Delete(&models.ProfileImage{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_image"})
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "image_not_found", "Image not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// At most one primary image per profile.
func (h *ProfileImageHandler) demoteCurrentPrimary(tx *gorm.DB, profileID uint) error {
	return tx.Model(&models.ProfileImage{}).
		Where("profile_id = ? AND is_primary = ?", profileID, true).
		Update("is_primary", false).Error
}
