package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	"github.com/CastingWorksHQ/casting-api/internal/ownership"
)

type StudioHandler struct {
	db        *gorm.DB
	ownership *ownership.Resolver
}

func NewStudioHandler(db *gorm.DB, own *ownership.Resolver) *StudioHandler {
	return &StudioHandler{db: db, ownership: own}
}

type UpdateStudioRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Website      *string `json:"website,omitempty"`
}

func (h *StudioHandler) GetOwn(c *gin.Context) {
	p := middleware.Principal(c)

	studio, err := h.ownership.StudioFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, studio)
}

func (h *StudioHandler) UpdateOwn(c *gin.Context) {
	p := middleware.Principal(c)

	studio, err := h.ownership.StudioFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req UpdateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		studio.Name = *req.Name
	}
	if req.Description != nil {
		studio.Description = *req.Description
	}
	if req.ContactEmail != nil {
		studio.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		studio.ContactPhone = *req.ContactPhone
	}
	if req.Website != nil {
		studio.Website = *req.Website
	}

	if err := h.db.Save(studio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_studio"})
		return
	}

	c.JSON(http.StatusOK, studio)
}
