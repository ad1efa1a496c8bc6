package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/audit"
	"github.com/CastingWorksHQ/casting-api/internal/httpresp"
	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	"github.com/CastingWorksHQ/casting-api/internal/models"
)

type AdminDiscountHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminDiscountHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *AdminDiscountHandler {
	return &AdminDiscountHandler{db: db, audit: dispatcher}
}

type CreateDiscountRequest struct {
	Code           string     `json:"code" binding:"required,min=3,max=50"`
	PercentOff     int        `json:"percent_off" binding:"required,min=1,max=100"`
	MaxRedemptions int        `json:"max_redemptions" binding:"min=0"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

type UpdateDiscountRequest struct {
	PercentOff     *int       `json:"percent_off,omitempty" binding:"omitempty,min=1,max=100"`
	MaxRedemptions *int       `json:"max_redemptions,omitempty" binding:"omitempty,min=0"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	Active         *bool      `json:"active,omitempty"`
}

func (h *AdminDiscountHandler) List(c *gin.Context) {
	var codes []models.DiscountCode
	if err := h.db.Order("created_at DESC").Find(&codes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_discounts"})
		return
	}

	httpresp.List(c, codes)
}

func (h *AdminDiscountHandler) Create(c *gin.Context) {
	p := middleware.Principal(c)

	var req CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var existing int64
	h.db.Model(&models.DiscountCode{}).Where("code = ?", req.Code).Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code_already_exists"})
		return
	}

	code := models.DiscountCode{
		Code:           req.Code,
		PercentOff:     req.PercentOff,
		MaxRedemptions: req.MaxRedemptions,
		ExpiresAt:      req.ExpiresAt,
		Active:         true,
	}

	if err := h.db.Create(&code).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_discount"})
		return
	}

	adminID := p.UserID
	h.audit.Dispatch(audit.Event{
		Action:    audit.ActionDiscountCreate,
		AdminID:   &adminID,
		TargetID:  &code.ID,
		Details:   gin.H{"code": code.Code, "percent_off": code.PercentOff},
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	c.JSON(http.StatusCreated, code)
}

func (h *AdminDiscountHandler) Update(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var code models.DiscountCode
	err := h.db.First(&code, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "discount_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_load_discount"})
		return
	}

	var req UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.PercentOff != nil {
		code.PercentOff = *req.PercentOff
	}
	if req.MaxRedemptions != nil {
		code.MaxRedemptions = *req.MaxRedemptions
	}
	if req.ExpiresAt != nil {
		code.ExpiresAt = req.ExpiresAt
	}
	if req.Active != nil {
		code.Active = *req.Active
	}

	if err := h.db.Save(&code).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_discount"})
		return
	}

	adminID := p.UserID
	h.audit.Dispatch(audit.Event{
		Action:    audit.ActionDiscountUpdate,
		AdminID:   &adminID,
		TargetID:  &code.ID,
		Details:   gin.H{"code": code.Code},
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, code)
}

func (h *AdminDiscountHandler) Delete(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var code models.DiscountCode
	err := h.db.First(&code, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "discount_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_load_discount"})
		return
	}

	if err := h.db.Delete(&code).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_discount"})
		return
	}

	adminID := p.UserID
	h.audit.Dispatch(audit.Event{
		Action:    audit.ActionDiscountDelete,
		AdminID:   &adminID,
		TargetID:  &code.ID,
		Details:   gin.H{"code": code.Code},
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "discount_deleted"})
}
