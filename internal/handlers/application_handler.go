package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domainapp "github.com/CastingWorksHQ/casting-api/internal/domain/application"
	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/ownership"
	ucapplication "github.com/CastingWorksHQ/casting-api/internal/usecase/application"
)

type ApplicationHandler struct {
	db        *gorm.DB
	ownership *ownership.Resolver
	updateUC  *ucapplication.UpdateApplication
}

func NewApplicationHandler(
	db *gorm.DB,
	own *ownership.Resolver,
	updateUC *ucapplication.UpdateApplication,
) *ApplicationHandler {
	return &ApplicationHandler{
		db:        db,
		ownership: own,
		updateUC:  updateUC,
	}
}

// --------- Requests ---------

type ApplyRequest struct {
	CastingCallID uint   `json:"casting_call_id" binding:"required"`
	Message       string `json:"message"`
}

type DecideApplicationRequest struct {
	Status       string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	AddToProject bool   `json:"add_to_project"`
	ProjectRole  string `json:"project_role"`
}

// --------- Talent side ---------

func (h *ApplicationHandler) Apply(c *gin.Context) {
	p := middleware.Principal(c)

	profile, err := h.ownership.ProfileFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var call models.CastingCall
	if err := h.db.First(&call, req.CastingCallID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "casting_call_not_found"})
		return
	}
	if call.Status != "open" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "casting_call_closed"})
		return
	}

	var existing int64
	h.db.Model(&models.Application{}).
		Where("casting_call_id = ? AND profile_id = ?", call.ID, profile.ID).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "already_applied"})
		return
	}

	app := models.Application{
		CastingCallID: call.ID,
		ProfileID:     profile.ID,
		Status:        string(domainapp.StatusPending),
		Message:       req.Message,
	}

	if err := h.db.Create(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_apply"})
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) ListOwn(c *gin.Context) {
	p := middleware.Principal(c)

	profile, err := h.ownership.ProfileFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var apps []models.Application
	if err := h.db.
		Preload("CastingCall").
		Where("profile_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_applications"})
		return
	}

	c.JSON(http.StatusOK, apps)
}

// --------- Studio side ---------

func (h *ApplicationHandler) ListForStudio(c *gin.Context) {
	p := middleware.Principal(c)

	studio, err := h.ownership.StudioFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	q := h.db.
		Preload("CastingCall").
		Preload("Profile").
		Joins("JOIN casting_calls ON casting_calls.id = applications.casting_call_id").
		Where("casting_calls.studio_id = ?", studio.ID)

	if status := c.Query("status"); status != "" {
		q = q.Where("applications.status = ?", status)
	}
	if callID := c.Query("casting_call_id"); callID != "" {
		q = q.Where("applications.casting_call_id = ?", callID)
	}

	var apps []models.Application
	if err := q.Order("applications.created_at DESC").Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_applications"})
		return
	}

	c.JSON(http.StatusOK, apps)
}

// Decide approves or rejects a pending application. Ownership runs
// through the studio of the owning casting call; no row is touched on a
// mismatch.
func (h *ApplicationHandler) Decide(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	// Admins act on behalf of the owning studio.
	var studioID uint
	if p.IsAdmin() {
		app, err := h.ownership.Application(c.Request.Context(), p, id)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		studioID = app.CastingCall.StudioID
	} else {
		studio, err := h.ownership.StudioFor(c.Request.Context(), p)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		studioID = studio.ID
	}

	var req DecideApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	app, err := h.updateUC.Execute(
		c.Request.Context(),
		studioID,
		p.UserID,
		id,
		ucapplication.UpdateApplicationInput{
			Status:       domainapp.Status(req.Status),
			AddToProject: req.AddToProject,
			ProjectRole:  req.ProjectRole,
		},
		c.ClientIP(),
		c.Request.UserAgent(),
	)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
