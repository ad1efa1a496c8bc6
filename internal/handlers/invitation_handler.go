package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domaininv "github.com/CastingWorksHQ/casting-api/internal/domain/invitation"
	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/ownership"
	ucinvitation "github.com/CastingWorksHQ/casting-api/internal/usecase/invitation"
)

type InvitationHandler struct {
	db        *gorm.DB
	ownership *ownership.Resolver
	respondUC *ucinvitation.RespondInvitation
}

func NewInvitationHandler(
	db *gorm.DB,
	own *ownership.Resolver,
	respondUC *ucinvitation.RespondInvitation,
) *InvitationHandler {
	return &InvitationHandler{
		db:        db,
		ownership: own,
		respondUC: respondUC,
	}
}

// --------- Requests ---------

type CreateInvitationRequest struct {
	ProfileID uint       `json:"profile_id" binding:"required"`
	RoleName  string     `json:"role_name"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type RespondInvitationRequest struct {
	Accept bool `json:"accept"`
}

// --------- Studio side ---------

func (h *InvitationHandler) Create(c *gin.Context) {
	p := middleware.Principal(c)

	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := h.ownership.Project(c.Request.Context(), p, projectID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req CreateInvitationRequest
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

	var pending int64
	h.db.Model(&models.ProjectInvitation{}).
		Where("project_id = ? AND profile_id = ? AND status = ?",
			project.ID, req.ProfileID, string(domaininv.StatusPending)).
		Count(&pending)
	if pending > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invitation_already_pending"})
		return
	}

	inv := models.ProjectInvitation{
		ProjectID: project.ID,
		ProfileID: req.ProfileID,
		RoleName:  req.RoleName,
		Status:    string(domaininv.StatusPending),
		ExpiresAt: req.ExpiresAt,
	}

	if err := h.db.Create(&inv).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_invitation"})
		return
	}

	c.JSON(http.StatusCreated, inv)
}

func (h *InvitationHandler) ListForProject(c *gin.Context) {
	p := middleware.Principal(c)

	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := h.ownership.Project(c.Request.Context(), p, projectID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var invs []models.ProjectInvitation
	if err := h.db.
		Where("project_id = ?", project.ID).
		Order("created_at DESC").
		Find(&invs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_invitations"})
		return
	}

	c.JSON(http.StatusOK, invs)
}

// --------- Talent side ---------

func (h *InvitationHandler) ListOwn(c *gin.Context) {
	p := middleware.Principal(c)

	profile, err := h.ownership.ProfileFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var invs []models.ProjectInvitation
	if err := h.db.
		Preload("Project").
		Where("profile_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&invs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_invitations"})
		return
	}

	// Lapsed pending invitations read as EXPIRED.
	now := time.Now()
	for i := range invs {
		if domaininv.IsExpired(domaininv.Status(invs[i].Status), invs[i].ExpiresAt, now) {
			invs[i].Status = string(domaininv.StatusExpired)
		}
	}

	c.JSON(http.StatusOK, invs)
}

func (h *InvitationHandler) Respond(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	profile, err := h.ownership.ProfileFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req RespondInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	inv, err := h.respondUC.Execute(c.Request.Context(), profile.ID, id, req.Accept)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}
