package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/audit"
	"github.com/CastingWorksHQ/casting-api/internal/httperr"
	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/ownership"
)

type ActorHandler struct {
	db        *gorm.DB
	ownership *ownership.Resolver
	audit     *audit.Dispatcher
}

func NewActorHandler(db *gorm.DB, own *ownership.Resolver, dispatcher *audit.Dispatcher) *ActorHandler {
	return &ActorHandler{db: db, ownership: own, audit: dispatcher}
}

// --------- Requests ---------

type CreateActorRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Email string `json:"email" binding:"omitempty,email"`
	Notes string `json:"notes" binding:"max=1000"`
}

type UpdateActorRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Notes *string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// --------- Handlers ---------

func (h *ActorHandler) List(c *gin.Context) {
	p := middleware.Principal(c)

	studio, err := h.ownership.StudioFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var actors []models.ExternalActor
	if err := h.db.
		Where("studio_id = ?", studio.ID).
		Order("name ASC").
		Find(&actors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_actors"})
		return
	}

	c.JSON(http.StatusOK, actors)
}

func (h *ActorHandler) Create(c *gin.Context) {
	p := middleware.Principal(c)

	studio, err := h.ownership.StudioFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req CreateActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	actor := models.ExternalActor{
		StudioID: studio.ID,
		Name:     req.Name,
		Email:    req.Email,
		Notes:    req.Notes,
	}

	if err := h.db.Create(&actor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_actor"})
		return
	}

	c.JSON(http.StatusCreated, actor)
}

func (h *ActorHandler) Update(c *gin.Context) {
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

	actor, err := h.fetchActor(id, studio.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req UpdateActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		actor.Name = *req.Name
	}
	if req.Email != nil {
		actor.Email = *req.Email
	}
	if req.Notes != nil {
		actor.Notes = *req.Notes
	}

	if err := h.db.Save(actor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_actor"})
		return
	}

	c.JSON(http.StatusOK, actor)
}

func (h *ActorHandler) Delete(c *gin.Context) {
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

	actor, err := h.fetchActor(id, studio.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		// Converted profiles keep living, but drop the back-reference.
		if err := tx.Model(&models.Profile{}).
			Where("source_actor_id = ?", actor.ID).
			Update("source_actor_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ExternalActor{}, actor.ID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_actor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "actor_deleted"})
}

// Convert turns a roster entry into an unclaimed talent profile. Safe to
// call again: a second conversion returns the existing profile.
func (h *ActorHandler) Convert(c *gin.Context) {
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

	actor, err := h.fetchActor(id, studio.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var existing models.Profile
	err = h.db.Where("source_actor_id = ?", actor.ID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_convert_actor"})
		return
	}

	sourceID := actor.ID
	profile := models.Profile{
		StageName:     actor.Name,
		SourceActorID: &sourceID,
	}

	if err := h.db.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_convert_actor"})
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:    audit.ActionActorConvert,
		AdminID:   &p.UserID,
		TargetID:  &profile.ID,
		Details:   gin.H{"actor_id": actor.ID, "studio_id": studio.ID},
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	c.JSON(http.StatusCreated, profile)
}

func (h *ActorHandler) fetchActor(id, studioID uint) (*models.ExternalActor, error) {
	var actor models.ExternalActor
	err := h.db.Where("id = ? AND studio_id = ?", id, studioID).First(&actor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return &actor, nil
}
