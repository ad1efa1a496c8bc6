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

type ProjectHandler struct {
	db        *gorm.DB
	ownership *ownership.Resolver
}

func NewProjectHandler(db *gorm.DB, own *ownership.Resolver) *ProjectHandler {
	return &ProjectHandler{db: db, ownership: own}
}

// --------- Requests ---------

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type CreateSceneRequest struct {
	Title    string `json:"title" binding:"required"`
	Position int    `json:"position"`
}

type AssignSceneRequest struct {
	ProfileID uint   `json:"profile_id" binding:"required"`
	RoleName  string `json:"role_name"`
}

// --------- Projects ---------

func (h *ProjectHandler) List(c *gin.Context) {
	p := middleware.Principal(c)

	studio, err := h.ownership.StudioFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var projects []models.Project
	if err := h.db.
		Where("studio_id = ?", studio.ID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_projects"})
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	p := middleware.Principal(c)

	studio, err := h.ownership.StudioFor(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	project := models.Project{
		StudioID:    studio.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      "active",
	}

	if err := h.db.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_project"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := h.ownership.Project(c.Request.Context(), p, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := h.ownership.Project(c.Request.Context(), p, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}

	if err := h.db.Save(project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// --------- Members ---------

func (h *ProjectHandler) ListMembers(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := h.ownership.Project(c.Request.Context(), p, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var members []models.ProjectMember
	if err := h.db.
		Where("project_id = ?", project.ID).
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	memberID, ok := paramID(c, "memberId")
	if !ok {
		return
	}

	project, err := h.ownership.Project(c.Request.Context(), p, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	result := h.db.
		Where("id = ? AND project_id = ?", memberID, project.ID).
		Delete(&models.ProjectMember{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_remove_member"})
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "member_not_found", "Project member not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// --------- Scenes ---------

func (h *ProjectHandler) ListScenes(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := h.ownership.Project(c.Request.Context(), p, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var scenes []models.Scene
	if err := h.db.
		Where("project_id = ?", project.ID).
		Order("position ASC").
		Find(&scenes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_scenes"})
		return
	}

	c.JSON(http.StatusOK, scenes)
}

func (h *ProjectHandler) CreateScene(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := h.ownership.Project(c.Request.Context(), p, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var req CreateSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	scene := models.Scene{
		ProjectID: project.ID,
		Title:     req.Title,
		Position:  req.Position,
	}

	if err := h.db.Create(&scene).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_scene"})
		return
	}

	c.JSON(http.StatusCreated, scene)
}

// AssignScene casts a project member into a scene. Only current members
// may be assigned.
func (h *ProjectHandler) AssignScene(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	sceneID, ok := paramID(c, "sceneId")
	if !ok {
		return
	}

	project, err := h.ownership.Project(c.Request.Context(), p, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	var scene models.Scene
	if err := h.db.
		Where("id = ? AND project_id = ?", sceneID, project.ID).
		First(&scene).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "scene_not_found", "Scene not found.")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_scene"})
		return
	}

	var req AssignSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var memberCount int64
	h.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND profile_id = ?", project.ID, req.ProfileID).
		Count(&memberCount)
	if memberCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profile_not_a_member"})
		return
	}

	assignment := models.SceneAssignment{
		SceneID:   scene.ID,
		ProfileID: req.ProfileID,
		RoleName:  req.RoleName,
	}

	if err := h.db.Create(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_assign_scene"})
		return
	}

	c.JSON(http.StatusCreated, assignment)
}
