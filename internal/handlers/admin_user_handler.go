package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/audit"
	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	ucaccount "github.com/CastingWorksHQ/casting-api/internal/usecase/account"
	ucsubscription "github.com/CastingWorksHQ/casting-api/internal/usecase/subscription"
)

// AdminUserHandler is the admin surface over user accounts: listing,
// role changes, deletion, and subscription grants.
type AdminUserHandler struct {
	db            *gorm.DB
	deleteAccount *ucaccount.DeleteAccount
	grantLifetime *ucsubscription.GrantLifetime
	audit         *audit.Dispatcher
}

func NewAdminUserHandler(
	db *gorm.DB,
	deleteAccount *ucaccount.DeleteAccount,
	grantLifetime *ucsubscription.GrantLifetime,
	dispatcher *audit.Dispatcher,
) *AdminUserHandler {
	return &AdminUserHandler{
		db:            db,
		deleteAccount: deleteAccount,
		grantLifetime: grantLifetime,
		audit:         dispatcher,
	}
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=USER ADMIN SUPER_ADMIN"`
}

func (h *AdminUserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	query := h.db.Model(&models.User{})
	if email := c.Query("email"); email != "" {
		query = query.Where("email LIKE ?", "%"+email+"%")
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_users"})
		return
	}

	var users []models.User
	if err := query.
		Preload("Tenant").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      users,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *AdminUserHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var user models.User
	err := h.db.Preload("Tenant").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_load_user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AdminUserHandler) UpdateRole(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// Only a super admin can mint or demote other admins.
	if p.Role != models.RoleSuperAdmin &&
		(req.Role != string(models.RoleUser) || id == p.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient_role"})
		return
	}

	var user models.User
	err := h.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_load_user"})
		return
	}

	// The same rule covers the target side: taking a role away from an
	// admin is a super admin operation too.
	if p.Role != models.RoleSuperAdmin && user.Role != models.RoleUser {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient_role"})
		return
	}

	previous := user.Role
	user.Role = models.Role(req.Role)
	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_user"})
		return
	}

	adminID := p.UserID
	h.audit.Dispatch(audit.Event{
		Action:    audit.ActionRoleChange,
		AdminID:   &adminID,
		TargetID:  &user.ID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Details: gin.H{
			"from": previous,
			"to":   user.Role,
		},
	})

	c.JSON(http.StatusOK, user)
}

func (h *AdminUserHandler) Delete(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := h.deleteAccount.Execute(c.Request.Context(), p, id, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account_deleted"})
}

func (h *AdminUserHandler) GrantLifetime(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	sub, err := h.grantLifetime.Execute(c.Request.Context(), p, id, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *AdminUserHandler) ListSubscriptions(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var subs []models.Subscription
	if err := h.db.
		Preload("Plan").
		Where("user_id = ?", id).
		Order("created_at DESC").
		Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subs)
}
