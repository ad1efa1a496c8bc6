package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/config"
	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/session"
	"github.com/CastingWorksHQ/casting-api/internal/validators"
)

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	sessions *session.Resolver
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, sessions *session.Resolver) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, sessions: sessions}
}

// --------- Requests ---------

type RegisterRequest struct {
	AccountType string `json:"account_type" binding:"required,oneof=talent studio"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`

	// Talent fields
	StageName string `json:"stage_name"`
	Location  string `json:"location"`

	// Studio fields
	StudioName   string `json:"studio_name"`
	ContactEmail string `json:"contact_email"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email_domain"})
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_registered"})
		return
	}

	tenantType := models.TenantTypeTalent
	tenantName := req.StageName
	if req.AccountType == "studio" {
		tenantType = models.TenantTypeStudio
		tenantName = req.StudioName
	}
	if tenantName == "" {
		tenantName = req.Name
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	tenant := models.Tenant{
		TenantType: tenantType,
		Name:       tenantName,
	}
	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}

	// A failure at any step rolls the whole account back so a lost race
	// on the email index leaves no orphan tenant behind.
	failCode := "failed_to_register"
	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			failCode = "failed_to_create_tenant"
			return err
		}

		switch tenantType {
		case models.TenantTypeTalent:
			profile := models.Profile{
				TenantID:  &tenant.ID,
				StageName: tenantName,
				Location:  req.Location,
				Available: true,
			}
			if err := tx.Create(&profile).Error; err != nil {
				failCode = "failed_to_create_profile"
				return err
			}

		case models.TenantTypeStudio:
			studio := models.Studio{
				TenantID:     tenant.ID,
				Name:         tenantName,
				ContactEmail: req.ContactEmail,
			}
			if err := tx.Create(&studio).Error; err != nil {
				failCode = "failed_to_create_studio"
				return err
			}
		}

		user.TenantID = &tenant.ID
		if err := tx.Create(&user).Error; err != nil {
			failCode = "failed_to_create_user"
			return err
		}
		return nil
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": failCode})
		return
	}

	token, _, err := session.IssueToken(h.config.JWTSecret, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	h.setAuthCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"role":      user.Role,
			"tenant_id": user.TenantID,
		},
		"tenant": gin.H{
			"id":          tenant.ID,
			"tenant_type": tenant.TenantType,
			"name":        tenant.Name,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Preload("Tenant").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	// Externally-authenticated accounts carry no local hash and cannot
	// log in with a password.
	if user.PasswordHash == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, _, err := session.IssueToken(h.config.JWTSecret, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	h.setAuthCookie(c, token)

	resp := gin.H{
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"role":      user.Role,
			"tenant_id": user.TenantID,
		},
		"token": token,
	}
	if user.Tenant != nil {
		resp["tenant"] = gin.H{
			"id":          user.Tenant.ID,
			"tenant_type": user.Tenant.TenantType,
			"name":        user.Tenant.Name,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Logout revokes the presenting token and clears the auth cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	p := middleware.Principal(c)

	if err := h.sessions.SignOut(c.Request.Context(), p); err != nil {
		// Best effort; the cookie still gets cleared.
		c.Header("X-Signout-Degraded", "true")
	}

	clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "signed_out"})
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	c.SetCookie(
		middleware.AuthCookieName,
		token,
		int(session.TokenTTL.Seconds()),
		"/",
		"",
		h.config.IsProduction(),
		true,
	)
}

// clearAuthCookie expires the auth cookie in the past.
func clearAuthCookie(c *gin.Context) {
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
}
