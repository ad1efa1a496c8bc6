package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/audit"
	"github.com/CastingWorksHQ/casting-api/internal/billing"
	"github.com/CastingWorksHQ/casting-api/internal/config"
	"github.com/CastingWorksHQ/casting-api/internal/handlers"
	infraRepo "github.com/CastingWorksHQ/casting-api/internal/infra/repository"
	"github.com/CastingWorksHQ/casting-api/internal/metrics"
	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/ownership"
	"github.com/CastingWorksHQ/casting-api/internal/session"
	ucAccount "github.com/CastingWorksHQ/casting-api/internal/usecase/account"
	ucApplication "github.com/CastingWorksHQ/casting-api/internal/usecase/application"
	ucInvitation "github.com/CastingWorksHQ/casting-api/internal/usecase/invitation"
	ucSubscription "github.com/CastingWorksHQ/casting-api/internal/usecase/subscription"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	sessions *session.Resolver,
	provider billing.Provider,
	log *zap.Logger,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(metrics.Middleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	accountRepo := infraRepo.NewAccountGormRepository(db)
	applicationRepo := infraRepo.NewApplicationGormRepository(db)
	subscriptionRepo := infraRepo.NewSubscriptionGormRepository(db)

	ownershipResolver := ownership.NewResolver(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES
	// ======================================================
	deleteAccountUC := ucAccount.NewDeleteAccount(
		accountRepo,
		sessions,
		auditDispatcher,
		log,
	)

	updateApplicationUC := ucApplication.NewUpdateApplication(
		applicationRepo,
		auditDispatcher,
	)

	respondInvitationUC := ucInvitation.NewRespondInvitation(db, applicationRepo)

	grantLifetimeUC := ucSubscription.NewGrantLifetime(
		subscriptionRepo,
		auditDispatcher,
	)

	cancelSubscriptionUC := ucSubscription.NewCancelSubscription(
		subscriptionRepo,
		provider,
		auditDispatcher,
		log,
	)

	reactivateSubscriptionUC := ucSubscription.NewReactivateSubscription(
		subscriptionRepo,
		provider,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, sessions)
	meHandler := handlers.NewMeHandler(db)
	accountHandler := handlers.NewAccountHandler(deleteAccountUC, !cfg.IsProduction())

	profileHandler := handlers.NewProfileHandler(db, ownershipResolver)
	profileImageHandler := handlers.NewProfileImageHandler(db, ownershipResolver)
	studioHandler := handlers.NewStudioHandler(db, ownershipResolver)

	castingCallHandler := handlers.NewCastingCallHandler(db, ownershipResolver)
	projectHandler := handlers.NewProjectHandler(db, ownershipResolver)
	applicationHandler := handlers.NewApplicationHandler(db, ownershipResolver, updateApplicationUC)
	invitationHandler := handlers.NewInvitationHandler(db, ownershipResolver, respondInvitationUC)

	actorHandler := handlers.NewActorHandler(db, ownershipResolver, auditDispatcher)
	studioNoteHandler := handlers.NewStudioNoteHandler(db, ownershipResolver)
	messageHandler := handlers.NewMessageHandler(db)

	subscriptionHandler := handlers.NewSubscriptionHandler(
		subscriptionRepo,
		cancelSubscriptionUC,
		reactivateSubscriptionUC,
	)

	adminUserHandler := handlers.NewAdminUserHandler(
		db,
		deleteAccountUC,
		grantLifetimeUC,
		auditDispatcher,
	)
	adminDiscountHandler := handlers.NewAdminDiscountHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// OPERATIONAL
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// SECURED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(sessions))
		{
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/me", meHandler.GetMe)
			secured.DELETE("/me/account", accountHandler.DeleteOwnAccount)

			secured.GET("/me/subscription", subscriptionHandler.GetOwn)
			secured.POST("/me/subscription/cancel", subscriptionHandler.Cancel)
			secured.POST("/me/subscription/reactivate", subscriptionHandler.Reactivate)

			secured.GET("/profiles/:id", profileHandler.GetByID)

			secured.POST("/messages", messageHandler.Send)
			secured.GET("/messages", messageHandler.ListThreads)
			secured.GET("/messages/:userId", messageHandler.Thread)

			// ------------------------------
			// TALENT
			// ------------------------------
			talent := secured.Group("/talent")
			talent.Use(middleware.RequireTenantType(models.TenantTypeTalent))
			{
				talent.GET("/profile", profileHandler.GetOwn)
				talent.PATCH("/profile", profileHandler.UpdateOwn)

				talent.POST("/profile/images", profileImageHandler.Add)
				talent.PATCH("/profile/images/:id", profileImageHandler.Update)
				talent.DELETE("/profile/images/:id", profileImageHandler.Delete)

				talent.GET("/casting-calls", castingCallHandler.BrowseOpen)

				talent.POST("/applications", applicationHandler.Apply)
				talent.GET("/applications", applicationHandler.ListOwn)

				talent.GET("/invitations", invitationHandler.ListOwn)
				talent.PATCH("/invitations/:id", invitationHandler.Respond)
			}

			// ------------------------------
			// STUDIO
			// ------------------------------
			studio := secured.Group("/studio")
			studio.Use(middleware.RequireTenantType(models.TenantTypeStudio))
			{
				studio.GET("/profile", studioHandler.GetOwn)
				studio.PATCH("/profile", studioHandler.UpdateOwn)

				studio.GET("/casting-calls", castingCallHandler.List)
				studio.POST("/casting-calls", castingCallHandler.Create)
				studio.GET("/casting-calls/:id", castingCallHandler.Get)
				studio.PATCH("/casting-calls/:id", castingCallHandler.Update)
				studio.DELETE("/casting-calls/:id", castingCallHandler.Delete)

				studio.GET("/applications", applicationHandler.ListForStudio)
				studio.PATCH("/applications/:id", applicationHandler.Decide)

				studio.GET("/projects", projectHandler.List)
				studio.POST("/projects", projectHandler.Create)
				studio.GET("/projects/:id", projectHandler.Get)
				studio.PATCH("/projects/:id", projectHandler.Update)
				studio.GET("/projects/:id/members", projectHandler.ListMembers)
				studio.DELETE("/projects/:id/members/:memberId", projectHandler.RemoveMember)
				studio.GET("/projects/:id/scenes", projectHandler.ListScenes)
				studio.POST("/projects/:id/scenes", projectHandler.CreateScene)
				studio.POST("/projects/:id/scenes/:sceneId/assignments", projectHandler.AssignScene)
				studio.POST("/projects/:id/invitations", invitationHandler.Create)
				studio.GET("/projects/:id/invitations", invitationHandler.ListForProject)

				studio.GET("/actors", actorHandler.List)
				studio.POST("/actors", actorHandler.Create)
				studio.PATCH("/actors/:id", actorHandler.Update)
				studio.DELETE("/actors/:id", actorHandler.Delete)
				studio.POST("/actors/:id/convert", actorHandler.Convert)

				studio.GET("/notes", studioNoteHandler.List)
				studio.POST("/notes", studioNoteHandler.Create)
				studio.PATCH("/notes/:id", studioNoteHandler.Update)
				studio.DELETE("/notes/:id", studioNoteHandler.Delete)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))
			{
				admin.GET("/users", adminUserHandler.List)
				admin.GET("/users/:id", adminUserHandler.Get)
				admin.PATCH("/users/:id/role", adminUserHandler.UpdateRole)
				admin.DELETE("/users/:id", adminUserHandler.Delete)
				admin.POST("/users/:id/grant-lifetime", adminUserHandler.GrantLifetime)
				admin.GET("/users/:id/subscriptions", adminUserHandler.ListSubscriptions)

				admin.PATCH("/applications/:id", applicationHandler.Decide)

				admin.GET("/discounts", adminDiscountHandler.List)
				admin.POST("/discounts", adminDiscountHandler.Create)
				admin.PATCH("/discounts/:id", adminDiscountHandler.Update)
				admin.DELETE("/discounts/:id", adminDiscountHandler.Delete)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
