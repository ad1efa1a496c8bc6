package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/CastingWorksHQ/casting-api/internal/domain/subscription"
	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	ucsubscription "github.com/CastingWorksHQ/casting-api/internal/usecase/subscription"
)

type SubscriptionHandler struct {
	repo         domain.Repository
	cancelUC     *ucsubscription.CancelSubscription
	reactivateUC *ucsubscription.ReactivateSubscription
}

func NewSubscriptionHandler(
	repo domain.Repository,
	cancelUC *ucsubscription.CancelSubscription,
	reactivateUC *ucsubscription.ReactivateSubscription,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		repo:         repo,
		cancelUC:     cancelUC,
		reactivateUC: reactivateUC,
	}
}

func (h *SubscriptionHandler) GetOwn(c *gin.Context) {
	p := middleware.Principal(c)

	sub, err := h.repo.GetCurrentSubscription(c.Request.Context(), p.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_load_subscription"})
		return
	}
	if sub == nil {
		c.JSON(http.StatusOK, gin.H{"subscription": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	p := middleware.Principal(c)

	sub, err := h.cancelUC.Execute(c.Request.Context(), p, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *SubscriptionHandler) Reactivate(c *gin.Context) {
	p := middleware.Principal(c)

	sub, err := h.reactivateUC.Execute(c.Request.Context(), p, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}
