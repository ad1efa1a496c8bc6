package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CastingWorksHQ/casting-api/internal/httperr"
	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	ucaccount "github.com/CastingWorksHQ/casting-api/internal/usecase/account"
)

type AccountHandler struct {
	deleteAccount *ucaccount.DeleteAccount

	// Underlying step errors are only exposed outside production.
	exposeErrors bool
}

func NewAccountHandler(deleteAccount *ucaccount.DeleteAccount, exposeErrors bool) *AccountHandler {
	return &AccountHandler{deleteAccount: deleteAccount, exposeErrors: exposeErrors}
}

// DeleteOwnAccount removes the caller's account and everything its
// tenant owns. Cookies are force-expired even when the sign-out leg of
// the sequence degrades.
func (h *AccountHandler) DeleteOwnAccount(c *gin.Context) {
	p := middleware.Principal(c)

	err := h.deleteAccount.Execute(
		c.Request.Context(),
		p,
		p.UserID,
		c.ClientIP(),
		c.Request.UserAgent(),
	)
	if err != nil {
		if httperr.IsBusiness(err, "not_found") {
			clearAuthCookie(c)
			httperr.NotFound(c, "user_not_found", "Account does not exist.")
			return
		}
		message := "Account deletion failed."
		if h.exposeErrors {
			message = err.Error()
		}
		httperr.Internal(c, "account_deletion_failed", message)
		return
	}

	clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "account_deleted"})
}
