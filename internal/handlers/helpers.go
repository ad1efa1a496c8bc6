package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CastingWorksHQ/casting-api/internal/httperr"
)

// writeDomainError maps the shared ownership/business errors onto HTTP.
// Anything unrecognized is an upstream failure.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "not_found"):
		httperr.NotFound(c, "not_found", "Resource not found.")
	case httperr.IsBusiness(err, "forbidden"):
		httperr.Forbidden(c, "forbidden", "You do not own this resource.")
	case httperr.IsBusiness(err, "already_decided"):
		httperr.BadRequest(c, "already_decided", "This application has already been decided.")
	case httperr.IsBusiness(err, "already_responded"):
		httperr.BadRequest(c, "already_responded", "This invitation has already been responded to.")
	case httperr.IsBusiness(err, "invitation_expired"):
		httperr.BadRequest(c, "invitation_expired", "This invitation has expired.")
	case httperr.IsBusiness(err, "invalid_status"):
		httperr.BadRequest(c, "invalid_status", "Unsupported status transition.")
	case httperr.IsBusiness(err, "call_has_no_project"):
		httperr.BadRequest(c, "call_has_no_project", "The casting call is not linked to a project.")
	case httperr.IsBusiness(err, "billing_sync_failed"):
		httperr.Internal(c, "billing_sync_failed", "Could not sync with the billing provider.")
	default:
		httperr.Internal(c, "internal_error", "Something went wrong.")
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id parameter.")
		return 0, false
	}
	return uint(id), true
}
