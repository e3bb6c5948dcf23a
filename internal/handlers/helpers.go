package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/middleware"
)

// writeBusinessError maps use case business errors to HTTP responses;
// anything else is an internal error.
func writeBusinessError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch {
	case strings.HasSuffix(code, "_not_found"):
		httperr.NotFound(c, code, "Not found.")
	case code == "not_session_host" || code == "not_a_peer":
		httperr.Forbidden(c, code, "You cannot perform this action.")
	default:
		httperr.BadRequest(c, code, "Request cannot be processed.")
	}
}

func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.ContextUserID).(uuid.UUID)
}

func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Malformed identifier.")
		return uuid.Nil, false
	}
	return id, true
}

// parseDay reads a ?day=YYYY-MM-DD query parameter as a UTC date.
func parseDay(c *gin.Context) (time.Time, bool) {
	raw := c.Query("day")
	day, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		httperr.BadRequest(c, "invalid_day", "Expected day=YYYY-MM-DD.")
		return time.Time{}, false
	}
	return day, true
}
