package handlers

import (
	"errors"
	"net/http"

	"innovation_showcase/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	errInternal        = "internal server error"
	errInvalidBodyPref = "invalid body: "
)

// statusForKind maps an error kind to its HTTP status.
func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.KindValidation, models.KindConflict:
		return http.StatusBadRequest
	case models.KindUnauthorized:
		return http.StatusUnauthorized
	case models.KindForbidden:
		return http.StatusForbidden
	case models.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondError writes a service error. Client errors carry their own message;
// anything else is logged and hidden behind a generic one.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code := statusForKind(models.KindOf(err))
	if code >= http.StatusInternalServerError {
		h.logAndJSONError(c, code, errInternal, logKey, err, kv...)
		return
	}

	msg := err.Error()
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	if h.log != nil {
		h.log.Infow(logKey, append([]interface{}{"err", err, "status", code}, kv...)...)
	}
	c.JSON(code, gin.H{"error": msg})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("http_bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}
