package handlers

import (
	"net/http"
	"strings"

	"innovation_showcase/internal/models"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by userIdMiddleware.
const (
	ctxUserID   = "userId"
	ctxUserRole = "userRole"
)

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	claims, err := h.services.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		if h.log != nil {
			h.log.Debugw("auth_token_rejected", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUserRole, claims.Role)
	c.Next()
}

// adminOnly must run after userIdMiddleware.
func (h *Handler) adminOnly(c *gin.Context) {
	if requesterRole(c) != models.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "admin access required",
		})
		return
	}
	c.Next()
}

// queryTokenMiddleware lifts ?token= into the Authorization header when the
// header is absent.
func (h *Handler) queryTokenMiddleware(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		if tok := c.Query("token"); tok != "" {
			c.Request.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	c.Next()
}

func requesterID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func requesterRole(c *gin.Context) models.Role {
	if v, ok := c.Get(ctxUserRole); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return ""
}
