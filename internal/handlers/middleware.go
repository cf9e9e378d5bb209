package handlers

import (
	"net/http"
	"strings"

	"accommodation_finder/internal/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by the identity middleware.
const (
	ctxUserID   = "userId"
	ctxUserRole = "userRole"
)

func (h *Handler) identityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	identity, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(ctxUserID, identity.UserID)
	c.Set(ctxUserRole, identity.Role)
	c.Next()
}

// identityFromContext rebuilds the verified identity stored by the middleware.
func identityFromContext(c *gin.Context) service.Identity {
	id := service.Identity{}
	if v, ok := c.Get(ctxUserID); ok {
		if uid, ok := v.(int); ok {
			id.UserID = uid
		}
	}
	if v, ok := c.Get(ctxUserRole); ok {
		if role, ok := v.(string); ok {
			id.Role = role
		}
	}
	return id
}
