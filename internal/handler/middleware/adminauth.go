package middleware

import (
	"crypto/subtle"
	"net/http"

	"raffle-tickets/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// AdminSecretHeader carries the shared admin secret. This is the whole auth
// model: one secret, no identities.
const AdminSecretHeader = "X-Admin-Secret"

type AdminMiddleware struct {
	secret string
}

func NewAdminMiddleware(cfg config.Config) *AdminMiddleware {
	return &AdminMiddleware{secret: cfg.Admin.Secret}
}

func (m *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(AdminSecretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.secret)) != 1 {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin secret required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
