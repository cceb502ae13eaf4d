//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"raffle-tickets/internal/handler/middleware"
	"raffle-tickets/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()

	t.Run("returns the id assigned by the logging middleware", func(t *testing.T) {
		engine := gin.New()
		engine.Use(middleware.LoggingMiddleware(cfg.Log))

		var seen string
		engine.GET("/ping", func(c *gin.Context) {
			seen = middleware.GetRequestID(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, seen)
	})

	t.Run("empty without the middleware", func(t *testing.T) {
		engine := gin.New()

		var seen string
		engine.GET("/ping", func(c *gin.Context) {
			seen = middleware.GetRequestID(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Empty(t, seen)
	})
}
