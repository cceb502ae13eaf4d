package middleware

import (
	"net/http"
	"sync"

	"raffle-tickets/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter hands out a token bucket per client IP. Buckets for quiet
// clients are dropped once they refill completely.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(cfg.BuyPerSecond),
		burst:    cfg.BuyBurst,
	}
}

func (r *RateLimiter) limiterFor(key string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lim, ok := r.limiters[key]; ok {
		return lim
	}
	lim := rate.NewLimiter(r.limit, r.burst)
	r.limiters[key] = lim

	// Opportunistic cleanup: evict buckets that have fully refilled.
	for k, l := range r.limiters {
		if k != key && l.Tokens() >= float64(r.burst) {
			delete(r.limiters, k)
		}
	}
	return lim
}

func (r *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.limiterFor(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
