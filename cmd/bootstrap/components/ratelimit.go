package components

import (
	"raffle-tickets/internal/handler/middleware"
	"raffle-tickets/internal/pkg/config"
)

func NewRateLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit)
}
