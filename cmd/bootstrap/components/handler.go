package components

import (
	"raffle-tickets/internal/handler"
	"raffle-tickets/internal/handler/api"
	"raffle-tickets/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewTicketHandler,
		api.NewAdminHandler,
		middleware.NewAdminMiddleware,
		NewRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)
