package bootstrap

import (
	"raffle-tickets/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	StoreModule,
	components.UseCaseModule,
	components.HandlerModule,
)
