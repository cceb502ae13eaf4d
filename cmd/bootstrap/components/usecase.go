package components

import (
	"raffle-tickets/internal/pkg/clock"
	"raffle-tickets/internal/usecase/commands"
	"raffle-tickets/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
	),
	fx.Module("usecase/commands",
		fx.Provide(
			commands.NewPurchaseCommands,
			commands.NewInventoryCommands,
		),
	),
	fx.Module("usecase/queries",
		fx.Provide(
			queries.NewInventoryQueries,
		),
	),
)
