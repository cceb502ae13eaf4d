package bootstrap

import (
	"log/slog"

	"raffle-tickets/internal/infra/proofstore"
	"raffle-tickets/internal/infra/store"
	"raffle-tickets/internal/pkg/config"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewStore,
		NewProofStorage,
	),
)

func NewStore(cfg config.Config, logger *slog.Logger) (*store.Store, error) {
	return store.New(cfg.Store.DataFile, cfg.Store.DefaultCapacity, logger)
}

func NewProofStorage(cfg config.Config) (*proofstore.Storage, error) {
	return proofstore.New(cfg.Store.UploadDir)
}
