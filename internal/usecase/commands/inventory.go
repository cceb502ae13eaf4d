package commands

import (
	"context"
	"encoding/json"
	"errors"

	"raffle-tickets/internal/domain/inventory"
	"raffle-tickets/internal/infra/store"
	"raffle-tickets/internal/pkg/errs"
	"raffle-tickets/internal/usecase/queries"
)

// InventoryCommands covers admin-level inventory maintenance: resizing the
// ticket pool and replacing the whole document via import.
type InventoryCommands interface {
	Resize(ctx context.Context, capacity int) (*queries.SettingsView, error)
	ImportDocument(ctx context.Context, raw []byte) error
}

type inventoryCommandsImpl struct {
	store *store.Store
}

func NewInventoryCommands(store *store.Store) InventoryCommands {
	return &inventoryCommandsImpl{store: store}
}

// Resize grows or shrinks the ticket pool inside the same transaction lock
// that reservations use, so a shrink can never race a reservation into the
// id range being removed.
func (c *inventoryCommandsImpl) Resize(_ context.Context, capacity int) (*queries.SettingsView, error) {
	snap, err := c.store.Mutate(func(s *inventory.Snapshot) error {
		if err := s.Resize(capacity); err != nil {
			var capErr *inventory.CapacityError
			if errors.As(err, &capErr) {
				return errs.Mark(err, errs.ErrCapacityTooLow)
			}
			if errors.Is(err, inventory.ErrInvalidCapacity) {
				return errs.Mark(err, errs.ErrInvalidInput)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &queries.SettingsView{TotalTickets: snap.Settings.TotalTickets}, nil
}

// ImportDocument replaces the live state with an uploaded document. Shape
// quirks of older exports are normalized; semantic invariant violations
// reject the upload before anything is swapped.
func (c *inventoryCommandsImpl) ImportDocument(_ context.Context, raw []byte) error {
	var snap inventory.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return errs.Mark(err, errs.ErrInvalidInput)
	}
	snap.Normalize()
	if err := snap.Validate(); err != nil {
		return errs.Mark(err, errs.ErrInvalidInput)
	}
	return c.store.Replace(&snap)
}
