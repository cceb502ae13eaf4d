package commands

import (
	"context"
	"errors"
	"time"

	"raffle-tickets/internal/domain/inventory"
	"raffle-tickets/internal/domain/purchase"
	"raffle-tickets/internal/infra/store"
	"raffle-tickets/internal/pkg/clock"
	"raffle-tickets/internal/pkg/errs"
	"raffle-tickets/internal/pkg/metrics"
	"raffle-tickets/internal/usecase/queries"
)

// PurchaseCommands drives the purchase lifecycle. Every method runs inside a
// single store transaction, so reservations, admin actions and resizes can
// never interleave on stale state.
type PurchaseCommands interface {
	Reserve(ctx context.Context, draft purchase.Draft) (*queries.PurchaseView, error)
	Approve(ctx context.Context, id int64) (*queries.PurchaseView, error)
	Reject(ctx context.Context, id int64) (*queries.PurchaseView, error)
	UpdateContact(ctx context.Context, id int64, name, email *string) (*queries.PurchaseView, error)
	Delete(ctx context.Context, id int64) error
}

type purchaseCommandsImpl struct {
	store *store.Store
	clock clock.Clock
}

func NewPurchaseCommands(store *store.Store, clock clock.Clock) PurchaseCommands {
	return &purchaseCommandsImpl{
		store: store,
		clock: clock,
	}
}

// Reserve validates the draft and atomically flips the requested tickets to
// Reserved. Of two concurrent calls for overlapping ticket sets exactly one
// can succeed; the loser gets ErrTicketConflict carrying the contested ids.
func (c *purchaseCommandsImpl) Reserve(_ context.Context, draft purchase.Draft) (*queries.PurchaseView, error) {
	start := time.Now()
	result := "failed"
	defer func() {
		metrics.RecordReserveDuration(result, time.Since(start).Seconds())
	}()

	var created *purchase.Purchase
	_, err := c.store.Mutate(func(s *inventory.Snapshot) error {
		p, err := purchase.New(draft)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidInput)
		}
		now := c.clock.Now()
		p.ID = s.NextPurchaseID(now)
		p.CreatedAt = now

		if err := s.Reserve(p); err != nil {
			var rangeErr *inventory.OutOfRangeError
			if errors.As(err, &rangeErr) {
				return errs.Mark(err, errs.ErrTicketOutOfRange)
			}
			var conflictErr *inventory.ConflictError
			if errors.As(err, &conflictErr) {
				return errs.Mark(err, errs.ErrTicketConflict)
			}
			return err
		}
		created = p.Clone()
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrTicketConflict) {
			result = "conflict"
		}
		return nil, err
	}

	result = "success"
	metrics.TicketsReserved.Add(float64(len(created.TicketIDs)))
	return queries.FromPurchase(created), nil
}

func (c *purchaseCommandsImpl) Approve(_ context.Context, id int64) (*queries.PurchaseView, error) {
	var approved *purchase.Purchase
	_, err := c.store.Mutate(func(s *inventory.Snapshot) error {
		p, err := s.Approve(id)
		if err != nil {
			return markLedgerErr(err)
		}
		approved = p.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queries.FromPurchase(approved), nil
}

func (c *purchaseCommandsImpl) Reject(_ context.Context, id int64) (*queries.PurchaseView, error) {
	var rejected *purchase.Purchase
	_, err := c.store.Mutate(func(s *inventory.Snapshot) error {
		p, err := s.Reject(id)
		if err != nil {
			return markLedgerErr(err)
		}
		rejected = p.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queries.FromPurchase(rejected), nil
}

func (c *purchaseCommandsImpl) UpdateContact(_ context.Context, id int64, name, email *string) (*queries.PurchaseView, error) {
	var updated *purchase.Purchase
	_, err := c.store.Mutate(func(s *inventory.Snapshot) error {
		p, err := s.UpdateContact(id, name, email)
		if err != nil {
			return markLedgerErr(err)
		}
		updated = p.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queries.FromPurchase(updated), nil
}

func (c *purchaseCommandsImpl) Delete(_ context.Context, id int64) error {
	_, err := c.store.Mutate(func(s *inventory.Snapshot) error {
		if err := s.Delete(id); err != nil {
			return markLedgerErr(err)
		}
		return nil
	})
	return err
}

func markLedgerErr(err error) error {
	switch {
	case errors.Is(err, inventory.ErrPurchaseNotFound):
		return errs.Mark(err, errs.ErrPurchaseNotFound)
	case errors.Is(err, purchase.ErrAlreadyRejected):
		return errs.Mark(err, errs.ErrPurchaseRejected)
	default:
		return err
	}
}
