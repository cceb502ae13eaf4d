//go:build unit

package queries_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"raffle-tickets/internal/domain/inventory"
	"raffle-tickets/internal/infra/store"
	"raffle-tickets/internal/pkg/errs"
	"raffle-tickets/internal/usecase/queries"
	"raffle-tickets/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func setupQueries(t *testing.T) (queries.InventoryQueries, *store.Store) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	s, err := store.New(path, 5, logger)
	require.NoError(t, err)
	return queries.NewInventoryQueries(s), s
}

func seedPurchase(t *testing.T, s *store.Store, id int64, createdAt time.Time, status string, ticketIDs ...int) {
	t.Helper()
	p, err := builder.NewPurchaseBuilder().WithTickets(ticketIDs...).BuildPending(id, createdAt)
	require.NoError(t, err)
	_, err = s.Mutate(func(snap *inventory.Snapshot) error {
		if err := snap.Reserve(p); err != nil {
			return err
		}
		switch status {
		case "approved":
			_, err := snap.Approve(id)
			return err
		case "rejected":
			_, err := snap.Reject(id)
			return err
		}
		return nil
	})
	require.NoError(t, err)
}

func TestListTickets(t *testing.T) {
	q, s := setupQueries(t)
	seedPurchase(t, s, 100, baseTime, "pending", 2)

	views, err := q.ListTickets(context.Background())
	require.NoError(t, err)

	require.Len(t, views, 5)
	assert.Equal(t, queries.TicketView{ID: 0, Status: "free"}, views[0])
	assert.Equal(t, queries.TicketView{ID: 2, Status: "reserved"}, views[2])
}

func TestListPurchases(t *testing.T) {
	ctx := context.Background()

	seedAll := func(t *testing.T) (queries.InventoryQueries, *store.Store) {
		q, s := setupQueries(t)
		seedPurchase(t, s, 100, baseTime, "approved", 0)
		seedPurchase(t, s, 101, baseTime.Add(time.Minute), "pending", 1)
		seedPurchase(t, s, 102, baseTime.Add(2*time.Minute), "rejected", 2)
		return q, s
	}

	t.Run("newest first", func(t *testing.T) {
		q, _ := seedAll(t)

		views, err := q.ListPurchases(ctx, "")
		require.NoError(t, err)

		require.Len(t, views, 3)
		assert.Equal(t, int64(102), views[0].ID)
		assert.Equal(t, int64(101), views[1].ID)
		assert.Equal(t, int64(100), views[2].ID)
	})

	t.Run("same timestamp falls back to id order", func(t *testing.T) {
		q, s := setupQueries(t)
		seedPurchase(t, s, 100, baseTime, "pending", 0)
		seedPurchase(t, s, 101, baseTime, "pending", 1)

		views, err := q.ListPurchases(ctx, queries.StatusFilterAll)
		require.NoError(t, err)

		assert.Equal(t, int64(101), views[0].ID)
		assert.Equal(t, int64(100), views[1].ID)
	})

	t.Run("status filter", func(t *testing.T) {
		q, _ := seedAll(t)

		views, err := q.ListPurchases(ctx, "pending")
		require.NoError(t, err)

		require.Len(t, views, 1)
		assert.Equal(t, int64(101), views[0].ID)
	})

	t.Run("all filter matches everything", func(t *testing.T) {
		q, _ := seedAll(t)

		views, err := q.ListPurchases(ctx, queries.StatusFilterAll)
		require.NoError(t, err)
		assert.Len(t, views, 3)
	})

	t.Run("invalid filter", func(t *testing.T) {
		q, _ := seedAll(t)

		_, err := q.ListPurchases(ctx, "bogus")
		assert.ErrorIs(t, err, queries.ErrInvalidStatusFilter)
	})
}

func TestGetPurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		q, s := setupQueries(t)
		seedPurchase(t, s, 100, baseTime, "pending", 1, 2)

		view, err := q.GetPurchase(ctx, 100)
		require.NoError(t, err)

		assert.Equal(t, int64(100), view.ID)
		assert.Equal(t, []int{1, 2}, view.TicketIDs)
		assert.Equal(t, "pending", view.Status)
	})

	t.Run("not found", func(t *testing.T) {
		q, _ := setupQueries(t)
		_, err := q.GetPurchase(ctx, 999)
		assert.ErrorIs(t, err, errs.ErrPurchaseNotFound)
	})
}

func TestSettings(t *testing.T) {
	q, _ := setupQueries(t)

	view, err := q.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, view.TotalTickets)
}

func TestExportDocument(t *testing.T) {
	q, s := setupQueries(t)
	seedPurchase(t, s, 100, baseTime, "pending", 1)

	data, err := q.ExportDocument(context.Background())
	require.NoError(t, err)

	var doc inventory.Snapshot
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 5, doc.Capacity())
	require.Len(t, doc.Purchases, 1)
	assert.Equal(t, int64(100), doc.Purchases[0].ID)
}
