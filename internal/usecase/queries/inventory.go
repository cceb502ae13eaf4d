package queries

import (
	"context"
	"sort"
	"time"

	"raffle-tickets/internal/domain/purchase"
	"raffle-tickets/internal/infra/store"
	"raffle-tickets/internal/pkg/errs"
)

var ErrInvalidStatusFilter = errs.New("invalid status filter")

// Read models (DTO for read side). JSON tags match the stored document so
// API consumers of the original deployment keep working.
type TicketView struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

type PurchaseView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	TicketIDs []int     `json:"tickets"`
	Status    string    `json:"status"`
	Proof     *string   `json:"proof"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
}

type SettingsView struct {
	TotalTickets int `json:"totalTickets"`
}

// StatusFilterAll selects every purchase regardless of status.
const StatusFilterAll = "all"

type InventoryQueries interface {
	ListTickets(ctx context.Context) ([]TicketView, error)
	ListPurchases(ctx context.Context, statusFilter string) ([]*PurchaseView, error)
	GetPurchase(ctx context.Context, id int64) (*PurchaseView, error)
	Settings(ctx context.Context) (*SettingsView, error)
	ExportDocument(ctx context.Context) ([]byte, error)
}

type inventoryQueriesImpl struct {
	store *store.Store
}

func NewInventoryQueries(store *store.Store) InventoryQueries {
	return &inventoryQueriesImpl{store: store}
}

func (q *inventoryQueriesImpl) ListTickets(_ context.Context) ([]TicketView, error) {
	snap := q.store.Read()
	views := make([]TicketView, len(snap.Tickets))
	for i, t := range snap.Tickets {
		views[i] = TicketView{ID: t.ID, Status: string(t.Status)}
	}
	return views, nil
}

// ListPurchases returns purchases newest-created-first, optionally filtered
// by status. Filtering is a pure read.
func (q *inventoryQueriesImpl) ListPurchases(_ context.Context, statusFilter string) ([]*PurchaseView, error) {
	if statusFilter == "" {
		statusFilter = StatusFilterAll
	}
	if statusFilter != StatusFilterAll && !purchase.Status(statusFilter).Valid() {
		return nil, ErrInvalidStatusFilter
	}

	snap := q.store.Read()
	views := make([]*PurchaseView, 0, len(snap.Purchases))
	for _, p := range snap.Purchases {
		if statusFilter != StatusFilterAll && string(p.Status) != statusFilter {
			continue
		}
		views = append(views, FromPurchase(p))
	}
	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		}
		return views[i].ID > views[j].ID
	})
	return views, nil
}

func (q *inventoryQueriesImpl) GetPurchase(_ context.Context, id int64) (*PurchaseView, error) {
	snap := q.store.Read()
	p, ok := snap.FindPurchase(id)
	if !ok {
		return nil, errs.ErrPurchaseNotFound
	}
	return FromPurchase(p), nil
}

func (q *inventoryQueriesImpl) Settings(_ context.Context) (*SettingsView, error) {
	snap := q.store.Read()
	return &SettingsView{TotalTickets: snap.Settings.TotalTickets}, nil
}

// ExportDocument returns the raw stored document for the admin download.
func (q *inventoryQueriesImpl) ExportDocument(_ context.Context) ([]byte, error) {
	return q.store.ExportJSON()
}

func FromPurchase(p *purchase.Purchase) *PurchaseView {
	ids := make([]int, len(p.TicketIDs))
	copy(ids, p.TicketIDs)
	return &PurchaseView{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		TicketIDs: ids,
		Status:    string(p.Status),
		Proof:     p.Proof,
		Reference: p.Reference,
		CreatedAt: p.CreatedAt,
	}
}
