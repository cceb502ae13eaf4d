// Package inventory holds the full raffle state and every invariant-checked
// mutation on it. A Snapshot is a plain value: callers get a private copy,
// apply one operation, and hand it back to the store, which serializes
// writers. Nothing in this package does IO.
package inventory

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"raffle-tickets/internal/domain/purchase"
	"raffle-tickets/internal/domain/ticket"
)

var (
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrInvalidCapacity  = errors.New("capacity must be positive")
	ErrInvalidDocument  = errors.New("invalid inventory document")
)

// ConflictError reports the subset of requested tickets that were not free.
type ConflictError struct {
	TicketIDs []int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("tickets unavailable: %v", e.TicketIDs)
}

// OutOfRangeError reports requested ids outside [0, capacity).
type OutOfRangeError struct {
	TicketIDs []int
	Capacity  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("tickets %v out of range [0, %d)", e.TicketIDs, e.Capacity)
}

// CapacityError rejects a shrink below the highest active ticket id.
type CapacityError struct {
	Requested   int
	MaxActiveID int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot shrink to %d: ticket #%d is still active", e.Requested, e.MaxActiveID)
}

type Settings struct {
	TotalTickets int `json:"totalTickets"`
}

// Snapshot is the whole persisted document: settings, the ticket array
// (indexed by ticket id) and the purchase ledger.
type Snapshot struct {
	Settings  Settings             `json:"settings"`
	Tickets   []ticket.Ticket      `json:"tickets"`
	Purchases []*purchase.Purchase `json:"purchases"`
}

// NewSnapshot returns a fresh inventory: capacity free tickets, no purchases.
func NewSnapshot(capacity int) *Snapshot {
	tickets := make([]ticket.Ticket, capacity)
	for i := range tickets {
		tickets[i] = ticket.NewFree(i)
	}
	return &Snapshot{
		Settings:  Settings{TotalTickets: capacity},
		Tickets:   tickets,
		Purchases: []*purchase.Purchase{},
	}
}

func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Settings:  s.Settings,
		Tickets:   make([]ticket.Ticket, len(s.Tickets)),
		Purchases: make([]*purchase.Purchase, len(s.Purchases)),
	}
	copy(c.Tickets, s.Tickets)
	for i, p := range s.Purchases {
		c.Purchases[i] = p.Clone()
	}
	return c
}

func (s *Snapshot) Capacity() int {
	return s.Settings.TotalTickets
}

// MaxActiveID returns the highest ticket id not in Free status, or -1.
func (s *Snapshot) MaxActiveID() int {
	for i := len(s.Tickets) - 1; i >= 0; i-- {
		if s.Tickets[i].Status.Active() {
			return i
		}
	}
	return -1
}

// NextPurchaseID keeps the millisecond-epoch id shape of older documents
// while staying strictly monotonic even when two purchases land in the same
// millisecond.
func (s *Snapshot) NextPurchaseID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, p := range s.Purchases {
		if p.ID >= id {
			id = p.ID + 1
		}
	}
	return id
}

func (s *Snapshot) FindPurchase(id int64) (*purchase.Purchase, bool) {
	for _, p := range s.Purchases {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Reserve is the atomic check-and-reserve: every requested ticket must be in
// range and free, or nothing changes. On success the purchase is appended
// Pending and its tickets flip to Reserved.
func (s *Snapshot) Reserve(p *purchase.Purchase) error {
	var outOfRange []int
	for _, id := range p.TicketIDs {
		if id < 0 || id >= s.Capacity() {
			outOfRange = append(outOfRange, id)
		}
	}
	if len(outOfRange) > 0 {
		return &OutOfRangeError{TicketIDs: outOfRange, Capacity: s.Capacity()}
	}

	var taken []int
	for _, id := range p.TicketIDs {
		if s.Tickets[id].Status != ticket.StatusFree {
			taken = append(taken, id)
		}
	}
	if len(taken) > 0 {
		sort.Ints(taken)
		return &ConflictError{TicketIDs: taken}
	}

	for _, id := range p.TicketIDs {
		s.Tickets[id].Status = ticket.StatusReserved
	}
	s.Purchases = append(s.Purchases, p)
	return nil
}

// Approve marks the purchase and all of its tickets Approved.
func (s *Snapshot) Approve(id int64) (*purchase.Purchase, error) {
	p, ok := s.FindPurchase(id)
	if !ok {
		return nil, ErrPurchaseNotFound
	}
	if err := p.Approve(); err != nil {
		return nil, err
	}
	s.setTicketStatus(p.TicketIDs, ticket.StatusApproved)
	return p, nil
}

// Reject frees the purchase's tickets whether they were Reserved or
// Approved. The record stays in the ledger. A purchase that is already
// Rejected owns no tickets anymore, so re-rejecting must not touch the
// ticket array: the ids it references may belong to a later purchase.
func (s *Snapshot) Reject(id int64) (*purchase.Purchase, error) {
	p, ok := s.FindPurchase(id)
	if !ok {
		return nil, ErrPurchaseNotFound
	}
	if p.Active() {
		s.setTicketStatus(p.TicketIDs, ticket.StatusFree)
	}
	p.Reject()
	return p, nil
}

// Delete removes the record entirely, freeing its tickets only while the
// purchase still owns them.
func (s *Snapshot) Delete(id int64) error {
	for i, p := range s.Purchases {
		if p.ID == id {
			if p.Active() {
				s.setTicketStatus(p.TicketIDs, ticket.StatusFree)
			}
			s.Purchases = append(s.Purchases[:i], s.Purchases[i+1:]...)
			return nil
		}
	}
	return ErrPurchaseNotFound
}

// UpdateContact edits buyer-identity fields; ticket ids and status are not
// reachable through this path.
func (s *Snapshot) UpdateContact(id int64, name, email *string) (*purchase.Purchase, error) {
	p, ok := s.FindPurchase(id)
	if !ok {
		return nil, ErrPurchaseNotFound
	}
	p.UpdateContact(name, email)
	return p, nil
}

// Resize grows or shrinks the ticket array. Shrinking below the highest
// active ticket id is refused so no live purchase is orphaned.
func (s *Snapshot) Resize(capacity int) error {
	if capacity <= 0 {
		return ErrInvalidCapacity
	}
	if maxActive := s.MaxActiveID(); capacity <= maxActive {
		return &CapacityError{Requested: capacity, MaxActiveID: maxActive}
	}

	current := len(s.Tickets)
	switch {
	case capacity > current:
		for i := current; i < capacity; i++ {
			s.Tickets = append(s.Tickets, ticket.NewFree(i))
		}
	case capacity < current:
		s.Tickets = s.Tickets[:capacity]
	}
	s.Settings.TotalTickets = capacity
	return nil
}

func (s *Snapshot) setTicketStatus(ids []int, status ticket.Status) {
	for _, id := range ids {
		if id >= 0 && id < len(s.Tickets) {
			s.Tickets[id].Status = status
		}
	}
}

// Normalize repairs the shape of a loaded document: positional ticket ids
// and a ticket array matching totalTickets. Older documents sometimes carry
// a sparse or short array.
func (s *Snapshot) Normalize() {
	if s.Settings.TotalTickets < 0 {
		s.Settings.TotalTickets = 0
	}
	capacity := s.Settings.TotalTickets
	if len(s.Tickets) > capacity {
		s.Tickets = s.Tickets[:capacity]
	}
	for len(s.Tickets) < capacity {
		s.Tickets = append(s.Tickets, ticket.NewFree(len(s.Tickets)))
	}
	for i := range s.Tickets {
		s.Tickets[i].ID = i
		if !s.Tickets[i].Status.Valid() {
			s.Tickets[i].Status = ticket.StatusFree
		}
	}
	if s.Purchases == nil {
		s.Purchases = []*purchase.Purchase{}
	}
}

// Validate checks the document invariants before an imported snapshot may
// replace the live one.
func (s *Snapshot) Validate() error {
	if s.Settings.TotalTickets <= 0 {
		return fmt.Errorf("%w: totalTickets must be positive", ErrInvalidDocument)
	}
	if len(s.Tickets) != s.Settings.TotalTickets {
		return fmt.Errorf("%w: %d tickets for capacity %d", ErrInvalidDocument, len(s.Tickets), s.Settings.TotalTickets)
	}
	for i, t := range s.Tickets {
		if t.ID != i {
			return fmt.Errorf("%w: ticket at index %d has id %d", ErrInvalidDocument, i, t.ID)
		}
		if !t.Status.Valid() {
			return fmt.Errorf("%w: ticket %d has status %q", ErrInvalidDocument, i, t.Status)
		}
	}
	seen := make(map[int64]struct{}, len(s.Purchases))
	for _, p := range s.Purchases {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate purchase id %d", ErrInvalidDocument, p.ID)
		}
		seen[p.ID] = struct{}{}
		if !p.Status.Valid() {
			return fmt.Errorf("%w: purchase %d has status %q", ErrInvalidDocument, p.ID, p.Status)
		}
		for _, id := range p.TicketIDs {
			if id < 0 || id >= s.Settings.TotalTickets {
				return fmt.Errorf("%w: purchase %d references ticket %d outside capacity %d",
					ErrInvalidDocument, p.ID, id, s.Settings.TotalTickets)
			}
		}
	}
	return nil
}
