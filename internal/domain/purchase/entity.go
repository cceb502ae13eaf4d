package purchase

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingBuyerField = errors.New("missing required buyer field")
	ErrNoTickets         = errors.New("purchase must reference at least one ticket")
	ErrDuplicateTicket   = errors.New("purchase references the same ticket twice")
	ErrAlreadyRejected   = errors.New("purchase is already rejected")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Purchase is a buyer's request for a set of tickets. While Pending or
// Approved it owns its ticket ids; a Rejected purchase owns nothing.
//
// Field names and JSON tags follow the stored document schema, so a document
// exported by an older deployment imports unchanged.
type Purchase struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	TicketIDs []int     `json:"tickets"`
	Status    Status    `json:"status"`
	Proof     *string   `json:"proof"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
}

// Draft carries buyer input for a new purchase before any id assignment.
type Draft struct {
	Name      string
	Email     string
	Phone     string
	Reference string
	TicketIDs []int
	Proof     *string
}

// New validates a draft and returns a Pending purchase. The caller assigns
// ID and CreatedAt when it commits the allocation.
func New(d Draft) (*Purchase, error) {
	name := strings.TrimSpace(d.Name)
	email := strings.TrimSpace(d.Email)
	phone := strings.TrimSpace(d.Phone)
	reference := strings.TrimSpace(d.Reference)
	if name == "" || email == "" || phone == "" || reference == "" {
		return nil, ErrMissingBuyerField
	}
	if len(d.TicketIDs) == 0 {
		return nil, ErrNoTickets
	}
	seen := make(map[int]struct{}, len(d.TicketIDs))
	for _, id := range d.TicketIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateTicket
		}
		seen[id] = struct{}{}
	}

	ids := make([]int, len(d.TicketIDs))
	copy(ids, d.TicketIDs)

	return &Purchase{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Reference: reference,
		TicketIDs: ids,
		Status:    StatusPending,
		Proof:     d.Proof,
	}, nil
}

// Approve moves the purchase to Approved. Re-approving an Approved purchase
// is a no-op; approving a Rejected one fails because its tickets may already
// belong to someone else.
func (p *Purchase) Approve() error {
	switch p.Status {
	case StatusRejected:
		return ErrAlreadyRejected
	default:
		p.Status = StatusApproved
		return nil
	}
}

// Reject releases ticket ownership. Works from Pending and Approved alike;
// rejecting twice is a no-op.
func (p *Purchase) Reject() {
	p.Status = StatusRejected
}

func (p *Purchase) Active() bool {
	return p.Status == StatusPending || p.Status == StatusApproved
}

// UpdateContact changes buyer-identity fields only. Nil means keep, and an
// update can never touch ticket ids or status.
func (p *Purchase) UpdateContact(name, email *string) {
	if name != nil {
		if v := strings.TrimSpace(*name); v != "" {
			p.Name = v
		}
	}
	if email != nil {
		if v := strings.TrimSpace(*email); v != "" {
			p.Email = v
		}
	}
}

func (p *Purchase) Clone() *Purchase {
	c := *p
	c.TicketIDs = make([]int, len(p.TicketIDs))
	copy(c.TicketIDs, p.TicketIDs)
	if p.Proof != nil {
		proof := *p.Proof
		c.Proof = &proof
	}
	return &c
}
