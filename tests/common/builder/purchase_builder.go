//go:build unit

package builder

import (
	"time"

	"raffle-tickets/internal/domain/purchase"
)

// PurchaseBuilder assembles purchase drafts with sensible defaults so tests
// only spell out the field under test.
type PurchaseBuilder struct {
	name      string
	email     string
	phone     string
	reference string
	ticketIDs []int
	proof     *string
}

func NewPurchaseBuilder() *PurchaseBuilder {
	return &PurchaseBuilder{
		name:      "Maria Lopez",
		email:     "maria@example.com",
		phone:     "+58 412 5550123",
		reference: "TRX-0042",
		ticketIDs: []int{1, 2},
	}
}

func (b *PurchaseBuilder) WithName(name string) *PurchaseBuilder {
	b.name = name
	return b
}

func (b *PurchaseBuilder) WithEmail(email string) *PurchaseBuilder {
	b.email = email
	return b
}

func (b *PurchaseBuilder) WithPhone(phone string) *PurchaseBuilder {
	b.phone = phone
	return b
}

func (b *PurchaseBuilder) WithReference(reference string) *PurchaseBuilder {
	b.reference = reference
	return b
}

func (b *PurchaseBuilder) WithTickets(ids ...int) *PurchaseBuilder {
	b.ticketIDs = ids
	return b
}

func (b *PurchaseBuilder) WithProof(location string) *PurchaseBuilder {
	b.proof = &location
	return b
}

func (b *PurchaseBuilder) BuildDraft() purchase.Draft {
	return purchase.Draft{
		Name:      b.name,
		Email:     b.email,
		Phone:     b.phone,
		Reference: b.reference,
		TicketIDs: b.ticketIDs,
		Proof:     b.proof,
	}
}

func (b *PurchaseBuilder) BuildDomain() (*purchase.Purchase, error) {
	return purchase.New(b.BuildDraft())
}

// BuildPending returns a committed-looking purchase for ledger tests.
func (b *PurchaseBuilder) BuildPending(id int64, createdAt time.Time) (*purchase.Purchase, error) {
	p, err := purchase.New(b.BuildDraft())
	if err != nil {
		return nil, err
	}
	p.ID = id
	p.CreatedAt = createdAt
	return p, nil
}

// BuildFormMap renders the draft as the multipart buy form fields.
func (b *PurchaseBuilder) BuildFormMap(tickets string) map[string]string {
	return map[string]string{
		"name":      b.name,
		"email":     b.email,
		"phone":     b.phone,
		"reference": b.reference,
		"tickets":   tickets,
	}
}
