//go:build unit

package purchase_test

import (
	"testing"

	"raffle-tickets/internal/domain/purchase"
	"raffle-tickets/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.PurchaseBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewPurchaseBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestPurchase(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewPurchaseBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, purchase.StatusPending, actual.Status)
		assert.Equal(t, "Maria Lopez", actual.Name)
		assert.Equal(t, []int{1, 2}, actual.TicketIDs)
		assert.Nil(t, actual.Proof)
	})

	t.Run("buyer field validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty name",
				mutate: func(b *builder.PurchaseBuilder) { b.WithName("") },
				errIs:  purchase.ErrMissingBuyerField,
			},
			{
				name:   "whitespace only name",
				mutate: func(b *builder.PurchaseBuilder) { b.WithName("   ") },
				errIs:  purchase.ErrMissingBuyerField,
			},
			{
				name:   "empty email",
				mutate: func(b *builder.PurchaseBuilder) { b.WithEmail("") },
				errIs:  purchase.ErrMissingBuyerField,
			},
			{
				name:   "empty phone",
				mutate: func(b *builder.PurchaseBuilder) { b.WithPhone("") },
				errIs:  purchase.ErrMissingBuyerField,
			},
			{
				name:   "empty reference",
				mutate: func(b *builder.PurchaseBuilder) { b.WithReference("") },
				errIs:  purchase.ErrMissingBuyerField,
			},
		})
	})

	t.Run("ticket list validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "no tickets",
				mutate: func(b *builder.PurchaseBuilder) { b.WithTickets() },
				errIs:  purchase.ErrNoTickets,
			},
			{
				name:   "duplicate ticket",
				mutate: func(b *builder.PurchaseBuilder) { b.WithTickets(3, 7, 3) },
				errIs:  purchase.ErrDuplicateTicket,
			},
			{
				name:   "single ticket",
				mutate: func(b *builder.PurchaseBuilder) { b.WithTickets(0) },
			},
		})
	})

	t.Run("trims buyer fields", func(t *testing.T) {
		actual, err := builder.NewPurchaseBuilder().
			WithName("  Jose Perez  ").
			WithEmail(" jose@example.com ").
			BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "Jose Perez", actual.Name)
		assert.Equal(t, "jose@example.com", actual.Email)
	})

	t.Run("draft ticket slice is copied", func(t *testing.T) {
		ids := []int{4, 5}
		actual, err := builder.NewPurchaseBuilder().WithTickets(ids...).BuildDomain()
		require.NoError(t, err)

		ids[0] = 99
		assert.Equal(t, []int{4, 5}, actual.TicketIDs)
	})
}

func TestPurchaseTransitions(t *testing.T) {
	newPending := func(t *testing.T) *purchase.Purchase {
		p, err := builder.NewPurchaseBuilder().BuildDomain()
		require.NoError(t, err)
		return p
	}

	t.Run("approve pending", func(t *testing.T) {
		p := newPending(t)
		require.NoError(t, p.Approve())
		assert.Equal(t, purchase.StatusApproved, p.Status)
		assert.True(t, p.Active())
	})

	t.Run("approve is idempotent", func(t *testing.T) {
		p := newPending(t)
		require.NoError(t, p.Approve())
		require.NoError(t, p.Approve())
		assert.Equal(t, purchase.StatusApproved, p.Status)
	})

	t.Run("approve after reject fails", func(t *testing.T) {
		p := newPending(t)
		p.Reject()
		err := p.Approve()
		assert.ErrorIs(t, err, purchase.ErrAlreadyRejected)
		assert.Equal(t, purchase.StatusRejected, p.Status)
	})

	t.Run("reject from approved", func(t *testing.T) {
		p := newPending(t)
		require.NoError(t, p.Approve())
		p.Reject()
		assert.Equal(t, purchase.StatusRejected, p.Status)
		assert.False(t, p.Active())
	})

	t.Run("reject is idempotent", func(t *testing.T) {
		p := newPending(t)
		p.Reject()
		p.Reject()
		assert.Equal(t, purchase.StatusRejected, p.Status)
	})
}

func TestPurchaseUpdateContact(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("updates provided fields only", func(t *testing.T) {
		p, err := builder.NewPurchaseBuilder().BuildDomain()
		require.NoError(t, err)

		p.UpdateContact(strPtr("Ana Gomez"), nil)
		assert.Equal(t, "Ana Gomez", p.Name)
		assert.Equal(t, "maria@example.com", p.Email)
	})

	t.Run("blank values keep the original", func(t *testing.T) {
		p, err := builder.NewPurchaseBuilder().BuildDomain()
		require.NoError(t, err)

		p.UpdateContact(strPtr("   "), strPtr(""))
		assert.Equal(t, "Maria Lopez", p.Name)
		assert.Equal(t, "maria@example.com", p.Email)
	})

	t.Run("never touches tickets or status", func(t *testing.T) {
		p, err := builder.NewPurchaseBuilder().WithTickets(8).BuildDomain()
		require.NoError(t, err)

		p.UpdateContact(strPtr("Ana Gomez"), strPtr("ana@example.com"))
		assert.Equal(t, []int{8}, p.TicketIDs)
		assert.Equal(t, purchase.StatusPending, p.Status)
	})
}

func TestPurchaseClone(t *testing.T) {
	p, err := builder.NewPurchaseBuilder().WithProof("/uploads/proof-a.png").BuildDomain()
	require.NoError(t, err)

	c := p.Clone()
	c.Name = "Changed"
	c.TicketIDs[0] = 99
	*c.Proof = "/uploads/other.png"

	assert.Equal(t, "Maria Lopez", p.Name)
	assert.Equal(t, []int{1, 2}, p.TicketIDs)
	assert.Equal(t, "/uploads/proof-a.png", *p.Proof)
}
