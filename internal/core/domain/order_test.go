package domain_test

import (
	"testing"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileLines(t *testing.T) {
	current := []domain.OrderLine{
		{OrderID: "o1", ProductID: "A", Quantity: 2},
		{OrderID: "o1", ProductID: "C", Quantity: 1},
	}

	t.Run("overwrite existing quantity", func(t *testing.T) {
		changes := domain.ReconcileLines("o1", current, map[string]int{"A": 5})
		require.Len(t, changes.Upserts, 1)
		assert.Equal(t, 5, changes.Upserts[0].Quantity)
		assert.Empty(t, changes.Deletes)
		assert.Equal(t, []domain.OrderLine{
			{OrderID: "o1", ProductID: "A", Quantity: 5},
			{OrderID: "o1", ProductID: "C", Quantity: 1},
		}, changes.Result)
	})

	t.Run("zero deletes and new inserts", func(t *testing.T) {
		changes := domain.ReconcileLines("o1", current, map[string]int{"A": 0, "B": 3})
		assert.Equal(t, []string{"A"}, changes.Deletes)
		assert.Equal(t, []domain.OrderLine{{OrderID: "o1", ProductID: "B", Quantity: 3}}, changes.Upserts)
		assert.Equal(t, []domain.OrderLine{
			{OrderID: "o1", ProductID: "C", Quantity: 1},
			{OrderID: "o1", ProductID: "B", Quantity: 3},
		}, changes.Result)
	})

	t.Run("zero for absent product is a no-op", func(t *testing.T) {
		changes := domain.ReconcileLines("o1", current, map[string]int{"Z": 0})
		assert.True(t, changes.IsEmpty())
		assert.Equal(t, current, changes.Result)
	})

	t.Run("idempotent", func(t *testing.T) {
		requested := map[string]int{"A": 4, "B": 1, "C": 0}
		first := domain.ReconcileLines("o1", current, requested)
		second := domain.ReconcileLines("o1", first.Result, requested)
		assert.Equal(t, first.Result, second.Result)
		assert.True(t, second.IsEmpty())
	})

	t.Run("input is not mutated", func(t *testing.T) {
		_ = domain.ReconcileLines("o1", current, map[string]int{"A": 9})
		assert.Equal(t, 2, current[0].Quantity)
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.OrderStatus
		to      domain.OrderStatus
		party   domain.OrderParty
		wantErr error
	}{
		{name: "seller accepts", from: domain.OrderPending, to: domain.OrderAccepted, party: domain.PartySeller},
		{name: "seller rejects", from: domain.OrderPending, to: domain.OrderRejected, party: domain.PartySeller},
		{name: "buyer cannot accept", from: domain.OrderPending, to: domain.OrderAccepted, party: domain.PartyBuyer, wantErr: domain.ErrWrongOrderParty},
		{name: "buyer completes accepted", from: domain.OrderAccepted, to: domain.OrderCompleted, party: domain.PartyBuyer},
		{name: "buyer cancels accepted", from: domain.OrderAccepted, to: domain.OrderCancelled, party: domain.PartyBuyer},
		{name: "seller cannot cancel", from: domain.OrderAccepted, to: domain.OrderCancelled, party: domain.PartySeller, wantErr: domain.ErrWrongOrderParty},
		{name: "pending cannot complete", from: domain.OrderPending, to: domain.OrderCompleted, party: domain.PartyBuyer, wantErr: domain.ErrInvalidStatusTransition},
		{name: "final status", from: domain.OrderCompleted, to: domain.OrderCancelled, party: domain.PartyBuyer, wantErr: domain.ErrInvalidStatusTransition},
		{name: "unknown target", from: domain.OrderPending, to: domain.OrderStatus("SHIPPED"), party: domain.PartySeller, wantErr: domain.ErrUnknownOrderStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := domain.Order{Status: tt.from}
			err := order.TransitionTo(tt.to, tt.party)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, order.Status)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.to, order.Status)
		})
	}
}

func TestOrder_PartyOf(t *testing.T) {
	order := domain.Order{BuyerCompanyID: "buyer", SellerCompanyID: "seller"}

	party, ok := order.PartyOf("buyer")
	assert.True(t, ok)
	assert.Equal(t, domain.PartyBuyer, party)

	party, ok = order.PartyOf("seller")
	assert.True(t, ok)
	assert.Equal(t, domain.PartySeller, party)

	_, ok = order.PartyOf("other")
	assert.False(t, ok)
	_, ok = order.PartyOf("")
	assert.False(t, ok)
}
