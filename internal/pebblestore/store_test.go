package pebblestore

import (
	"context"
	"testing"
	"time"

	"github.com/ariefcatur/order-service/internal/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGet(t *testing.T) {
	s := openStore(t)
	o := orders.Order{
		ID:        "o-1",
		ProductID: "P1",
		Quantity:  2,
		Status:    orders.StatusConfirmed,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, s.CreateOrder(context.Background(), o))

	got, err := s.GetOrder(context.Background(), "o-1")
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, o.ProductID, got.ProductID)
	assert.Equal(t, o.Quantity, got.Quantity)
	assert.Equal(t, o.Status, got.Status)
	assert.True(t, got.CreatedAt.Equal(o.CreatedAt))
}

func TestCreateDuplicate(t *testing.T) {
	s := openStore(t)
	o := orders.Order{ID: "o-1", ProductID: "P1", Quantity: 1, Status: orders.StatusConfirmed}

	require.NoError(t, s.CreateOrder(context.Background(), o))
	assert.Error(t, s.CreateOrder(context.Background(), o))
}

func TestGetMissing(t *testing.T) {
	s := openStore(t)

	_, err := s.GetOrder(context.Background(), "nope")
	assert.ErrorIs(t, err, orders.ErrNotFound)
}
