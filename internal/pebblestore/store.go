// Package pebblestore is the embedded file-backed order store used when no
// Postgres configuration is present (local runs, CI). A single Set with
// Sync is atomic and durable, which matches the one-row-per-order write.
package pebblestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ariefcatur/order-service/internal/orders"
	"github.com/cockroachdb/pebble"
)

type Store struct {
	db *pebble.DB
}

func Open(dir string) (*Store, error) {
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func orderKey(id string) []byte { return []byte("order/" + id) }

func (s *Store) CreateOrder(_ context.Context, o orders.Order) error {
	k := orderKey(o.ID)
	if _, closer, err := s.db.Get(k); err == nil {
		_ = closer.Close()
		return fmt.Errorf("order %s already exists", o.ID)
	} else if !errors.Is(err, pebble.ErrNotFound) {
		return err
	}
	b, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return s.db.Set(k, b, pebble.Sync)
}

func (s *Store) GetOrder(_ context.Context, id string) (orders.Order, error) {
	v, closer, err := s.db.Get(orderKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return orders.Order{}, orders.ErrNotFound
	}
	if err != nil {
		return orders.Order{}, err
	}
	defer closer.Close()

	var o orders.Order
	if err := json.Unmarshal(v, &o); err != nil {
		return orders.Order{}, err
	}
	return o, nil
}
