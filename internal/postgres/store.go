package postgres

import (
	"context"
	"errors"

	"github.com/ariefcatur/order-service/internal/orders"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct{ DB *pgxpool.Pool }

// EnsureSchema creates the orders table on startup. Bootstrap only; real
// schema evolution is handled outside this service.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.DB.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			id          TEXT PRIMARY KEY,
			product_id  TEXT NOT NULL,
			quantity    INT  NOT NULL CHECK (quantity > 0),
			status      TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL
		)`)
	return err
}

// withTx is the unit-of-work scope: rollback on any error out of fn,
// commit only when fn returns nil. The deferred rollback is a no-op after
// a successful commit, so the connection is released on every exit path.
func (s *Store) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) CreateOrder(ctx context.Context, o orders.Order) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO orders(id, product_id, quantity, status, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			o.ID, o.ProductID, o.Quantity, string(o.Status), o.CreatedAt)
		return err
	})
}

func (s *Store) GetOrder(ctx context.Context, id string) (orders.Order, error) {
	var o orders.Order
	var status string
	err := s.DB.QueryRow(ctx, `
		SELECT id, product_id, quantity, status, created_at
		FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.ProductID, &o.Quantity, &status, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return orders.Order{}, orders.ErrNotFound
	}
	if err != nil {
		return orders.Order{}, err
	}
	o.Status = orders.Status(status)
	return o, nil
}
