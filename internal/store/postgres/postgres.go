// Package postgres implements store.Store on a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"VIAJAPLUS_BACK-END/internal/store"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every query method
// works identically inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the pgx-backed implementation of store.Store.
type Store struct {
	pool *pgxpool.Pool
	q    querier
	tx   pgx.Tx
}

// New creates a Store on top of an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: pool}
}

// Transact runs fn inside a single database transaction. Nested calls reuse
// the ambient transaction instead of opening a new one.
func (s *Store) Transact(ctx context.Context, fn func(store.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txStore := &Store{pool: s.pool, q: tx, tx: tx}
	if err := fn(txStore); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// mapError converts pgx errors into the store sentinel errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return store.ErrDuplicate
	}
	return err
}
