// Package store wraps db.Querier with transaction support and groups the
// write operations that need more than a single generated query: bill number
// allocation, the dispatch run audit trail, and the email delivery log.
//
// Single-query reads (GetAppSetting, GetSalesSummary, etc.) should be called
// directly on db.Querier.
//
// Dependency rule: store imports db and calendar only. It never imports api,
// dispatch, email, or reports.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"

	"github.com/pharmadesk/report-dispatch/internal/db"
)

// Store holds a *sql.DB for starting transactions and a db.Querier for
// executing queries outside of transactions.
type Store struct {
	// pool is the raw connection pool, used only to begin transactions.
	pool *sql.DB

	// q is the Querier used for non-transactional calls.
	q db.Querier
}

// New creates a Store from a live connection pool. The pool must already be
// open and verified (e.g. via db.PingContext) before calling New.
func New(pool *sql.DB, q db.Querier) *Store {
	return &Store{pool: pool, q: q}
}

// txQuerier receives a transactional Querier. Returning a non-nil error
// causes withTx to roll back.
type txQuerier func(ctx context.Context, q db.Querier) error

// withTx begins a serializable transaction, passes a Querier scoped to it to
// fn, and commits on success or rolls back on any error (including panics).
func (s *Store) withTx(ctx context.Context, fn txQuerier) error {
	tx, err := s.pool.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var txQ db.Querier
	if queries, ok := s.q.(*db.Queries); ok {
		// Re-use prepared statements scoped to the transaction.
		txQ = queries.WithTx(tx)
	} else {
		txQ = db.New(tx)
	}

	if err := fn(ctx, txQ); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("store: fn error: %w; rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit transaction: %w", err)
	}
	return nil
}

// pgCode returns the SQLSTATE of a Postgres error, or "" for anything else.
func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// isRetryable reports whether a serializable transaction should be re-run.
func isRetryable(err error) bool {
	switch pgCode(err) {
	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return true
	}
	return false
}
