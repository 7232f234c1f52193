package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rezkam/taskpad/internal/application/auth"
	"github.com/rezkam/taskpad/internal/application/task"
	"github.com/rezkam/taskpad/internal/application/taxonomy"
)

// Store provides the PostgreSQL implementation of all repository interfaces.
//
// This store implements:
// - application/auth.Repository (users, profile, default taxonomy seeding)
// - application/taxonomy.Repository (priorities, statuses, categories, values)
// - application/task.Repository (tasks and tag snapshots)
type Store struct {
	pool *pgxpool.Pool
}

// Compile-time verification that Store implements all repository interfaces.
var (
	_ auth.Repository     = (*Store)(nil)
	_ taxonomy.Repository = (*Store)(nil)
	_ task.Repository     = (*Store)(nil)
)

// NewStore creates a new PostgreSQL store with the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// finalizeTx handles transaction cleanup. Rolls back on error, commits on
// success.
func finalizeTx(ctx context.Context, tx pgx.Tx, err *error) {
	if *err != nil {
		slog.ErrorContext(ctx, "transaction failed, rolling back", "error", *err)
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			slog.ErrorContext(ctx, "rollback failed",
				"original_error", *err,
				"rollback_error", rbErr)
			*err = fmt.Errorf("transaction failed: %w (rollback error: %v)", *err, rbErr)
		}
	} else {
		*err = tx.Commit(ctx)
	}
}
