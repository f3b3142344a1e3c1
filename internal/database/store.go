package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Store bundles the queries with the pool they run on so that
// multi statement operations can run in a single transaction.
type Store struct {
	*Queries
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Queries: New(pool),
		pool:    pool,
	}
}

// ExecTx runs fn inside a transaction. The transaction is committed only if fn
// returns nil.
func (s *Store) ExecTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cannot begin transaction, %w", err)
	}
	// rollback after commit is a no-op
	defer tx.Rollback(ctx)

	if err = fn(s.Queries.WithTx(tx)); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		log.Errorf("cannot commit transaction, %v", err)
		return fmt.Errorf("cannot commit transaction, %w", err)
	}
	return nil
}

// CreateTestcases inserts all testcases or none of them.
func (s *Store) CreateTestcases(ctx context.Context, args []CreateTestcaseParams) ([]Testcase, error) {
	inserted := make([]Testcase, 0, len(args))
	err := s.ExecTx(ctx, func(q *Queries) error {
		for _, arg := range args {
			testcase, err := q.CreateTestcase(ctx, arg)
			if err != nil {
				return err
			}
			inserted = append(inserted, testcase)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}
