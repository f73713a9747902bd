package database

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gsouza02/backend-tcc-fitness/internal/gptservice"
)

// catalogCacheSize bounds the positive-hit exercise cache. The catalog is a
// few hundred rows in practice, so this effectively caches all of it.
const catalogCacheSize = 1024

// PlanStore adapts the pool and query layer to the plan pipeline's storage
// contract. Existence checks cache positive hits only: catalog rows are
// loaded once and never deleted in normal operation, so a known id stays
// known, while a miss is always re-checked against the database.
type PlanStore struct {
	pool  *pgxpool.Pool
	q     *Queries
	known *lru.Cache[int64, struct{}]
}

func NewPlanStore(pool *pgxpool.Pool) (*PlanStore, error) {
	known, err := lru.New[int64, struct{}](catalogCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog cache: %w", err)
	}
	return &PlanStore{pool: pool, q: New(pool), known: known}, nil
}

func (s *PlanStore) ExerciseExists(ctx context.Context, exerciseID int64) (bool, error) {
	if _, ok := s.known.Get(exerciseID); ok {
		return true, nil
	}
	exists, err := s.q.ExerciseExists(ctx, exerciseID)
	if err == nil && exists {
		s.known.Add(exerciseID, struct{}{})
	}
	return exists, err
}

// InTx runs fn against a Queries bound to a single transaction. The deferred
// rollback is a no-op once Commit succeeds.
func (s *PlanStore) InTx(ctx context.Context, fn func(gptservice.PlanWriter) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(s.q.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
