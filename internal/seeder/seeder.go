// Package seeder replaces the stored category taxonomy with the embedded tree.
// A run deletes every existing row and then inserts one row per leaf, in tree
// order, one call per row. It is not transactional: a failure leaves whatever
// was written so far, and readers can observe the empty window in between.
package seeder

import (
	"context"
	"fmt"
	"time"

	"marketadmin/internal/models"
	"marketadmin/internal/taxonomy"

	"go.uber.org/zap"
)

// Store is a category hierarchy backend
type Store interface {
	// DeleteAll removes every row and returns how many were removed
	DeleteAll(ctx context.Context) (int64, error)
	Insert(ctx context.Context, node models.CategoryNode) error
	Count(ctx context.Context) (int64, error)
	Close(ctx context.Context) error
}

// Summary describes a completed (or planned) run
type Summary struct {
	Backend    string                 `json:"backend"`
	DryRun     bool                   `json:"dryRun"`
	Deleted    int64                  `json:"deleted"`
	Inserted   int64                  `json:"inserted"`
	Stored     int64                  `json:"stored"`
	Mains      []taxonomy.MainSummary `json:"mains"`
	StartedAt  time.Time              `json:"startedAt"`
	FinishedAt time.Time              `json:"finishedAt"`
}

// Seeder runs the delete-then-insert algorithm against a Store
type Seeder struct {
	store   Store
	backend string
	tree    []taxonomy.Main
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a seeder for tree. backend names the store in logs and summaries.
func New(store Store, backend string, tree []taxonomy.Main, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		store:   store,
		backend: backend,
		tree:    tree,
		logger:  logger,
		now:     time.Now,
	}
}

// Plan returns the summary a run would produce, without touching any store
func Plan(tree []taxonomy.Main, backend string) *Summary {
	now := time.Now()
	return &Summary{
		Backend:    backend,
		DryRun:     true,
		Inserted:   int64(taxonomy.LeafCount(tree)),
		Mains:      taxonomy.Summarize(tree),
		StartedAt:  now,
		FinishedAt: now,
	}
}

// Run replaces the stored hierarchy with the tree
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		Backend:   s.backend,
		Mains:     taxonomy.Summarize(s.tree),
		StartedAt: s.now(),
	}

	deleted, err := s.store.DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("clear category hierarchy: %w", err)
	}
	summary.Deleted = deleted
	s.logger.Info("cleared category hierarchy", zap.String("backend", s.backend), zap.Int64("deleted", deleted))

	for _, node := range taxonomy.Flatten(s.tree) {
		ts := s.now()
		node.CreatedAt, node.UpdatedAt = ts, ts
		if err := s.store.Insert(ctx, node); err != nil {
			s.logger.Error("insert failed",
				zap.String("main", node.MainCategory),
				zap.String("sub", node.SubCategory),
				zap.String("leaf", node.SubSubCategory),
				zap.Int64("inserted_before_failure", summary.Inserted),
				zap.Error(err),
			)
			return nil, fmt.Errorf("insert %s / %s / %s: %w", node.MainCategory, node.SubCategory, node.SubSubCategory, err)
		}
		summary.Inserted++
	}

	stored, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count category hierarchy: %w", err)
	}
	summary.Stored = stored
	summary.FinishedAt = s.now()

	s.logger.Info("seeded category hierarchy",
		zap.String("backend", s.backend),
		zap.Int64("inserted", summary.Inserted),
		zap.Int64("stored", stored),
		zap.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	if stored != summary.Inserted {
		s.logger.Warn("stored row count differs from inserted count; another writer may be active",
			zap.Int64("inserted", summary.Inserted), zap.Int64("stored", stored))
	}
	return summary, nil
}
