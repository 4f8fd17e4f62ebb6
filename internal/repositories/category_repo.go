package repositories

import (
	"context"
	"fmt"

	"marketadmin/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CategoryHierarchyRepository stores the flattened category taxonomy
type CategoryHierarchyRepository interface {
	DeleteAll(ctx context.Context) (int64, error)
	Insert(ctx context.Context, node models.CategoryNode) error
	Count(ctx context.Context) (int64, error)
	Close(ctx context.Context) error
}

// PgxPool is the subset of *pgxpool.Pool the postgres repository uses
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

type categoryRepo struct {
	db PgxPool
}

// NewCategoryRepo creates a postgres-backed repository. The table must exist;
// database.Migrate creates it.
func NewCategoryRepo(db PgxPool) CategoryHierarchyRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM category_hierarchies`)
	if err != nil {
		return 0, fmt.Errorf("delete category hierarchies: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *categoryRepo) Insert(ctx context.Context, node models.CategoryNode) error {
	query := `
		INSERT INTO category_hierarchies (id, main_category, sub_category, sub_sub_category, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, uuid.New(), node.MainCategory, node.SubCategory, node.SubSubCategory,
		node.IsActive, node.CreatedAt, node.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert category hierarchy: %w", err)
	}
	return nil
}

func (r *categoryRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM category_hierarchies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count category hierarchies: %w", err)
	}
	return n, nil
}

func (r *categoryRepo) Close(context.Context) error {
	r.db.Close()
	return nil
}
