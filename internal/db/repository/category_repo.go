package repository

import (
	"context"
	"fmt"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

const listCategories = `SELECT id, type FROM categories ORDER BY id`

// CategoryRepository reads categories from Postgres.
type CategoryRepository struct {
	db DBTX
}

var _ question.CategoryStore = (*CategoryRepository)(nil)

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListCategories returns every category ordered by id.
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]question.Category, error) {
	rows, err := r.db.Query(ctx, listCategories)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	out := make([]question.Category, 0)
	for rows.Next() {
		var c question.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return out, nil
}
