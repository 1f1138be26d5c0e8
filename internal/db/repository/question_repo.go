package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

const (
	listQuestions = `
		SELECT id, question, answer, category, difficulty
		FROM questions
		ORDER BY id`
	listQuestionsByCategory = `
		SELECT id, question, answer, category, difficulty
		FROM questions
		WHERE category = $1
		ORDER BY id`
	countQuestions = `SELECT COUNT(*) FROM questions`
	insertQuestion = `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	deleteQuestion = `DELETE FROM questions WHERE id = $1`
)

// QuestionRepository stores questions in Postgres.
type QuestionRepository struct {
	db DBTX
}

var _ question.Store = (*QuestionRepository)(nil)

func NewQuestionRepository(db DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListAll returns every question ordered by id.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]question.Question, error) {
	rows, err := r.db.Query(ctx, listQuestions)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	return scanQuestions(rows)
}

// ListByCategory returns one category's questions ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]question.Question, error) {
	rows, err := r.db.Query(ctx, listQuestionsByCategory, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category questions: %w", err)
	}
	return scanQuestions(rows)
}

// Count returns the number of stored questions.
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, countQuestions).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return n, nil
}

// Insert stores q and returns the id assigned by the database.
func (r *QuestionRepository) Insert(ctx context.Context, q question.Question) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, insertQuestion, q.Question, q.Answer, q.Category, q.Difficulty).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert question: %w", err)
	}
	return id, nil
}

// Delete removes a question, reporting whether it existed.
func (r *QuestionRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete question: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanQuestions(rows pgx.Rows) ([]question.Question, error) {
	defer rows.Close()

	out := make([]question.Question, 0)
	for rows.Next() {
		var q question.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}
	return out, nil
}
