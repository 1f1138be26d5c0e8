// Package sqlite is a self-contained question store for local runs and tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// DefaultCategories seeds an empty database.
var DefaultCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

// Store implements the question and category stores on SQLite.
type Store struct {
	conn *sql.DB
}

var (
	_ question.Store         = (*Store)(nil)
	_ question.CategoryStore = (*Store)(nil)
)

// Open connects to the database at path, creating tables and default
// categories when missing. Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if err := seedCategories(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{conn: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create categories: %w", err)
	}

	// AUTOINCREMENT keeps deleted ids from being handed out again.
	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			category INTEGER NOT NULL,
			difficulty INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create questions: %w", err)
	}

	_, err = db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_questions_category ON questions (category)`)
	return err
}

func seedCategories(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&n); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, name := range DefaultCategories {
		if _, err := db.ExecContext(ctx, "INSERT INTO categories (type) VALUES (?)", name); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return nil
}

// ListAll returns every question ordered by id.
func (s *Store) ListAll(ctx context.Context) ([]question.Question, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT id, question, answer, category, difficulty FROM questions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	return scanQuestions(rows)
}

// ListByCategory returns one category's questions ordered by id.
func (s *Store) ListByCategory(ctx context.Context, categoryID int) ([]question.Question, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT id, question, answer, category, difficulty FROM questions WHERE category = ? ORDER BY id",
		categoryID)
	if err != nil {
		return nil, fmt.Errorf("query category questions: %w", err)
	}
	return scanQuestions(rows)
}

// Count returns the number of stored questions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions").Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// Insert stores q and returns its new id.
func (s *Store) Insert(ctx context.Context, q question.Question) (int, error) {
	res, err := s.conn.ExecContext(ctx,
		"INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?)",
		q.Question, q.Answer, q.Category, q.Difficulty)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read question id: %w", err)
	}
	return int(id), nil
}

// Delete removes a question, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, id int) (bool, error) {
	res, err := s.conn.ExecContext(ctx, "DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete question: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete question: %w", err)
	}
	return n > 0, nil
}

// ListCategories returns every category ordered by id.
func (s *Store) ListCategories(ctx context.Context) ([]question.Category, error) {
	rows, err := s.conn.QueryContext(ctx, "SELECT id, type FROM categories ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	out := make([]question.Category, 0)
	for rows.Next() {
		var c question.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanQuestions(rows *sql.Rows) ([]question.Question, error) {
	defer rows.Close()

	out := make([]question.Question, 0)
	for rows.Next() {
		var q question.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
