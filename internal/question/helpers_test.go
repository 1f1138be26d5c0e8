package question

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// memoryStore is an in-memory Store and CategoryStore for tests.
type memoryStore struct {
	mu         sync.Mutex
	questions  map[int]Question
	categories []Category
	nextID     int
	err        error
	lastCtx    context.Context
}

func newMemoryStore(categories ...Category) *memoryStore {
	return &memoryStore{
		questions:  map[int]Question{},
		categories: categories,
		nextID:     1,
	}
}

// seeded returns a store holding n questions with ids 1..n spread over two categories.
func seeded(n int) *memoryStore {
	s := newMemoryStore(Category{ID: 1, Type: "Science"}, Category{ID: 2, Type: "Art"})
	for i := 1; i <= n; i++ {
		_, _ = s.Insert(context.Background(), Question{
			Question:   fmt.Sprintf("Question number %d", i),
			Answer:     fmt.Sprintf("Answer %d", i),
			Category:   i%2 + 1,
			Difficulty: i%5 + 1,
		})
	}
	return s
}

// queryContext returns the context of the most recent list call.
func (s *memoryStore) queryContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCtx
}

func (s *memoryStore) sorted(keep func(Question) bool) []Question {
	out := make([]Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memoryStore) ListAll(ctx context.Context) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCtx = ctx
	if s.err != nil {
		return nil, s.err
	}
	return s.sorted(func(Question) bool { return true }), nil
}

func (s *memoryStore) ListByCategory(ctx context.Context, categoryID int) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCtx = ctx
	if s.err != nil {
		return nil, s.err
	}
	return s.sorted(func(q Question) bool { return q.Category == categoryID }), nil
}

func (s *memoryStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions), s.err
}

func (s *memoryStore) Insert(_ context.Context, q Question) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	q.ID = s.nextID
	s.nextID++
	s.questions[q.ID] = q
	return q.ID, nil
}

func (s *memoryStore) Delete(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.questions[id]; !ok {
		return false, nil
	}
	delete(s.questions, id)
	return true, nil
}

func (s *memoryStore) ListCategories(_ context.Context) ([]Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out, s.err
}

type memoryCache struct {
	categories []Category
	gets, sets int
	failGet    bool
}

func (c *memoryCache) Get(_ context.Context) ([]Category, error) {
	c.gets++
	if c.failGet {
		return nil, errors.New("cache unavailable")
	}
	return c.categories, nil
}

func (c *memoryCache) Set(_ context.Context, categories []Category) error {
	c.sets++
	c.categories = categories
	return nil
}

func questionsWithIDs(ids ...int) []Question {
	out := make([]Question, len(ids))
	for i, id := range ids {
		out[i] = Question{ID: id, Question: fmt.Sprintf("q%d", id), Category: 1, Difficulty: 1}
	}
	return out
}

func rangeQuestions(n int) []Question {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i + 1
	}
	return questionsWithIDs(ids...)
}

func ptr[T any](v T) *T { return &v }

func jsonUnmarshal(raw []byte, dst any) error {
	return json.Unmarshal(raw, dst)
}
