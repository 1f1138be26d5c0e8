package question

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(store *memoryStore, cache CategoryCache) *Service {
	return NewService(store, store, cache, ServiceOptions{Rand: rand.New(rand.NewPCG(7, 11))}, zerolog.Nop())
}

func TestListCategories(t *testing.T) {
	svc := newTestService(seeded(0), nil)

	got, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "Science", 2: "Art"}, got.Categories)
	assert.Equal(t, 2, got.Total)
}

func TestListCategoriesUsesCache(t *testing.T) {
	cache := &memoryCache{}
	svc := newTestService(seeded(0), cache)

	_, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	_, err = svc.ListCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.sets, "second call should be served from cache")
}

func TestListCategoriesFallsBackWhenCacheFails(t *testing.T) {
	cache := &memoryCache{failGet: true}
	svc := newTestService(seeded(0), cache)

	got, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
}

func TestListQuestionsSecondPage(t *testing.T) {
	store := seeded(15)
	svc := newTestService(store, nil)

	page, err := svc.ListQuestions(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 12, 13, 14, 15}, ids(page.Questions))
	assert.Equal(t, 15, page.Total)
	assert.Nil(t, page.CurrentCategory)
	assert.Equal(t, "Art", page.Categories[2])

	store = seeded(25)
	page, err = newTestService(store, nil).ListQuestions(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, ids(page.Questions))
	assert.Equal(t, 25, page.Total)
}

func TestListQuestionsEmptyPage(t *testing.T) {
	_, err := newTestService(seeded(5), nil).ListQuestions(context.Background(), 1000)
	assert.ErrorIs(t, err, ErrNotFound)

	page, err := newTestService(seeded(0), nil).ListQuestions(context.Background(), 1)
	require.NoError(t, err, "an empty bank is a valid empty page")
	assert.Empty(t, page.Questions)
	assert.Equal(t, 0, page.Total)
}

func TestListQuestionsStoreError(t *testing.T) {
	store := seeded(3)
	store.err = errors.New("db down")

	_, err := newTestService(store, nil).ListQuestions(context.Background(), 1)
	assert.ErrorContains(t, err, "db down")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSearchQuestions(t *testing.T) {
	svc := newTestService(seeded(15), nil)

	page, err := svc.SearchQuestions(context.Background(), "NUMBER 1", 1)
	require.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, []int{1, 10, 11, 12, 13, 14, 15}, ids(page.Questions))

	all, err := svc.SearchQuestions(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Equal(t, 15, all.Total)
	assert.Len(t, all.Questions, PageSize)
}

func TestSearchQuestionsNoMatch(t *testing.T) {
	_, err := newTestService(seeded(15), nil).SearchQuestions(context.Background(), "absd", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuestionsForCategory(t *testing.T) {
	svc := newTestService(seeded(15), nil)

	page, err := svc.QuestionsForCategory(context.Background(), 1, 1)
	require.NoError(t, err)
	require.NotNil(t, page.CurrentCategory)
	assert.Equal(t, 1, *page.CurrentCategory)
	assert.Equal(t, 7, page.Total)
	for _, q := range page.Questions {
		assert.Equal(t, 1, q.Category)
	}

	_, err = svc.QuestionsForCategory(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDrawQuiz(t *testing.T) {
	svc := newTestService(seeded(15), nil)

	got, err := svc.DrawQuiz(context.Background(), QuizRequest{QuizCategory: &QuizCategory{ID: AnyCategory}})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.GreaterOrEqual(t, got.ID, 1)
	assert.LessOrEqual(t, got.ID, 15)
}

func TestDrawQuizPlaysThroughCategory(t *testing.T) {
	svc := newTestService(seeded(15), nil)
	req := QuizRequest{QuizCategory: &QuizCategory{ID: 2, Type: "Art"}}

	for i := 0; i < 8; i++ {
		got, err := svc.DrawQuiz(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, got, "draw %d", i)
		assert.Equal(t, 2, got.Category)
		assert.NotContains(t, req.PreviousQuestions, got.ID)
		req.PreviousQuestions = append(req.PreviousQuestions, got.ID)
	}

	got, err := svc.DrawQuiz(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, got, "all eight category-2 questions were asked")
}

func TestDrawQuizRequiresCategory(t *testing.T) {
	_, err := newTestService(seeded(3), nil).DrawQuiz(context.Background(), QuizRequest{PreviousQuestions: []int{}})

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "quiz_category", fieldErr.Field)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateQuestion(t *testing.T) {
	store := seeded(3)
	svc := newTestService(store, nil)

	res, err := svc.CreateQuestion(context.Background(), CreateQuestionInput{
		Question:   ptr("Who is the Chacha Chaudhary of comics?"),
		Answer:     ptr("Pran"),
		Category:   ptr(5),
		Difficulty: ptr(1),
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, res.ID)
	assert.Equal(t, 4, res.Total)
	assert.Len(t, res.Questions, 4)
}

func TestCreateQuestionAcceptsZeroValues(t *testing.T) {
	svc := newTestService(seeded(0), nil)

	_, err := svc.CreateQuestion(context.Background(), CreateQuestionInput{
		Question:   ptr(""),
		Answer:     ptr(""),
		Category:   ptr(0),
		Difficulty: ptr(0),
	}, 1)
	assert.NoError(t, err, "presence, not content, is required")
}

func TestCreateQuestionMissingField(t *testing.T) {
	store := seeded(3)
	svc := newTestService(store, nil)

	_, err := svc.CreateQuestion(context.Background(), CreateQuestionInput{
		Question: ptr("Who?"),
		Answer:   ptr("Me"),
		Category: ptr(5),
	}, 1)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "difficulty", fieldErr.Field)
	assert.ErrorIs(t, err, ErrValidation)

	n, _ := store.Count(context.Background())
	assert.Equal(t, 3, n, "store must be unchanged")
}

func TestAddQuestionSkipsListing(t *testing.T) {
	store := seeded(3)
	svc := newTestService(store, nil)

	id, err := svc.AddQuestion(context.Background(), CreateQuestionInput{
		Question:   ptr("Capital of Peru?"),
		Answer:     ptr("Lima"),
		Category:   ptr(1),
		Difficulty: ptr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, id)
	assert.Nil(t, store.queryContext(), "no list query expected")

	_, err = svc.AddQuestion(context.Background(), CreateQuestionInput{Question: ptr("Why?")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteQuestion(t *testing.T) {
	store := seeded(3)
	svc := newTestService(store, nil)

	id, err := svc.DeleteQuestion(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	_, err = svc.DeleteQuestion(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.DeleteQuestion(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
