package question

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Store is the question persistence capability the service depends on.
// List methods return questions in ascending id order.
type Store interface {
	ListAll(ctx context.Context) ([]Question, error)
	ListByCategory(ctx context.Context, categoryID int) ([]Question, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, q Question) (int, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// CategoryStore lists categories in ascending id order.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]Category, error)
}

// CategoryCache defines cache behavior (implemented by Redis-backed Cache).
// Get returns nil, nil on a miss.
type CategoryCache interface {
	Get(ctx context.Context) ([]Category, error)
	Set(ctx context.Context, categories []Category) error
}

// Service combines the store with pagination, search and quiz draws.
type Service struct {
	store      Store
	categories CategoryStore
	cache      CategoryCache
	rng        Rand
	validate   *validator.Validate
	logger     zerolog.Logger
}

type ServiceOptions struct {
	// Rand overrides the random source used for quiz draws.
	Rand Rand
}

// NewService wires the store, category source and optional cache.
func NewService(store Store, categories CategoryStore, cache CategoryCache, opts ServiceOptions, logger zerolog.Logger) *Service {
	var rng Rand = globalRand{}
	if opts.Rand != nil {
		rng = &lockedRand{src: opts.Rand}
	}
	return &Service{
		store:      store,
		categories: categories,
		cache:      cache,
		rng:        rng,
		validate:   newValidator(),
		logger:     logger.With().Str("component", "question_service").Logger(),
	}
}

// ListCategories returns every category keyed by id.
func (s *Service) ListCategories(ctx context.Context) (CategoryList, error) {
	cats, err := s.loadCategories(ctx)
	if err != nil {
		return CategoryList{}, err
	}
	return CategoryList{Categories: FormatCategories(cats), Total: len(cats)}, nil
}

// ListQuestions pages through every question. An empty page is only an error
// when the bank itself is not empty.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("count questions: %w", err)
	}

	current := Paginate(all, page)
	if len(current) == 0 && total > 0 {
		return QuestionPage{}, ErrNotFound
	}

	cats, err := s.loadCategories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:  current,
		Total:      total,
		Categories: FormatCategories(cats),
	}, nil
}

// SearchQuestions pages through the questions matching term.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (QuestionPage, error) {
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}

	matched := Search(all, term)
	current := Paginate(matched, page)
	if len(current) == 0 {
		return QuestionPage{}, ErrNotFound
	}
	return QuestionPage{Questions: current, Total: len(matched)}, nil
}

// QuestionsForCategory pages through one category's questions.
func (s *Service) QuestionsForCategory(ctx context.Context, categoryID, page int) (QuestionPage, error) {
	inCategory, err := s.store.ListByCategory(ctx, categoryID)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list category %d: %w", categoryID, err)
	}

	current := Paginate(inCategory, page)
	if len(current) == 0 {
		return QuestionPage{}, ErrNotFound
	}

	id := categoryID
	return QuestionPage{
		Questions:       current,
		Total:           len(inCategory),
		CurrentCategory: &id,
	}, nil
}

// DrawQuiz returns a random question not yet asked, or nil when none remain.
func (s *Service) DrawQuiz(ctx context.Context, req QuizRequest) (*Question, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	categoryID := req.QuizCategory.ID
	var (
		pool []Question
		err  error
	)
	if categoryID == AnyCategory {
		pool, err = s.store.ListAll(ctx)
	} else {
		pool, err = s.store.ListByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz pool: %w", err)
	}

	next := Draw(pool, req.PreviousQuestions, categoryID, s.rng)
	if next == nil {
		quizDraws.WithLabelValues(outcomeExhausted).Inc()
		s.logger.Debug().Int("category", categoryID).Int("previous", len(req.PreviousQuestions)).Msg("quiz pool exhausted")
		return nil, nil
	}
	quizDraws.WithLabelValues(outcomeQuestion).Inc()
	return next, nil
}

// CreateQuestion stores a new question and returns the refreshed listing page.
func (s *Service) CreateQuestion(ctx context.Context, in CreateQuestionInput, page int) (CreateResult, error) {
	id, err := s.AddQuestion(ctx, in)
	if err != nil {
		return CreateResult{}, err
	}

	all, err := s.store.ListAll(ctx)
	if err != nil {
		return CreateResult{}, fmt.Errorf("list questions: %w", err)
	}
	return CreateResult{
		ID:        id,
		Questions: Paginate(all, page),
		Total:     len(all),
	}, nil
}

// AddQuestion validates and stores a new question, returning its id.
func (s *Service) AddQuestion(ctx context.Context, in CreateQuestionInput) (int, error) {
	if err := s.check(in); err != nil {
		return 0, err
	}

	id, err := s.store.Insert(ctx, Question{
		Question:   *in.Question,
		Answer:     *in.Answer,
		Category:   *in.Category,
		Difficulty: *in.Difficulty,
	})
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	questionsCreated.Inc()
	s.logger.Info().Int("question_id", id).Int("category", *in.Category).Msg("question created")
	return id, nil
}

// DeleteQuestion removes a question by id.
func (s *Service) DeleteQuestion(ctx context.Context, id int) (int, error) {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete question %d: %w", id, err)
	}
	if !deleted {
		return 0, ErrNotFound
	}
	questionsDeleted.Inc()
	s.logger.Info().Int("question_id", id).Msg("question deleted")
	return id, nil
}

// Ping checks the category source, which shares the question store's backend.
func (s *Service) Ping(ctx context.Context) error {
	_, err := s.categories.ListCategories(ctx)
	return err
}

func (s *Service) loadCategories(ctx context.Context) ([]Category, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	cats, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cats); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return cats, nil
}

// check runs struct validation and reports the first missing field.
func (s *Service) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Field: verrs[0].Field()}
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
