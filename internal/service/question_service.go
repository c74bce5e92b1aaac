package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"trivia-api/internal/data"
	"trivia-api/internal/logger"

	"github.com/go-playground/validator/v10"
)

// Outcomes other than success. Anything not wrapping one of these is a fault.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrNotFound      = errors.New("resource not found")
	ErrUnprocessable = errors.New("unprocessable")
)

const categoriesCacheKey = "categories:v1"

// QuestionRepository defines the storage operations on questions.
type QuestionRepository interface {
	ListAll(ctx context.Context) ([]data.Question, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]data.Question, error)
	Search(ctx context.Context, term string) ([]data.Question, error)
	GetByID(ctx context.Context, id int64) (*data.Question, error)
	Create(ctx context.Context, q *data.Question) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository defines the storage operations on categories.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]data.Category, error)
	GetByID(ctx context.Context, id int64) (*data.Category, error)
}

// Cache is a byte-oriented store with expiry.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
}

// QuestionServicer defines the operations exposed to the HTTP layer.
type QuestionServicer interface {
	Categories(ctx context.Context) (map[int64]string, error)
	ListQuestions(ctx context.Context, page int) (*QuestionPage, error)
	DeleteQuestion(ctx context.Context, id int64, page int) (*QuestionPage, error)
	CreateQuestion(ctx context.Context, in CreateQuestionInput) (int64, error)
	SearchQuestions(ctx context.Context, term string) ([]data.Question, error)
	QuestionsByCategory(ctx context.Context, categoryID int64) ([]data.Question, error)
	NextQuizQuestion(ctx context.Context, previous []int64, categoryID int64) (*data.Question, error)
}

// QuestionPage is one page of questions together with the size of the full set.
type QuestionPage struct {
	Questions  []data.Question
	Total      int
	Categories map[int64]string
}

// CreateQuestionInput carries a new question. Zero values mean the field was absent.
type CreateQuestionInput struct {
	Question   string `validate:"notblank"`
	Answer     string `validate:"notblank"`
	Difficulty int    `validate:"required,min=1,max=5"`
	Category   int64  `validate:"required,min=1"`
}

// QuestionService provides the trivia business logic.
type QuestionService struct {
	questions  QuestionRepository
	categories CategoryRepository
	cache      Cache
	cacheTTL   time.Duration
	log        logger.Logger
	validate   *validator.Validate
	intn       func(n int) int
}

var _ QuestionServicer = (*QuestionService)(nil)

// NewQuestionService creates a QuestionService. The category map is cached
// in c for ttl since categories cannot change through the API.
func NewQuestionService(questions QuestionRepository, categories CategoryRepository, c Cache, ttl time.Duration, log logger.Logger) *QuestionService {
	return &QuestionService{
		questions:  questions,
		categories: categories,
		cache:      c,
		cacheTTL:   ttl,
		log:        log,
		validate:   newValidator(),
		intn:       rand.Intn,
	}
}

// newValidator returns a validator that also knows "notblank": a string with
// at least one non-space character.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Categories returns every category keyed by id.
func (s *QuestionService) Categories(ctx context.Context) (map[int64]string, error) {
	if raw, err := s.cache.Get(categoriesCacheKey); err != nil {
		s.log.Error(err, "Failed to read categories from cache")
	} else if raw != nil {
		var cached map[int64]string
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]string, len(categories))
	for _, c := range categories {
		byID[c.ID] = c.Type
	}

	if raw, err := json.Marshal(byID); err == nil {
		if err := s.cache.Set(categoriesCacheKey, raw, s.cacheTTL); err != nil {
			s.log.Error(err, "Failed to write categories to cache")
		}
	}
	return byID, nil
}

// ListQuestions returns the requested page of all questions. An empty store
// yields an empty first page; any other empty page is ErrNotFound.
func (s *QuestionService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be at least 1, got %d", ErrBadRequest, page)
	}

	all, err := s.questions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	current := Paginate(page, all)
	if len(current) == 0 && (len(all) > 0 || page > 1) {
		return nil, fmt.Errorf("%w: page %d is past the last page", ErrNotFound, page)
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{Questions: current, Total: len(all), Categories: categories}, nil
}

// DeleteQuestion removes a question and returns the requested page of the
// remaining ones.
func (s *QuestionService) DeleteQuestion(ctx context.Context, id int64, page int) (*QuestionPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be at least 1, got %d", ErrBadRequest, page)
	}

	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: question %d", ErrNotFound, id)
	}

	if err := s.questions.Delete(ctx, id); err != nil {
		if errors.Is(err, data.ErrNotFound) {
			// Deleted concurrently between lookup and delete.
			return nil, fmt.Errorf("%w: question %d", ErrNotFound, id)
		}
		return nil, err
	}

	remaining, err := s.questions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &QuestionPage{Questions: Paginate(page, remaining), Total: len(remaining)}, nil
}

// CreateQuestion validates and stores a new question, returning its id.
// Question and answer text is stored exactly as given.
func (s *QuestionService) CreateQuestion(ctx context.Context, in CreateQuestionInput) (int64, error) {
	if err := s.validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}

	category, err := s.categories.GetByID(ctx, in.Category)
	if err != nil {
		return 0, err
	}
	if category == nil {
		return 0, fmt.Errorf("%w: category %d does not exist", ErrUnprocessable, in.Category)
	}

	q := &data.Question{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	}
	return s.questions.Create(ctx, q)
}

// SearchQuestions returns every question whose text contains term, ignoring case.
func (s *QuestionService) SearchQuestions(ctx context.Context, term string) ([]data.Question, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrBadRequest)
	}
	return s.questions.Search(ctx, term)
}

// QuestionsByCategory returns all questions of a category. Unknown
// categories simply have no questions.
func (s *QuestionService) QuestionsByCategory(ctx context.Context, categoryID int64) ([]data.Question, error) {
	return s.questions.ListByCategory(ctx, categoryID)
}

// NextQuizQuestion picks a random question of the category (AllCategories for
// any) that is not in previous. It returns nil, nil once every question has
// been asked.
func (s *QuestionService) NextQuizQuestion(ctx context.Context, previous []int64, categoryID int64) (*data.Question, error) {
	if categoryID < 0 {
		return nil, fmt.Errorf("%w: invalid quiz category %d", ErrBadRequest, categoryID)
	}

	var (
		candidates []data.Question
		err        error
	)
	if categoryID == AllCategories {
		candidates, err = s.questions.ListAll(ctx)
	} else {
		candidates, err = s.questions.ListByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, err
	}

	q, ok := PickQuizQuestion(candidates, previous, s.intn)
	if !ok {
		return nil, nil
	}
	return q, nil
}
