package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/dto"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/models"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/repository"
)

// TestService exposes test lifecycle operations: create, read, cascade
// delete. Question writes live in the authoring service.
type TestService interface {
	Create(ctx context.Context, payload dto.CreateTestRequest) (dto.TestSummaryResponse, error)
	List(ctx context.Context) ([]dto.TestSummaryResponse, error)
	Get(ctx context.Context, id uint) (dto.TestResponse, error)
	Delete(ctx context.Context, id uint) error
}

type testService struct {
	tests     repository.TestRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTestService constructs the test service. The cache client may be nil, in
// which case every read goes to the store.
func NewTestService(testRepo repository.TestRepository, cache *redis.Client, cacheTTL time.Duration, validate *validator.Validate, logger zerolog.Logger) TestService {
	return &testService{
		tests:     testRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		validator: validate,
		logger:    logger.With().Str("component", "test_service").Logger(),
	}
}

func (s *testService) Create(ctx context.Context, payload dto.CreateTestRequest) (dto.TestSummaryResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TestSummaryResponse{}, err
	}

	test := models.Test{
		Name:            payload.Name,
		DurationMinutes: payload.DurationMinutes,
	}
	if err := s.tests.Create(ctx, &test); err != nil {
		return dto.TestSummaryResponse{}, err
	}

	s.logger.Info().Uint("test_id", test.ID).Str("name", test.Name).Msg("test created")
	return dto.NewTestSummaryResponse(test), nil
}

func (s *testService) List(ctx context.Context) ([]dto.TestSummaryResponse, error) {
	tests, err := s.tests.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.TestSummaryResponse, 0, len(tests))
	for _, test := range tests {
		summaries = append(summaries, dto.NewTestSummaryResponse(test))
	}
	return summaries, nil
}

func (s *testService) Get(ctx context.Context, id uint) (dto.TestResponse, error) {
	cacheKey := fmt.Sprintf("test:detail:%d", id)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.TestResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("test_id", id).Msg("test detail cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read test detail cache")
		}
	}

	test, err := s.tests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TestResponse{}, ErrTestNotFound
		}
		return dto.TestResponse{}, err
	}

	response := dto.NewTestResponse(test, true)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store test detail cache")
			}
		}
	}

	return response, nil
}

func (s *testService) Delete(ctx context.Context, id uint) error {
	if err := s.tests.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTestNotFound
		}
		return err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, fmt.Sprintf("test:detail:%d", id)).Err(); err != nil {
			s.logger.Warn().Err(err).Uint("test_id", id).Msg("failed to invalidate test detail cache")
		}
	}

	s.logger.Info().Uint("test_id", id).Msg("test deleted with all descendants")
	return nil
}
