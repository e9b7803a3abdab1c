package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/trait-assessment-service/internal/cache"
	"github.com/SAP-F-2025/trait-assessment-service/internal/events"
	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/SAP-F-2025/trait-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/trait-assessment-service/internal/scoring"
	"github.com/SAP-F-2025/trait-assessment-service/internal/validator"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

const resultCacheTTL = time.Hour

type EvaluationService interface {
	// Evaluate scores a complete answer set. The result is stored only when
	// the request names a student.
	Evaluate(ctx context.Context, req *EvaluateRequest) (*EvaluationResponse, error)
	// EvaluateBatch scores requests in parallel and returns results in input
	// order. The first failure cancels the remaining work.
	EvaluateBatch(ctx context.Context, reqs []*EvaluateRequest) ([]*EvaluationResponse, error)
	GetResult(ctx context.Context, id string) (*EvaluationResponse, error)
	ListByStudent(ctx context.Context, studentID string, filters repositories.EvaluationFilters) (*EvaluationListResponse, error)
}

type evaluationService struct {
	engine      *scoring.Engine
	repo        repositories.Repository
	cache       cache.CacheService
	publisher   events.EventPublisher
	validator   *validator.Validator
	logger      *slog.Logger
	opLogger    *ServiceLogger
	concurrency int
}

func NewEvaluationService(
	engine *scoring.Engine,
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger *slog.Logger,
	concurrency int,
) EvaluationService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &evaluationService{
		engine:      engine,
		repo:        repo,
		cache:       cacheService,
		publisher:   publisher,
		validator:   validator,
		logger:      logger,
		opLogger:    NewServiceLogger(logger, "evaluation"),
		concurrency: concurrency,
	}
}

func (s *evaluationService) Evaluate(ctx context.Context, req *EvaluateRequest) (resp *EvaluationResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "evaluate", req.CounselorID)
	defer func() {
		resourceID := req.InstrumentID
		if resp != nil && resp.ID != "" {
			resourceID = resp.ID
		}
		op.LogResult(resourceID, "evaluation", err)
	}()

	return s.evaluate(ctx, req)
}

func (s *evaluationService) evaluate(ctx context.Context, req *EvaluateRequest) (*EvaluationResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	result, err := s.engine.Evaluate(req.InstrumentID, req.Answers)
	if err != nil {
		return nil, err
	}

	if req.StudentID == "" {
		return &EvaluationResponse{Result: result, CreatedAt: time.Now().UTC()}, nil
	}

	evaluation, err := newEvaluation(uuid.NewString(), nil, req.StudentID, req.CounselorID, req.Answers, result)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Evaluation().Create(ctx, nil, evaluation); err != nil {
		return nil, err
	}

	publishCompleted(ctx, s.publisher, s.logger, evaluation, result)
	return evaluationResponseFrom(evaluation), nil
}

func (s *evaluationService) EvaluateBatch(ctx context.Context, reqs []*EvaluateRequest) ([]*EvaluationResponse, error) {
	if len(reqs) == 0 {
		return nil, ValidationErrors{*NewValidationError("requests", "at least one request is required", 0)}
	}
	if len(reqs) > MaxBatchSize {
		return nil, ValidationErrors{*NewValidationError("requests", fmt.Sprintf("at most %d requests are allowed", MaxBatchSize), len(reqs))}
	}

	op := s.opLogger.WithOperation(ctx, "evaluate_batch", "")
	results := make([]*EvaluationResponse, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if req == nil {
				return fmt.Errorf("batch item %d: %w", i, ErrValidationFailed)
			}
			resp, err := s.evaluate(gctx, req)
			if err != nil {
				return fmt.Errorf("batch item %d: %w", i, err)
			}
			results[i] = resp
			return nil
		})
	}

	err := g.Wait()
	op.LogResult(fmt.Sprintf("%d items", len(reqs)), "evaluation_batch", err)
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *evaluationService) GetResult(ctx context.Context, id string) (*EvaluationResponse, error) {
	key := resultCacheKey(id)
	if s.cache != nil {
		var cached EvaluationResponse
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			s.logger.Warn("evaluation cache lookup failed", "evaluation_id", id, "error", err)
		}
	}

	evaluation, err := s.repo.Evaluation().GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if evaluation == nil {
		return nil, ErrResultNotFound
	}

	resp := evaluationResponseFrom(evaluation)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp, resultCacheTTL); err != nil {
			s.logger.Warn("evaluation cache store failed", "evaluation_id", id, "error", err)
		}
	}
	return resp, nil
}

func (s *evaluationService) ListByStudent(ctx context.Context, studentID string, filters repositories.EvaluationFilters) (*EvaluationListResponse, error) {
	if studentID == "" {
		return nil, ValidationErrors{*NewValidationError("student_id", "is required", studentID)}
	}
	if filters.Limit < 0 || filters.Offset < 0 {
		return nil, ValidationErrors{*NewValidationError("limit", "limit and offset must not be negative", filters.Limit)}
	}

	evaluations, total, err := s.repo.Evaluation().ListByStudent(ctx, nil, studentID, filters)
	if err != nil {
		return nil, err
	}

	list := &EvaluationListResponse{
		Evaluations: make([]*EvaluationResponse, 0, len(evaluations)),
		Total:       total,
		Limit:       filters.Limit,
		Offset:      filters.Offset,
	}
	for _, e := range evaluations {
		list.Evaluations = append(list.Evaluations, evaluationResponseFrom(e))
	}
	return list, nil
}

func resultCacheKey(id string) string {
	return "trait:evaluation:" + id
}

func newEvaluation(id string, sessionID *string, studentID, counselorID string, answers models.ResponseSet, result models.EvaluationResult) (*models.Evaluation, error) {
	encoded, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	valid := result.Validity == nil || result.Validity.Valid
	return &models.Evaluation{
		ID:                id,
		SessionID:         sessionID,
		StudentID:         studentID,
		CounselorID:       counselorID,
		InstrumentID:      result.InstrumentID,
		OverallScore:      result.OverallScore,
		DominantDimension: result.DominantDimension,
		AnsweredCount:     result.AnsweredCount,
		QuestionCount:     result.QuestionCount,
		Valid:             valid,
		Result:            datatypes.NewJSONType(result),
		Answers:           datatypes.JSON(encoded),
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// publishCompleted never fails the caller; the evaluation is already stored.
func publishCompleted(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, e *models.Evaluation, result models.EvaluationResult) {
	if publisher == nil {
		return
	}

	data := events.EvaluationCompletedEvent{
		EvaluationID:      e.ID,
		StudentID:         e.StudentID,
		CounselorID:       e.CounselorID,
		InstrumentID:      e.InstrumentID,
		DominantDimension: e.DominantDimension,
		OverallScore:      e.OverallScore,
		Valid:             e.Valid,
		Scores:            result.Scores,
		CompletedAt:       e.CreatedAt,
	}
	if e.SessionID != nil {
		data.SessionID = *e.SessionID
	}

	if err := publisher.Publish(ctx, events.NewEvent(events.EventEvaluationCompleted, data)); err != nil {
		logger.Error("failed to publish evaluation completed event", "evaluation_id", e.ID, "error", err)
	}
}
