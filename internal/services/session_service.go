package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/trait-assessment-service/internal/cache"
	"github.com/SAP-F-2025/trait-assessment-service/internal/events"
	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/SAP-F-2025/trait-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/trait-assessment-service/internal/scoring"
	"github.com/SAP-F-2025/trait-assessment-service/internal/validator"
	"github.com/google/uuid"
)

type SessionService interface {
	Start(ctx context.Context, req *StartSessionRequest) (*SessionResponse, error)
	SetAnswer(ctx context.Context, sessionID string, req *AnswerRequest) (*SessionResponse, error)
	Get(ctx context.Context, sessionID string) (*SessionResponse, error)
	// Evaluate scores the session's answers and stores the result. A session
	// can be evaluated once; later calls return ErrSessionAlreadyEvaluated.
	Evaluate(ctx context.Context, sessionID string) (*EvaluationResponse, error)
	Discard(ctx context.Context, sessionID string) error
}

type sessionService struct {
	engine    *scoring.Engine
	store     cache.SessionStore
	repo      repositories.Repository
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
	opLogger  *ServiceLogger
	now       func() time.Time
}

func NewSessionService(
	engine *scoring.Engine,
	store cache.SessionStore,
	repo repositories.Repository,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger *slog.Logger,
) SessionService {
	return &sessionService{
		engine:    engine,
		store:     store,
		repo:      repo,
		publisher: publisher,
		validator: validator,
		logger:    logger,
		opLogger:  NewServiceLogger(logger, "session"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *sessionService) Start(ctx context.Context, req *StartSessionRequest) (resp *SessionResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "start_session", req.CounselorID)
	defer func() {
		var id string
		if resp != nil {
			id = resp.ID
		}
		op.LogResult(id, "session", err)
	}()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	instrument, err := s.engine.Instrument(req.InstrumentID)
	if err != nil {
		return nil, err
	}

	collector := scoring.NewCollector(instrument)
	if s.engine.Options().SeedRankDefaults {
		collector.SeedRankDefaults()
	}

	now := s.now()
	session := &models.Session{
		ID:           uuid.NewString(),
		InstrumentID: instrument.ID,
		StudentID:    req.StudentID,
		CounselorID:  req.CounselorID,
		Status:       models.SessionInProgress,
		Responses:    collector.Snapshot(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, session); err != nil {
		return nil, storeError(err)
	}

	s.publish(ctx, events.EventSessionStarted, events.SessionStartedEvent{
		SessionID:    session.ID,
		InstrumentID: session.InstrumentID,
		StudentID:    session.StudentID,
		CounselorID:  session.CounselorID,
		StartedAt:    now,
	})

	return &SessionResponse{Session: session, Progress: collector.Progress()}, nil
}

func (s *sessionService) SetAnswer(ctx context.Context, sessionID string, req *AnswerRequest) (resp *SessionResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "set_answer", "")
	defer func() { op.LogResult(sessionID, "session", err) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.kinds() != 1 {
		return nil, ValidationErrors{*NewValidationError("answer", "exactly one of option_id, ranks, slot and rank, or clear must be set", req.QuestionID)}
	}
	if (req.Slot != "") != (req.Rank != 0) {
		return nil, ValidationErrors{*NewValidationError("rank", "slot and rank must be set together", req.Rank)}
	}

	var progress models.Progress
	session, err := s.store.Update(ctx, sessionID, func(session *models.Session) error {
		if session.Status == models.SessionEvaluated {
			return ErrSessionAlreadyEvaluated
		}

		collector, err := s.restore(session)
		if err != nil {
			return err
		}
		if err := applyAnswer(collector, req); err != nil {
			return err
		}

		session.Responses = collector.Snapshot()
		session.UpdatedAt = s.now()
		progress = collector.Progress()
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	return &SessionResponse{Session: session, Progress: progress}, nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*SessionResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, storeError(err)
	}

	collector, err := s.restore(session)
	if err != nil {
		return nil, err
	}
	return &SessionResponse{Session: session, Progress: collector.Progress()}, nil
}

func (s *sessionService) Evaluate(ctx context.Context, sessionID string) (resp *EvaluationResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "evaluate_session", "")
	defer func() { op.LogResult(sessionID, "session", err) }()

	evaluationID := uuid.NewString()
	var (
		result    models.EvaluationResult
		responses models.ResponseSet
	)

	session, err := s.store.Update(ctx, sessionID, func(session *models.Session) error {
		if session.Status == models.SessionEvaluated {
			return ErrSessionAlreadyEvaluated
		}

		collector, err := s.restore(session)
		if err != nil {
			return err
		}
		result, err = s.engine.EvaluateCollector(collector)
		if err != nil {
			return err
		}

		responses = collector.Snapshot()
		session.Status = models.SessionEvaluated
		session.EvaluationID = evaluationID
		session.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	evaluation, err := newEvaluation(evaluationID, &session.ID, session.StudentID, session.CounselorID, responses, result)
	if err == nil {
		err = s.repo.Evaluation().Create(ctx, nil, evaluation)
	}
	if err != nil {
		s.release(ctx, sessionID, evaluationID)
		return nil, err
	}

	publishCompleted(ctx, s.publisher, s.logger, evaluation, result)
	return evaluationResponseFrom(evaluation), nil
}

func (s *sessionService) Discard(ctx context.Context, sessionID string) (err error) {
	op := s.opLogger.WithOperation(ctx, "discard_session", "")
	defer func() { op.LogResult(sessionID, "session", err) }()

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return storeError(err)
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return storeError(err)
	}

	s.publish(ctx, events.EventSessionDiscarded, events.SessionDiscardedEvent{
		SessionID:    session.ID,
		InstrumentID: session.InstrumentID,
		StudentID:    session.StudentID,
		DiscardedAt:  s.now(),
	})
	return nil
}

func (s *sessionService) restore(session *models.Session) (*scoring.Collector, error) {
	instrument, err := s.engine.Instrument(session.InstrumentID)
	if err != nil {
		return nil, err
	}
	return scoring.RestoreCollector(instrument, session.Responses)
}

// release reopens a session whose result could not be stored so the caller
// can retry the evaluation.
func (s *sessionService) release(ctx context.Context, sessionID, evaluationID string) {
	_, err := s.store.Update(ctx, sessionID, func(session *models.Session) error {
		if session.EvaluationID != evaluationID {
			return nil
		}
		session.Status = models.SessionInProgress
		session.EvaluationID = ""
		return nil
	})
	if err != nil {
		s.logger.Error("failed to reopen session after storage failure", "session_id", sessionID, "error", err)
	}
}

func (s *sessionService) publish(ctx context.Context, eventType events.EventType, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("failed to publish session event", "event_type", eventType, "error", err)
	}
}

func applyAnswer(c *scoring.Collector, req *AnswerRequest) error {
	switch {
	case req.Clear:
		return c.Clear(req.QuestionID)
	case req.OptionID != "":
		return c.SetAnswer(req.QuestionID, models.Selection{OptionID: req.OptionID})
	case len(req.Ranks) > 0:
		return c.SetAnswer(req.QuestionID, models.Selection{Ranks: req.Ranks})
	default:
		return c.SetRank(req.QuestionID, req.Slot, req.Rank)
	}
}

func storeError(err error) error {
	switch {
	case errors.Is(err, cache.ErrNotFound):
		return ErrSessionNotFound
	case errors.Is(err, cache.ErrConflict):
		return ErrSessionConflict
	default:
		return err
	}
}
