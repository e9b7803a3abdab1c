package services

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/SAP-F-2025/trait-assessment-service/internal/errors"
	"github.com/SAP-F-2025/trait-assessment-service/internal/events"
	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/SAP-F-2025/trait-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/trait-assessment-service/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func personalityAnswers() models.ResponseSet {
	return models.ResponseSet{
		"per-1": {OptionID: "a"},
		"per-2": {OptionID: "a"},
		"per-3": {OptionID: "b"},
	}
}

func TestEvaluationService_EvaluateWithoutStudent(t *testing.T) {
	env := newTestEnv(t, scoring.Options{})

	resp, err := env.manager.Evaluation().Evaluate(context.Background(), &EvaluateRequest{
		InstrumentID: "personality",
		Answers:      personalityAnswers(),
	})
	require.NoError(t, err)

	assert.False(t, resp.Persisted)
	assert.Empty(t, resp.ID)
	assert.Equal(t, "personality", resp.Result.InstrumentID)
	assert.Equal(t, 3, resp.Result.AnsweredCount)
	env.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, env.publisher.GetPublishedEvents())
}

func TestEvaluationService_EvaluatePersistsForStudent(t *testing.T) {
	env := newTestEnv(t, scoring.Options{})
	env.repo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(e *models.Evaluation) bool {
		return e.StudentID == "stu-1" && e.InstrumentID == "personality" && e.SessionID == nil && e.Valid
	})).Return(nil).Once()

	resp, err := env.manager.Evaluation().Evaluate(context.Background(), &EvaluateRequest{
		InstrumentID: "personality",
		StudentID:    "stu-1",
		CounselorID:  "counselor-9",
		Answers:      personalityAnswers(),
	})
	require.NoError(t, err)

	assert.True(t, resp.Persisted)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "stu-1", resp.StudentID)
	env.repo.AssertExpectations(t)

	published := env.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventEvaluationCompleted, published[0].Type)
	data, ok := published[0].Data.(events.EvaluationCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, resp.ID, data.EvaluationID)
	assert.Equal(t, "counselor-9", data.CounselorID)
	assert.Equal(t, resp.Result.DominantDimension, data.DominantDimension)
}

func TestEvaluationService_EvaluateErrors(t *testing.T) {
	env := newTestEnv(t, scoring.Options{})
	svc := env.manager.Evaluation()

	tests := []struct {
		name     string
		req      *EvaluateRequest
		check    func(error) bool
		sentinel error
	}{
		{"missing instrument", &EvaluateRequest{}, IsValidation, nil},
		{"unknown instrument", &EvaluateRequest{InstrumentID: "astrology"}, IsNotFound, apperrors.ErrInstrumentNotFound},
		{"unknown question", &EvaluateRequest{InstrumentID: "personality", Answers: models.ResponseSet{"per-999": {OptionID: "a"}}}, IsValidation, apperrors.ErrInvalidSelection},
		{"bad ranking", &EvaluateRequest{InstrumentID: "vak", Answers: models.ResponseSet{"vak-1": {Ranks: map[models.Slot]int{models.SlotA: 3, models.SlotB: 3, models.SlotC: 1}}}}, IsValidation, apperrors.ErrInvalidRankAssignment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Evaluate(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error class: %v", err)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}
}

func TestEvaluationService_RequireComplete(t *testing.T) {
	env := newTestEnv(t, scoring.Options{RequireComplete: true})

	_, err := env.manager.Evaluation().Evaluate(context.Background(), &EvaluateRequest{
		InstrumentID: "personality",
		Answers:      personalityAnswers(),
	})
	assert.ErrorIs(t, err, apperrors.ErrIncompleteResponseSet)
}

func TestEvaluationService_EvaluateBatchKeepsInputOrder(t *testing.T) {
	env := newTestEnv(t, scoring.Options{})

	reqs := []*EvaluateRequest{
		{InstrumentID: "vak", Answers: models.ResponseSet{"vak-1": models.DefaultRanking()}},
		{InstrumentID: "personality", Answers: personalityAnswers()},
		{InstrumentID: "cognitive", Answers: models.ResponseSet{}},
		{InstrumentID: "social", Answers: models.ResponseSet{}},
		{InstrumentID: "vak", Answers: models.ResponseSet{}},
	}

	results, err := env.manager.Evaluation().EvaluateBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))
	for i, req := range reqs {
		assert.Equal(t, req.InstrumentID, results[i].Result.InstrumentID, "result %d", i)
	}
	assert.Equal(t, models.DimensionVisual, results[0].Result.DominantDimension)
}

func TestEvaluationService_EvaluateBatchFailure(t *testing.T) {
	env := newTestEnv(t, scoring.Options{})
	svc := env.manager.Evaluation()

	_, err := svc.EvaluateBatch(context.Background(), []*EvaluateRequest{
		{InstrumentID: "vak"},
		{InstrumentID: "nope"},
		{InstrumentID: "personality"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInstrumentNotFound)
	assert.Contains(t, err.Error(), "batch item 1")

	_, err = svc.EvaluateBatch(context.Background(), nil)
	assert.True(t, IsValidation(err))

	tooMany := make([]*EvaluateRequest, MaxBatchSize+1)
	_, err = svc.EvaluateBatch(context.Background(), tooMany)
	assert.True(t, IsValidation(err))
}

func TestEvaluationService_EvaluateBatchCancelled(t *testing.T) {
	env := newTestEnv(t, scoring.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.manager.Evaluation().EvaluateBatch(ctx, []*EvaluateRequest{{InstrumentID: "vak"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluationService_GetResult(t *testing.T) {
	env := newTestEnv(t, scoring.Options{})
	svc := env.manager.Evaluation()

	result, err := env.engine.Evaluate("vak", models.ResponseSet{"vak-1": models.DefaultRanking()})
	require.NoError(t, err)
	stored, err := newEvaluation("ev-1", nil, "stu-1", "", models.ResponseSet{}, result)
	require.NoError(t, err)

	env.repo.On("GetByID", mock.Anything, mock.Anything, "ev-1").Return(stored, nil).Once()
	env.repo.On("GetByID", mock.Anything, mock.Anything, "missing").Return((*models.Evaluation)(nil), nil)
	env.repo.On("GetByID", mock.Anything, mock.Anything, "broken").Return((*models.Evaluation)(nil), errors.New("connection reset"))

	first, err := svc.GetResult(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "ev-1", first.ID)
	assert.Equal(t, result.DominantDimension, first.Result.DominantDimension)

	second, err := svc.GetResult(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Equal(t, first.Result.Scores, second.Result.Scores)
	assert.Equal(t, 1, env.cache.hits)

	_, err = svc.GetResult(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrResultNotFound)
	assert.True(t, IsNotFound(err))

	_, err = svc.GetResult(context.Background(), "broken")
	assert.Error(t, err)
	assert.False(t, IsNotFound(err))

	env.repo.AssertExpectations(t)
}

func TestEvaluationService_ListByStudent(t *testing.T) {
	env := newTestEnv(t, scoring.Options{})
	svc := env.manager.Evaluation()

	result, err := env.engine.Evaluate("personality", personalityAnswers())
	require.NoError(t, err)
	e1, _ := newEvaluation("ev-1", nil, "stu-1", "", nil, result)
	sessionID := "sess-1"
	e2, _ := newEvaluation("ev-2", &sessionID, "stu-1", "", nil, result)

	filters := repositories.EvaluationFilters{InstrumentID: "personality", Limit: 10}
	env.repo.On("ListByStudent", mock.Anything, mock.Anything, "stu-1", filters).
		Return([]*models.Evaluation{e1, e2}, int64(2), nil).Once()

	list, err := svc.ListByStudent(context.Background(), "stu-1", filters)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	require.Len(t, list.Evaluations, 2)
	assert.Equal(t, "sess-1", list.Evaluations[1].SessionID)

	_, err = svc.ListByStudent(context.Background(), "", filters)
	assert.True(t, IsValidation(err))

	_, err = svc.ListByStudent(context.Background(), "stu-1", repositories.EvaluationFilters{Offset: -1})
	assert.True(t, IsValidation(err))
}
