package services

import (
	"time"

	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
)

const MaxBatchSize = 100

type StartSessionRequest struct {
	InstrumentID string `json:"instrument_id" validate:"required,max=64"`
	StudentID    string `json:"student_id" validate:"required,max=64"`
	CounselorID  string `json:"counselor_id,omitempty" validate:"max=64"`
}

// AnswerRequest carries exactly one change to a session: a dichotomous
// option, a full ranking, a single slot rank, or clearing the question.
type AnswerRequest struct {
	QuestionID string              `json:"question_id" validate:"required"`
	OptionID   string              `json:"option_id,omitempty"`
	Ranks      map[models.Slot]int `json:"ranks,omitempty"`
	Slot       models.Slot         `json:"slot,omitempty"`
	Rank       int                 `json:"rank,omitempty"`
	Clear      bool                `json:"clear,omitempty"`
}

func (r *AnswerRequest) kinds() int {
	n := 0
	if r.OptionID != "" {
		n++
	}
	if len(r.Ranks) > 0 {
		n++
	}
	if r.Slot != "" || r.Rank != 0 {
		n++
	}
	if r.Clear {
		n++
	}
	return n
}

type SessionResponse struct {
	*models.Session
	Progress models.Progress `json:"progress"`
}

type EvaluateRequest struct {
	InstrumentID string             `json:"instrument_id" validate:"required,max=64"`
	StudentID    string             `json:"student_id,omitempty" validate:"max=64"`
	CounselorID  string             `json:"counselor_id,omitempty" validate:"max=64"`
	Answers      models.ResponseSet `json:"answers"`
}

type EvaluationResponse struct {
	ID        string                  `json:"id,omitempty"`
	SessionID string                  `json:"session_id,omitempty"`
	StudentID string                  `json:"student_id,omitempty"`
	Persisted bool                    `json:"persisted"`
	Result    models.EvaluationResult `json:"result"`
	CreatedAt time.Time               `json:"created_at"`
}

type EvaluationListResponse struct {
	Evaluations []*EvaluationResponse `json:"evaluations"`
	Total       int64                 `json:"total"`
	Limit       int                   `json:"limit"`
	Offset      int                   `json:"offset"`
}

func evaluationResponseFrom(e *models.Evaluation) *EvaluationResponse {
	resp := &EvaluationResponse{
		ID:        e.ID,
		StudentID: e.StudentID,
		Persisted: true,
		Result:    e.Result.Data(),
		CreatedAt: e.CreatedAt,
	}
	if e.SessionID != nil {
		resp.SessionID = *e.SessionID
	}
	return resp
}
