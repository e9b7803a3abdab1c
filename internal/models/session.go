package models

import "time"

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionEvaluated  SessionStatus = "evaluated"
)

// Session is one respondent's in-progress pass through an instrument.
type Session struct {
	ID           string        `json:"id"`
	InstrumentID string        `json:"instrument_id"`
	StudentID    string        `json:"student_id"`
	CounselorID  string        `json:"counselor_id,omitempty"`
	Status       SessionStatus `json:"status"`
	Responses    ResponseSet   `json:"responses"`
	EvaluationID string        `json:"evaluation_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type Progress struct {
	Answered   int `json:"answered"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}
