package events

import (
	"time"

	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/google/uuid"
)

// EventType names an event on the evaluation topic
type EventType string

const (
	EventSessionStarted      EventType = "session.started"
	EventSessionDiscarded    EventType = "session.discarded"
	EventEvaluationCompleted EventType = "evaluation.completed"
)

const (
	eventSource  = "trait-assessment-service"
	eventVersion = "1.0"
)

// Event is the envelope for everything published by the service
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

type SessionStartedEvent struct {
	SessionID    string    `json:"session_id"`
	InstrumentID string    `json:"instrument_id"`
	StudentID    string    `json:"student_id"`
	CounselorID  string    `json:"counselor_id,omitempty"`
	StartedAt    time.Time `json:"started_at"`
}

type SessionDiscardedEvent struct {
	SessionID    string    `json:"session_id"`
	InstrumentID string    `json:"instrument_id"`
	StudentID    string    `json:"student_id"`
	DiscardedAt  time.Time `json:"discarded_at"`
}

// EvaluationCompletedEvent is published once per persisted evaluation
type EvaluationCompletedEvent struct {
	EvaluationID      string                  `json:"evaluation_id"`
	SessionID         string                  `json:"session_id,omitempty"`
	StudentID         string                  `json:"student_id"`
	CounselorID       string                  `json:"counselor_id,omitempty"`
	InstrumentID      string                  `json:"instrument_id"`
	DominantDimension string                  `json:"dominant_dimension"`
	OverallScore      int                     `json:"overall_score"`
	Valid             bool                    `json:"valid"`
	Scores            []models.DimensionScore `json:"scores"`
	CompletedAt       time.Time               `json:"completed_at"`
}
