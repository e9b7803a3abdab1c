package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewEvent(t *testing.T) {
	event := NewEvent(EventEvaluationCompleted, EvaluationCompletedEvent{EvaluationID: "e-1"})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventEvaluationCompleted, event.Type)
	assert.Equal(t, "trait-assessment-service", event.Source)
	assert.Equal(t, "1.0", event.Version)
	assert.False(t, event.Timestamp.IsZero())
	assert.NotEqual(t, event.ID, NewEvent(EventEvaluationCompleted, nil).ID)
}

func TestNewMessage(t *testing.T) {
	event := NewEvent(EventEvaluationCompleted, EvaluationCompletedEvent{
		EvaluationID:      "e-1",
		StudentID:         "s-1",
		InstrumentID:      "vak",
		DominantDimension: "visual",
		OverallScore:      42,
		Valid:             true,
		Scores:            []models.DimensionScore{{Dimension: "visual", Raw: 30, Percentage: 42}},
	})

	msg, err := newMessage(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, event.ID, msg.UUID)
	assert.Equal(t, "evaluation.completed", msg.Metadata.Get("event_type"))
	assert.Equal(t, "trait-assessment-service", msg.Metadata.Get("source"))

	var decoded struct {
		Type EventType                `json:"type"`
		Data EvaluationCompletedEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
	assert.Equal(t, EventEvaluationCompleted, decoded.Type)
	assert.Equal(t, "visual", decoded.Data.DominantDimension)
	assert.Equal(t, 42, decoded.Data.Scores[0].Percentage)
}

func TestMockEventPublisher_ConcurrentPublish(t *testing.T) {
	publisher := NewMockEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, publisher.Publish(context.Background(), NewEvent(EventSessionStarted, nil)))
		}()
	}
	wg.Wait()

	assert.Len(t, publisher.GetPublishedEvents(), 20)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
	assert.NoError(t, publisher.Close())
}
