package recorder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type captureRecorder struct {
	events []Event
}

func (c *captureRecorder) Record(ctx context.Context, event Event) {
	c.events = append(c.events, event)
}

func TestMultiFansOut(t *testing.T) {
	a := &captureRecorder{}
	b := &captureRecorder{}
	multi := NewMulti(a, b)

	multi.Record(context.Background(), Event{
		SessionId: "sess-1",
		Agent:     "clinical",
		Type:      EventToolCall,
		ToolName:  "retrieve_medical_info",
	})

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
	assert.Equal(t, "retrieve_medical_info", a.events[0].ToolName)
}

func TestMultiStampsTimestamp(t *testing.T) {
	c := &captureRecorder{}
	multi := NewMulti(c)

	before := time.Now()
	multi.Record(context.Background(), Event{Type: EventUserInput})

	assert.False(t, c.events[0].Timestamp.Before(before))
}

func TestMultiKeepsExplicitTimestamp(t *testing.T) {
	c := &captureRecorder{}
	multi := NewMulti(c)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	multi.Record(context.Background(), Event{Type: EventHandoff, Timestamp: at})

	assert.Equal(t, at, c.events[0].Timestamp)
}
