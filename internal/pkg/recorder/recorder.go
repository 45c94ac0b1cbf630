package recorder

import (
	"context"
	"time"
)

// Event types written to the interaction trail.
const (
	EventUserInput     = "user_input"
	EventAgentResponse = "agent_response"
	EventHandoff       = "handoff"
	EventToolCall      = "tool_call"
	EventError         = "error"
)

// Event is one observable step of a conversation turn.
type Event struct {
	SessionId     string
	PatientName   string
	Agent         string
	Type          string
	Message       string
	ToolName      string
	ToolInput     string
	OutputSummary string
	FromRole      string
	ToRole        string
	Success       bool
	LatencyMs     int64
	Timestamp     time.Time
}

// Recorder persists events best-effort. A failing recorder must never block
// or fail the conversation turn it is describing.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// Multi fans an event out to every recorder.
type Multi struct {
	recorders []Recorder
}

func NewMulti(recorders ...Recorder) *Multi {
	return &Multi{recorders: recorders}
}

func (m *Multi) Record(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	for _, r := range m.recorders {
		r.Record(ctx, event)
	}
}
