package agent

import (
	"context"
	"fmt"

	"postcare-ai-be/pkg/store"
)

// Answer sources reported back to the caller.
const (
	SourceConversation = "conversation"
	SourceCorpus       = "corpus"
	SourceWeb          = "web"
)

// ToolCall describes one tool invocation made while producing a reply.
type ToolCall struct {
	Name          string
	Input         string
	OutputSummary string
	Success       bool
}

// Output is the result of invoking one role for one turn.
type Output struct {
	Text      string
	Signal    Signal
	Source    string
	Citations []string
	ToolCalls []ToolCall
}

// Role produces a reply for the current turn given the session state. A role
// never mutates the active-role field; routing is the state machine's job.
type Role interface {
	Name() string
	Respond(ctx context.Context, session *store.Session, message string) (*Output, error)
}

// RoleInvocationError wraps a failure inside a role so the state machine can
// tell "the model call broke" apart from routing bugs.
type RoleInvocationError struct {
	Agent string
	Err   error
}

func (e *RoleInvocationError) Error() string {
	return fmt.Sprintf("role %s failed: %v", e.Agent, e.Err)
}

func (e *RoleInvocationError) Unwrap() error {
	return e.Err
}
