package agent

import (
	"context"
	"time"

	"postcare-ai-be/internal/constant"
	"postcare-ai-be/internal/pkg/recorder"
	"postcare-ai-be/pkg/store"
)

// TurnResult is what one user message produced after routing.
type TurnResult struct {
	Text       string
	ActiveRole string
	Source     string
	Citations  []string
}

// Router is the conversation state machine. It owns the active-role field of
// the session, delegates each turn to exactly one role (two when that role
// hands off) and records everything on the interaction trail.
//
// Failure contract: when a role invocation fails the user gets the fixed
// apology and the session is left exactly as it was, so the next message
// retries from the same state.
type Router struct {
	receptionist Role
	clinical     Role
	rec          recorder.Recorder
	turnTimeout  time.Duration
}

func NewRouter(receptionist, clinical Role, rec recorder.Recorder, turnTimeout time.Duration) *Router {
	if turnTimeout <= 0 {
		turnTimeout = 60 * time.Second
	}
	return &Router{
		receptionist: receptionist,
		clinical:     clinical,
		rec:          rec,
		turnTimeout:  turnTimeout,
	}
}

func (r *Router) HandleTurn(ctx context.Context, session *store.Session, userMessage string) (*TurnResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.turnTimeout)
	defer cancel()

	active := r.activeRole(session)

	r.rec.Record(ctx, recorder.Event{
		SessionId:   session.ID,
		PatientName: patientName(session),
		Agent:       active.Name(),
		Type:        recorder.EventUserInput,
		Message:     userMessage,
		Success:     true,
	})

	started := time.Now()
	out, err := active.Respond(ctx, session, userMessage)
	if err != nil {
		return r.failTurn(ctx, session, active.Name(), err)
	}

	// A single handoff per turn. The receiving role answers the same user
	// message; its own routing signal is ignored so two confused roles cannot
	// bounce a message back and forth forever.
	if next, query, handoff := r.handoffTarget(session, out); handoff {
		if query == "" {
			query = userMessage
		}
		previousRole := session.ActiveRole

		r.rec.Record(ctx, recorder.Event{
			SessionId:   session.ID,
			PatientName: patientName(session),
			Agent:       active.Name(),
			Type:        recorder.EventHandoff,
			Message:     query,
			FromRole:    previousRole,
			ToRole:      roleStateFor(next),
			Success:     true,
		})

		session.ActiveRole = roleStateFor(next)

		r.recordToolCalls(ctx, session, active.Name(), out.ToolCalls)

		nextOut, err := next.Respond(ctx, session, query)
		if err != nil {
			session.ActiveRole = previousRole
			return r.failTurn(ctx, session, next.Name(), err)
		}
		out = nextOut
		active = next
	}

	now := time.Now()
	session.AppendTurn(constant.TurnRoleUser, active.Name(), userMessage, now)
	session.AppendTurn(constant.TurnRoleModel, active.Name(), out.Text, now)

	r.recordToolCalls(ctx, session, active.Name(), out.ToolCalls)
	r.rec.Record(ctx, recorder.Event{
		SessionId:   session.ID,
		PatientName: patientName(session),
		Agent:       active.Name(),
		Type:        recorder.EventAgentResponse,
		Message:     out.Text,
		Success:     true,
		LatencyMs:   time.Since(started).Milliseconds(),
	})

	return &TurnResult{
		Text:       out.Text,
		ActiveRole: session.ActiveRole,
		Source:     out.Source,
		Citations:  out.Citations,
	}, nil
}

func (r *Router) activeRole(session *store.Session) Role {
	if session.ActiveRole == store.RoleClinical {
		return r.clinical
	}
	return r.receptionist
}

// handoffTarget resolves a routing signal against the current state. Signals
// that would not change the state are ignored.
func (r *Router) handoffTarget(session *store.Session, out *Output) (Role, string, bool) {
	switch out.Signal.Type {
	case SignalRouteToClinical:
		if session.ActiveRole != store.RoleClinical {
			return r.clinical, out.Signal.Query, true
		}
	case SignalRouteToReceptionist:
		if session.ActiveRole != store.RoleIntake {
			return r.receptionist, "", true
		}
	}
	return nil, "", false
}

func (r *Router) failTurn(ctx context.Context, session *store.Session, agentName string, err error) (*TurnResult, error) {
	invocationErr := &RoleInvocationError{Agent: agentName, Err: err}

	r.rec.Record(ctx, recorder.Event{
		SessionId:   session.ID,
		PatientName: patientName(session),
		Agent:       agentName,
		Type:        recorder.EventError,
		Message:     invocationErr.Error(),
		Success:     false,
	})

	return &TurnResult{
		Text:       constant.ApologyMessage,
		ActiveRole: session.ActiveRole,
	}, nil
}

func (r *Router) recordToolCalls(ctx context.Context, session *store.Session, agentName string, calls []ToolCall) {
	for _, call := range calls {
		r.rec.Record(ctx, recorder.Event{
			SessionId:     session.ID,
			PatientName:   patientName(session),
			Agent:         agentName,
			Type:          recorder.EventToolCall,
			Message:       call.Name,
			ToolName:      call.Name,
			ToolInput:     call.Input,
			OutputSummary: call.OutputSummary,
			Success:       call.Success,
		})
	}
}

func roleStateFor(role Role) string {
	if role.Name() == constant.AgentClinical {
		return store.RoleClinical
	}
	return store.RoleIntake
}

func patientName(session *store.Session) string {
	if session.Patient == nil {
		return ""
	}
	return session.Patient.PatientName
}
