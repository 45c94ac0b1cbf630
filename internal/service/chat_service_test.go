package service

import (
	"context"
	"testing"
	"time"

	"postcare-ai-be/internal/agent"
	"postcare-ai-be/internal/dto"
	"postcare-ai-be/internal/repository/memory"
	"postcare-ai-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

type stubTurnHandler struct {
	result *agent.TurnResult
}

func (s *stubTurnHandler) HandleTurn(ctx context.Context, session *store.Session, userMessage string) (*agent.TurnResult, error) {
	session.AppendTurn("user", "receptionist", userMessage, time.Now())
	session.AppendTurn("model", "receptionist", s.result.Text, time.Now())
	return s.result, nil
}

func newChatFixture() (IChatService, *memory.SessionRepository) {
	sessions := memory.NewSessionRepository(time.Hour)
	handler := &stubTurnHandler{result: &agent.TurnResult{
		Text:       "Hello! May I have your name?",
		ActiveRole: store.RoleIntake,
		Source:     agent.SourceConversation,
	}}
	return NewChatService(sessions, handler), sessions
}

func TestSendChatCreatesSession(t *testing.T) {
	svc, sessions := newChatFixture()

	resp, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "Hello"})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.SessionId)
	assert.Equal(t, store.RoleIntake, resp.ActiveRole)

	saved, found := sessions.Get(resp.SessionId)
	assert.True(t, found)
	assert.Len(t, saved.Turns, 2)
}

func TestSendChatReusesSession(t *testing.T) {
	svc, _ := newChatFixture()

	first, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "Hello"})
	assert.NoError(t, err)

	second, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		SessionId: first.SessionId,
		Message:   "My name is John Smith",
	})
	assert.NoError(t, err)
	assert.Equal(t, first.SessionId, second.SessionId)

	history, err := svc.GetHistory(context.Background(), first.SessionId)
	assert.NoError(t, err)
	assert.Len(t, history.Turns, 4)
}

func TestGetStatusUnknownSession(t *testing.T) {
	svc, _ := newChatFixture()

	_, err := svc.GetStatus(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResetDestroysSession(t *testing.T) {
	svc, sessions := newChatFixture()

	resp, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "Hello"})
	assert.NoError(t, err)

	assert.NoError(t, svc.ResetSession(context.Background(), resp.SessionId))
	_, found := sessions.Get(resp.SessionId)
	assert.False(t, found)

	assert.ErrorIs(t, svc.ResetSession(context.Background(), resp.SessionId), ErrSessionNotFound)
}
