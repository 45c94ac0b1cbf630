package service

import (
	"context"
	"errors"

	"postcare-ai-be/internal/agent"
	"postcare-ai-be/internal/dto"
	"postcare-ai-be/internal/repository/memory"
	"postcare-ai-be/pkg/store"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for status, history and reset requests
// against an unknown or expired session.
var ErrSessionNotFound = errors.New("session not found")

type IChatService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetStatus(ctx context.Context, sessionId string) (*dto.SessionStatusResponse, error)
	GetHistory(ctx context.Context, sessionId string) (*dto.SessionHistoryResponse, error)
	ResetSession(ctx context.Context, sessionId string) error
}

// TurnHandler is what the chat service needs from the routing state machine.
type TurnHandler interface {
	HandleTurn(ctx context.Context, session *store.Session, userMessage string) (*agent.TurnResult, error)
}

type chatService struct {
	sessions *memory.SessionRepository
	router   TurnHandler
}

func NewChatService(sessions *memory.SessionRepository, router TurnHandler) IChatService {
	return &chatService{
		sessions: sessions,
		router:   router,
	}
}

func (s *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	sessionId := request.SessionId
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	session, found := s.sessions.Get(sessionId)
	if !found {
		// Unknown and expired sessions both start over at intake.
		session = store.NewSession(sessionId)
	}

	result, err := s.router.HandleTurn(ctx, session, request.Message)
	if err != nil {
		return nil, err
	}

	s.sessions.Save(session)

	return &dto.SendChatResponse{
		SessionId:  sessionId,
		Response:   result.Text,
		ActiveRole: result.ActiveRole,
		Source:     result.Source,
		Citations:  result.Citations,
	}, nil
}

func (s *chatService) GetStatus(ctx context.Context, sessionId string) (*dto.SessionStatusResponse, error) {
	session, found := s.sessions.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	status := &dto.SessionStatusResponse{
		SessionId:  session.ID,
		ActiveRole: session.ActiveRole,
		TurnCount:  len(session.Turns),
		CreatedAt:  session.CreatedAt,
	}
	if session.Patient != nil {
		status.PatientName = session.Patient.PatientName
	}
	return status, nil
}

func (s *chatService) GetHistory(ctx context.Context, sessionId string) (*dto.SessionHistoryResponse, error) {
	session, found := s.sessions.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	turns := make([]dto.SessionTurnDTO, len(session.Turns))
	for i, turn := range session.Turns {
		turns[i] = dto.SessionTurnDTO{
			Speaker:   turn.Speaker,
			Agent:     turn.Agent,
			Text:      turn.Text,
			Timestamp: turn.Timestamp,
		}
	}
	return &dto.SessionHistoryResponse{
		SessionId: session.ID,
		Turns:     turns,
	}, nil
}

func (s *chatService) ResetSession(ctx context.Context, sessionId string) error {
	if _, found := s.sessions.Get(sessionId); !found {
		return ErrSessionNotFound
	}
	s.sessions.Delete(sessionId)
	return nil
}
