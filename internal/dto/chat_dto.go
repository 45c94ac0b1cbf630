package dto

import "time"

type SendChatRequest struct {
	SessionId string `json:"session_id,omitempty"`
	Message   string `json:"message" validate:"required,max=4000"`
}

type SendChatResponse struct {
	SessionId  string   `json:"session_id"`
	Response   string   `json:"response"`
	ActiveRole string   `json:"active_role"`
	Source     string   `json:"source,omitempty"` // "conversation" | "corpus" | "web"
	Citations  []string `json:"citations,omitempty"`
}

type SessionStatusResponse struct {
	SessionId   string    `json:"session_id"`
	ActiveRole  string    `json:"active_role"`
	PatientName string    `json:"patient_name,omitempty"`
	TurnCount   int       `json:"turn_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type SessionTurnDTO struct {
	Speaker   string    `json:"speaker"`
	Agent     string    `json:"agent"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type SessionHistoryResponse struct {
	SessionId string           `json:"session_id"`
	Turns     []SessionTurnDTO `json:"turns"`
}
