package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Interaction is one recorded event of a conversation: a turn, a tool call,
// a handoff or a role failure. Append-only.
type Interaction struct {
	Id          uuid.UUID
	SessionId   string
	PatientName string
	Agent       string // "receptionist" | "clinical"
	MessageType string // "user_input" | "agent_response" | "handoff" | "tool_call" | "error"
	Message     string
	Metadata    datatypes.JSON
	Timestamp   time.Time
}
