package store

import (
	"time"

	"gorm.io/datatypes"
)

// Active agent for a session. Every session holds exactly one of these.
const (
	RoleIntake   = "INTAKE"
	RoleClinical = "CLINICAL"
)

// PatientContext is the resolved discharge record attached to a session.
// Once set it is immutable for the lifetime of the session.
type PatientContext struct {
	PatientID            string         `json:"patient_id"`
	PatientName          string         `json:"patient_name"`
	DischargeDate        string         `json:"discharge_date"`
	PrimaryDiagnosis     string         `json:"primary_diagnosis"`
	Medications          datatypes.JSON `json:"medications"`
	DietaryRestrictions  string         `json:"dietary_restrictions"`
	FollowUp             string         `json:"follow_up"`
	WarningSigns         string         `json:"warning_signs"`
	DischargeInstruction string         `json:"discharge_instructions"`
}

// Turn is one entry of the append-only conversation history.
type Turn struct {
	Speaker   string    `json:"speaker"` // "user" | "model"
	Agent     string    `json:"agent"`   // agent active when the turn was produced
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the per-conversation state held in memory between turns.
// Turns within one session are strictly sequential; distinct sessions are
// independent.
type Session struct {
	ID         string          `json:"id"`
	ActiveRole string          `json:"active_role"` // RoleIntake | RoleClinical
	Patient    *PatientContext `json:"patient,omitempty"`
	Turns      []Turn          `json:"turns"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewSession starts a session in the intake state.
func NewSession(id string) *Session {
	return &Session{
		ID:         id,
		ActiveRole: RoleIntake,
		CreatedAt:  time.Now(),
	}
}

// AppendTurn records a turn. History is append-only; existing entries are
// never rewritten.
func (s *Session) AppendTurn(speaker, agent, text string, at time.Time) {
	s.Turns = append(s.Turns, Turn{
		Speaker:   speaker,
		Agent:     agent,
		Text:      text,
		Timestamp: at,
	})
}

// SetPatient attaches the resolved patient record. The first resolution wins;
// later calls are ignored so no turn can silently swap the patient mid-session.
func (s *Session) SetPatient(p *PatientContext) bool {
	if s.Patient != nil {
		return false
	}
	s.Patient = p
	return true
}
