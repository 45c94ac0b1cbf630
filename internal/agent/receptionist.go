package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"postcare-ai-be/internal/agent/tool"
	"postcare-ai-be/internal/constant"
	"postcare-ai-be/pkg/llm"
	"postcare-ai-be/pkg/store"
)

// Receptionist handles intake: greeting, identifying the patient, pulling up
// the discharge record and routing medical questions onward.
type Receptionist struct {
	llm    llm.LLMProvider
	lookup *tool.PatientLookup
}

func NewReceptionist(provider llm.LLMProvider, lookup *tool.PatientLookup) *Receptionist {
	return &Receptionist{
		llm:    provider,
		lookup: lookup,
	}
}

func (r *Receptionist) Name() string {
	return constant.AgentReceptionist
}

func (r *Receptionist) Respond(ctx context.Context, session *store.Session, message string) (*Output, error) {
	messages := buildMessages(constant.ReceptionistSystemPrompt, session, message)

	raw, err := r.llm.Chat(ctx, messages, llm.WithTemperature(constant.ReceptionistTemperature))
	if err != nil {
		return nil, fmt.Errorf("receptionist chat failed: %w", err)
	}

	text, signal := ExtractSignal(raw)
	out := &Output{
		Text:   text,
		Signal: signal,
		Source: SourceConversation,
	}

	if signal.Type == SignalLookupPatient {
		return r.resolvePatient(ctx, session, out, signal.Query)
	}

	if out.Text == "" && signal.Type == SignalRouteToClinical {
		out.Text = constant.ReceptionistGreetingFallback
	}
	return out, nil
}

// resolvePatient runs the lookup the model asked for and turns the result
// into a reply. Only an unambiguous match attaches the record to the session.
func (r *Receptionist) resolvePatient(ctx context.Context, session *store.Session, out *Output, name string) (*Output, error) {
	patient, err := r.lookup.Lookup(ctx, name)

	call := ToolCall{
		Name:    r.lookup.Name(),
		Input:   name,
		Success: err == nil,
	}

	var ambiguous *tool.AmbiguousMatchError
	switch {
	case err == nil:
		call.OutputSummary = "found discharge record for " + patient.PatientName
		out.ToolCalls = append(out.ToolCalls, call)
		if !session.SetPatient(patient) && session.Patient.PatientName != patient.PatientName {
			// A different record is already on file; never confirm one the
			// session did not attach.
			out.Text = fmt.Sprintf("This session already has the discharge record for %s on file. To discuss a different patient, please reset the session and start again.", session.Patient.PatientName)
			return out, nil
		}
		out.Text = r.confirmPatient(ctx, session, patient)
		return out, nil

	case errors.Is(err, tool.ErrPatientNotFound):
		call.OutputSummary = "no matching record"
		out.ToolCalls = append(out.ToolCalls, call)
		out.Text = fmt.Sprintf("I'm sorry, I couldn't find a discharge record under the name %q. Could you double-check the spelling for me?", name)
		return out, nil

	case errors.As(err, &ambiguous):
		call.OutputSummary = fmt.Sprintf("%d candidate records", len(ambiguous.Candidates))
		out.ToolCalls = append(out.ToolCalls, call)
		out.Text = fmt.Sprintf("I found a few patients with a similar name: %s. Which one are you?", strings.Join(ambiguous.Candidates, ", "))
		return out, nil

	default:
		call.OutputSummary = err.Error()
		out.ToolCalls = append(out.ToolCalls, call)
		return nil, err
	}
}

// confirmPatient asks the model to acknowledge the record and open with
// follow-up questions. A template reply covers model failure so a successful
// lookup is never presented as an error.
func (r *Receptionist) confirmPatient(ctx context.Context, session *store.Session, patient *store.PatientContext) string {
	prompt := fmt.Sprintf(
		"The discharge record for %s was found:\n%s\nWelcome them back by first name, mention their diagnosis briefly and ask two or three follow-up questions about how they are feeling, their medications and their diet.",
		patient.PatientName, formatPatientContext(patient),
	)

	messages := buildMessages(constant.ReceptionistSystemPrompt, session, prompt)
	reply, err := r.llm.Chat(ctx, messages, llm.WithTemperature(constant.ReceptionistTemperature))
	if err == nil {
		if text, _ := ExtractSignal(reply); text != "" {
			return text
		}
	}

	return fmt.Sprintf("Thank you, %s, I found your discharge record. How have you been feeling since you left the hospital? Have you been able to keep up with your medications?", patient.PatientName)
}

func buildMessages(systemPrompt string, session *store.Session, message string) []llm.Message {
	messages := []llm.Message{{Role: "system", Content: systemPrompt}}

	if session.Patient != nil {
		messages = append(messages, llm.Message{
			Role:    "system",
			Content: "Patient discharge record on file:\n" + formatPatientContext(session.Patient),
		})
	}

	for _, turn := range session.Turns {
		role := "user"
		if turn.Speaker == constant.TurnRoleModel {
			role = "assistant"
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Text})
	}

	return append(messages, llm.Message{Role: "user", Content: message})
}

func formatPatientContext(p *store.PatientContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", p.PatientName)
	fmt.Fprintf(&b, "Discharge date: %s\n", p.DischargeDate)
	fmt.Fprintf(&b, "Primary diagnosis: %s\n", p.PrimaryDiagnosis)
	if len(p.Medications) > 0 {
		fmt.Fprintf(&b, "Medications: %s\n", string(p.Medications))
	}
	if p.DietaryRestrictions != "" {
		fmt.Fprintf(&b, "Dietary restrictions: %s\n", p.DietaryRestrictions)
	}
	if p.FollowUp != "" {
		fmt.Fprintf(&b, "Follow-up: %s\n", p.FollowUp)
	}
	if p.WarningSigns != "" {
		fmt.Fprintf(&b, "Warning signs: %s\n", p.WarningSigns)
	}
	if p.DischargeInstruction != "" {
		fmt.Fprintf(&b, "Discharge instructions: %s\n", p.DischargeInstruction)
	}
	return b.String()
}
