package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"postcare-ai-be/internal/entity"
	"postcare-ai-be/internal/repository/contract"
	"postcare-ai-be/pkg/store"
)

// ErrPatientNotFound means no discharge record matched the requested name.
var ErrPatientNotFound = errors.New("patient not found")

// AmbiguousMatchError lists the candidate names when a fuzzy lookup matches
// more than one patient. The receptionist uses it to ask for clarification.
type AmbiguousMatchError struct {
	Candidates []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous patient name, %d candidates", len(e.Candidates))
}

// PatientLookup resolves a patient name to a discharge record. Exact match is
// tried first, then a case-insensitive contains search.
type PatientLookup struct {
	patients contract.PatientRepository
}

func NewPatientLookup(patients contract.PatientRepository) *PatientLookup {
	return &PatientLookup{patients: patients}
}

func (t *PatientLookup) Name() string {
	return "lookup_patient"
}

func (t *PatientLookup) Lookup(ctx context.Context, name string) (*store.PatientContext, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPatientNotFound
	}

	exact, err := t.patients.FindByNameExact(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("patient lookup failed: %w", err)
	}
	if exact != nil {
		return toPatientContext(exact), nil
	}

	matches, err := t.patients.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("patient search failed: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, ErrPatientNotFound
	case 1:
		return toPatientContext(matches[0]), nil
	default:
		candidates := make([]string, len(matches))
		for i, m := range matches {
			candidates[i] = m.PatientName
		}
		return nil, &AmbiguousMatchError{Candidates: candidates}
	}
}

func toPatientContext(p *entity.Patient) *store.PatientContext {
	return &store.PatientContext{
		PatientID:            p.Id.String(),
		PatientName:          p.PatientName,
		DischargeDate:        p.DischargeDate,
		PrimaryDiagnosis:     p.PrimaryDiagnosis,
		Medications:          p.Medications,
		DietaryRestrictions:  p.DietaryRestrictions,
		FollowUp:             p.FollowUp,
		WarningSigns:         p.WarningSigns,
		DischargeInstruction: p.DischargeInstructions,
	}
}
