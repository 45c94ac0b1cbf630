package agent

import (
	"strings"

	"postcare-ai-be/internal/constant"
)

type SignalType string

const (
	SignalNone                SignalType = ""
	SignalRouteToClinical     SignalType = "route_to_clinical"
	SignalRouteToReceptionist SignalType = "route_to_receptionist"
	SignalLookupPatient       SignalType = "lookup_patient"
)

// Signal is the structured routing outcome of one model reply. Query carries
// the forwarded question for clinical handoffs and the requested name for
// patient lookups.
type Signal struct {
	Type  SignalType
	Query string
}

// ExtractSignal splits a raw model reply into the user-facing text and the
// routing signal. Marker lines are removed from the text. When a reply
// contains more than one marker the first one wins; anything after it on the
// same line becomes the query.
func ExtractSignal(raw string) (string, Signal) {
	signal := Signal{Type: SignalNone}
	var visible []string

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)

		if signal.Type == SignalNone {
			if idx := strings.Index(trimmed, constant.MarkerRouteToClinical); idx >= 0 {
				signal.Type = SignalRouteToClinical
				signal.Query = strings.TrimSpace(trimmed[idx+len(constant.MarkerRouteToClinical):])
				continue
			}
			if idx := strings.Index(trimmed, constant.MarkerLookupPatient); idx >= 0 {
				signal.Type = SignalLookupPatient
				signal.Query = strings.TrimSpace(trimmed[idx+len(constant.MarkerLookupPatient):])
				continue
			}
			if strings.Contains(trimmed, constant.MarkerRouteToReceptionist) {
				signal.Type = SignalRouteToReceptionist
				continue
			}
		}

		visible = append(visible, line)
	}

	text := strings.TrimSpace(strings.Join(visible, "\n"))
	return text, signal
}
