package recorder

import (
	"context"

	"postcare-ai-be/internal/pkg/logger"
)

// LogRecorder writes interaction events to the isolated interaction log file.
type LogRecorder struct {
	logger logger.ILogger
}

func NewLogRecorder(l logger.ILogger) *LogRecorder {
	return &LogRecorder{logger: l}
}

func (r *LogRecorder) Record(ctx context.Context, event Event) {
	details := map[string]interface{}{
		"session_id": event.SessionId,
		"agent":      event.Agent,
		"type":       event.Type,
		"success":    event.Success,
	}
	if event.PatientName != "" {
		details["patient_name"] = event.PatientName
	}
	if event.ToolName != "" {
		details["tool_name"] = event.ToolName
		details["tool_input"] = event.ToolInput
		details["output_summary"] = event.OutputSummary
	}
	if event.Type == EventHandoff {
		details["from_role"] = event.FromRole
		details["to_role"] = event.ToRole
	}
	if event.LatencyMs > 0 {
		details["latency_ms"] = event.LatencyMs
	}

	if event.Type == EventError {
		r.logger.Error("Interaction", event.Message, details)
		return
	}
	r.logger.Info("Interaction", event.Message, details)
}
