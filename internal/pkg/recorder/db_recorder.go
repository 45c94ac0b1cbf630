package recorder

import (
	"context"
	"encoding/json"
	"time"

	"postcare-ai-be/internal/entity"
	"postcare-ai-be/internal/pkg/logger"
	"postcare-ai-be/internal/repository/contract"

	"gorm.io/datatypes"
)

// DBRecorder appends events to the interactions table. Inserts run with a
// short timeout detached from the request context so a finished turn still
// gets recorded.
type DBRecorder struct {
	interactions contract.InteractionRepository
	logger       logger.ILogger
}

func NewDBRecorder(interactions contract.InteractionRepository, l logger.ILogger) *DBRecorder {
	return &DBRecorder{
		interactions: interactions,
		logger:       l,
	}
}

func (r *DBRecorder) Record(ctx context.Context, event Event) {
	metadata := map[string]interface{}{
		"success": event.Success,
	}
	if event.ToolName != "" {
		metadata["tool_name"] = event.ToolName
		metadata["tool_input"] = event.ToolInput
		metadata["output_summary"] = event.OutputSummary
	}
	if event.Type == EventHandoff {
		metadata["from_role"] = event.FromRole
		metadata["to_role"] = event.ToRole
	}
	if event.LatencyMs > 0 {
		metadata["latency_ms"] = event.LatencyMs
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		raw = []byte("{}")
	}

	row := &entity.Interaction{
		SessionId:   event.SessionId,
		PatientName: event.PatientName,
		Agent:       event.Agent,
		MessageType: event.Type,
		Message:     event.Message,
		Metadata:    datatypes.JSON(raw),
		Timestamp:   event.Timestamp,
	}
	if row.Timestamp.IsZero() {
		row.Timestamp = time.Now()
	}

	insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := r.interactions.Create(insertCtx, row); err != nil {
		r.logger.Warn("Recorder", "Failed to persist interaction", map[string]interface{}{
			"session_id": event.SessionId,
			"error":      err.Error(),
		})
	}
}
