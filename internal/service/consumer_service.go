package service

import (
	"context"
	"encoding/json"
	"errors"

	"postcare-ai-be/internal/dto"
	"postcare-ai-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	ingestion IIngestionService
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	ingestion IIngestionService,
	l logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		ingestion: ingestion,
		logger:    l,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal ingest message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	report, err := cs.ingestion.IngestDocument(ctx, payload.DocumentId, payload.Title, payload.Text)
	if err != nil {
		if errors.Is(err, ErrEmptyDocument) {
			cs.logger.Warn("Consumer", "Skipping empty document", map[string]interface{}{
				"document_id": payload.DocumentId,
			})
			msg.Ack()
			return
		}
		cs.logger.Error("Consumer", "Document ingestion failed", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	cs.logger.Info("Consumer", "Document ingested", map[string]interface{}{
		"document_id":    report.DocumentId,
		"chunks_created": report.ChunksCreated,
		"chunks_skipped": report.ChunksSkipped,
	})
	msg.Ack()
}
