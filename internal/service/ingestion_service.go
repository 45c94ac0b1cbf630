package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"postcare-ai-be/internal/dto"
	"postcare-ai-be/internal/entity"
	"postcare-ai-be/internal/pkg/logger"
	"postcare-ai-be/internal/repository/contract"
	"postcare-ai-be/pkg/chunker"
	"postcare-ai-be/pkg/embedding"
)

// ErrEmptyDocument is returned when a document has no usable text.
var ErrEmptyDocument = errors.New("document is empty")

type IIngestionService interface {
	// IngestDocument rebuilds the index entries for one document. The unit
	// report counts chunks whose embedding failed; those are skipped without
	// failing the whole document.
	IngestDocument(ctx context.Context, documentId, title, text string) (*dto.IngestUnitReport, error)
	// IngestDirectory synchronously ingests every .txt and .md file under dir.
	IngestDirectory(ctx context.Context, dir string) (*dto.IngestReport, error)
	// QueueDirectory publishes one ingestion message per corpus file and
	// returns how many were queued. The consumer does the actual work.
	QueueDirectory(ctx context.Context, dir string) (int, error)
	CorpusSize(ctx context.Context) (int64, error)
}

type ingestionService struct {
	chunks    contract.CorpusChunkRepository
	embedder  embedding.Provider
	splitter  chunker.Splitter
	publisher IPublisherService
	logger    logger.ILogger
}

func NewIngestionService(
	chunks contract.CorpusChunkRepository,
	embedder embedding.Provider,
	splitter chunker.Splitter,
	publisher IPublisherService,
	l logger.ILogger,
) IIngestionService {
	return &ingestionService{
		chunks:    chunks,
		embedder:  embedder,
		splitter:  splitter,
		publisher: publisher,
		logger:    l,
	}
}

func (s *ingestionService) IngestDocument(ctx context.Context, documentId, title, text string) (*dto.IngestUnitReport, error) {
	report := &dto.IngestUnitReport{DocumentId: documentId}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	pieces := s.splitter.Split(text)
	entities := make([]*entity.CorpusChunk, 0, len(pieces))

	for i, piece := range pieces {
		resp, err := s.embedder.Generate(ctx, piece, embedding.TaskTypeDocument)
		if err != nil {
			report.ChunksSkipped++
			s.logger.Warn("Ingestion", "Failed to embed chunk", map[string]interface{}{
				"document_id": documentId,
				"chunk_index": i,
				"error":       err.Error(),
			})
			continue
		}
		entities = append(entities, &entity.CorpusChunk{
			DocumentId:     documentId,
			DocumentTitle:  title,
			Text:           piece,
			EmbeddingValue: resp.Embedding.Values,
			ChunkIndex:     i,
		})
	}

	if len(entities) == 0 {
		// Keep whatever was indexed before instead of replacing it with nothing.
		report.Error = "all chunks failed to embed"
		return report, nil
	}

	if err := s.chunks.DeleteByDocumentId(ctx, documentId); err != nil {
		return nil, fmt.Errorf("failed to clear previous chunks for %s: %w", documentId, err)
	}
	if err := s.chunks.CreateBulk(ctx, entities); err != nil {
		return nil, fmt.Errorf("failed to store chunks for %s: %w", documentId, err)
	}

	report.ChunksCreated = len(entities)
	s.logger.Info("Ingestion", "Document indexed", map[string]interface{}{
		"document_id":    documentId,
		"chunks_created": report.ChunksCreated,
		"chunks_skipped": report.ChunksSkipped,
	})
	return report, nil
}

func (s *ingestionService) IngestDirectory(ctx context.Context, dir string) (*dto.IngestReport, error) {
	files, err := listCorpusFiles(dir)
	if err != nil {
		return nil, err
	}

	report := &dto.IngestReport{}
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			report.Units = append(report.Units, dto.IngestUnitReport{
				DocumentId: filepath.Base(path),
				Error:      err.Error(),
			})
			continue
		}

		documentId := filepath.Base(path)
		unit, err := s.IngestDocument(ctx, documentId, titleFor(documentId, string(raw)), string(raw))
		if err != nil {
			report.Units = append(report.Units, dto.IngestUnitReport{
				DocumentId: documentId,
				Error:      err.Error(),
			})
			continue
		}

		report.Documents++
		report.ChunksCreated += unit.ChunksCreated
		report.ChunksSkipped += unit.ChunksSkipped
		report.Units = append(report.Units, *unit)
	}
	return report, nil
}

func (s *ingestionService) QueueDirectory(ctx context.Context, dir string) (int, error) {
	files, err := listCorpusFiles(dir)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("Ingestion", "Skipping unreadable corpus file", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}

		documentId := filepath.Base(path)
		payload, err := json.Marshal(dto.PublishIngestDocumentMessage{
			DocumentId: documentId,
			Title:      titleFor(documentId, string(raw)),
			Text:       string(raw),
		})
		if err != nil {
			continue
		}
		if err := s.publisher.Publish(ctx, payload); err != nil {
			return queued, fmt.Errorf("failed to queue document %s: %w", documentId, err)
		}
		queued++
	}
	return queued, nil
}

func (s *ingestionService) CorpusSize(ctx context.Context) (int64, error) {
	return s.chunks.Count(ctx)
}

func listCorpusFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".txt" || ext == ".md" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// titleFor prefers the first markdown heading, falling back to the file name.
func titleFor(documentId, text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			break
		}
	}
	name := strings.TrimSuffix(documentId, filepath.Ext(documentId))
	return strings.ReplaceAll(name, "_", " ")
}
