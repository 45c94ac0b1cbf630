package contract

import (
	"context"

	"postcare-ai-be/internal/entity"
	"postcare-ai-be/internal/repository/specification"
)

// ScoredCorpusChunk wraps CorpusChunk with its similarity score
type ScoredCorpusChunk struct {
	Chunk      *entity.CorpusChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type CorpusChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.CorpusChunk) error
	DeleteByDocumentId(ctx context.Context, documentId string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CorpusChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns the nearest chunks with their similarity
	// scores. Results are ordered by similarity descending; equal scores fall
	// back to insertion order so repeated queries return the same ranking.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredCorpusChunk, error)
}
