package bootstrap

import (
	"context"

	"postcare-ai-be/internal/repository/contract"
	"postcare-ai-be/pkg/rag"
)

// chunkSearcher adapts the corpus chunk repository to the retriever.
type chunkSearcher struct {
	repo contract.CorpusChunkRepository
}

func (s *chunkSearcher) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *chunkSearcher) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*rag.ScoredChunk, error) {
	scored, err := s.repo.SearchSimilarWithScore(ctx, embedding, limit)
	if err != nil {
		return nil, err
	}

	chunks := make([]*rag.ScoredChunk, len(scored))
	for i, sc := range scored {
		chunks[i] = &rag.ScoredChunk{
			ChunkId:       sc.Chunk.Id.String(),
			DocumentId:    sc.Chunk.DocumentId,
			DocumentTitle: sc.Chunk.DocumentTitle,
			Text:          sc.Chunk.Text,
			Similarity:    sc.Similarity,
		}
	}
	return chunks, nil
}
