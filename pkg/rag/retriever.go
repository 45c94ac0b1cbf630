package rag

import (
	"context"
	"errors"
	"fmt"

	"postcare-ai-be/pkg/embedding"
)

// ErrIndexEmpty is returned when a query arrives before any document has been
// ingested. Callers should treat it as "no grounded answer available", not as
// an infrastructure failure.
var ErrIndexEmpty = errors.New("retrieval index is empty")

// ScoredChunk is one candidate returned by the vector index.
type ScoredChunk struct {
	ChunkId       string
	DocumentId    string
	DocumentTitle string
	Text          string
	Similarity    float64
}

// Searcher is the slice of the chunk store the retriever needs.
type Searcher interface {
	Count(ctx context.Context) (int64, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredChunk, error)
}

// RetrievalResult is a chunk ready to be cited in a grounded answer.
type RetrievalResult struct {
	ChunkId    string
	DocumentId string
	Text       string
	Similarity float64
	Citation   string
}

type Retriever struct {
	embedder  embedding.Provider
	searcher  Searcher
	topK      int
	threshold float64
}

func NewRetriever(embedder embedding.Provider, searcher Searcher, topK int, threshold float64) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	return &Retriever{
		embedder:  embedder,
		searcher:  searcher,
		topK:      topK,
		threshold: threshold,
	}
}

// Query embeds the question and returns the top candidates, best first.
func (r *Retriever) Query(ctx context.Context, query string) ([]RetrievalResult, error) {
	count, err := r.searcher.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check index size: %w", err)
	}
	if count == 0 {
		return nil, ErrIndexEmpty
	}

	resp, err := r.embedder.Generate(ctx, query, embedding.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	chunks, err := r.searcher.SearchSimilarWithScore(ctx, resp.Embedding.Values, r.topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	results := make([]RetrievalResult, len(chunks))
	for i, c := range chunks {
		citation := c.DocumentTitle
		if citation == "" {
			citation = c.DocumentId
		}
		results[i] = RetrievalResult{
			ChunkId:    c.ChunkId,
			DocumentId: c.DocumentId,
			Text:       c.Text,
			Similarity: c.Similarity,
			Citation:   citation,
		}
	}
	return results, nil
}

// Grounded reports whether the results are confident enough to answer from.
// The decision looks at the best match only.
func (r *Retriever) Grounded(results []RetrievalResult) bool {
	if len(results) == 0 {
		return false
	}
	return results[0].Similarity >= r.threshold
}
