package rag

import (
	"context"
	"errors"
	"testing"

	"postcare-ai-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
)

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

type fakeSearcher struct {
	count  int64
	chunks []*ScoredChunk
	err    error
}

func (f *fakeSearcher) Count(ctx context.Context) (int64, error) {
	return f.count, nil
}

func (f *fakeSearcher) SearchSimilarWithScore(ctx context.Context, emb []float32, limit int) ([]*ScoredChunk, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.chunks) > limit {
		return f.chunks[:limit], nil
	}
	return f.chunks, nil
}

func TestQueryEmptyIndex(t *testing.T) {
	r := NewRetriever(&fakeEmbedder{}, &fakeSearcher{count: 0}, 5, 0.35)

	_, err := r.Query(context.Background(), "what are my dietary restrictions?")
	assert.ErrorIs(t, err, ErrIndexEmpty)
}

func TestQueryReturnsCitations(t *testing.T) {
	searcher := &fakeSearcher{
		count: 10,
		chunks: []*ScoredChunk{
			{ChunkId: "c1", DocumentId: "diet.md", DocumentTitle: "Cardiac Diet Guide", Text: "Limit sodium.", Similarity: 0.91},
			{ChunkId: "c2", DocumentId: "meds.md", Text: "Take with food.", Similarity: 0.55},
		},
	}
	r := NewRetriever(&fakeEmbedder{}, searcher, 5, 0.35)

	results, err := r.Query(context.Background(), "sodium limits")
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "Cardiac Diet Guide", results[0].Citation)
	// Falls back to the document id when no title was stored.
	assert.Equal(t, "meds.md", results[1].Citation)
	assert.GreaterOrEqual(t, results[0].Similarity, results[1].Similarity)
}

func TestQueryHonorsTopK(t *testing.T) {
	chunks := make([]*ScoredChunk, 0, 8)
	for i := 0; i < 8; i++ {
		chunks = append(chunks, &ScoredChunk{ChunkId: "c", DocumentId: "d", Text: "t", Similarity: 0.9})
	}
	r := NewRetriever(&fakeEmbedder{}, &fakeSearcher{count: 8, chunks: chunks}, 5, 0.35)

	results, err := r.Query(context.Background(), "anything")
	assert.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestQueryEmbeddingFailure(t *testing.T) {
	embErr := errors.New("embedding service down")
	r := NewRetriever(&fakeEmbedder{err: embErr}, &fakeSearcher{count: 3}, 5, 0.35)

	_, err := r.Query(context.Background(), "anything")
	assert.ErrorIs(t, err, embErr)
}

func TestGroundedThreshold(t *testing.T) {
	r := NewRetriever(&fakeEmbedder{}, &fakeSearcher{}, 5, 0.35)

	tests := []struct {
		name    string
		results []RetrievalResult
		want    bool
	}{
		{
			name:    "no results",
			results: nil,
			want:    false,
		},
		{
			name:    "best match below threshold",
			results: []RetrievalResult{{Similarity: 0.20}},
			want:    false,
		},
		{
			name:    "best match at threshold",
			results: []RetrievalResult{{Similarity: 0.35}},
			want:    true,
		},
		{
			name:    "best match above threshold",
			results: []RetrievalResult{{Similarity: 0.80}, {Similarity: 0.10}},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Grounded(tt.results))
		})
	}
}
