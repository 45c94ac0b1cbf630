package implementation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// newDryRunDB builds SQL without a live connection and captures the last
// generated query statement.
func newDryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("failed to open dry-run db: %v", err)
	}

	var captured string
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	if err != nil {
		t.Fatalf("failed to register capture callback: %v", err)
	}

	return db, &captured
}

func TestSearchSimilarQueryShape(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewCorpusChunkRepository(db)

	_, err := repo.SearchSimilarWithScore(context.Background(), []float32{0.1, 0.2, 0.3}, 5)

	assert.NoError(t, err)
	// Cosine similarity computed in SQL from pgvector cosine distance.
	assert.Contains(t, *captured, "1 - (embedding_value <=> ?) as similarity")
	// Equal-similarity ties must rank deterministically.
	assert.Contains(t, *captured, "ORDER BY similarity DESC, document_id ASC, chunk_index ASC")
	assert.Contains(t, *captured, "LIMIT")
}

func TestSearchSimilarDefaultsLimit(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewCorpusChunkRepository(db)

	_, err := repo.SearchSimilarWithScore(context.Background(), []float32{0.1}, 0)

	assert.NoError(t, err)
	assert.Contains(t, *captured, "LIMIT")
}
