package entity

import (
	"time"

	"github.com/google/uuid"
)

// CorpusChunk is one retrievable unit of reference material. Chunks are
// created in bulk during ingestion and never mutated; a rebuild replaces all
// chunks of a document.
type CorpusChunk struct {
	Id             uuid.UUID
	DocumentId     string // source document identifier (file name)
	DocumentTitle  string
	Text           string
	EmbeddingValue []float32
	ChunkIndex     int // position within the source document
	CreatedAt      time.Time
}
