package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type CorpusChunk struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId     string          `gorm:"type:varchar(255);not null;index"`
	DocumentTitle  string          `gorm:"type:varchar(255)"`
	Text           string          `gorm:"type:text;not null"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"`
	ChunkIndex     int             `gorm:"default:0"` // 0-based index for ordering
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (CorpusChunk) TableName() string {
	return "corpus_chunks"
}
