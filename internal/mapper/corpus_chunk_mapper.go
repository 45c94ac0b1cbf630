package mapper

import (
	"postcare-ai-be/internal/entity"
	"postcare-ai-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type CorpusChunkMapper struct{}

func NewCorpusChunkMapper() *CorpusChunkMapper {
	return &CorpusChunkMapper{}
}

func (m *CorpusChunkMapper) ToEntity(e *model.CorpusChunk) *entity.CorpusChunk {
	if e == nil {
		return nil
	}

	return &entity.CorpusChunk{
		Id:             e.Id,
		DocumentId:     e.DocumentId,
		DocumentTitle:  e.DocumentTitle,
		Text:           e.Text,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *CorpusChunkMapper) ToModel(e *entity.CorpusChunk) *model.CorpusChunk {
	if e == nil {
		return nil
	}

	return &model.CorpusChunk{
		Id:             e.Id,
		DocumentId:     e.DocumentId,
		DocumentTitle:  e.DocumentTitle,
		Text:           e.Text,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *CorpusChunkMapper) ToEntities(chunks []*model.CorpusChunk) []*entity.CorpusChunk {
	entities := make([]*entity.CorpusChunk, len(chunks))
	for i, e := range chunks {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *CorpusChunkMapper) ToModels(chunks []*entity.CorpusChunk) []*model.CorpusChunk {
	models := make([]*model.CorpusChunk, len(chunks))
	for i, e := range chunks {
		models[i] = m.ToModel(e)
	}
	return models
}
