package implementation

import (
	"context"

	"postcare-ai-be/internal/entity"
	"postcare-ai-be/internal/mapper"
	"postcare-ai-be/internal/model"
	"postcare-ai-be/internal/repository/contract"
	"postcare-ai-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CorpusChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CorpusChunkMapper
}

func NewCorpusChunkRepository(db *gorm.DB) contract.CorpusChunkRepository {
	return &CorpusChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewCorpusChunkMapper(),
	}
}

func (r *CorpusChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CorpusChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.CorpusChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.CorpusChunk, len(chunks))
	for i, e := range chunks {
		models[i] = r.mapper.ToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Update IDs back to entities
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *CorpusChunkRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId string) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.CorpusChunk{}).Error
}

func (r *CorpusChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CorpusChunk, error) {
	var models []*model.CorpusChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CorpusChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CorpusChunk{}).Count(&count).Error
	return count, err
}

func (r *CorpusChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredCorpusChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	// So we compute: 1 - (embedding_value <=> query_vector) = cosine_similarity
	type result struct {
		model.CorpusChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("corpus_chunks").
		Select("corpus_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Order("similarity DESC, document_id ASC, chunk_index ASC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredCorpusChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredCorpusChunk{
			Chunk:      r.mapper.ToEntity(&res.CorpusChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
