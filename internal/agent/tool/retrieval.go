package tool

import (
	"context"

	"postcare-ai-be/pkg/rag"
)

// MedicalRetrieval queries the ingested reference corpus.
type MedicalRetrieval struct {
	retriever *rag.Retriever
}

func NewMedicalRetrieval(retriever *rag.Retriever) *MedicalRetrieval {
	return &MedicalRetrieval{retriever: retriever}
}

func (t *MedicalRetrieval) Name() string {
	return "retrieve_medical_info"
}

func (t *MedicalRetrieval) Retrieve(ctx context.Context, query string) ([]rag.RetrievalResult, error) {
	return t.retriever.Query(ctx, query)
}

// Grounded reports whether the results clear the similarity bar for answering
// from the corpus instead of falling back to web search.
func (t *MedicalRetrieval) Grounded(results []rag.RetrievalResult) bool {
	return t.retriever.Grounded(results)
}
