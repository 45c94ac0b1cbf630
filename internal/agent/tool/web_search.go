package tool

import (
	"context"

	"postcare-ai-be/pkg/websearch"
)

// WebSearch answers from the open web when the corpus has nothing relevant.
type WebSearch struct {
	provider   websearch.Provider
	maxResults int
}

func NewWebSearch(provider websearch.Provider, maxResults int) *WebSearch {
	if maxResults <= 0 {
		maxResults = 3
	}
	return &WebSearch{
		provider:   provider,
		maxResults: maxResults,
	}
}

func (t *WebSearch) Name() string {
	return "search_medical_web"
}

func (t *WebSearch) Search(ctx context.Context, query string) ([]websearch.SearchResult, error) {
	return t.provider.Search(ctx, query, t.maxResults)
}
