package websearch

import (
	"context"
	"errors"
)

// ErrSearchUnavailable means every configured provider failed. The caller
// decides how to phrase that to the user.
var ErrSearchUnavailable = errors.New("web search unavailable")

type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Provider is a single web search backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// Fallback tries each provider in order and returns the first non-empty
// answer. It only fails when the whole chain is exhausted.
type Fallback struct {
	providers []Provider
}

func NewFallback(providers ...Provider) *Fallback {
	return &Fallback{providers: providers}
}

func (f *Fallback) Name() string {
	return "fallback"
}

func (f *Fallback) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	var lastErr error
	for _, p := range f.providers {
		results, err := p.Search(ctx, query, maxResults)
		if err != nil {
			lastErr = err
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
	}
	if lastErr != nil {
		return nil, errors.Join(ErrSearchUnavailable, lastErr)
	}
	return nil, ErrSearchUnavailable
}
