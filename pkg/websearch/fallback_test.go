package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	name    string
	results []SearchResult
	err     error
	calls   int
}

func (s *stubProvider) Name() string {
	return s.name
}

func (s *stubProvider) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	s.calls++
	return s.results, s.err
}

func TestFallbackUsesPrimaryFirst(t *testing.T) {
	primary := &stubProvider{
		name:    "primary",
		results: []SearchResult{{Title: "NHS sodium guidance", URL: "https://example.org"}},
	}
	secondary := &stubProvider{name: "secondary"}

	chain := NewFallback(primary, secondary)
	results, err := chain.Search(context.Background(), "low sodium diet", 3)

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackDropsToSecondaryOnError(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("quota exceeded")}
	secondary := &stubProvider{
		name:    "secondary",
		results: []SearchResult{{Title: "fallback hit"}},
	}

	chain := NewFallback(primary, secondary)
	results, err := chain.Search(context.Background(), "warfarin interactions", 3)

	assert.NoError(t, err)
	assert.Equal(t, "fallback hit", results[0].Title)
	assert.Equal(t, 1, secondary.calls)
}

func TestFallbackAllProvidersFail(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("down")}
	secondary := &stubProvider{name: "secondary", err: errors.New("also down")}

	chain := NewFallback(primary, secondary)
	_, err := chain.Search(context.Background(), "anything", 3)

	assert.ErrorIs(t, err, ErrSearchUnavailable)
}

func TestFallbackEmptyResultsEverywhere(t *testing.T) {
	chain := NewFallback(&stubProvider{name: "a"}, &stubProvider{name: "b"})

	_, err := chain.Search(context.Background(), "anything", 3)
	assert.ErrorIs(t, err, ErrSearchUnavailable)
}

func TestTavilySearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var req tavilyRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-key", req.ApiKey)

		json.NewEncoder(w).Encode(tavilyResponse{
			Results: []struct {
				Title   string `json:"title"`
				URL     string `json:"url"`
				Content string `json:"content"`
			}{
				{Title: "CDC guidance", URL: "https://cdc.gov", Content: "Seek care if fever persists."},
			},
		})
	}))
	defer server.Close()

	p := NewTavilyProvider("test-key")
	p.endpoint = server.URL

	results, err := p.Search(context.Background(), "fever after discharge", 3)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "CDC guidance", results[0].Title)
	assert.Equal(t, "Seek care if fever persists.", results[0].Snippet)
}

func TestTavilyMissingKey(t *testing.T) {
	p := NewTavilyProvider("")
	_, err := p.Search(context.Background(), "anything", 3)
	assert.Error(t, err)
}

func TestDuckDuckGoSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wound care", r.URL.Query().Get("q"))
		w.Write([]byte(`{
			"Heading": "Wound care",
			"AbstractText": "Keep the incision clean and dry.",
			"AbstractURL": "https://example.org/wound",
			"RelatedTopics": [
				{"Text": "Signs of infection", "FirstURL": "https://example.org/infection"}
			]
		}`))
	}))
	defer server.Close()

	p := NewDuckDuckGoProvider()
	p.endpoint = server.URL

	results, err := p.Search(context.Background(), "wound care", 3)
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "Keep the incision clean and dry.", results[0].Snippet)
}
