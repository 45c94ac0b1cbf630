package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const duckDuckGoEndpoint = "https://api.duckduckgo.com/"

// DuckDuckGoProvider uses the keyless instant answer API. It is the safety
// net behind Tavily, so coverage matters more than ranking quality.
type DuckDuckGoProvider struct {
	endpoint   string
	httpClient *http.Client
}

func NewDuckDuckGoProvider() *DuckDuckGoProvider {
	return &DuckDuckGoProvider{
		endpoint: duckDuckGoEndpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (p *DuckDuckGoProvider) Name() string {
	return "duckduckgo"
}

type duckDuckGoResponse struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 3
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create duckduckgo request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	var parsed duckDuckGoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode duckduckgo response: %w", err)
	}

	results := make([]SearchResult, 0, maxResults)
	if parsed.AbstractText != "" {
		results = append(results, SearchResult{
			Title:   parsed.Heading,
			URL:     parsed.AbstractURL,
			Snippet: parsed.AbstractText,
		})
	}
	for _, topic := range parsed.RelatedTopics {
		if len(results) >= maxResults {
			break
		}
		if topic.Text == "" {
			continue
		}
		results = append(results, SearchResult{
			Title:   topic.Text,
			URL:     topic.FirstURL,
			Snippet: topic.Text,
		})
	}
	return results, nil
}
