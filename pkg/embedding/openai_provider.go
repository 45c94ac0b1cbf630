package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OpenAIProvider implements Provider using the OpenAI embeddings API.
type OpenAIProvider struct {
	APIKey  string
	BaseURL string
	Model   string
}

func NewOpenAIProvider(apiKey string, model string) Provider {
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &OpenAIProvider{
		APIKey:  apiKey,
		BaseURL: "https://api.openai.com/v1",
		Model:   model,
	}
}

type openaiEmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	// Keep the stored dimensionality fixed regardless of model default
	Dimensions int `json:"dimensions,omitempty"`
}

type openaiEmbeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	reqBody := openaiEmbeddingRequest{
		Model:      p.Model,
		Input:      text,
		Dimensions: 768,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/embeddings", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai embedding error: %s", string(bodyBytes))
	}

	var openaiResp openaiEmbeddingResponse
	if err := json.Unmarshal(bodyBytes, &openaiResp); err != nil {
		return nil, err
	}
	if len(openaiResp.Data) == 0 {
		return nil, fmt.Errorf("openai embedding returned no data")
	}

	values := make([]float32, len(openaiResp.Data[0].Embedding))
	for i, v := range openaiResp.Data[0].Embedding {
		values[i] = float32(v)
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: normalizeVector(values),
		},
	}, nil
}
