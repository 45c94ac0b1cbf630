package factory

import (
	"fmt"

	"postcare-ai-be/pkg/llm"
	"postcare-ai-be/pkg/llm/ollama"
	"postcare-ai-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, baseURL, openaiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		if openaiKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return openai.NewOpenAIProvider(openaiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
