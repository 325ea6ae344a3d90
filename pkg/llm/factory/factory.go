package factory

import (
	"fmt"

	"textrec-be/pkg/llm"
	"textrec-be/pkg/llm/gemini"
	"textrec-be/pkg/llm/ollama"
)

// ErrMissingAPIKey signals that the configured provider needs a
// credential that was not supplied. Callers treat this as "run with
// the local fallback only", not as a startup failure.
var ErrMissingAPIKey = fmt.Errorf("llm provider requires an API key")

func NewLLMProvider(providerType, modelName, ollamaBaseURL, geminiAPIKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini":
		if geminiAPIKey == "" {
			return nil, ErrMissingAPIKey
		}
		return gemini.NewGeminiProvider(geminiAPIKey, modelName), nil
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
