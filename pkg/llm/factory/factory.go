package factory

import (
	"fmt"

	"ai-shopassist-be/pkg/llm"
	"ai-shopassist-be/pkg/llm/gemini"
	"ai-shopassist-be/pkg/llm/ollama"
)

// NewLLMProvider builds the configured completion backend. Both backends are
// vision-capable, so the same instance serves the image-analysis capability.
func NewLLMProvider(providerType, modelName, baseURL, geminiKey string) (llm.LLMProvider, llm.VisionProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		p := ollama.NewOllamaProvider(baseURL, modelName)
		return p, p, nil
	case "gemini":
		if geminiKey == "" {
			return nil, nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		p := gemini.NewGeminiProvider(geminiKey, modelName)
		return p, p, nil
	default:
		return nil, nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
