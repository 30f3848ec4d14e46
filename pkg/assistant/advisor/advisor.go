package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"ai-shopassist-be/internal/constant"
	"ai-shopassist-be/pkg/assistant/history"
	"ai-shopassist-be/pkg/llm"
	"ai-shopassist-be/pkg/utils"
)

// Advisor answers broad, non-specific shopping questions. It never raises
// past its own boundary: every failure degrades to canned advice.
type Advisor struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewAdvisor(llmProvider llm.LLMProvider, logger *log.Logger) *Advisor {
	return &Advisor{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

type adviceEnvelope struct {
	Message string `json:"message"`
}

// Advise requests free-text guidance wrapped in a {"message": ...} envelope.
// JSON extraction is layered: direct parse, then brace scan, then the raw
// text verbatim. A capability failure falls back to keyword-matched canned
// advice.
func (a *Advisor) Advise(ctx context.Context, message string, turns []history.Turn) string {
	prompt := fmt.Sprintf(constant.ShoppingAdvicePrompt, history.Transcript(turns), message)

	response, err := a.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.6),
		llm.WithMaxTokens(300),
	)
	if err != nil {
		a.logger.Printf("[WARN] Shopping advice call failed, using canned advice: %v", err)
		return cannedAdvice(message)
	}

	return extractMessage(response)
}

func extractMessage(response string) string {
	trimmed := strings.TrimSpace(response)

	var envelope adviceEnvelope
	if err := json.Unmarshal([]byte(trimmed), &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}

	if jsonContent := utils.ExtractJSONObject(trimmed); jsonContent != "" {
		if err := json.Unmarshal([]byte(jsonContent), &envelope); err == nil && envelope.Message != "" {
			return envelope.Message
		}
	}

	// Last resort: the raw text is the message
	if trimmed != "" {
		return trimmed
	}
	return constant.GenericAdviceFallback
}

func cannedAdvice(message string) string {
	lower := strings.ToLower(message)
	for _, canned := range constant.CannedAdviceBank {
		for _, kw := range canned.Keywords {
			if strings.Contains(lower, kw) {
				return canned.Message
			}
		}
	}
	return constant.GenericAdviceFallback
}
