package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"ai-shopassist-be/internal/constant"
	"ai-shopassist-be/pkg/assistant/history"
	"ai-shopassist-be/pkg/llm"
	"ai-shopassist-be/pkg/utils"
)

// Result is a validated classification over the fixed taxonomy.
// Clarification is only populated when Intent is unclear.
type Result struct {
	Intent        string  `json:"intent"`
	Confidence    float64 `json:"confidence"`
	Clarification string  `json:"clarification,omitempty"`
}

// Classifier performs pure LLM-based intent classification.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewClassifier(llmProvider llm.LLMProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Classify analyzes the message and produces a validated Result. It never
// returns an error: any capability, parse, or validation failure degrades to
// the default low-confidence general_shopping result so the router can still
// make forward progress.
func (c *Classifier) Classify(ctx context.Context, message string, turns []history.Turn) *Result {
	prompt := fmt.Sprintf(constant.IntentClassificationPrompt, history.Transcript(turns), message)

	response, err := c.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(150),
		llm.WithJSONFormat(),
	)
	if err != nil {
		c.logger.Printf("[WARN] Intent classification failed, using fallback: %v", err)
		return fallbackResult()
	}

	result, err := parseResult(response)
	if err != nil {
		c.logger.Printf("[WARN] Intent parsing failed, using fallback: %v", err)
		return fallbackResult()
	}

	c.logger.Printf("[INTENT] Classified: %s (Confidence: %.2f)", result.Intent, result.Confidence)

	return result
}

func parseResult(response string) (*Result, error) {
	jsonContent := utils.ExtractJSONObject(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var result Result
	if err := json.Unmarshal([]byte(jsonContent), &result); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}

	switch result.Intent {
	case constant.IntentGreeting, constant.IntentShopping, constant.IntentGeneralShopping, constant.IntentUnclear:
	default:
		return nil, fmt.Errorf("unrecognized intent literal: %q", result.Intent)
	}

	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}

	// Clarification travels only with the unclear intent
	if result.Intent == constant.IntentUnclear {
		if result.Clarification == "" {
			result.Clarification = constant.GenericClarificationQuestion
		}
		if result.Confidence >= 0.5 {
			result.Confidence = 0.4
		}
	} else {
		result.Clarification = ""
	}

	return &result, nil
}

// fallbackResult is the documented default when classification cannot be
// trusted. It deliberately routes to general_shopping rather than unclear so
// a capability outage still produces a useful answer.
func fallbackResult() *Result {
	return &Result{
		Intent:     constant.IntentGeneralShopping,
		Confidence: 0.3,
	}
}
