package query

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

// Query is the structured search request extracted from free text.
type Query struct {
	SearchQuery string `json:"searchQuery"`
	Category    string `json:"category,omitempty"`
}

// keywordFallbacks map message keywords to canned queries when extraction
// fails. Checked in order.
var keywordFallbacks = []struct {
	keywords []string
	query    Query
}{
	{
		keywords: []string{"birthday", "party"},
		query:    Query{SearchQuery: "party supplies birthday decorations", Category: "Party Supplies"},
	},
}

type Extractor struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewExtractor(llmProvider llm.LLMProvider, logger *log.Logger) *Extractor {
	return &Extractor{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Extract asks the completion capability for a concise search phrase plus an
// optional category. Unlike the classifier this stage is allowed to fail
// visibly: without a query no search can proceed, so when both the capability
// and the keyword fallback come up empty the error propagates.
func (e *Extractor) Extract(ctx context.Context, message string, turns []history.Turn) (*Query, error) {
	prompt := fmt.Sprintf(constant.QueryExtractionPrompt, history.Transcript(turns), message)

	response, err := e.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(120),
		llm.WithJSONFormat(),
	)
	if err != nil {
		e.logger.Printf("[WARN] Query extraction call failed: %v", err)
		return e.fallbackQuery(message, err)
	}

	q, err := parseQuery(response)
	if err != nil {
		e.logger.Printf("[WARN] Query extraction parse failed: %v", err)
		return e.fallbackQuery(message, err)
	}

	e.logger.Printf("[QUERY] Extracted: %q (category: %q)", q.SearchQuery, q.Category)

	return q, nil
}

func parseQuery(response string) (*Query, error) {
	jsonContent := utils.ExtractJSONObject(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var q Query
	if err := json.Unmarshal([]byte(jsonContent), &q); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}

	q.SearchQuery = strings.TrimSpace(q.SearchQuery)
	if q.SearchQuery == "" {
		return nil, fmt.Errorf("extracted searchQuery is empty")
	}

	return &q, nil
}

func (e *Extractor) fallbackQuery(message string, cause error) (*Query, error) {
	lower := strings.ToLower(message)
	for _, fb := range keywordFallbacks {
		for _, kw := range fb.keywords {
			if strings.Contains(lower, kw) {
				e.logger.Printf("[QUERY] Keyword fallback matched %q", kw)
				q := fb.query
				return &q, nil
			}
		}
	}
	return nil, fmt.Errorf("query extraction failed: %w", cause)
}
