package support

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

// Input carries a support request. Image is base64 without a data-URI prefix;
// the text analyzer ignores it.
type Input struct {
	Message string
	Image   string
	History []history.Turn
}

// Report is the analyzer output. It is always well-typed: array fields are
// never nil and Description is never empty when the analyzer was invoked.
type Report struct {
	Success       bool     `json:"success"`
	Description   string   `json:"description"`
	RequiresHuman bool     `json:"requiresHuman,omitempty"`
	NextSteps     []string `json:"nextSteps"`
	Issues        []string `json:"issues"`
	Suggestions   []string `json:"suggestions"`
	Error         string   `json:"error,omitempty"`
}

// Analyzer is the modality-agnostic support-analysis capability. Implementations
// must return a well-formed Report for every input; failure is conveyed inside
// the Report, never as a panic or an escaping error.
type Analyzer interface {
	Analyze(ctx context.Context, in Input) *Report
}

// --- Text analyzer ---

type TextAnalyzer struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

var _ Analyzer = &TextAnalyzer{}

func NewTextAnalyzer(llmProvider llm.LLMProvider, logger *log.Logger) *TextAnalyzer {
	return &TextAnalyzer{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

type textPayload struct {
	Response      string      `json:"response"`
	RequiresHuman bool        `json:"requiresHuman"`
	NextSteps     interface{} `json:"nextSteps"`
}

// Analyze produces structured guidance for a text problem description. Any
// capability or format failure substitutes a safe default object; the text
// analyzer never surfaces failure to its caller.
func (a *TextAnalyzer) Analyze(ctx context.Context, in Input) *Report {
	prompt := fmt.Sprintf(constant.SupportTextPrompt, history.Transcript(in.History), in.Message)

	response, err := a.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(400),
		llm.WithJSONFormat(),
	)
	if err != nil {
		a.logger.Printf("[WARN] Support text analysis failed, using default: %v", err)
		return textDefault(constant.SupportDefaultResponse)
	}

	jsonContent := utils.ExtractJSONObject(response)
	if jsonContent == "" {
		a.logger.Printf("[WARN] Support text analysis returned no JSON, using default")
		return textDefault(constant.SupportDefaultResponse)
	}

	var payload textPayload
	if err := json.Unmarshal([]byte(jsonContent), &payload); err != nil {
		a.logger.Printf("[WARN] Support text analysis unmarshal failed, using default: %v", err)
		return textDefault(constant.SupportDefaultResponse)
	}

	if payload.Response == "" {
		return textDefault(constant.SupportInvalidFormatResponse)
	}
	steps, ok := stringSlice(payload.NextSteps)
	if !ok {
		// Well-formed JSON but wrong container type: distinct default
		return textDefault(constant.SupportInvalidFormatResponse)
	}

	return &Report{
		Success:       true,
		Description:   payload.Response,
		RequiresHuman: payload.RequiresHuman,
		NextSteps:     steps,
		Issues:        []string{},
		Suggestions:   []string{},
	}
}

func textDefault(description string) *Report {
	return &Report{
		Success:     true,
		Description: description,
		NextSteps:   []string{},
		Issues:      []string{},
		Suggestions: []string{},
	}
}

// --- Image analyzer ---

type ImageAnalyzer struct {
	visionProvider llm.VisionProvider
	logger         *log.Logger
}

var _ Analyzer = &ImageAnalyzer{}

func NewImageAnalyzer(visionProvider llm.VisionProvider, logger *log.Logger) *ImageAnalyzer {
	return &ImageAnalyzer{
		visionProvider: visionProvider,
		logger:         logger,
	}
}

type imagePayload struct {
	Description string      `json:"description"`
	Issues      interface{} `json:"issues"`
	Suggestions interface{} `json:"suggestions"`
}

// Analyze diagnoses an attached image. Unlike the text analyzer it surfaces
// capability failure explicitly (Success:false plus an error message) while
// still returning a well-typed Report.
func (a *ImageAnalyzer) Analyze(ctx context.Context, in Input) *Report {
	prompt := fmt.Sprintf(constant.SupportImagePrompt, in.Message)
	messages := append(history.ToMessages(in.History), llm.Message{Role: "user", Content: prompt})

	response, err := a.visionProvider.ChatWithImage(ctx, messages, in.Image,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(400),
		llm.WithJSONFormat(),
	)
	if err != nil {
		a.logger.Printf("[WARN] Support image analysis failed: %v", err)
		return imageFailure(err)
	}

	jsonContent := utils.ExtractJSONObject(response)
	if jsonContent == "" {
		return imageInvalidFormat()
	}

	var payload imagePayload
	if err := json.Unmarshal([]byte(jsonContent), &payload); err != nil {
		a.logger.Printf("[WARN] Support image analysis unmarshal failed: %v", err)
		return imageInvalidFormat()
	}

	if payload.Description == "" {
		return imageInvalidFormat()
	}
	issues, okI := stringSlice(payload.Issues)
	suggestions, okS := stringSlice(payload.Suggestions)
	if !okI || !okS {
		return imageInvalidFormat()
	}

	return &Report{
		Success:     true,
		Description: payload.Description,
		NextSteps:   []string{},
		Issues:      issues,
		Suggestions: suggestions,
	}
}

func imageFailure(err error) *Report {
	return &Report{
		Success:     false,
		Description: constant.SupportImageFailureMessage,
		NextSteps:   []string{},
		Issues:      []string{},
		Suggestions: []string{},
		Error:       err.Error(),
	}
}

func imageInvalidFormat() *Report {
	return &Report{
		Success:     true,
		Description: constant.SupportInvalidFormatResponse,
		NextSteps:   []string{},
		Issues:      []string{},
		Suggestions: []string{},
	}
}

// stringSlice validates that a loosely-typed field is a list of strings.
// nil (absent) is fine and yields an empty list; any other shape is a
// container-type violation.
func stringSlice(v interface{}) ([]string, bool) {
	if v == nil {
		return []string{}, true
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
