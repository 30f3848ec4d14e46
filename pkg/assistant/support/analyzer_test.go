package support

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"ai-shopassist-be/internal/constant"
	"ai-shopassist-be/pkg/llm"
)

type fakeProvider struct {
	response string
	err      error
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeProvider) ChatWithImage(ctx context.Context, history []llm.Message, imageBase64 string, opts ...llm.Option) (string, error) {
	return f.response, f.err
}

func discard() *log.Logger { return log.New(io.Discard, "", 0) }

func TestTextAnalyzeSuccess(t *testing.T) {
	provider := &fakeProvider{response: `{"response": "Try resetting the device.", "requiresHuman": true, "nextSteps": ["Unplug it", "Wait 30 seconds"]}`}
	report := NewTextAnalyzer(provider, discard()).Analyze(context.Background(), Input{Message: "my device is broken"})

	if !report.Success {
		t.Error("success = false, want true")
	}
	if report.Description != "Try resetting the device." {
		t.Errorf("description = %q", report.Description)
	}
	if !report.RequiresHuman {
		t.Error("requiresHuman = false, want true")
	}
	if len(report.NextSteps) != 2 {
		t.Errorf("nextSteps length = %d, want 2", len(report.NextSteps))
	}
}

func TestTextAnalyzeDefaultsOnFailure(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		wantDesc string
	}{
		{"provider error", "", errors.New("offline"), constant.SupportDefaultResponse},
		{"no json", "sorry, cannot analyze", nil, constant.SupportDefaultResponse},
		{"missing response field", `{"requiresHuman": false}`, nil, constant.SupportInvalidFormatResponse},
		{"nextSteps wrong container", `{"response": "ok", "nextSteps": "not a list"}`, nil, constant.SupportInvalidFormatResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{response: tt.response, err: tt.err}
			report := NewTextAnalyzer(provider, discard()).Analyze(context.Background(), Input{Message: "help"})

			if report == nil {
				t.Fatal("report is nil, analyzer must always return an object")
			}
			if report.Description != tt.wantDesc {
				t.Errorf("description = %q, want %q", report.Description, tt.wantDesc)
			}
			if report.NextSteps == nil || report.Issues == nil || report.Suggestions == nil {
				t.Error("array fields must never be nil")
			}
		})
	}
}

func TestImageAnalyzeSuccess(t *testing.T) {
	provider := &fakeProvider{response: `{"description": "A cracked phone screen", "issues": ["Screen damage"], "suggestions": ["Request a replacement"]}`}
	report := NewImageAnalyzer(provider, discard()).Analyze(context.Background(), Input{Message: "what's wrong?", Image: "aW1n"})

	if !report.Success {
		t.Error("success = false, want true")
	}
	if report.Description != "A cracked phone screen" {
		t.Errorf("description = %q", report.Description)
	}
	if len(report.Issues) != 1 || len(report.Suggestions) != 1 {
		t.Errorf("issues/suggestions = %v / %v", report.Issues, report.Suggestions)
	}
}

func TestImageAnalyzeSurfacesFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("vision backend unavailable")}
	report := NewImageAnalyzer(provider, discard()).Analyze(context.Background(), Input{Image: "aW1n"})

	if report.Success {
		t.Error("success = true, want false on capability failure")
	}
	if report.Error == "" {
		t.Error("error message missing")
	}
	if report.Issues == nil || len(report.Issues) != 0 {
		t.Errorf("issues = %v, want empty array", report.Issues)
	}
	if report.Suggestions == nil || len(report.Suggestions) != 0 {
		t.Errorf("suggestions = %v, want empty array", report.Suggestions)
	}
	if report.Description == "" {
		t.Error("description must still be populated on failure")
	}
}

func TestImageAnalyzeInvalidFormat(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no json", "a photo of a cat"},
		{"missing description", `{"issues": []}`},
		{"issues wrong container", `{"description": "ok", "issues": {"a": 1}}`},
		{"non-string elements", `{"description": "ok", "issues": [1, 2]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{response: tt.response}
			report := NewImageAnalyzer(provider, discard()).Analyze(context.Background(), Input{Image: "aW1n"})

			// Format trouble is not a capability failure; the report succeeds
			// with the distinct invalid-format description.
			if !report.Success {
				t.Error("success = false, want true for format fallback")
			}
			if report.Description != constant.SupportInvalidFormatResponse {
				t.Errorf("description = %q, want invalid-format default", report.Description)
			}
		})
	}
}
