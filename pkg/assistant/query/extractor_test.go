package query

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

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

func newTestExtractor(response string, err error) *Extractor {
	return NewExtractor(&fakeProvider{response: response, err: err}, log.New(io.Discard, "", 0))
}

func TestExtractSuccess(t *testing.T) {
	e := newTestExtractor(`{"searchQuery": "wireless headphones", "category": "Electronics"}`, nil)

	q, err := e.Extract(context.Background(), "I need wireless headphones under $50", nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if q.SearchQuery != "wireless headphones" {
		t.Errorf("searchQuery = %q", q.SearchQuery)
	}
	if q.Category != "Electronics" {
		t.Errorf("category = %q", q.Category)
	}
}

func TestExtractCategoryOptional(t *testing.T) {
	e := newTestExtractor(`{"searchQuery": "desk lamp"}`, nil)

	q, err := e.Extract(context.Background(), "need a lamp", nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if q.Category != "" {
		t.Errorf("category = %q, want empty", q.Category)
	}
}

func TestExtractKeywordFallback(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{"birthday keyword", "stuff for my son's birthday"},
		{"party keyword", "I'm hosting a party next week"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExtractor("", errors.New("model offline"))

			q, err := e.Extract(context.Background(), tt.message, nil)
			if err != nil {
				t.Fatalf("Extract() error = %v, want keyword fallback", err)
			}
			if q.SearchQuery != "party supplies birthday decorations" {
				t.Errorf("fallback query = %q", q.SearchQuery)
			}
		})
	}
}

func TestExtractFailurePropagates(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{"provider error, no keyword", "", errors.New("model offline")},
		{"empty response", "", nil},
		{"empty searchQuery", `{"searchQuery": "  "}`, nil},
		{"malformed json", `{"searchQuery": `, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExtractor(tt.response, tt.err)

			_, err := e.Extract(context.Background(), "find me something nice", nil)
			if err == nil {
				t.Fatal("Extract() error = nil, want visible failure")
			}
		})
	}
}
