package utils

import (
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "plain object",
			response: `{"intent": "greeting"}`,
			want:     `{"intent": "greeting"}`,
		},
		{
			name:     "fenced json",
			response: "```json\n{\"intent\": \"shopping\"}\n```",
			want:     `{"intent": "shopping"}`,
		},
		{
			name:     "object inside prose",
			response: `Sure! Here is the result: {"message": "hi"} hope that helps`,
			want:     `{"message": "hi"}`,
		},
		{
			name:     "nested braces",
			response: `{"a": {"b": 1}}`,
			want:     `{"a": {"b": 1}}`,
		},
		{
			name:     "no object",
			response: "I cannot answer that.",
			want:     "",
		},
		{
			name:     "mismatched braces",
			response: "} {",
			want:     "",
		},
		{
			name:     "empty input",
			response: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSONObject(tt.response)
			if got != tt.want {
				t.Errorf("ExtractJSONObject(%q) = %q, want %q", tt.response, got, tt.want)
			}
		})
	}
}
