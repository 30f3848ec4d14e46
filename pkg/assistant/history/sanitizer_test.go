package history

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSanitizeNonSequenceInputs(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"nil", nil},
		{"string", "hello"},
		{"number", 42},
		{"object", map[string]interface{}{"role": "user"}},
		{"bool", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got == nil {
				t.Fatal("Sanitize returned nil, want empty slice")
			}
			if len(got) != 0 {
				t.Errorf("Sanitize(%v) length = %d, want 0", tt.input, len(got))
			}
		})
	}
}

func TestSanitizeSequence(t *testing.T) {
	input := []interface{}{
		map[string]interface{}{"role": "user", "content": "hi"},
		map[string]interface{}{"role": "assistant", "content": "hello"},
		map[string]interface{}{"content": "no role here"},
		map[string]interface{}{"role": "model", "content": "mapped"},
		map[string]interface{}{"role": "ROBOT", "content": "unknown role"},
	}

	got := Sanitize(input)
	want := []Turn{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "user", Content: "no role here"},
		{Role: "assistant", Content: "mapped"},
		{Role: "user", Content: "unknown role"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sanitize() = %v, want %v", got, want)
	}
}

func TestSanitizeNonStringContentRoundTrips(t *testing.T) {
	original := map[string]interface{}{"items": []interface{}{"a", "b"}, "count": float64(2)}
	input := []interface{}{
		map[string]interface{}{"role": "user", "content": original},
	}

	got := Sanitize(input)
	if len(got) != 1 {
		t.Fatalf("Sanitize() length = %d, want 1", len(got))
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(got[0].Content), &decoded); err != nil {
		t.Fatalf("content is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("round-tripped content = %v, want %v", decoded, original)
	}
}

func TestSanitizePreservesOrder(t *testing.T) {
	input := []interface{}{
		map[string]interface{}{"role": "user", "content": "first"},
		map[string]interface{}{"role": "assistant", "content": "second"},
		map[string]interface{}{"role": "user", "content": "third"},
	}

	got := Sanitize(input)
	if len(got) != 3 {
		t.Fatalf("length = %d, want 3", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Content != want {
			t.Errorf("turn %d content = %q, want %q", i, got[i].Content, want)
		}
	}
}

func TestTranscript(t *testing.T) {
	if got := Transcript(nil); got != "(no prior conversation)\n" {
		t.Errorf("empty transcript = %q", got)
	}

	turns := []Turn{{Role: "user", Content: "hi"}}
	if got := Transcript(turns); got != "user: hi\n" {
		t.Errorf("transcript = %q", got)
	}
}
