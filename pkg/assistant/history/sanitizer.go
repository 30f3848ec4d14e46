package history

import (
	"encoding/json"
	"fmt"
	"strings"

	"ai-shopassist-be/pkg/llm"
)

// Turn is a canonical prior-turn record. Content is always a string.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Sanitize normalizes arbitrary prior-turn input into an ordered []Turn.
// It is total over all inputs: anything that is not a sequence yields an
// empty history, and no element can make it fail.
func Sanitize(input interface{}) []Turn {
	switch v := input.(type) {
	case nil:
		return []Turn{}
	case []Turn:
		out := make([]Turn, 0, len(v))
		for _, t := range v {
			out = append(out, Turn{Role: normalizeRole(t.Role), Content: t.Content})
		}
		return out
	case []interface{}:
		out := make([]Turn, 0, len(v))
		for _, item := range v {
			out = append(out, sanitizeItem(item))
		}
		return out
	case []map[string]interface{}:
		out := make([]Turn, 0, len(v))
		for _, item := range v {
			out = append(out, sanitizeItem(item))
		}
		return out
	default:
		return []Turn{}
	}
}

func sanitizeItem(item interface{}) Turn {
	m, ok := item.(map[string]interface{})
	if !ok {
		// A non-object entry becomes a user turn with stringified content
		return Turn{Role: "user", Content: stringify(item)}
	}

	role := ""
	if r, ok := m["role"].(string); ok {
		role = r
	}

	return Turn{
		Role:    normalizeRole(role),
		Content: stringify(m["content"]),
	}
}

func normalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	switch role {
	case "user", "assistant", "system":
		return role
	case "model":
		// Some providers use "model" for assistant turns
		return "assistant"
	case "":
		return "user"
	default:
		return "user"
	}
}

// stringify serializes non-string content so prompt assembly never sees a
// non-string value. Structured values round-trip through JSON.
func stringify(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		b, err := json.Marshal(c)
		if err != nil {
			return fmt.Sprintf("%v", c)
		}
		return string(b)
	}
}

// ToMessages converts sanitized turns into provider messages.
func ToMessages(turns []Turn) []llm.Message {
	messages := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, llm.Message{Role: t.Role, Content: t.Content})
	}
	return messages
}

// Transcript renders turns as plain text for prompt interpolation, oldest
// first. Empty history renders as "(no prior conversation)".
func Transcript(turns []Turn) string {
	if len(turns) == 0 {
		return "(no prior conversation)\n"
	}
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(t.Role)
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteString("\n")
	}
	return b.String()
}
