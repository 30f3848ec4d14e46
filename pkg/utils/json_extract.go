package utils

import "strings"

// ExtractJSONObject pulls the first brace-delimited JSON object out of an LLM
// response. Models frequently wrap JSON in markdown fences or prose, so the
// raw text is cleaned before scanning. Returns "" when no object is present.
func ExtractJSONObject(response string) string {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	startIdx := strings.Index(cleaned, "{")
	endIdx := strings.LastIndex(cleaned, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return cleaned[startIdx : endIdx+1]
}
