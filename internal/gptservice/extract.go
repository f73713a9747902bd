package gptservice

import (
	"encoding/json"
	"strings"
)

// ExtractJSON recovers the JSON document from the model's raw output. The
// provider is instructed to answer with pure JSON but is not contractually
// bound to; responses frequently arrive wrapped in code fences or prose.
//
// Strategy, in order:
//  1. If the raw output already parses as JSON, return it unchanged.
//  2. Strip a leading/trailing triple-backtick fence (the opening fence may
//     carry a language tag).
//  3. Take the substring from the first '{' to the last '}' inclusive.
//  4. With no brace pair, return the cleaned text; the downstream parse will
//     fail and surface as a decode error.
//
// The brace scan is best-effort: a stray '}' in trailing prose after the
// document would be captured along with it. That limitation is accepted; the
// alternative is a full JSON-aware scanner for a case the prompt already
// forbids.
func ExtractJSON(raw string) string {
	if json.Valid([]byte(raw)) {
		return raw
	}

	cleaned := stripFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		return cleaned[start : end+1]
	}
	return cleaned
}

// stripFences removes a wrapping ```lang ... ``` block if present.
func stripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	// Drop the language tag on the opening fence line, if any.
	if nl := strings.Index(trimmed, "\n"); nl >= 0 {
		firstLine := strings.TrimSpace(trimmed[:nl])
		if !strings.ContainsAny(firstLine, "{}") {
			trimmed = trimmed[nl+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
