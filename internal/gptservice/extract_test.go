package gptservice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "valid json passes through unchanged",
			raw:  `{"program": {"name": "A"}}`,
			want: `{"program": {"name": "A"}}`,
		},
		{
			name: "fenced with language tag",
			raw:  "```json\n{\"name\": \"plan\"}\n```",
			want: `{"name": "plan"}`,
		},
		{
			name: "fenced without language tag",
			raw:  "```\n{\"name\": \"plan\"}\n```",
			want: `{"name": "plan"}`,
		},
		{
			name: "json embedded in prose",
			raw:  "Here is your plan:\n{\"name\": \"plan\"}\nEnjoy your training!",
			want: `{"name": "plan"}`,
		},
		{
			name: "nested objects keep the outermost braces",
			raw:  "result: {\"a\": {\"b\": 1}} done",
			want: `{"a": {"b": 1}}`,
		},
		{
			name: "no braces returns cleaned text",
			raw:  "  the model refused to answer  ",
			want: "the model refused to answer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.raw))
		})
	}
}

func TestExtractJSONRecoveredOutputDecodes(t *testing.T) {
	raw := "Sure! Here is the JSON you asked for:\n```json\n{\"program\": {\"name\": \"Base\", \"description\": \"d\"}, \"workouts\": []}\n```\nLet me know if you want changes."

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(ExtractJSON(raw)), &decoded))
	assert.Contains(t, decoded, "program")
}
