package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return &Schema{
		Name: "test-goal",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"category": map[string]any{"type": "string"},
				"target":   map[string]any{"type": "number", "minimum": 0, "maximum": 100},
				"class":    map[string]any{"type": "string", "enum": []any{"Adequado", "Atenção", "Intervenção"}},
				"actions": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string", "minLength": 1},
				},
			},
			"required": []any{"category", "target"},
		},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"complete", `{"category":"Cognição","target":85,"class":"Atenção","actions":["Quebra-cabeça"]}`, true},
		{"optional omitted", `{"category":"Cognição","target":85}`, true},
		{"missing required", `{"category":"Cognição"}`, false},
		{"wrong type", `{"category":"Cognição","target":"alto"}`, false},
		{"above maximum", `{"category":"Cognição","target":120}`, false},
		{"unknown class", `{"category":"Cognição","target":80,"class":"Ótimo"}`, false},
		{"empty action", `{"category":"Cognição","target":80,"actions":[""]}`, false},
		{"trailing text", `{"category":"Cognição","target":80} obrigado`, false},
		{"malformed", `{not json}`, false},
		{"empty", ``, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate(testSchema(), json.RawMessage(tc.raw))
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			var inv *InvalidResponseError
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, tc.raw, string(inv.Content))
		})
	}
}

func TestCompile_CachesByName(t *testing.T) {
	s := &Schema{Name: "test-cache", Definition: map[string]any{"type": "object"}}
	first, err := compile(s)
	require.NoError(t, err)

	s.Definition = map[string]any{"type": "string"}
	second, err := compile(s)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestCompile_BadDefinition(t *testing.T) {
	s := &Schema{Name: "test-bad", Definition: map[string]any{"type": 42}}
	err := validate(s, json.RawMessage(`{}`))
	var inv *InvalidResponseError
	require.ErrorAs(t, err, &inv)
	assert.Contains(t, err.Error(), "test-bad")
}
