package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(testSchema().Definition)

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"category", "target"}, s.Required)
	require.Len(t, s.Properties, 4)
	assert.Equal(t, genai.TypeNumber, s.Properties["target"].Type)
	assert.Equal(t, []string{"Adequado", "Atenção", "Intervenção"}, s.Properties["class"].Enum)

	actions := s.Properties["actions"]
	assert.Equal(t, genai.TypeArray, actions.Type)
	require.NotNil(t, actions.Items)
	assert.Equal(t, genai.TypeString, actions.Items.Type)
}

func TestGeminiSchema_GoLiterals(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type":        "object",
		"description": "resumo",
		"required":    []string{"summary"},
		"properties":  map[string]any{"summary": map[string]any{"type": "unknown"}},
	})
	assert.Equal(t, "resumo", s.Description)
	assert.Equal(t, []string{"summary"}, s.Required)
	assert.Equal(t, genai.TypeString, s.Properties["summary"].Type)
}

func TestGeminiConfig(t *testing.T) {
	conf := geminiConfig(Request{System: "sys", Schema: testSchema(), MaxTokens: 512, Temperature: 0.3})
	assert.EqualValues(t, 512, conf.MaxOutputTokens)
	require.NotNil(t, conf.Temperature)
	assert.InDelta(t, 0.3, *conf.Temperature, 1e-6)
	assert.Equal(t, "application/json", conf.ResponseMIMEType)
	require.NotNil(t, conf.SystemInstruction)
	assert.Equal(t, "sys", conf.SystemInstruction.Parts[0].Text)

	assert.Nil(t, geminiConfig(Request{}).Temperature)
}
