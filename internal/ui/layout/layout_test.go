package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(79, 40))
	assert.True(t, IsTooSmall(120, 23))
	assert.False(t, IsTooSmall(80, 24))
	assert.Contains(t, RenderMinSizeMessage(60, 20), "Atual: 60 x 20")
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Relatório", "Dra. Marta", 100)
	assert.Contains(t, h, "PORTAGE")
	assert.Contains(t, h, "Relatório")
	assert.Contains(t, h, "Dra. Marta")
	assert.Equal(t, 3, lipgloss.Height(h))
}

func TestRenderFooter_DropsHintsThatDoNotFit(t *testing.T) {
	hints := []KeyHint{{"↑↓", "Navegar"}, {"Enter", "Abrir"}, {"Esc", "Voltar"}, {"Ctrl+C", "Sair"}}

	wide := RenderFooter(hints, 120)
	assert.Contains(t, wide, "Sair")
	assert.NotContains(t, wide, "…")

	narrow := RenderFooter(hints, 30)
	assert.Contains(t, narrow, "Navegar")
	assert.NotContains(t, narrow, "Sair")
	assert.Contains(t, narrow, "…")
}

func TestRenderFrame(t *testing.T) {
	header := RenderHeader("Início", "", 80)
	footer := RenderFooter(nil, 80)
	frame := RenderFrame(header, "conteúdo", footer, 80, 24)

	assert.Equal(t, 24, lipgloss.Height(frame))
	lines := strings.Split(frame, "\n")
	assert.Contains(t, lines[3], "conteúdo")
}
