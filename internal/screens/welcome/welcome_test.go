package welcome

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/screen"
)

type homeStub struct{}

func (homeStub) Init() tea.Cmd                             { return nil }
func (h homeStub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return h, nil }
func (homeStub) View(int, int) string                      { return "home" }
func (homeStub) Title() string                             { return "Início" }

func splash() (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen { built++; return homeStub{} }), &built
}

// play delivers n animation frames and returns the last command.
func play(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(frameMsg{})
	}
	return cmd
}

func TestWelcome_RevealsAreas(t *testing.T) {
	w, _ := splash()
	require.NotNil(t, w.Init())

	view := w.View(100, 30)
	assert.Contains(t, view, "Inventário Portage Operacionalizado")
	areas := catalog.Categories()
	require.Len(t, areas, 5)
	assert.NotContains(t, view, string(areas[0]))

	play(w, framesPerArea)
	view = w.View(100, 30)
	assert.Contains(t, view, string(areas[0]))
	assert.NotContains(t, view, string(areas[1]))
	assert.NotContains(t, view, "pressione qualquer tecla")

	play(w, hintFrame)
	view = w.View(100, 30)
	for _, a := range areas {
		assert.Contains(t, view, string(a))
	}
	assert.Contains(t, view, "pressione qualquer tecla")
}

func TestWelcome_StopsAnimating(t *testing.T) {
	w, built := splash()
	assert.NotNil(t, play(w, hintFrame-1))
	assert.Nil(t, play(w, 5))
	assert.Equal(t, hintFrame, w.frame)
	assert.Zero(t, *built, "the splash waits for a key")
}

func TestWelcome_KeyReplacesWithHome(t *testing.T) {
	w, built := splash()
	play(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Início", msg.Screen.Title())

	_, cmd = w.Update(tea.KeyPressMsg{Code: 'x'})
	assert.Nil(t, cmd)
	assert.Nil(t, play(w, 1))
	assert.Equal(t, 1, *built)
}

func TestBanner(t *testing.T) {
	assert.Contains(t, Banner(40), bannerCompact)
	assert.NotContains(t, Banner(100), bannerCompact)
}
