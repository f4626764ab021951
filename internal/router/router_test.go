package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multikids/portage/internal/screen"
)

type fakeScreen struct {
	title   string
	inits   int
	resumes int
	seen    []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd { s.inits++; return nil }
func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}
func (s *fakeScreen) View(w, h int) string { return s.title }
func (s *fakeScreen) Title() string        { return s.title }

type resumable struct{ fakeScreen }

func (s *resumable) Resume() tea.Cmd {
	s.resumes++
	return func() tea.Msg { return "recarregar" }
}

type closable struct {
	fakeScreen
	closed int
}

func (s *closable) Close() { s.closed++ }

func titles(r *Router) []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

func TestRouter_Navigation(t *testing.T) {
	home := &fakeScreen{title: "Início"}
	menu := &fakeScreen{title: "Ana"}
	quiz := &fakeScreen{title: "Avaliação"}
	rep := &fakeScreen{title: "Relatório"}
	r := New(home)

	r.Update(PushScreenMsg{Screen: menu})
	r.Update(PushScreenMsg{Screen: quiz})
	assert.Equal(t, []string{"Início", "Ana", "Avaliação"}, titles(r))

	r.Update(ReplaceScreenMsg{Screen: rep})
	assert.Equal(t, []string{"Início", "Ana", "Relatório"}, titles(r))
	assert.Equal(t, 1, rep.inits)

	r.Update(PopScreenMsg{})
	r.Update(PopScreenMsg{})
	r.Update(PopScreenMsg{})
	assert.Equal(t, []string{"Início"}, titles(r))
	assert.Equal(t, "Início", r.View(80, 24))
	assert.Equal(t, 0, home.inits, "root is started by the app, not the router")
}

func TestRouter_ForwardsToActive(t *testing.T) {
	home := &fakeScreen{title: "Início"}
	menu := &fakeScreen{title: "Ana"}
	r := New(home)
	r.Push(menu)

	r.Update("tecla")
	assert.Empty(t, home.seen)
	assert.Equal(t, []tea.Msg{"tecla"}, menu.seen)
}

func TestRouter_PopResumes(t *testing.T) {
	base := &resumable{fakeScreen{title: "Ana"}}
	r := New(base)
	r.Push(&fakeScreen{title: "Histórico"})

	cmd := r.Pop()
	require.NotNil(t, cmd)
	assert.Equal(t, "recarregar", cmd())
	assert.Equal(t, 1, base.resumes)

	assert.Nil(t, r.Pop(), "root stays")
	assert.Equal(t, 1, base.resumes)
}

func TestRouter_ClosesLeavingScreens(t *testing.T) {
	r := New(&fakeScreen{title: "Início"})
	rep := &closable{fakeScreen: fakeScreen{title: "Relatório"}}
	r.Push(rep)

	r.Replace(&fakeScreen{title: "Ana"})
	assert.Equal(t, 1, rep.closed)

	next := &closable{fakeScreen: fakeScreen{title: "Relatório"}}
	r.Push(next)
	r.Pop()
	assert.Equal(t, 1, next.closed)
	assert.Equal(t, 1, rep.closed)
}

func TestRouter_EmptyStack(t *testing.T) {
	r := &Router{}
	assert.Nil(t, r.Active())
	assert.Empty(t, r.View(80, 24))
	assert.Nil(t, r.Update("x"))

	s := &fakeScreen{title: "Início"}
	r.Replace(s)
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, 1, s.inits)
}

func TestCommands(t *testing.T) {
	s := &fakeScreen{title: "x"}
	assert.Equal(t, PushScreenMsg{Screen: s}, Push(s)())
	assert.Equal(t, PopScreenMsg{}, Pop()())
	assert.Equal(t, ReplaceScreenMsg{Screen: s}, Replace(s)())
}
