// Package screentest provides helpers for driving screens in tests.
package screentest

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/child"
	"github.com/multikids/portage/internal/clinic"
	"github.com/multikids/portage/internal/evaluation"
	"github.com/multikids/portage/internal/narrative"
	"github.com/multikids/portage/internal/scoring"
	"github.com/multikids/portage/internal/screen"
	"github.com/multikids/portage/internal/screens"
	"github.com/multikids/portage/internal/store"
)

// Now is the fixed clock used by Deps.
var Now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// Deps opens an in-memory store and wires the services around it.
func Deps(t testing.TB) screens.Deps {
	t.Helper()
	st, err := store.Open(store.Options{Driver: store.DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	svc := clinic.NewService(st.Children(), st.Therapist(), zap.NewNop())
	svc.Now = func() time.Time { return Now }
	return screens.Deps{
		Clinic:    svc,
		Narrative: narrative.NewService(nil, narrative.DefaultConfig(), nil),
		Now:       func() time.Time { return Now },
		ExportDir: t.TempDir(),
	}
}

// AddChild registers a child through the service.
func AddChild(t testing.TB, d screens.Deps, name string, age int) child.Child {
	t.Helper()
	c, err := d.Clinic.RegisterChild(context.Background(), name, age, "")
	if err != nil {
		t.Fatalf("register child: %v", err)
	}
	return c
}

// Evaluate records a finalized evaluation. Questions missing from answers
// are answered with fill.
func Evaluate(t testing.TB, d screens.Deps, childID string, category catalog.Category, band string, fill scoring.Answer, answers map[string]int) {
	t.Helper()
	draft, err := evaluation.NewDraft(childID, category, band)
	if err != nil {
		t.Fatalf("new draft: %v", err)
	}
	if err := draft.FillAll(fill); err != nil {
		t.Fatalf("fill: %v", err)
	}
	for id, v := range answers {
		if err := draft.Answer(id, scoring.Answer(v)); err != nil {
			t.Fatalf("answer %s: %v", id, err)
		}
	}
	if _, err := d.Clinic.Finalize(context.Background(), draft); err != nil {
		t.Fatalf("finalize: %v", err)
	}
}

var special = map[string]rune{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"tab":       tea.KeyTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"space":     tea.KeySpace,
	"backspace": tea.KeyBackspace,
}

// Key builds a key press from a key name ("enter", "down") or a single
// character. "ctrl+x" builds a control chord.
func Key(name string) tea.KeyPressMsg {
	if code, ok := special[name]; ok {
		return tea.KeyPressMsg{Code: code}
	}
	if len(name) == 6 && name[:5] == "ctrl+" {
		return tea.KeyPressMsg{Code: rune(name[5]), Mod: tea.ModCtrl}
	}
	r := []rune(name)[0]
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Press sends keys in order and returns the screen and the last command.
func Press(s screen.Screen, keys ...string) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		s, cmd = s.Update(Key(k))
	}
	return s, cmd
}

// Type sends each rune of text as a key press.
func Type(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return s
}

// Loader is implemented by screens that load their data with a command.
type Loader interface {
	Load() tea.Msg
}

// Load runs the screen's loader and feeds the result back.
func Load(s screen.Screen) screen.Screen {
	if l, ok := s.(Loader); ok {
		s, _ = s.Update(l.Load())
	}
	return s
}
