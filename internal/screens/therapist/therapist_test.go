package therapist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/screens/screentest"
)

func TestSaveName(t *testing.T) {
	deps := screentest.Deps(t)
	s := New(deps)
	screentest.Load(s)

	screentest.Type(s, " Dra. Helena ")
	_, cmd := screentest.Press(s, "enter")
	require.NotNil(t, cmd)

	_, done := s.Update(cmd())
	require.NotNil(t, done)

	name, err := deps.Clinic.TherapistName(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dra. Helena", name)
}

func TestLoadsStoredName(t *testing.T) {
	deps := screentest.Deps(t)
	require.NoError(t, deps.Clinic.SetTherapistName(context.Background(), "Carla"))

	s := New(deps)
	assert.Contains(t, s.View(80, 24), "Carregando")
	screentest.Load(s)
	assert.Equal(t, "Carla", s.input.Value())
}

func TestEnterBeforeLoadIgnored(t *testing.T) {
	s := New(screentest.Deps(t))
	_, cmd := screentest.Press(s, "enter")
	assert.Nil(t, cmd)
}

func TestEsc(t *testing.T) {
	s := New(screentest.Deps(t))
	_, cmd := screentest.Press(s, "esc")
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
