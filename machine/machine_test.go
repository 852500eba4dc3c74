package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindlemire/go-interactor"
)

func newToggle(t *testing.T, opts ...Option) *StateMachine {
	t.Helper()
	def, err := Decode(readTestdata(t, "toggle.yaml"), FormatYAML)
	require.NoError(t, err)
	m, err := New(def, opts...)
	require.NoError(t, err)
	return m
}

func regionNames(regions []interactor.Region) []string {
	var out []string
	for _, r := range regions {
		out = append(out, r.(*interactor.Box).Name)
	}
	return out
}

func TestNew_RejectsInvalid(t *testing.T) {
	_, err := New(&Definition{Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}

func TestNew_BuildsRegions(t *testing.T) {
	m := newToggle(t)

	assert.Equal(t, "off", m.State())
	assert.Equal(t, []string{"background", "button"}, regionNames(m.RegionsInDrawOrder()))
	assert.NotEmpty(t, m.ID())

	button, ok := m.Region("button")
	require.True(t, ok)
	assert.Equal(t, 20.0, button.X)
	assert.Equal(t, 40.0, button.Width)
}

func TestNew_FreshRegionsPerMachine(t *testing.T) {
	a := newToggle(t)
	b := newToggle(t)

	ra, _ := a.Region("button")
	rb, _ := b.Region("button")
	assert.NotSame(t, ra, rb)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestStateMachine_ActOnEvent(t *testing.T) {
	var damage int
	var fired []Transition
	m := newToggle(t, OnTransition(func(tr Transition) { fired = append(fired, tr) }))
	m.Attach(interactor.DamageFunc(func() { damage++ }))
	button, _ := m.Region("button")
	lamp, _ := m.Region("lamp")

	// Wrong event and wrong region do nothing.
	m.ActOnEvent(interactor.EventRelease, button)
	bg, _ := m.Region("background")
	m.ActOnEvent(interactor.EventPress, bg)
	assert.Equal(t, "off", m.State())
	assert.Zero(t, damage)

	m.ActOnEvent(interactor.EventPress, button)
	assert.Equal(t, "armed", m.State())
	assert.Equal(t, 1, damage)

	m.ActOnEvent(interactor.EventRelease, button)
	assert.Equal(t, "on", m.State())
	assert.Equal(t, []string{"background", "button", "lamp"}, regionNames(m.RegionsInDrawOrder()))

	m.ActOnEvent(interactor.EventPress, lamp)
	assert.Equal(t, "off", m.State())
	assert.Equal(t, 3, damage)

	require.Len(t, fired, 3)
	assert.Equal(t, Transition{From: "off", To: "armed", Event: interactor.EventPress, Region: "button"}, fired[0])
}

func TestStateMachine_ReleaseNone(t *testing.T) {
	m := newToggle(t)
	button, _ := m.Region("button")

	m.ActOnEvent(interactor.EventPress, button)
	m.ActOnEvent(interactor.EventReleaseNone, nil)

	assert.Equal(t, "off", m.State())
}

func TestStateMachine_IgnoresForeignRegion(t *testing.T) {
	m := newToggle(t)
	other := newToggle(t)
	foreign, _ := other.Region("button")

	m.ActOnEvent(interactor.EventPress, foreign)

	assert.Equal(t, "off", m.State())
}

func TestStateMachine_DrivenBySurface(t *testing.T) {
	var damage int
	var events []string
	m := newToggle(t)
	s, err := interactor.NewSurface(
		interactor.WithParent(interactor.DamageFunc(func() { damage++ })),
		interactor.WithEventObserver(func(e interactor.Event) { events = append(events, e.String()) }),
		interactor.WithMachine(m),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, damage, "install damages once")

	s.HandlePointer(interactor.RawMove, 30, 30)
	s.HandlePointer(interactor.RawPress, 30, 30)
	assert.Equal(t, "armed", m.State())

	// Dragging off the button exits it and disarms.
	s.HandlePointer(interactor.RawMove, 5, 5)
	assert.Equal(t, "off", m.State())

	s.HandlePointer(interactor.RawRelease, 5, 5)
	assert.Equal(t, "off", m.State())

	assert.Equal(t, []string{
		"enter button", "enter background", "move_inside button", "move_inside background",
		"press button", "press background",
		"exit button", "move_inside background",
		"release background",
	}, events)
	assert.Equal(t, 3, damage)
}
