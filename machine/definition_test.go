package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDefinition() *Definition {
	return &Definition{
		Name:    "m",
		Initial: "idle",
		Regions: []RegionDef{
			{Name: "a", Width: 10, Height: 10},
			{Name: "b", X: 5, Y: 5, Width: 10, Height: 10, Color: "#fff"},
		},
		States: []StateDef{
			{
				Name: "idle",
				Transitions: []TransitionDef{
					{Event: "enter", Region: "a", Target: "hover"},
				},
			},
			{
				Name:    "hover",
				Regions: []string{"a"},
				Transitions: []TransitionDef{
					{Event: "exit", Target: "idle"},
					{Event: "release_none", Target: "idle"},
				},
			},
		},
	}
}

func TestDefinition_ValidateOK(t *testing.T) {
	require.NoError(t, validDefinition().Validate())
}

func TestDefinition_ValidateProblems(t *testing.T) {
	tests := map[string]struct {
		mutate func(d *Definition)
		want   string
	}{
		"empty name": {
			mutate: func(d *Definition) { d.Name = "" },
			want:   "machine name is empty",
		},
		"duplicate region": {
			mutate: func(d *Definition) { d.Regions[1].Name = "a" },
			want:   `duplicate region "a"`,
		},
		"negative size": {
			mutate: func(d *Definition) { d.Regions[0].Width = -1 },
			want:   "negative size",
		},
		"bad color": {
			mutate: func(d *Definition) { d.Regions[0].Color = "red" },
			want:   `invalid color "red"`,
		},
		"missing initial": {
			mutate: func(d *Definition) { d.Initial = "nope" },
			want:   `initial state "nope" is not defined`,
		},
		"duplicate state": {
			mutate: func(d *Definition) { d.States[1].Name = "idle" },
			want:   `duplicate state "idle"`,
		},
		"unknown state region": {
			mutate: func(d *Definition) { d.States[1].Regions = []string{"zzz"} },
			want:   `unknown region "zzz"`,
		},
		"unknown event": {
			mutate: func(d *Definition) { d.States[0].Transitions[0].Event = "hover" },
			want:   `unknown event name "hover"`,
		},
		"unknown target": {
			mutate: func(d *Definition) { d.States[0].Transitions[0].Target = "gone" },
			want:   `unknown target state "gone"`,
		},
		"release_none with region": {
			mutate: func(d *Definition) { d.States[1].Transitions[1].Region = "a" },
			want:   "release_none cannot target region",
		},
		"no states": {
			mutate: func(d *Definition) { d.States = nil; d.Initial = "" },
			want:   "machine has no states",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := validDefinition()
			tt.mutate(d)
			err := d.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDefinition)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDefinition_ValidateReportsEverything(t *testing.T) {
	d := validDefinition()
	d.Name = ""
	d.Initial = "nope"
	d.Regions[0].Color = "blue"

	err := d.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "machine name is empty")
	assert.Contains(t, err.Error(), "initial state")
	assert.Contains(t, err.Error(), "invalid color")
}

func TestDefinition_State(t *testing.T) {
	d := validDefinition()

	s, ok := d.State("hover")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, s.Regions)

	_, ok = d.State("missing")
	assert.False(t, ok)
}
