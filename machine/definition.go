package machine

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/grindlemire/go-interactor"
)

// ErrInvalidDefinition wraps every validation failure.
var ErrInvalidDefinition = errors.New("invalid machine definition")

// Definition is the external description of a machine: its regions in draw
// order, its states, and the transitions between them.
type Definition struct {
	Name    string      `json:"name" yaml:"name" toml:"name"`
	Initial string      `json:"initial" yaml:"initial" toml:"initial"`
	Regions []RegionDef `json:"regions" yaml:"regions" toml:"regions"`
	States  []StateDef  `json:"states" yaml:"states" toml:"states"`
}

// RegionDef describes an axis-aligned region.
type RegionDef struct {
	Name   string  `json:"name" yaml:"name" toml:"name"`
	X      float64 `json:"x" yaml:"x" toml:"x"`
	Y      float64 `json:"y" yaml:"y" toml:"y"`
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
	// Color is "#rgb", "#rrggbb" or "#rrggbbaa". Empty means mid grey.
	Color string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

// StateDef describes one state.
type StateDef struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	// Regions lists the region names active in this state, in draw order.
	// Empty means every region.
	Regions     []string        `json:"regions,omitempty" yaml:"regions,omitempty" toml:"regions,omitempty"`
	Transitions []TransitionDef `json:"transitions,omitempty" yaml:"transitions,omitempty" toml:"transitions,omitempty"`
}

// TransitionDef moves the machine to Target when Event fires on Region.
// An empty Region matches any region.
type TransitionDef struct {
	Event  string `json:"event" yaml:"event" toml:"event"`
	Region string `json:"region,omitempty" yaml:"region,omitempty" toml:"region,omitempty"`
	Target string `json:"target" yaml:"target" toml:"target"`
}

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate reports every problem in the definition at once.
func (d *Definition) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if d.Name == "" {
		add("machine name is empty")
	}

	regions := make(map[string]bool, len(d.Regions))
	for i, r := range d.Regions {
		switch {
		case r.Name == "":
			add("region %d has no name", i)
		case regions[r.Name]:
			add("duplicate region %q", r.Name)
		}
		regions[r.Name] = true
		if r.Width < 0 || r.Height < 0 {
			add("region %q has negative size %vx%v", r.Name, r.Width, r.Height)
		}
		if r.Color != "" && !colorPattern.MatchString(r.Color) {
			add("region %q has invalid color %q", r.Name, r.Color)
		}
	}

	states := make(map[string]bool, len(d.States))
	for i, s := range d.States {
		switch {
		case s.Name == "":
			add("state %d has no name", i)
		case states[s.Name]:
			add("duplicate state %q", s.Name)
		}
		states[s.Name] = true
	}

	if len(d.States) == 0 {
		add("machine has no states")
	}
	if d.Initial == "" {
		add("initial state is empty")
	} else if !states[d.Initial] {
		add("initial state %q is not defined", d.Initial)
	}

	for _, s := range d.States {
		for _, name := range s.Regions {
			if !regions[name] {
				add("state %q lists unknown region %q", s.Name, name)
			}
		}
		for j, t := range s.Transitions {
			ev, err := interactor.ParseEventName(t.Event)
			if err != nil {
				add("state %q transition %d: %w", s.Name, j, err)
			}
			if t.Region != "" && !regions[t.Region] {
				add("state %q transition %d: unknown region %q", s.Name, j, t.Region)
			}
			if ev == interactor.EventReleaseNone && t.Region != "" {
				add("state %q transition %d: release_none cannot target region %q", s.Name, j, t.Region)
			}
			if !states[t.Target] {
				add("state %q transition %d: unknown target state %q", s.Name, j, t.Target)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidDefinition, errors.Join(errs...))
}

// State returns the named state definition.
func (d *Definition) State(name string) (StateDef, bool) {
	for _, s := range d.States {
		if s.Name == name {
			return s, true
		}
	}
	return StateDef{}, false
}
