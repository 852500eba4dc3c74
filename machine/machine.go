package machine

import (
	"log/slog"
	"sync"

	"github.com/gogpu/gg"
	"github.com/google/uuid"

	"github.com/grindlemire/go-interactor"
)

// defaultFill is used for regions without a color.
var defaultFill = gg.Hex("#808080")

// Transition records a fired transition for OnTransition hooks.
type Transition struct {
	From   string
	To     string
	Event  interactor.EventName
	Region string
}

// StateMachine runs a Definition. It implements interactor.Machine and
// interactor.Attacher: the active region set follows the current state, and
// a state change damages the surface it is attached to.
type StateMachine struct {
	id     string
	def    *Definition
	logger *slog.Logger

	regions map[string]*interactor.Box
	names   map[interactor.Region]string
	byState map[string][]interactor.Region

	mu           sync.Mutex
	state        string
	damager      interactor.Damager
	onTransition func(Transition)
}

var (
	_ interactor.Machine  = (*StateMachine)(nil)
	_ interactor.Attacher = (*StateMachine)(nil)
)

// Option configures a StateMachine.
type Option func(*StateMachine)

// WithLogger overrides the module logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *StateMachine) {
		if l != nil {
			m.logger = l
		}
	}
}

// OnTransition registers fn to run after every fired transition.
func OnTransition(fn func(Transition)) Option {
	return func(m *StateMachine) {
		m.onTransition = fn
	}
}

// New builds a machine from def. def is validated first. Each call creates
// fresh regions, so machines built from one definition never share identity.
func New(def *Definition, opts ...Option) (*StateMachine, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	m := &StateMachine{
		id:      uuid.NewString(),
		def:     def,
		logger:  interactor.Logger(),
		regions: make(map[string]*interactor.Box, len(def.Regions)),
		names:   make(map[interactor.Region]string, len(def.Regions)),
		byState: make(map[string][]interactor.Region, len(def.States)),
		state:   def.Initial,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("machine", def.Name, "machine_id", m.id)

	all := make([]interactor.Region, 0, len(def.Regions))
	for _, rd := range def.Regions {
		fill := defaultFill
		if rd.Color != "" {
			fill = gg.Hex(rd.Color)
		}
		b := interactor.NewBox(rd.Name, rd.X, rd.Y, rd.Width, rd.Height, fill)
		m.regions[rd.Name] = b
		m.names[b] = rd.Name
		all = append(all, b)
	}
	for _, sd := range def.States {
		if len(sd.Regions) == 0 {
			m.byState[sd.Name] = all
			continue
		}
		list := make([]interactor.Region, 0, len(sd.Regions))
		for _, name := range sd.Regions {
			list = append(list, m.regions[name])
		}
		m.byState[sd.Name] = list
	}
	return m, nil
}

// ID returns the machine instance id used in logs.
func (m *StateMachine) ID() string {
	return m.id
}

// Definition returns the definition the machine was built from.
func (m *StateMachine) Definition() *Definition {
	return m.def
}

// State returns the current state name.
func (m *StateMachine) State() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Region returns the named region.
func (m *StateMachine) Region(name string) (*interactor.Box, bool) {
	b, ok := m.regions[name]
	return b, ok
}

// Attach stores the damage back-reference.
func (m *StateMachine) Attach(d interactor.Damager) {
	m.mu.Lock()
	m.damager = d
	m.mu.Unlock()
}

// RegionsInDrawOrder returns the regions active in the current state.
func (m *StateMachine) RegionsInDrawOrder() []interactor.Region {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byState[m.state]
}

// ActOnEvent fires the first transition of the current state that matches
// the event and region. Events from regions this machine does not own are
// ignored.
func (m *StateMachine) ActOnEvent(name interactor.EventName, region interactor.Region) {
	regionName := ""
	if region != nil {
		n, ok := m.names[region]
		if !ok {
			m.logger.Warn("event for foreign region", "event", name)
			return
		}
		regionName = n
	}

	m.mu.Lock()
	from := m.state
	sd, _ := m.def.State(from)
	var fired *TransitionDef
	for i := range sd.Transitions {
		t := &sd.Transitions[i]
		if t.Event != name.String() {
			continue
		}
		if t.Region != "" && t.Region != regionName {
			continue
		}
		fired = t
		break
	}
	if fired == nil {
		m.mu.Unlock()
		m.logger.Debug("no transition", "state", from, "event", name, "region", regionName)
		return
	}
	m.state = fired.Target
	damager := m.damager
	hook := m.onTransition
	m.mu.Unlock()

	tr := Transition{From: from, To: fired.Target, Event: name, Region: regionName}
	m.logger.Info("transition", "from", tr.From, "to", tr.To, "event", name, "region", regionName)
	if hook != nil {
		hook(tr)
	}
	if tr.From != tr.To && damager != nil {
		damager.Damage()
	}
}
