package interactor

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// Surface is the composition root: it owns the position and parent link,
// holds the optional machine and its translator, draws the machine's regions,
// and propagates damage upward.
//
// Raw events and draws must come from one goroutine. The mutex only guards
// the machine swap performed by asynchronous loads; dispatch runs outside it
// so machine actions may call back into the surface.
//
// Load completions run wherever the scheduler puts them. By default that is
// the loading goroutine, so SetMachine, Machine.Attach and the parent's
// Damage may be called there while raw events are being handled; an event
// already in flight finishes against the machine it started with. Hosts
// whose parent or machines are not safe for that pass Queue.Schedule to
// WithScheduler and drain the queue on the event goroutine.
type Surface struct {
	mu         sync.Mutex
	x, y       float64
	parent     Damager
	machine    Machine
	translator *Translator

	loader   Loader
	schedule func(func())
	loadSeq  atomic.Uint64

	debugDraw bool
	observer  DispatchFunc
	logger    *slog.Logger
	pending   Machine
}

// NewSurface creates a surface. Options are applied in order and the first
// failing option aborts construction.
func NewSurface(opts ...SurfaceOption) (*Surface, error) {
	s := &Surface{
		schedule: func(fn func()) { fn() },
		logger:   Logger(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.translator = s.newTranslator(nil)
	if s.pending != nil {
		m := s.pending
		s.pending = nil
		s.SetMachine(m)
	}
	return s, nil
}

func (s *Surface) newTranslator(m Machine) *Translator {
	dispatch := MachineDispatcher(m)
	if s.observer != nil {
		dispatch = Tee(s.observer, dispatch)
	}
	return NewTranslator(m, WithDispatch(dispatch), WithTranslatorLogger(s.logger))
}

// Machine returns the installed machine, or nil.
func (s *Surface) Machine() Machine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine
}

// SetMachine installs m, replacing any previous machine, and emits one
// damage notification. Passing nil clears the machine. The new machine gets a
// fresh translator so no pick state leaks across machines.
func (s *Surface) SetMachine(m Machine) {
	if a, ok := m.(Attacher); ok {
		a.Attach(s)
	}

	s.mu.Lock()
	s.machine = m
	s.translator = s.newTranslator(m)
	s.mu.Unlock()

	if m != nil {
		s.logger.Info("machine installed", "regions", len(m.RegionsInDrawOrder()))
	} else {
		s.logger.Info("machine cleared")
	}
	s.Damage()
}

// Position returns the surface origin in parent coordinates.
func (s *Surface) Position() (x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.x, s.y
}

// SetPosition moves the surface. The parent is damaged only when the
// position actually changes.
func (s *Surface) SetPosition(x, y float64) {
	s.mu.Lock()
	if s.x == x && s.y == y {
		s.mu.Unlock()
		return
	}
	s.x, s.y = x, y
	s.mu.Unlock()
	s.Damage()
}

// SetParent replaces the damage target. When the parent changes, the old
// parent is damaged before the swap and the new one after it.
func (s *Surface) SetParent(p Damager) {
	s.mu.Lock()
	old := s.parent
	s.mu.Unlock()
	if sameDamager(old, p) {
		return
	}

	s.Damage()
	s.mu.Lock()
	s.parent = p
	s.mu.Unlock()
	s.Damage()
}

// sameDamager reports whether a and b are the same damage target. Values of
// non-comparable types, such as DamageFunc, never count as the same.
func sameDamager(a, b Damager) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}
	return a == b
}

// Damage forwards a redraw request to the parent, if any.
func (s *Surface) Damage() {
	s.mu.Lock()
	p := s.parent
	s.mu.Unlock()
	if p == nil {
		return
	}
	s.logger.Debug("damage")
	p.Damage()
}

// Pick returns the regions under the local point (x, y), topmost first.
// It does not touch translator state.
func (s *Surface) Pick(x, y float64) []Region {
	return Pick(s.Machine(), x, y)
}

// Dispatch translates a raw event given in local coordinates.
func (s *Surface) Dispatch(ev RawEvent) {
	s.mu.Lock()
	t := s.translator
	s.mu.Unlock()
	t.Handle(ev)
}

// HandlePointer translates a raw event given in parent coordinates.
func (s *Surface) HandlePointer(kind RawKind, x, y float64) {
	s.mu.Lock()
	ox, oy := s.x, s.y
	s.mu.Unlock()
	s.Dispatch(RawEvent{Kind: kind, X: x - ox, Y: y - oy})
}

// Previous returns the pick list recorded for the last raw event.
func (s *Surface) Previous() []Region {
	s.mu.Lock()
	t := s.translator
	s.mu.Unlock()
	return t.Previous()
}

// Draw renders every region in draw order at the surface position.
// With no machine installed it draws nothing.
func (s *Surface) Draw(dc *gg.Context) error {
	s.mu.Lock()
	m, x, y, debug := s.machine, s.x, s.y, s.debugDraw
	s.mu.Unlock()
	if m == nil || dc == nil {
		return nil
	}

	dc.Push()
	defer dc.Pop()
	dc.Translate(x, y)

	var errs []error
	for _, r := range m.RegionsInDrawOrder() {
		if r == nil {
			continue
		}
		rx, ry := r.Offset()
		dc.Push()
		dc.Translate(rx, ry)
		if err := r.Draw(dc, debug); err != nil {
			errs = append(errs, fmt.Errorf("draw %s: %w", regionLabel(r), err))
		}
		dc.Pop()
	}
	if err := errors.Join(errs...); err != nil {
		s.logger.Warn("draw failed", "err", err)
		return err
	}
	return nil
}
