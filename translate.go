package interactor

import (
	"log/slog"
	"slices"
)

// Translator turns raw pointer events into semantic events for one machine.
//
// Its only persistent state is the pick list of the most recent raw event.
// A Translator is not safe for concurrent use; it is driven from a single
// goroutine, and calls to Handle made from inside a dispatch are queued
// until the current event has been fully delivered.
type Translator struct {
	machine  Machine
	dispatch DispatchFunc
	logger   *slog.Logger

	previous []Region

	dispatching bool
	pending     []RawEvent
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithDispatch replaces the default dispatch, which forwards to the machine.
func WithDispatch(fn DispatchFunc) TranslatorOption {
	return func(t *Translator) {
		if fn != nil {
			t.dispatch = fn
		}
	}
}

// WithTranslatorLogger overrides the package logger for this translator.
func WithTranslatorLogger(l *slog.Logger) TranslatorOption {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTranslator creates a translator for m. m may be nil, in which case
// every raw event is a no-op.
func NewTranslator(m Machine, opts ...TranslatorOption) *Translator {
	t := &Translator{
		machine:  m,
		dispatch: MachineDispatcher(m),
		logger:   Logger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Machine returns the machine the translator feeds.
func (t *Translator) Machine() Machine {
	return t.machine
}

// Previous returns a copy of the pick list recorded for the last raw event.
func (t *Translator) Previous() []Region {
	return slices.Clone(t.previous)
}

// Handle translates ev and dispatches the resulting events.
func (t *Translator) Handle(ev RawEvent) {
	if t.dispatching {
		t.pending = append(t.pending, ev)
		return
	}
	t.dispatching = true
	defer func() {
		t.dispatching = false
		t.pending = nil
	}()

	t.translate(ev)
	for len(t.pending) > 0 {
		next := t.pending[0]
		t.pending = t.pending[1:]
		t.translate(next)
	}
}

func (t *Translator) translate(ev RawEvent) {
	if t.machine == nil {
		return
	}

	current := Pick(t.machine, ev.X, ev.Y)
	exited := difference(t.previous, newRegionSet(current))
	entered := difference(current, newRegionSet(t.previous))

	t.logger.Debug("translate",
		"kind", ev.Kind,
		"x", ev.X,
		"y", ev.Y,
		"hits", len(current),
		"exited", len(exited),
		"entered", len(entered),
	)

	for _, r := range exited {
		t.emit(EventExit, r)
	}
	for _, r := range entered {
		t.emit(EventEnter, r)
	}

	switch ev.Kind {
	case RawPress:
		for _, r := range current {
			t.emit(EventPress, r)
		}
	case RawMove:
		for _, r := range current {
			t.emit(EventMoveInside, r)
		}
	case RawRelease:
		if len(current) == 0 {
			t.emit(EventReleaseNone, nil)
		}
		for _, r := range current {
			t.emit(EventRelease, r)
		}
	}

	t.previous = current
}

func (t *Translator) emit(name EventName, r Region) {
	e := Event{Name: name, Region: r}
	t.logger.Debug("dispatch", "event", e)
	t.dispatch(e)
}
