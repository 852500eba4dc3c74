package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/grindlemire/go-interactor"
	"github.com/grindlemire/go-interactor/machine"
)

// session is a surface with one machine loaded through the machine loader.
// Load completions and events share one goroutine via the queue.
type session struct {
	surface *interactor.Surface
	queue   *interactor.Queue
}

// openSession loads location onto a new surface and waits for the load to
// complete. Semantic events and transitions are printed to out when it is
// not nil.
func openSession(ctx context.Context, cfg config, location string, out io.Writer, opts ...interactor.SurfaceOption) (*session, error) {
	timeout, err := cfg.timeout()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var machineOpts []machine.Option
	if out != nil {
		machineOpts = append(machineOpts, machine.OnTransition(func(tr machine.Transition) {
			fmt.Fprintf(out, "transition %s -> %s (%s)\n", tr.From, tr.To, tr.Event)
		}))
	}

	q := interactor.NewQueue(4)
	base := []interactor.SurfaceOption{
		interactor.WithPosition(cfg.OriginX, cfg.OriginY),
		interactor.WithDebugDraw(cfg.DebugDraw),
		interactor.WithLoader(machine.NewLoader(machine.WithMachineOptions(machineOpts...))),
		interactor.WithScheduler(q.Schedule),
	}
	if out != nil {
		base = append(base, interactor.WithEventObserver(func(ev interactor.Event) {
			fmt.Fprintln(out, ev)
		}))
	}

	s, err := interactor.NewSurface(append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	var loadErr error
	interactor.SetErrorReporter(func(err error) { loadErr = err })
	defer interactor.SetErrorReporter(nil)

	s.Load(ctx, location)
	if !q.RunOne(ctx) {
		return nil, fmt.Errorf("loading %s: %w", location, ctx.Err())
	}
	if loadErr != nil {
		return nil, loadErr
	}
	if s.Machine() == nil {
		return nil, errors.New("no machine loaded")
	}
	return &session{surface: s, queue: q}, nil
}

// feed dispatches events given in canvas coordinates, running any queued
// work between them.
func (ss *session) feed(events []interactor.RawEvent) {
	for _, ev := range events {
		ss.queue.Drain()
		ss.surface.HandlePointer(ev.Kind, ev.X, ev.Y)
	}
	ss.queue.Drain()
}
