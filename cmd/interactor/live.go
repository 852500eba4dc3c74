package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/grindlemire/go-interactor"
	"github.com/grindlemire/go-interactor/internal/termin"
	"github.com/grindlemire/go-interactor/machine"
)

const pollInterval = 50 * time.Millisecond

// runLive implements the live subcommand.
// Terminal cells are the coordinate space: column x, row y, both from 0.
// Press q or Ctrl-C to quit and r to reload the definition.
func runLive(args []string) error {
	fs := flag.NewFlagSet("live", flag.ContinueOnError)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.resolve(fs)
	if err != nil {
		return err
	}
	closer, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	location := cfg.Definition
	if fs.NArg() == 1 {
		location = fs.Arg(0)
	}
	if location == "" || fs.NArg() > 1 {
		return fmt.Errorf("usage: interactor live [options] <definition>")
	}

	out := crlfWriter{w: os.Stdout}
	damaged := false
	ss, err := openSession(context.Background(), cfg, location, out,
		interactor.WithParent(interactor.DamageFunc(func() { damaged = true })))
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	restore, err := termin.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer restore()
	if err := termin.EnableMouse(os.Stdout); err != nil {
		return err
	}
	defer termin.DisableMouse(os.Stdout)

	interactor.SetErrorReporter(func(err error) { fmt.Fprintf(out, "error: %v\n", err) })
	defer interactor.SetErrorReporter(nil)

	fmt.Fprintf(out, "live: %s (q to quit, r to reload)\n", location)
	if cols, rows, err := termin.Size(fd); err == nil {
		fmt.Fprintf(out, "terminal %dx%d cells, surface at %g,%g\n", cols, rows, cfg.OriginX, cfg.OriginY)
	}
	printState(out, ss.surface)
	damaged = false

	r := termin.NewReader(fd)
	defer r.Close()
	for {
		ss.queue.Drain()
		if damaged {
			damaged = false
			printState(out, ss.surface)
		}

		in, ok, err := r.Poll(pollInterval)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if in.IsKey {
			switch in.Key {
			case 'q', 0x03:
				return nil
			case 'r':
				ss.surface.Load(context.Background(), location)
			}
			continue
		}
		ss.surface.HandlePointer(in.Pointer.Kind, in.Pointer.X, in.Pointer.Y)
	}
}

// printState reports the current state when the machine exposes one.
func printState(w io.Writer, s *interactor.Surface) {
	switch m := s.Machine().(type) {
	case *machine.StateMachine:
		fmt.Fprintf(w, "state %s\n", m.State())
	case nil:
		fmt.Fprintln(w, "no machine")
	}
}

// crlfWriter translates \n to \r\n for a terminal in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
