package interactor

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoLoader is reported when Load is called on a surface without a Loader.
var ErrNoLoader = errors.New("no machine loader configured")

// LoadError describes a failed asynchronous machine load.
type LoadError struct {
	Location string
	Request  uint64
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load machine %q: %v", e.Location, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load starts loading a machine from location and returns immediately with
// the request id. The result is delivered through the surface scheduler:
// success installs the machine and damages the parent once; failure clears
// the machine and reports a *LoadError through ReportError. A completion
// whose request id has been superseded by a newer Load is discarded.
func (s *Surface) Load(ctx context.Context, location string) uint64 {
	id := s.loadSeq.Add(1)

	s.mu.Lock()
	loader := s.loader
	s.mu.Unlock()
	if loader == nil {
		loader = LoaderFunc(func(context.Context, string) (Machine, error) {
			return nil, ErrNoLoader
		})
	}

	s.logger.Debug("load started", "location", location, "request", id)
	go func() {
		m, err := loader.Load(ctx, location)
		s.schedule(func() {
			s.completeLoad(id, location, m, err)
		})
	}()
	return id
}

func (s *Surface) completeLoad(id uint64, location string, m Machine, err error) {
	if latest := s.loadSeq.Load(); id != latest {
		s.logger.Warn("discarding stale load", "location", location, "request", id, "latest", latest)
		return
	}
	if err == nil && m == nil {
		err = errors.New("loader returned no machine")
	}
	if err != nil {
		if s.Machine() != nil {
			s.SetMachine(nil)
		}
		ReportError(&LoadError{Location: location, Request: id, Err: err})
		return
	}
	s.logger.Info("load finished", "location", location, "request", id)
	s.SetMachine(m)
}
