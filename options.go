package interactor

import (
	"errors"
	"log/slog"
	"math"
)

// SurfaceOption is a functional option for configuring a Surface.
type SurfaceOption func(*Surface) error

// WithPosition sets the surface origin in parent coordinates.
func WithPosition(x, y float64) SurfaceOption {
	return func(s *Surface) error {
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return errors.New("surface position must be finite")
		}
		s.x, s.y = x, y
		return nil
	}
}

// WithParent sets the damage target notified when the surface needs a redraw.
func WithParent(p Damager) SurfaceOption {
	return func(s *Surface) error {
		s.parent = p
		return nil
	}
}

// WithMachine installs an initial machine once construction finishes.
func WithMachine(m Machine) SurfaceOption {
	return func(s *Surface) error {
		s.pending = m
		return nil
	}
}

// WithLoader sets the loader used by Surface.Load.
func WithLoader(l Loader) SurfaceOption {
	return func(s *Surface) error {
		if l == nil {
			return errors.New("loader must not be nil")
		}
		s.loader = l
		return nil
	}
}

// WithScheduler sets how load completions reach the surface. The function
// receives a closure that must eventually run exactly once, normally on the
// goroutine that drives the surface. The default runs it immediately on the
// loading goroutine; see Surface for what that allows.
func WithScheduler(schedule func(func())) SurfaceOption {
	return func(s *Surface) error {
		if schedule == nil {
			return errors.New("scheduler must not be nil")
		}
		s.schedule = schedule
		return nil
	}
}

// WithDebugDraw makes regions outline their bounding boxes when drawn.
func WithDebugDraw(debug bool) SurfaceOption {
	return func(s *Surface) error {
		s.debugDraw = debug
		return nil
	}
}

// WithEventObserver registers fn to see every translated event just before
// the machine does.
func WithEventObserver(fn DispatchFunc) SurfaceOption {
	return func(s *Surface) error {
		s.observer = fn
		return nil
	}
}

// WithLogger overrides the package logger for this surface and its
// translators.
func WithLogger(l *slog.Logger) SurfaceOption {
	return func(s *Surface) error {
		if l == nil {
			return errors.New("logger must not be nil")
		}
		s.logger = l
		return nil
	}
}
