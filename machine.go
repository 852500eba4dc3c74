package interactor

import "context"

// Machine is the state-machine consumer of translated events.
type Machine interface {
	// RegionsInDrawOrder returns the active regions, back to front.
	// The returned slice must not be mutated by the caller.
	RegionsInDrawOrder() []Region

	// ActOnEvent is the machine's single action entry point. region is nil
	// for EventReleaseNone.
	ActOnEvent(name EventName, region Region)
}

// Attacher is implemented by machines that want a back-reference to the
// surface they are installed on. The reference is only used for damage and
// never owns the surface.
type Attacher interface {
	Attach(d Damager)
}

// Damager receives "visible state may be stale, schedule a redraw" signals.
type Damager interface {
	Damage()
}

// DamageFunc adapts a plain function to Damager.
type DamageFunc func()

// Damage calls f.
func (f DamageFunc) Damage() {
	if f != nil {
		f()
	}
}

// Loader fetches and builds a machine from a location string.
type Loader interface {
	Load(ctx context.Context, location string) (Machine, error)
}

// LoaderFunc adapts a plain function to Loader.
type LoaderFunc func(ctx context.Context, location string) (Machine, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, location string) (Machine, error) {
	return f(ctx, location)
}
