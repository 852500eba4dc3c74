package interactor

import (
	"fmt"
	"reflect"
)

// DispatchFunc receives each translated event, synchronously and in order.
type DispatchFunc func(Event)

// MachineDispatcher forwards each event to m's action entry point.
// A nil machine yields a dispatcher that drops everything.
func MachineDispatcher(m Machine) DispatchFunc {
	if m == nil {
		return func(Event) {}
	}
	return func(e Event) {
		m.ActOnEvent(e.Name, e.Region)
	}
}

// Tee returns a DispatchFunc that calls each non-nil fn in order.
func Tee(fns ...DispatchFunc) DispatchFunc {
	var live []DispatchFunc
	for _, fn := range fns {
		if fn != nil {
			live = append(live, fn)
		}
	}
	return func(e Event) {
		for _, fn := range live {
			fn(e)
		}
	}
}

// regionSet is an identity-keyed set of regions.
type regionSet map[Region]struct{}

// newRegionSet panics with the offending type when a region is not
// comparable, instead of the runtime's unhashable-key panic.
func newRegionSet(regions []Region) regionSet {
	s := make(regionSet, len(regions))
	for _, r := range regions {
		if t := reflect.TypeOf(r); t != nil && !t.Comparable() {
			panic(fmt.Sprintf("interactor: region type %v is not comparable; implement Region on a pointer", t))
		}
		s[r] = struct{}{}
	}
	return s
}

func (s regionSet) has(r Region) bool {
	_, ok := s[r]
	return ok
}

// difference returns the regions of a that are not in b, keeping a's order.
func difference(a []Region, b regionSet) []Region {
	var out []Region
	for _, r := range a {
		if !b.has(r) {
			out = append(out, r)
		}
	}
	return out
}
