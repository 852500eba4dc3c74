package interactor

import "fmt"

// RawKind identifies a primitive pointer notification.
type RawKind uint8

const (
	// RawNone is the zero value. It is never produced by a pointer source.
	RawNone RawKind = iota
	RawPress
	RawMove
	RawRelease
)

// String returns the name of the raw kind.
func (k RawKind) String() string {
	switch k {
	case RawPress:
		return "press"
	case RawMove:
		return "move"
	case RawRelease:
		return "release"
	default:
		return fmt.Sprintf("RawKind(%d)", uint8(k))
	}
}

// ParseRawKind returns the RawKind named by s.
func ParseRawKind(s string) (RawKind, error) {
	switch s {
	case "press":
		return RawPress, nil
	case "move":
		return RawMove, nil
	case "release":
		return RawRelease, nil
	}
	return RawNone, fmt.Errorf("unknown raw event kind %q", s)
}

// RawEvent is a pointer notification in the surface's local coordinate space.
type RawEvent struct {
	Kind RawKind
	X, Y float64
}

// EventName identifies a semantic, region-scoped event.
type EventName uint8

const (
	// EventNone is the zero value and is never dispatched.
	EventNone EventName = iota
	EventEnter
	EventExit
	EventPress
	EventMoveInside
	EventRelease
	// EventReleaseNone is a release outside every region. It carries no region.
	EventReleaseNone
)

var eventNames = [...]string{
	EventNone:        "none",
	EventEnter:       "enter",
	EventExit:        "exit",
	EventPress:       "press",
	EventMoveInside:  "move_inside",
	EventRelease:     "release",
	EventReleaseNone: "release_none",
}

// String returns the wire name of the event, e.g. "move_inside".
func (n EventName) String() string {
	if int(n) < len(eventNames) {
		return eventNames[n]
	}
	return fmt.Sprintf("EventName(%d)", uint8(n))
}

// ParseEventName returns the EventName for a wire name such as "enter".
func ParseEventName(s string) (EventName, error) {
	for i, name := range eventNames {
		if i != int(EventNone) && name == s {
			return EventName(i), nil
		}
	}
	return EventNone, fmt.Errorf("unknown event name %q", s)
}

// Event is a semantic event paired with its target region.
// Region is nil for EventReleaseNone.
type Event struct {
	Name   EventName
	Region Region
}

// String formats the event for logs and the CLI.
func (e Event) String() string {
	if e.Region == nil {
		return e.Name.String()
	}
	return e.Name.String() + " " + regionLabel(e.Region)
}

// regionLabel names a region for humans: its RegionName when it has one,
// otherwise its address.
func regionLabel(r Region) string {
	if n, ok := r.(interface{ RegionName() string }); ok {
		return n.RegionName()
	}
	return fmt.Sprintf("%p", r)
}
