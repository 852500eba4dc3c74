package interactor

// MockMachine is a Machine for tests. It serves a fixed region list and
// records every event it is asked to act on.
type MockMachine struct {
	Regions []Region
	Events  []Event

	// OnEvent, when set, runs after the event is recorded.
	OnEvent func(Event)

	damager Damager
}

// Ensure MockMachine implements Machine and Attacher.
var (
	_ Machine  = (*MockMachine)(nil)
	_ Attacher = (*MockMachine)(nil)
)

// NewMockMachine creates a mock machine with regions in draw order.
func NewMockMachine(regions ...Region) *MockMachine {
	return &MockMachine{Regions: regions}
}

// RegionsInDrawOrder returns the configured regions.
func (m *MockMachine) RegionsInDrawOrder() []Region {
	return m.Regions
}

// ActOnEvent records the event.
func (m *MockMachine) ActOnEvent(name EventName, region Region) {
	e := Event{Name: name, Region: region}
	m.Events = append(m.Events, e)
	if m.OnEvent != nil {
		m.OnEvent(e)
	}
}

// Attach stores the damage back-reference.
func (m *MockMachine) Attach(d Damager) {
	m.damager = d
}

// Attached returns the damager passed to Attach.
func (m *MockMachine) Attached() Damager {
	return m.damager
}

// Reset clears the recorded events.
func (m *MockMachine) Reset() {
	m.Events = nil
}
