package station

// EventKind identifies what happened on the station
type EventKind int

// Event kinds
const (
	EventModulePlaced EventKind = iota
	EventModuleRemoved
	EventConnectionsUpdated
	EventPowerChanged         // a module's powered flag flipped
	EventStationPowerChanged  // station-wide sufficient power flipped
	EventStationOxygenChanged // station-wide sufficient oxygen flipped
)

func (k EventKind) String() string {
	switch k {
	case EventModulePlaced:
		return "ModulePlaced"
	case EventModuleRemoved:
		return "ModuleRemoved"
	case EventConnectionsUpdated:
		return "ConnectionsUpdated"
	case EventPowerChanged:
		return "PowerChanged"
	case EventStationPowerChanged:
		return "StationPowerChanged"
	case EventStationOxygenChanged:
		return "StationOxygenChanged"
	default:
		return "Unknown"
	}
}

// Event is a queued notification of a station change.
// Module is nil for station-wide events; Value carries the new boolean state
// for power/oxygen events.
type Event struct {
	Kind   EventKind
	Module *Module
	Value  bool
}

// Emit appends an event to the queue
func (s *Station) Emit(e Event) {
	s.events = append(s.events, e)
}

// DrainEvents returns all queued events and empties the queue
func (s *Station) DrainEvents() []Event {
	events := s.events
	s.events = nil
	return events
}

// PendingEvents returns the number of queued events
func (s *Station) PendingEvents() int {
	return len(s.events)
}
