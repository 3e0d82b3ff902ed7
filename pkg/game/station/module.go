// Package station implements the station build grid: module placement,
// the adjacency graph between placed modules and the station event queue.
package station

import (
	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"spacestation/pkg/engine/world"
)

// ModuleType classifies a module; crew use it to find modules serving a need
type ModuleType int

// Module types
const (
	Corridor       ModuleType = iota // Basic connection corridor
	PowerGenerator                   // Generates power
	LifeSupport                      // Generates oxygen/atmosphere
	Quarters                         // Crew sleeping area
	MessHall                         // Food consumption area
	Storage                          // Resource storage
	MedBay                           // Health restoration
	Command                          // Station command center
	Custom                           // Custom/other
)

var moduleTypeNames = []string{
	"Corridor",
	"PowerGenerator",
	"LifeSupport",
	"Quarters",
	"MessHall",
	"Storage",
	"MedBay",
	"Command",
	"Custom",
}

func (t ModuleType) String() string {
	if t < 0 || int(t) >= len(moduleTypeNames) {
		return "Unknown"
	}
	return moduleTypeNames[t]
}

// ParseModuleType returns the type with the given name
func ParseModuleType(name string) (ModuleType, bool) {
	for i, n := range moduleTypeNames {
		if n == name {
			return ModuleType(i), true
		}
	}
	return Custom, false
}

// Definition describes a buildable module kind
type Definition struct {
	Key         string
	Name        string
	Description string
	Type        ModuleType
	Size        world.Size
	BuildCost   int

	PowerGeneration   int
	PowerConsumption  int
	OxygenGeneration  int
	OxygenConsumption int
	CrewCapacity      int

	RequiresPower      bool
	RequiresAtmosphere bool

	// ConnectionPoints are offsets from the anchor tile, before rotation.
	// Empty means the four cardinal unit offsets.
	ConnectionPoints []world.Coord
}

// ConnectFilter decides whether a module accepts a connection to other
type ConnectFilter func(self, other *Module) bool

// Module is one placeable station room or corridor.
// A module starts as a preview and becomes placed through Station.Place.
type Module struct {
	ID uuid.UUID
	Definition

	// Filter restricts which neighbours this module connects to; nil accepts all
	Filter ConnectFilter

	position world.Coord
	rotation world.Rotation
	placed   bool
	seq      uint64

	powered    bool
	atmosphere bool

	// discovered holds modules found through this module's own connection points
	discovered mapset.Set[*Module]
	// connected is the symmetric adjacency set
	connected mapset.Set[*Module]
}

// NewModule creates an unplaced preview module from a definition
func NewModule(def Definition) *Module {
	if def.Size.W <= 0 || def.Size.H <= 0 {
		def.Size = world.Size{W: 1, H: 1}
	}
	if len(def.ConnectionPoints) == 0 {
		def.ConnectionPoints = world.DefaultConnectionPoints()
	} else {
		def.ConnectionPoints = append([]world.Coord(nil), def.ConnectionPoints...)
	}
	return &Module{
		ID:         uuid.New(),
		Definition: def,
		discovered: mapset.New[*Module](),
		connected:  mapset.New[*Module](),
	}
}

// Position returns the anchor tile; meaningful only once placed
func (m *Module) Position() world.Coord {
	return m.position
}

// Rotation returns the placed rotation
func (m *Module) Rotation() world.Rotation {
	return m.rotation
}

// IsPlaced returns true once the module is registered on a grid
func (m *Module) IsPlaced() bool {
	return m.placed
}

// IsPowered returns the last power distribution result
func (m *Module) IsPowered() bool {
	return m.powered
}

// HasAtmosphere returns the last atmosphere propagation result
func (m *Module) HasAtmosphere() bool {
	return m.atmosphere
}

// SetPowered updates the powered flag and reports whether it changed
func (m *Module) SetPowered(powered bool) bool {
	if m.powered == powered {
		return false
	}
	m.powered = powered
	return true
}

// SetAtmosphere updates the atmosphere flag
func (m *Module) SetAtmosphere(atmosphere bool) {
	m.atmosphere = atmosphere
}

// RotatedSize returns the footprint size for the given rotation
func (m *Module) RotatedSize(r world.Rotation) world.Size {
	return world.RotatedSize(m.Size, r)
}

// Footprint returns the tiles covered by the placed module
func (m *Module) Footprint() []world.Coord {
	if !m.placed {
		return nil
	}
	return world.Footprint(m.position, m.RotatedSize(m.rotation))
}

// CanConnectTo reports whether this module accepts an edge to other
func (m *Module) CanConnectTo(other *Module) bool {
	if other == nil || other == m {
		return false
	}
	if m.Filter == nil {
		return true
	}
	return m.Filter(m, other)
}

// IsConnectedTo returns true if other is a direct neighbour in the connectivity graph
func (m *Module) IsConnectedTo(other *Module) bool {
	return m.connected.Has(other)
}

// ConnectionCount returns the number of direct neighbours
func (m *Module) ConnectionCount() int {
	return m.connected.Size()
}

// Connections returns the direct neighbours in placement order
func (m *Module) Connections() []*Module {
	out := make([]*Module, 0, m.connected.Size())
	m.connected.Each(func(n *Module) {
		out = append(out, n)
	})
	sortByPlacement(out)
	return out
}

// Label returns the display name, falling back to the catalog key
func (m *Module) Label() string {
	if m.Name != "" {
		return m.Name
	}
	if m.Key != "" {
		return m.Key
	}
	return m.Type.String()
}
