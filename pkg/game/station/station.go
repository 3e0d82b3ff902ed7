package station

import (
	"sort"

	"github.com/google/uuid"

	"spacestation/pkg/engine/world"
)

// Station owns the build grid and the registry of placed modules
type Station struct {
	grid    *world.Grid[*Module]
	modules []*Module
	byID    map[uuid.UUID]*Module
	nextSeq uint64
	events  []Event
}

// New creates an empty station with the given tile size and grid origin
func New(tileSize float64, origin world.Vec) *Station {
	return &Station{
		grid: world.NewGrid[*Module](tileSize, origin),
		byID: make(map[uuid.UUID]*Module),
	}
}

// Grid returns the underlying occupancy grid
func (s *Station) Grid() *world.Grid[*Module] {
	return s.grid
}

// WorldToGrid converts a world position to a grid coordinate
func (s *Station) WorldToGrid(pos world.Vec) world.Coord {
	return s.grid.WorldToGrid(pos)
}

// GridToWorld converts a grid coordinate to a world position
func (s *Station) GridToWorld(c world.Coord) world.Vec {
	return s.grid.GridToWorld(c)
}

// ModuleWorldPosition returns the world position of a module's anchor tile
func (s *Station) ModuleWorldPosition(m *Module) world.Vec {
	return s.grid.GridToWorld(m.position)
}

// IsOccupied checks whether any tile of the footprint is taken
func (s *Station) IsOccupied(at world.Coord, size world.Size) bool {
	return s.grid.IsOccupied(at, size)
}

// ModuleAt returns the module covering the tile, or nil
func (s *Station) ModuleAt(c world.Coord) *Module {
	m, _ := s.grid.At(c)
	return m
}

// ModuleByID returns the placed module with the given ID, or nil
func (s *Station) ModuleByID(id uuid.UUID) *Module {
	return s.byID[id]
}

// Modules returns the placed modules in placement order
func (s *Station) Modules() []*Module {
	out := make([]*Module, len(s.modules))
	copy(out, s.modules)
	return out
}

// Len returns the number of placed modules
func (s *Station) Len() int {
	return len(s.modules)
}

// AdjacentModules returns the distinct modules on the four tiles around c
func (s *Station) AdjacentModules(c world.Coord) []*Module {
	var adjacent []*Module
	for _, off := range world.DefaultConnectionPoints() {
		m := s.ModuleAt(c.Add(off))
		if m == nil || containsModule(adjacent, m) {
			continue
		}
		adjacent = append(adjacent, m)
	}
	return adjacent
}

// Place validates and registers a preview module. It returns false, leaving
// all state untouched, when the placement is not valid.
func (s *Station) Place(m *Module, at world.Coord, r world.Rotation) bool {
	if !s.IsValidPlacement(m, at, r) {
		return false
	}

	m.position = at
	m.rotation = r.Normalize()
	m.placed = true
	s.nextSeq++
	m.seq = s.nextSeq

	s.grid.Claim(at, m.RotatedSize(m.rotation), m)
	s.modules = append(s.modules, m)
	s.byID[m.ID] = m

	s.UpdateConnections(m)
	for _, n := range s.affectedBy(m) {
		s.UpdateConnections(n)
	}

	s.Emit(Event{Kind: EventModulePlaced, Module: m})
	return true
}

// Remove deregisters the module covering c and refreshes its former
// neighbours. It returns the removed module, or nil if the tile was empty.
func (s *Station) Remove(c world.Coord) *Module {
	m := s.ModuleAt(c)
	if m == nil {
		return nil
	}

	former := m.Connections()
	for _, n := range s.touchingModules(m) {
		if !containsModule(former, n) {
			former = append(former, n)
		}
	}

	s.grid.Release(m.position, m.RotatedSize(m.rotation))
	s.unregister(m)
	s.dropEdges(m)

	for _, n := range former {
		s.UpdateConnections(n)
	}

	m.placed = false
	m.powered = false
	m.atmosphere = false

	s.Emit(Event{Kind: EventModuleRemoved, Module: m})
	return m
}

func (s *Station) unregister(m *Module) {
	delete(s.byID, m.ID)
	for i, existing := range s.modules {
		if existing == m {
			s.modules = append(s.modules[:i], s.modules[i+1:]...)
			return
		}
	}
}

// touchingModules returns every other module sharing a tile edge with m's
// footprint. These are the modules whose connection points may reach m.
func (s *Station) touchingModules(m *Module) []*Module {
	var touching []*Module
	for _, tile := range m.Footprint() {
		for _, n := range tile.Neighbors() {
			other := s.ModuleAt(n)
			if other == nil || other == m || containsModule(touching, other) {
				continue
			}
			touching = append(touching, other)
		}
	}
	sortByPlacement(touching)
	return touching
}

// reachingModules returns every other module with a connection point that
// lands on m's footprint
func (s *Station) reachingModules(m *Module) []*Module {
	var reaching []*Module
	for _, other := range s.modules {
		if other == m {
			continue
		}
		for _, point := range other.ConnectionPoints {
			if s.ModuleAt(other.position.Add(world.RotateOffset(point, other.rotation))) == m {
				reaching = append(reaching, other)
				break
			}
		}
	}
	return reaching
}

// affectedBy returns the modules whose connections may change when m is
// placed: those touching its footprint and those whose points reach it
func (s *Station) affectedBy(m *Module) []*Module {
	affected := s.touchingModules(m)
	for _, n := range s.reachingModules(m) {
		if !containsModule(affected, n) {
			affected = append(affected, n)
		}
	}
	sortByPlacement(affected)
	return affected
}

func containsModule(list []*Module, m *Module) bool {
	for _, existing := range list {
		if existing == m {
			return true
		}
	}
	return false
}

func sortByPlacement(list []*Module) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].seq < list[j].seq
	})
}
