package station

import "spacestation/pkg/engine/world"

// IsValidPlacement checks whether m may be placed at the anchor with the
// given rotation: every footprint tile must be free and, unless the station
// is empty, at least one footprint tile must border an occupied tile.
// Affordability is the caller's concern.
func (s *Station) IsValidPlacement(m *Module, at world.Coord, r world.Rotation) bool {
	if m == nil || m.placed {
		return false
	}

	size := m.RotatedSize(r)
	if s.grid.IsOccupied(at, size) {
		return false
	}

	// The first module seeds the station; everything after must attach to it
	if s.grid.Empty() {
		return true
	}
	return s.touchesStation(at, size)
}

// touchesStation returns true if any tile of the footprint is cardinally
// adjacent to an occupied tile
func (s *Station) touchesStation(at world.Coord, size world.Size) bool {
	for _, tile := range world.Footprint(at, size) {
		if s.grid.HasOccupiedNeighbor(tile) {
			return true
		}
	}
	return false
}
