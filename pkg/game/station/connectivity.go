package station

import (
	"github.com/zyedidia/generic/mapset"

	"spacestation/pkg/engine/world"
)

// UpdateConnections recomputes the modules m reaches through its connection
// points. An edge is kept while either endpoint reaches the other, so the
// graph stays symmetric whatever order modules are updated in.
func (s *Station) UpdateConnections(m *Module) {
	if m == nil {
		return
	}

	m.discovered.Each(func(other *Module) {
		s.forgetDiscovery(m, other)
	})
	m.discovered = mapset.New[*Module]()

	if m.placed {
		for _, point := range m.ConnectionPoints {
			offset := world.RotateOffset(point, m.rotation)
			other := s.ModuleAt(m.position.Add(offset))
			if other == nil || other == m || m.discovered.Has(other) {
				continue
			}
			if !m.CanConnectTo(other) || !other.CanConnectTo(m) {
				continue
			}
			m.discovered.Put(other)
			m.connected.Put(other)
			other.connected.Put(m)
		}
	}

	s.Emit(Event{Kind: EventConnectionsUpdated, Module: m})
}

// forgetDiscovery removes the m->other discovery and drops the edge unless
// other still reaches m on its own
func (s *Station) forgetDiscovery(m, other *Module) {
	if other.discovered.Has(m) {
		return
	}
	m.connected.Remove(other)
	other.connected.Remove(m)
}

// dropEdges removes every edge of m from both endpoints
func (s *Station) dropEdges(m *Module) {
	m.connected.Each(func(other *Module) {
		other.connected.Remove(m)
		other.discovered.Remove(m)
	})
	m.connected = mapset.New[*Module]()
	m.discovered = mapset.New[*Module]()
}

// Edges returns the number of undirected edges in the connectivity graph
func (s *Station) Edges() int {
	total := 0
	for _, m := range s.modules {
		total += m.connected.Size()
	}
	return total / 2
}
