// Package systems recomputes station-wide power and atmosphere on a fixed cadence.
package systems

import (
	"github.com/zyedidia/generic/mapset"

	"spacestation/pkg/game/station"
)

// DefaultInterval is the number of seconds between recomputes
const DefaultInterval = 0.5

// Systems tracks station resource totals and drives power distribution and
// atmosphere propagation for the modules of one station.
type Systems struct {
	station  *station.Station
	interval float64
	timer    float64

	TotalPowerGeneration   int
	TotalPowerConsumption  int
	TotalOxygenGeneration  int
	TotalOxygenConsumption int

	sufficientPower  bool
	sufficientOxygen bool
}

// New creates the systems for a station. A non-positive interval uses DefaultInterval.
func New(st *station.Station, interval float64) *Systems {
	if interval <= 0 {
		interval = DefaultInterval
	}
	// An empty station generates and consumes nothing, which is sufficient
	return &Systems{
		station:          st,
		interval:         interval,
		sufficientPower:  true,
		sufficientOxygen: true,
	}
}

// Interval returns the recompute cadence in seconds
func (s *Systems) Interval() float64 {
	return s.interval
}

// Tick advances the cadence timer and recomputes once the interval has
// elapsed. It returns true if a recompute ran.
func (s *Systems) Tick(dt float64) bool {
	s.timer += dt
	if s.timer < s.interval {
		return false
	}
	s.timer = 0
	s.Recalculate()
	return true
}

// Recalculate runs the full pipeline: resource totals, power distribution,
// then atmosphere. Call it after any placement or removal.
func (s *Systems) Recalculate() {
	s.RecalculateResources()
	s.UpdatePowerDistribution()
	s.PropagateAtmosphere()
}

// RecalculateResources sums generation and consumption over placed modules
func (s *Systems) RecalculateResources() {
	s.TotalPowerGeneration = 0
	s.TotalPowerConsumption = 0
	s.TotalOxygenGeneration = 0
	s.TotalOxygenConsumption = 0

	for _, m := range s.station.Modules() {
		if !m.IsPlaced() {
			continue
		}
		s.TotalPowerGeneration += m.PowerGeneration
		s.TotalPowerConsumption += m.PowerConsumption
		s.TotalOxygenGeneration += m.OxygenGeneration
		s.TotalOxygenConsumption += m.OxygenConsumption
	}

	oldPower := s.sufficientPower
	oldOxygen := s.sufficientOxygen

	s.sufficientPower = s.TotalPowerGeneration >= s.TotalPowerConsumption
	s.sufficientOxygen = s.TotalOxygenGeneration >= s.TotalOxygenConsumption

	if oldPower != s.sufficientPower {
		s.station.Emit(station.Event{Kind: station.EventStationPowerChanged, Value: s.sufficientPower})
	}
	if oldOxygen != s.sufficientOxygen {
		s.station.Emit(station.Event{Kind: station.EventStationOxygenChanged, Value: s.sufficientOxygen})
	}
}

// UpdatePowerDistribution powers every module that does not need power, and
// every other module only while the station as a whole has sufficient power.
// There is no partial brownout: the pool is all or nothing.
func (s *Systems) UpdatePowerDistribution() {
	for _, m := range s.station.Modules() {
		if !m.IsPlaced() {
			continue
		}

		powered := true
		if m.RequiresPower {
			powered = s.sufficientPower
		}
		if m.SetPowered(powered) {
			s.station.Emit(station.Event{Kind: station.EventPowerChanged, Module: m, Value: powered})
		}
	}
}

// PropagateAtmosphere clears atmosphere everywhere, then flood-fills it from
// every powered module that generates oxygen across the connectivity graph.
func (s *Systems) PropagateAtmosphere() {
	modules := s.station.Modules()
	for _, m := range modules {
		if m.IsPlaced() {
			m.SetAtmosphere(false)
		}
	}

	visited := mapset.New[*station.Module]()
	for _, m := range modules {
		if !m.IsPlaced() {
			continue
		}
		if m.OxygenGeneration > 0 && m.IsPowered() {
			floodFill(m, visited)
		}
	}
}

// floodFill marks every module reachable from start as having atmosphere.
// visited is shared across seeds so no module is processed twice.
func floodFill(start *station.Module, visited mapset.Set[*station.Module]) {
	if start == nil || visited.Has(start) {
		return
	}

	queue := []*station.Module{start}
	visited.Put(start)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		current.SetAtmosphere(true)

		for _, n := range current.Connections() {
			if n.IsPlaced() && !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
}

// HasSufficientPower returns the last computed station power state
func (s *Systems) HasSufficientPower() bool {
	return s.sufficientPower
}

// HasSufficientOxygen returns the last computed station oxygen state
func (s *Systems) HasSufficientOxygen() bool {
	return s.sufficientOxygen
}

// NetPower returns generation minus consumption
func (s *Systems) NetPower() int {
	return s.TotalPowerGeneration - s.TotalPowerConsumption
}

// NetOxygen returns generation minus consumption
func (s *Systems) NetOxygen() int {
	return s.TotalOxygenGeneration - s.TotalOxygenConsumption
}

// AtmosphereCoverage returns how many placed modules currently hold atmosphere
func (s *Systems) AtmosphereCoverage() (withAtmosphere, total int) {
	for _, m := range s.station.Modules() {
		if !m.IsPlaced() {
			continue
		}
		total++
		if m.HasAtmosphere() {
			withAtmosphere++
		}
	}
	return withAtmosphere, total
}
