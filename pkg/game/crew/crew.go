package crew

import (
	"math"

	"github.com/google/uuid"

	"spacestation/pkg/engine/world"
	"spacestation/pkg/game/station"
)

// Station is the view of the station crew logic needs
type Station interface {
	Modules() []*station.Module
	ModuleWorldPosition(m *station.Module) world.Vec
	WorldToGrid(pos world.Vec) world.Coord
	ModuleAt(c world.Coord) *station.Module
	ModuleByID(id uuid.UUID) *station.Module
}

// FoodSource hands out up to want units of food and returns how much it gave
type FoodSource func(want float64) float64

// ServingType returns the module type that satisfies a need
func ServingType(need NeedType) (station.ModuleType, bool) {
	switch need {
	case Oxygen:
		return station.LifeSupport, true
	case Food:
		return station.MessHall, true
	case Sleep:
		return station.Quarters, true
	default:
		return station.Custom, false
	}
}

// Serves returns true if the module is usable for the need right now:
// placed, powered, holding atmosphere and of the serving type
func Serves(m *station.Module, need NeedType) bool {
	if m == nil || !m.IsPlaced() || !m.IsPowered() || !m.HasAtmosphere() {
		return false
	}
	t, ok := ServingType(need)
	return ok && m.Type == t
}

// FindNearestModule returns the serving module with the least 2D distance
// from pos, or nil when none serves the need
func FindNearestModule(st Station, pos world.Vec, need NeedType) *station.Module {
	var nearest *station.Module
	nearestDist := math.MaxFloat64

	for _, m := range st.Modules() {
		if !Serves(m, need) {
			continue
		}
		d := pos.Dist2D(st.ModuleWorldPosition(m))
		if d < nearestDist {
			nearestDist = d
			nearest = m
		}
	}
	return nearest
}

// Member is one crew member
type Member struct {
	Name     string
	Position world.Vec
	Needs    *Needs

	// TargetID is the module chosen for the most urgent need, or uuid.Nil
	TargetID   uuid.UUID
	TargetNeed NeedType
}

// NewMember creates a crew member with full needs
func NewMember(name string, pos world.Vec, rates Rates) *Member {
	return &Member{
		Name:     name,
		Position: pos,
		Needs:    NewNeeds(rates),
	}
}

// CurrentModule returns the module under the member, or nil in open space
func (m *Member) CurrentModule(st Station) *station.Module {
	return st.ModuleAt(st.WorldToGrid(m.Position))
}

// Target returns the tracked module while it still serves the tracked need
func (m *Member) Target(st Station) *station.Module {
	if m.TargetID == uuid.Nil {
		return nil
	}
	t := st.ModuleByID(m.TargetID)
	if !Serves(t, m.TargetNeed) {
		return nil
	}
	return t
}

// UpdateTarget keeps the current target while it serves the most urgent need,
// otherwise picks the nearest serving module. It returns the target, or nil.
func (m *Member) UpdateTarget(st Station) *station.Module {
	need := m.Needs.MostUrgent()
	if need == m.TargetNeed {
		if t := m.Target(st); t != nil {
			return t
		}
	}

	m.TargetNeed = need
	m.TargetID = uuid.Nil
	t := FindNearestModule(st, m.Position, need)
	if t != nil {
		m.TargetID = t.ID
	}
	return t
}

// Tick refreshes the in-atmosphere flag from the module under the member,
// lets that module replenish the need it serves, then depletes needs.
// Food is drawn from food; a nil source feeds without limit.
func (m *Member) Tick(st Station, dt float64, food FoodSource) TickResult {
	here := m.CurrentModule(st)
	m.Needs.InAtmosphere = here != nil && here.IsPlaced() && here.HasAtmosphere()

	if m.Needs.Alive && here != nil {
		for _, need := range []NeedType{Oxygen, Food, Sleep} {
			if !Serves(here, need) {
				continue
			}
			if need == Food && food != nil {
				want := min(m.Needs.Rates.FoodReplenish*dt, maxNeed-m.Needs.Food)
				m.Needs.Feed(food(max(0, want)))
				continue
			}
			m.Needs.Replenish(need, dt)
		}
	}
	return m.Needs.Tick(dt)
}
