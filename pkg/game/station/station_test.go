package station

import (
	"math/rand"
	"testing"

	"spacestation/pkg/engine/world"
)

func newTestStation() *Station {
	return New(world.DefaultTileSize, world.Vec{})
}

func corridor() *Module {
	return NewModule(Definition{Key: "corridor", Name: "Corridor", Type: Corridor, Size: world.Size{W: 1, H: 1}})
}

func sized(w, h int) *Module {
	return NewModule(Definition{Key: "room", Name: "Room", Type: Storage, Size: world.Size{W: w, H: h}})
}

// mustPlace places m and fails the test if the placement is rejected
func mustPlace(t *testing.T, s *Station, m *Module, x, y int, r world.Rotation) *Module {
	t.Helper()
	if !s.Place(m, world.Coord{X: x, Y: y}, r) {
		t.Fatalf("Place(%s, %d,%d, %d) = false, want true", m.Label(), x, y, r)
	}
	return m
}

// assertSymmetric checks every edge is recorded on both endpoints and only
// joins placed modules
func assertSymmetric(t *testing.T, s *Station) {
	t.Helper()
	for _, m := range s.Modules() {
		for _, n := range m.Connections() {
			if !n.IsPlaced() {
				t.Errorf("%s connected to unplaced module %s", m.ID, n.ID)
			}
			if !n.IsConnectedTo(m) {
				t.Errorf("edge %s -> %s has no reverse edge", m.ID, n.ID)
			}
		}
	}
}

type edge struct{ a, b *Module }

func edgeSet(s *Station) map[edge]bool {
	edges := make(map[edge]bool)
	for _, m := range s.Modules() {
		for _, n := range m.Connections() {
			edges[edge{m, n}] = true
		}
	}
	return edges
}

// assertFixpoint checks that refreshing every module changes no edge, so the
// graph does not depend on which modules the last operation updated
func assertFixpoint(t *testing.T, s *Station) {
	t.Helper()
	before := edgeSet(s)
	for _, m := range s.Modules() {
		s.UpdateConnections(m)
	}
	after := edgeSet(s)
	if len(before) != len(after) {
		t.Errorf("refresh changed edge count: %d -> %d", len(before)/2, len(after)/2)
		return
	}
	for e := range before {
		if !after[e] {
			t.Errorf("refresh dropped edge %s -> %s", e.a.Label(), e.b.Label())
		}
	}
}

// assertFootprintsRegistered checks every covered tile maps back to its module
func assertFootprintsRegistered(t *testing.T, s *Station) {
	t.Helper()
	tiles := 0
	for _, m := range s.Modules() {
		for _, c := range m.Footprint() {
			tiles++
			if got := s.ModuleAt(c); got != m {
				t.Errorf("ModuleAt(%v) = %p, want %p", c, got, m)
			}
		}
	}
	if tiles != s.Grid().Len() {
		t.Errorf("grid has %d tiles, modules cover %d", s.Grid().Len(), tiles)
	}
}

func TestPlace_FirstModuleExemptThenMustConnect(t *testing.T) {
	s := newTestStation()

	first := corridor()
	if !s.Place(first, world.Coord{X: 0, Y: 0}, world.Rotation0) {
		t.Fatal("Place(first, 0,0) = false, want true (first module exempt)")
	}

	second := corridor()
	if s.Place(second, world.Coord{X: 5, Y: 5}, world.Rotation0) {
		t.Fatal("Place(second, 5,5) = true, want false (not connected)")
	}
	if second.IsPlaced() || s.Len() != 1 || s.ModuleAt(world.Coord{X: 5, Y: 5}) != nil {
		t.Fatal("rejected placement left side effects")
	}

	if !s.Place(second, world.Coord{X: 1, Y: 0}, world.Rotation0) {
		t.Fatal("Place(second, 1,0) = false, want true (adjacent to first)")
	}
	if !first.IsConnectedTo(second) || !second.IsConnectedTo(first) {
		t.Error("adjacent corridors not connected both ways")
	}
}

func TestPlace_RejectsOccupiedAndDiagonal(t *testing.T) {
	s := newTestStation()
	mustPlace(t, s, sized(2, 2), 0, 0, world.Rotation0)

	if s.Place(corridor(), world.Coord{X: 1, Y: 1}, world.Rotation0) {
		t.Error("Place on occupied tile = true, want false")
	}
	if s.Place(corridor(), world.Coord{X: 2, Y: 2}, world.Rotation0) {
		t.Error("Place diagonal to station = true, want false")
	}
	if !s.Place(corridor(), world.Coord{X: 2, Y: 1}, world.Rotation0) {
		t.Error("Place next to second footprint row = false, want true")
	}
}

func TestPlace_AlreadyPlacedOrNil(t *testing.T) {
	s := newTestStation()
	m := mustPlace(t, s, corridor(), 0, 0, world.Rotation0)
	if s.IsValidPlacement(m, world.Coord{X: 1, Y: 0}, world.Rotation0) {
		t.Error("IsValidPlacement(placed module) = true, want false")
	}
	if s.IsValidPlacement(nil, world.Coord{X: 1, Y: 0}, world.Rotation0) {
		t.Error("IsValidPlacement(nil) = true, want false")
	}
}

func TestPlace_RotatedFootprint(t *testing.T) {
	s := newTestStation()
	m := sized(2, 1)

	if got := m.RotatedSize(world.Rotation90); got != (world.Size{W: 1, H: 2}) {
		t.Fatalf("RotatedSize(90) = %v, want {1 2}", got)
	}
	mustPlace(t, s, m, 0, 0, world.Rotation90)

	if s.ModuleAt(world.Coord{X: 0, Y: 0}) != m || s.ModuleAt(world.Coord{X: 0, Y: 1}) != m {
		t.Error("rotated 2x1 does not cover 0,0 and 0,1")
	}
	if s.ModuleAt(world.Coord{X: 1, Y: 0}) != nil {
		t.Error("rotated 2x1 covers 1,0, want empty")
	}
	assertFootprintsRegistered(t, s)
}

func TestPlace_NormalizesRotation(t *testing.T) {
	s := newTestStation()
	m := mustPlace(t, s, sized(2, 1), 0, 0, 450)
	if m.Rotation() != world.Rotation90 {
		t.Errorf("Rotation() = %d, want 90", m.Rotation())
	}
}

func TestConnections_SymmetricForLargeFootprint(t *testing.T) {
	// A 2x1 only reaches one tile to its right from the anchor, which is its
	// own second tile. The neighbour still reaches back, so the edge exists on both ends.
	s := newTestStation()
	wide := mustPlace(t, s, sized(2, 1), 0, 0, world.Rotation0)
	right := mustPlace(t, s, corridor(), 2, 0, world.Rotation0)

	if !wide.IsConnectedTo(right) || !right.IsConnectedTo(wide) {
		t.Fatal("2x1 and its right neighbour not connected both ways")
	}

	// Refreshing the large module must not drop the edge its neighbour found
	s.UpdateConnections(wide)
	if !wide.IsConnectedTo(right) || !right.IsConnectedTo(wide) {
		t.Error("edge lost after UpdateConnections(wide)")
	}
}

func TestConnections_OnlyCardinalPointsFromAnchor(t *testing.T) {
	// A 1x2 hanging below the far end of a 3x1 touches it, but neither
	// module's connection points reach the other from its anchor
	s := newTestStation()
	long := mustPlace(t, s, sized(3, 1), 0, 0, world.Rotation0)
	below := mustPlace(t, s, sized(1, 2), 2, -2, world.Rotation0)

	if long.IsConnectedTo(below) || below.IsConnectedTo(long) {
		t.Error("modules connected although no connection point reaches the other")
	}
	assertSymmetric(t, s)
}

func TestConnections_CustomPointsRotate(t *testing.T) {
	s := newTestStation()
	hub := mustPlace(t, s, corridor(), 0, 0, world.Rotation0)

	// Only connects forward (+Y); rotated 270 that becomes +X
	m := NewModule(Definition{Key: "airlock", Type: Custom, Size: world.Size{W: 1, H: 1},
		ConnectionPoints: []world.Coord{{X: 0, Y: 1}}})
	mustPlace(t, s, m, -1, 0, world.Rotation270)

	if !m.IsConnectedTo(hub) {
		t.Error("rotated connection point did not reach the hub")
	}
	assertSymmetric(t, s)
}

func TestPlace_RefreshesModulesReachingFromAfar(t *testing.T) {
	s := newTestStation()
	mast := NewModule(Definition{Key: "mast", Name: "Mast", Type: Custom, Size: world.Size{W: 1, H: 1},
		ConnectionPoints: []world.Coord{{X: 2, Y: 0}}})
	mustPlace(t, s, mast, 0, 0, world.Rotation0)
	mustPlace(t, s, corridor(), 1, 0, world.Rotation0)
	far := mustPlace(t, s, corridor(), 2, 0, world.Rotation0)

	if !mast.IsConnectedTo(far) || !far.IsConnectedTo(mast) {
		t.Error("module two tiles away not connected to the module whose point reaches it")
	}
	assertSymmetric(t, s)
	assertFixpoint(t, s)
}

func TestConnections_FilterRejectsEdge(t *testing.T) {
	s := newTestStation()
	a := mustPlace(t, s, corridor(), 0, 0, world.Rotation0)
	b := corridor()
	b.Filter = func(self, other *Module) bool {
		return other.Type != Corridor
	}
	mustPlace(t, s, b, 1, 0, world.Rotation0)

	if a.IsConnectedTo(b) || b.IsConnectedTo(a) {
		t.Error("filtered modules connected")
	}
	if got := s.Edges(); got != 0 {
		t.Errorf("Edges() = %d, want 0", got)
	}
}

func TestRemove_BridgeDropsEdgesOnBothEnds(t *testing.T) {
	s := newTestStation()
	left := mustPlace(t, s, corridor(), 0, 0, world.Rotation0)
	bridge := mustPlace(t, s, corridor(), 1, 0, world.Rotation0)
	right := mustPlace(t, s, corridor(), 2, 0, world.Rotation0)
	extra := mustPlace(t, s, corridor(), 2, 1, world.Rotation0)

	before := s.Edges()
	bridgeEdges := bridge.ConnectionCount()
	if before != 3 || bridgeEdges != 2 {
		t.Fatalf("Edges() = %d, bridge edges = %d, want 3 and 2", before, bridgeEdges)
	}

	removed := s.Remove(world.Coord{X: 1, Y: 0})
	if removed != bridge {
		t.Fatalf("Remove(1,0) = %p, want bridge", removed)
	}
	if got := s.Edges(); got != before-bridgeEdges {
		t.Errorf("Edges() after remove = %d, want %d", got, before-bridgeEdges)
	}
	if left.IsConnectedTo(bridge) || right.IsConnectedTo(bridge) {
		t.Error("former neighbours still reference the removed module")
	}
	if !right.IsConnectedTo(extra) {
		t.Error("unrelated edge right-extra lost")
	}
	if bridge.IsPlaced() || bridge.ConnectionCount() != 0 {
		t.Error("removed module still placed or connected")
	}
	if s.Len() != 3 || s.ModuleAt(world.Coord{X: 1, Y: 0}) != nil {
		t.Error("removed module still registered")
	}
	assertSymmetric(t, s)
}

func TestRemove_EmptyTileIsNoOp(t *testing.T) {
	s := newTestStation()
	mustPlace(t, s, corridor(), 0, 0, world.Rotation0)
	s.DrainEvents()

	if got := s.Remove(world.Coord{X: 9, Y: 9}); got != nil {
		t.Errorf("Remove(empty) = %p, want nil", got)
	}
	if s.Len() != 1 || s.PendingEvents() != 0 {
		t.Error("Remove(empty) changed state")
	}
}

func TestRemove_AnyCoveredTile(t *testing.T) {
	s := newTestStation()
	m := mustPlace(t, s, sized(2, 2), 0, 0, world.Rotation0)
	if got := s.Remove(world.Coord{X: 1, Y: 1}); got != m {
		t.Fatalf("Remove(1,1) = %p, want the 2x2", got)
	}
	if !s.Grid().Empty() {
		t.Errorf("grid still has %d tiles", s.Grid().Len())
	}
}

func TestModuleByID(t *testing.T) {
	s := newTestStation()
	a := mustPlace(t, s, corridor(), 0, 0, world.Rotation0)
	b := mustPlace(t, s, sized(2, 1), 1, 0, world.Rotation0)

	if got := s.ModuleByID(b.ID); got != b {
		t.Errorf("ModuleByID(b) = %p, want %p", got, b)
	}
	if a.ID == b.ID {
		t.Errorf("modules share ID %s", a.ID)
	}

	s.Remove(world.Coord{X: 2, Y: 0})
	if got := s.ModuleByID(b.ID); got != nil {
		t.Errorf("ModuleByID(removed) = %p, want nil", got)
	}
	if got := s.ModuleByID(a.ID); got != a {
		t.Errorf("ModuleByID(a) = %p, want %p", got, a)
	}
}

func TestAdjacentModules_Distinct(t *testing.T) {
	s := newTestStation()
	big := mustPlace(t, s, sized(2, 2), 0, 0, world.Rotation0)
	got := s.AdjacentModules(world.Coord{X: 2, Y: 0})
	if len(got) != 1 || got[0] != big {
		t.Errorf("AdjacentModules(2,0) = %v, want [big]", got)
	}
	got = s.AdjacentModules(world.Coord{X: 0, Y: 0})
	if len(got) != 1 || got[0] != big {
		t.Errorf("AdjacentModules(0,0) = %v, want [big] once", got)
	}
}

func TestEvents_DrainedInOrder(t *testing.T) {
	s := newTestStation()
	m := mustPlace(t, s, corridor(), 0, 0, world.Rotation0)

	events := s.DrainEvents()
	if len(events) == 0 || events[len(events)-1].Kind != EventModulePlaced || events[len(events)-1].Module != m {
		t.Fatalf("events = %v, want trailing ModulePlaced", events)
	}
	if s.PendingEvents() != 0 {
		t.Error("DrainEvents did not empty the queue")
	}

	s.Remove(world.Coord{})
	events = s.DrainEvents()
	if len(events) == 0 || events[len(events)-1].Kind != EventModuleRemoved {
		t.Errorf("events = %v, want trailing ModuleRemoved", events)
	}
}

func TestModules_PlacementOrder(t *testing.T) {
	s := newTestStation()
	a := mustPlace(t, s, corridor(), 0, 0, world.Rotation0)
	b := mustPlace(t, s, corridor(), 1, 0, world.Rotation0)
	c := mustPlace(t, s, corridor(), -1, 0, world.Rotation0)

	got := s.Modules()
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Errorf("Modules() order wrong")
	}
	conns := a.Connections()
	if len(conns) != 2 || conns[0] != b || conns[1] != c {
		t.Errorf("a.Connections() not in placement order")
	}
}

func TestRandomSequence_GraphStaysSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := newTestStation()
	rotations := []world.Rotation{world.Rotation0, world.Rotation90, world.Rotation180, world.Rotation270}

	for step := 0; step < 400; step++ {
		if s.Len() > 0 && rng.Intn(3) == 0 {
			mods := s.Modules()
			victim := mods[rng.Intn(len(mods))]
			s.Remove(victim.Position())
		} else {
			m := sized(1+rng.Intn(3), 1+rng.Intn(2))
			if rng.Intn(4) == 0 {
				m.ConnectionPoints = []world.Coord{{X: 2, Y: 0}, {X: 0, Y: -3}, {X: -1, Y: 1}}
			}
			at := world.Coord{X: rng.Intn(12) - 6, Y: rng.Intn(12) - 6}
			s.Place(m, at, rotations[rng.Intn(len(rotations))])
		}
		assertSymmetric(t, s)
		assertFixpoint(t, s)
		assertFootprintsRegistered(t, s)
		if t.Failed() {
			t.Fatalf("invariant broken at step %d", step)
		}
	}
}

func TestParseModuleType(t *testing.T) {
	for i := Corridor; i <= Custom; i++ {
		got, ok := ParseModuleType(i.String())
		if !ok || got != i {
			t.Errorf("ParseModuleType(%q) = %v, %v, want %v, true", i.String(), got, ok, i)
		}
	}
	if _, ok := ParseModuleType("Bridge"); ok {
		t.Error("ParseModuleType(\"Bridge\") ok = true, want false")
	}
}
