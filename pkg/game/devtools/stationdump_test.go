package devtools

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spacestation/pkg/engine/world"
	"spacestation/pkg/game/catalog"
	"spacestation/pkg/game/state"
	"spacestation/pkg/game/station"
)

func newDumpGame(t *testing.T) *state.Game {
	t.Helper()
	g := state.NewGame(state.DefaultConfig(), catalog.Default())
	for _, b := range []struct {
		key  string
		x, y int
	}{
		{"command", 0, 0},
		{"solar_array", 3, 0},
		{"corridor", 0, 3},
	} {
		if _, err := g.BuildModule(b.key, world.Coord{X: b.x, Y: b.y}, world.Rotation0); err != nil {
			t.Fatalf("BuildModule(%s) = %v", b.key, err)
		}
	}
	g.SpawnCrew("Dallas", world.Coord{X: 1, Y: 1})
	return g
}

func TestModuleSymbol(t *testing.T) {
	m := station.NewModule(station.Definition{Type: station.LifeSupport})
	if got := moduleSymbol(m); got != 'l' {
		t.Errorf("moduleSymbol(vacuum life support) = %c, want l", got)
	}
	m.SetAtmosphere(true)
	if got := moduleSymbol(m); got != 'L' {
		t.Errorf("moduleSymbol(life support) = %c, want L", got)
	}
}

func TestDumpStation(t *testing.T) {
	g := newDumpGame(t)

	var buf bytes.Buffer
	if err := DumpStation(&buf, g, false); err != nil {
		t.Fatalf("DumpStation() = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"modules: 3",
		"connections: 2",
		"power_sufficient: true",
		"atmosphere: 3/3",
		"   3 H....",
		"   2 CCC..",
		"   0 CCCGG",
		"key=command at=0,0",
		"Dallas tile=1,1 alive",
		"[Info] 0.0 Command Module placed",
		"[Success] 0.0 Dallas joined the crew",
		"origin: 0,0,0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q\n%s", want, out)
		}
	}
	cmd := g.Station.ModuleAt(world.Coord{})
	if !strings.Contains(out, "Command Module id="+cmd.ID.String()) {
		t.Errorf("dump missing id of %s", cmd.Label())
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("uncoloured dump contains escape codes")
	}
}

func TestDumpStation_NoStation(t *testing.T) {
	if err := DumpStation(&bytes.Buffer{}, nil, false); err == nil {
		t.Errorf("DumpStation(nil) = nil, want error")
	}
}

func TestDumpStationToFile(t *testing.T) {
	g := newDumpGame(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	path, err := DumpStationToFile(g)
	if err != nil {
		t.Fatalf("DumpStationToFile() = %v", err)
	}
	if filepath.Base(path) != stationDumpFilename {
		t.Errorf("DumpStationToFile() path = %s, want %s", path, stationDumpFilename)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("=== STATION DUMP DEBUG")) {
		t.Errorf("file does not start with the dump header")
	}
}
