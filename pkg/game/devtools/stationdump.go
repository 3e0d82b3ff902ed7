// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gookit/color"

	"spacestation/pkg/engine/world"
	"spacestation/pkg/game/crew"
	"spacestation/pkg/game/state"
	"spacestation/pkg/game/station"
)

const stationDumpFilename = "station.txt"

var (
	ColorPowered   = color.Style{color.FgGreen, color.OpBold}
	ColorUnpowered = color.Style{color.FgRed, color.OpBold}
	ColorEmpty     = color.Style{color.FgGray}
	ColorHeading   = color.Style{color.FgMagenta, color.OpBold}
)

// moduleSymbol returns the map symbol for a module. Modules with atmosphere
// use the upper-case form.
func moduleSymbol(m *station.Module) rune {
	var sym rune
	switch m.Type {
	case station.Corridor:
		sym = 'h'
	case station.PowerGenerator:
		sym = 'g'
	case station.LifeSupport:
		sym = 'l'
	case station.Quarters:
		sym = 'q'
	case station.MessHall:
		sym = 'm'
	case station.Storage:
		sym = 's'
	case station.MedBay:
		sym = 'b'
	case station.Command:
		sym = 'c'
	default:
		sym = 'x'
	}
	if m.HasAtmosphere() {
		return unicode.ToUpper(sym)
	}
	return sym
}

func styled(style color.Style, s string, colored bool) string {
	if !colored {
		return s
	}
	return style.Sprint(s)
}

// writeStationGrid writes the occupied bounds of the station, north at the top
func writeStationGrid(w io.Writer, st *station.Station, colored bool) {
	lo, hi, ok := st.Grid().Bounds()
	if !ok {
		fmt.Fprintln(w, "(empty)")
		return
	}

	for y := hi.Y; y >= lo.Y; y-- {
		var row strings.Builder
		for x := lo.X; x <= hi.X; x++ {
			m := st.ModuleAt(world.Coord{X: x, Y: y})
			if m == nil {
				row.WriteString(styled(ColorEmpty, ".", colored))
				continue
			}
			style := ColorUnpowered
			if m.IsPowered() {
				style = ColorPowered
			}
			row.WriteString(styled(style, string(moduleSymbol(m)), colored))
		}
		fmt.Fprintf(w, "%4d %s\n", y, row.String())
	}
	fmt.Fprintf(w, "     x: %d..%d\n", lo.X, hi.X)
}

// DumpStation writes a full debug dump of the game: metadata, legend, map,
// modules with their connections, crew and active notifications
func DumpStation(w io.Writer, g *state.Game, colored bool) error {
	if g == nil || g.Station == nil {
		return errors.New("no station")
	}
	st := g.Station
	withAtmosphere, total := g.Systems.AtmosphereCoverage()

	heading := func(s string) {
		fmt.Fprintln(w, styled(ColorHeading, "--- "+s+" ---", colored))
	}

	fmt.Fprintln(w, "=== STATION DUMP DEBUG (layout, connectivity, systems) ===")
	fmt.Fprintln(w, "")
	heading("Metadata")
	fmt.Fprintf(w, "clock: %.1f\n", g.Clock)
	fmt.Fprintf(w, "credits: %d\n", g.Credits)
	fmt.Fprintf(w, "food: %.1f\n", g.Food)
	fmt.Fprintf(w, "tile_size: %.0f\n", st.Grid().TileSize())
	origin := st.Grid().Origin()
	fmt.Fprintf(w, "origin: %.0f,%.0f,%.0f\n", origin.X, origin.Y, origin.Z)
	fmt.Fprintf(w, "modules: %d\n", st.Len())
	fmt.Fprintf(w, "connections: %d\n", st.Edges())
	fmt.Fprintf(w, "power_generation: %d\n", g.Systems.TotalPowerGeneration)
	fmt.Fprintf(w, "power_consumption: %d\n", g.Systems.TotalPowerConsumption)
	fmt.Fprintf(w, "power_sufficient: %v\n", g.Systems.HasSufficientPower())
	fmt.Fprintf(w, "oxygen_generation: %d\n", g.Systems.TotalOxygenGeneration)
	fmt.Fprintf(w, "oxygen_consumption: %d\n", g.Systems.TotalOxygenConsumption)
	fmt.Fprintf(w, "oxygen_sufficient: %v\n", g.Systems.HasSufficientOxygen())
	fmt.Fprintf(w, "atmosphere: %d/%d\n", withAtmosphere, total)
	fmt.Fprintf(w, "crew_alive: %d/%d\n", g.AliveCrew(), len(g.Crew))
	fmt.Fprintln(w, "")

	heading("Legend")
	fmt.Fprintln(w, ". = empty  H = corridor  G = generator  L = life support  Q = quarters  M = mess hall  S = storage  B = med bay  C = command  X = custom")
	fmt.Fprintln(w, "upper case = atmosphere  lower case = vacuum")
	fmt.Fprintln(w, "")

	heading("Map (y up)")
	writeStationGrid(w, st, colored)
	fmt.Fprintln(w, "")

	heading("Modules (placement order)")
	for _, m := range st.Modules() {
		size := m.RotatedSize(m.Rotation())
		fmt.Fprintf(w, "  %s id=%s key=%s at=%s rot=%d size=%dx%d powered=%v atmosphere=%v\n",
			m.Label(), m.ID, m.Key, m.Position(), int(m.Rotation()), size.W, size.H, m.IsPowered(), m.HasAtmosphere())
		var names []string
		for _, n := range m.Connections() {
			names = append(names, fmt.Sprintf("%s@%s", n.Label(), n.Position()))
		}
		if len(names) == 0 {
			fmt.Fprintln(w, "    connections: none")
		} else {
			fmt.Fprintf(w, "    connections: %s\n", strings.Join(names, ", "))
		}
	}
	fmt.Fprintln(w, "")

	heading("Crew")
	for _, m := range g.Crew {
		n := m.Needs
		status := "alive"
		if !n.Alive {
			status = "dead"
		}
		fmt.Fprintf(w, "  %s tile=%s %s oxygen=%.1f food=%.1f sleep=%.1f health=%.1f urgent=%s\n",
			m.Name, st.WorldToGrid(m.Position), status, n.Oxygen, n.Food, n.Sleep, n.Health, n.MostUrgent())
		if here := m.CurrentModule(st); here != nil {
			fmt.Fprintf(w, "    in: %s\n", here.Label())
		}
		if target := m.Target(st); target != nil {
			fmt.Fprintf(w, "    target: %s id=%s for=%s\n", target.Label(), target.ID, m.TargetNeed)
		} else if n.Alive {
			if nearest := crew.FindNearestModule(st, m.Position, n.MostUrgent()); nearest != nil {
				fmt.Fprintf(w, "    nearest_for_need: %s@%s\n", nearest.Label(), nearest.Position())
			}
		}
	}
	fmt.Fprintln(w, "")

	heading("Notifications (active)")
	for _, n := range g.Notifications.Active() {
		fmt.Fprintf(w, "  [%s] %.1f %s\n", n.Priority, n.Timestamp, n.Message)
	}
	return nil
}

// DumpStationToFile writes an uncoloured dump to station.txt and returns its path
func DumpStationToFile(g *state.Game) (string, error) {
	absPath, err := filepath.Abs(stationDumpFilename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpStation(f, g, false); err != nil {
		return "", err
	}
	return absPath, nil
}
