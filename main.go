package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"gopkg.in/yaml.v3"

	"spacestation/pkg/engine/terminal"
	"spacestation/pkg/engine/world"
	"spacestation/pkg/game/catalog"
	"spacestation/pkg/game/devtools"
	"spacestation/pkg/game/notify"
	"spacestation/pkg/game/state"
)

// buildStep is one module placement in a build plan
type buildStep struct {
	Module   string `yaml:"module"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Rotation int    `yaml:"rotation"`
}

type crewSpawn struct {
	Name string `yaml:"name"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

type buildPlan struct {
	Steps []buildStep `yaml:"steps"`
	Crew  []crewSpawn `yaml:"crew"`
}

// defaultPlan builds a small self-sufficient station with three crew
var defaultPlan = buildPlan{
	Steps: []buildStep{
		{Module: "command", X: 0, Y: 0},
		{Module: "solar_array", X: 3, Y: 0},
		{Module: "life_support", X: 3, Y: 1},
		{Module: "corridor", X: 0, Y: 3},
		{Module: "quarters", X: 0, Y: 4},
		{Module: "mess_hall", X: -2, Y: 0},
		{Module: "airlock", X: 5, Y: 0},
	},
	Crew: []crewSpawn{
		{Name: "Dallas", X: 1, Y: 1},
		{Name: "Ripley", X: 0, Y: 4},
		{Name: "Parker", X: -2, Y: 1},
	},
}

var (
	colorGood = color.Style{color.FgGreen, color.OpBold}
	colorBad  = color.Style{color.FgRed, color.OpBold}
	colorInfo = color.Style{color.FgBlue}
)

func initGettext(lang string) {
	gotext.Configure("locales", lang, "default")
}

func loadPlan(path string) (buildPlan, error) {
	if path == "" {
		return defaultPlan, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return buildPlan{}, fmt.Errorf("read plan: %w", err)
	}

	var plan buildPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return buildPlan{}, fmt.Errorf("decode plan %s: %w", path, err)
	}
	return plan, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}

// applyPlan builds every step it can; a failed step is logged and skipped
func applyPlan(g *state.Game, plan buildPlan) {
	for _, step := range plan.Steps {
		at := world.Coord{X: step.X, Y: step.Y}
		m, err := g.BuildModule(step.Module, at, world.Rotation(step.Rotation))
		if err != nil {
			log.Printf("build %s: %v", step.Module, err)
			continue
		}
		log.Printf("built %s at %s (credits left: %d)", m.Label(), at, g.Credits)
	}

	for _, c := range plan.Crew {
		g.SpawnCrew(c.Name, world.Coord{X: c.X, Y: c.Y})
	}
}

func printNotification(n notify.Notification) {
	style := colorInfo
	switch n.Priority {
	case notify.Warning, notify.Critical:
		style = colorBad
	case notify.Success:
		style = colorGood
	}
	fmt.Printf("%6.1fs %s\n", n.Timestamp, style.Sprintf("[%s] %s", n.Priority, n.Message))
}

func printSummary(g *state.Game) {
	fmt.Println(terminal.Rule(72))

	status := func(ok bool, label string, net int) string {
		if ok {
			return colorGood.Sprintf("%s %+d", label, net)
		}
		return colorBad.Sprintf("%s %+d", label, net)
	}

	withAtmosphere, total := g.Systems.AtmosphereCoverage()
	fmt.Printf("%s  %s  atmosphere %d/%d  crew %d/%d  credits %d  food %.0f\n",
		status(g.Systems.HasSufficientPower(), gotext.Get("Power"), g.Power),
		status(g.Systems.HasSufficientOxygen(), gotext.Get("Oxygen"), g.Oxygen),
		withAtmosphere, total, g.AliveCrew(), len(g.Crew), g.Credits, g.Food)
}

func main() {
	catalogPath := flag.String("catalog", "", "module catalog YAML file (default: built-in catalog)")
	planPath := flag.String("plan", "", "build plan YAML file (default: built-in demo station)")
	ticks := flag.Int("ticks", 120, "number of simulation steps to run")
	dt := flag.Float64("dt", 0.25, "seconds of game time per step")
	credits := flag.Int("credits", 5000, "starting credits")
	dump := flag.Bool("dump", false, "write a station debug dump to station.txt")
	noColor := flag.Bool("no-color", false, "disable coloured output")
	lang := flag.String("lang", "en_GB", "language for messages")
	flag.Parse()

	initGettext(*lang)
	color.Enable = !*noColor && terminal.IsTerminal()

	cat, err := loadCatalog(*catalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	plan, err := loadPlan(*planPath)
	if err != nil {
		log.Fatalf("load plan: %v", err)
	}

	cfg := state.DefaultConfig()
	cfg.StartingCredits = *credits
	g := state.NewGame(cfg, cat)

	applyPlan(g, plan)

	seen := 0
	for i := 0; i < *ticks; i++ {
		g.Tick(*dt)

		for _, n := range g.Notifications.Since(seen) {
			printNotification(n)
		}
		seen = g.Notifications.Total()
	}

	printSummary(g)
	if err := devtools.DumpStation(os.Stdout, g, color.Enable); err != nil {
		log.Fatalf("dump: %v", err)
	}

	if *dump {
		path, err := devtools.DumpStationToFile(g)
		if err != nil {
			log.Fatalf("dump: %v", err)
		}
		log.Printf("station dump written to %s", path)
	}
}
