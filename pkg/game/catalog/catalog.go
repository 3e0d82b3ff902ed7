// Package catalog loads the definitions of buildable station modules.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"spacestation/pkg/engine/world"
	"spacestation/pkg/game/station"
)

//go:embed modules.yaml
var defaultCatalog string

// ErrInvalidCatalog is returned when a catalog document fails validation
var ErrInvalidCatalog = errors.New("invalid module catalog")

// entry mirrors one module in the YAML document
type entry struct {
	Key                string  `yaml:"key"`
	Name               string  `yaml:"name"`
	Description        string  `yaml:"description"`
	Type               string  `yaml:"type"`
	Size               []int   `yaml:"size"`
	BuildCost          int     `yaml:"build_cost"`
	PowerGeneration    int     `yaml:"power_generation"`
	PowerConsumption   int     `yaml:"power_consumption"`
	OxygenGeneration   int     `yaml:"oxygen_generation"`
	OxygenConsumption  int     `yaml:"oxygen_consumption"`
	CrewCapacity       int     `yaml:"crew_capacity"`
	RequiresPower      *bool   `yaml:"requires_power"`
	RequiresAtmosphere *bool   `yaml:"requires_atmosphere"`
	ConnectionPoints   [][]int `yaml:"connection_points"`
}

type document struct {
	Modules []entry `yaml:"modules"`
}

// Catalog is an ordered, keyed set of module definitions
type Catalog struct {
	defs  []station.Definition
	byKey map[string]int
}

// Default returns the catalog shipped with the game
func Default() *Catalog {
	c, err := Load(strings.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("embedded module catalog: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML file
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load decodes and validates a catalog document. Unknown fields are rejected.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{byKey: make(map[string]int)}
	for i, e := range doc.Modules {
		def, err := e.definition()
		if err != nil {
			return nil, fmt.Errorf("%w: module %d (%q): %v", ErrInvalidCatalog, i, e.Key, err)
		}
		if _, dup := c.byKey[def.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate module key %q", ErrInvalidCatalog, def.Key)
		}
		c.byKey[def.Key] = len(c.defs)
		c.defs = append(c.defs, def)
	}
	if len(c.defs) == 0 {
		return nil, fmt.Errorf("%w: no modules defined", ErrInvalidCatalog)
	}
	return c, nil
}

func (e entry) definition() (station.Definition, error) {
	if e.Key == "" {
		return station.Definition{}, errors.New("missing key")
	}
	moduleType, ok := station.ParseModuleType(e.Type)
	if !ok {
		return station.Definition{}, fmt.Errorf("unknown type %q", e.Type)
	}
	if len(e.Size) != 2 || e.Size[0] <= 0 || e.Size[1] <= 0 {
		return station.Definition{}, fmt.Errorf("size must be two positive integers, got %v", e.Size)
	}
	for name, v := range map[string]int{
		"build_cost":         e.BuildCost,
		"power_generation":   e.PowerGeneration,
		"power_consumption":  e.PowerConsumption,
		"oxygen_generation":  e.OxygenGeneration,
		"oxygen_consumption": e.OxygenConsumption,
		"crew_capacity":      e.CrewCapacity,
	} {
		if v < 0 {
			return station.Definition{}, fmt.Errorf("%s must not be negative", name)
		}
	}

	var points []world.Coord
	for _, p := range e.ConnectionPoints {
		if len(p) != 2 {
			return station.Definition{}, fmt.Errorf("connection point must be [x, y], got %v", p)
		}
		points = append(points, world.Coord{X: p[0], Y: p[1]})
	}

	name := e.Name
	if name == "" {
		name = e.Key
	}

	return station.Definition{
		Key:                e.Key,
		Name:               name,
		Description:        e.Description,
		Type:               moduleType,
		Size:               world.Size{W: e.Size[0], H: e.Size[1]},
		BuildCost:          e.BuildCost,
		PowerGeneration:    e.PowerGeneration,
		PowerConsumption:   e.PowerConsumption,
		OxygenGeneration:   e.OxygenGeneration,
		OxygenConsumption:  e.OxygenConsumption,
		CrewCapacity:       e.CrewCapacity,
		RequiresPower:      boolOr(e.RequiresPower, true),
		RequiresAtmosphere: boolOr(e.RequiresAtmosphere, true),
		ConnectionPoints:   points,
	}, nil
}

// boolOr returns the value, or def when the field was omitted
func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// Lookup returns the definition with the given key
func (c *Catalog) Lookup(key string) (station.Definition, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return station.Definition{}, false
	}
	return c.defs[i], true
}

// Definitions returns every definition in document order
func (c *Catalog) Definitions() []station.Definition {
	out := make([]station.Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Keys returns the module keys sorted alphabetically
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.byKey))
	for k := range c.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of definitions
func (c *Catalog) Len() int {
	return len(c.defs)
}
