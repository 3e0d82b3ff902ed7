// Package state holds the game-mode layer on top of a station: credits,
// resources, crew and the notifications raised as the station changes.
package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/leonelquinteros/gotext"

	"spacestation/pkg/engine/world"
	"spacestation/pkg/game/catalog"
	"spacestation/pkg/game/crew"
	"spacestation/pkg/game/notify"
	"spacestation/pkg/game/station"
	"spacestation/pkg/game/systems"
)

// Errors returned by BuildModule
var (
	ErrUnknownModule       = errors.New("unknown module")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidPlacement    = errors.New("invalid placement")
)

// Notification durations, in seconds, for events that do not use the configured default
const (
	ModulePlacedDuration = 3.0
	CrewJoinedDuration   = 4.0
)

// Config tunes a new game
type Config struct {
	TileSize        float64
	Origin          world.Vec
	SystemsInterval float64

	StartingCredits int
	StartingFood    float64

	MaxMessages          int
	NotificationDuration float64

	CrewRates crew.Rates
}

// DefaultConfig returns the standard game settings
func DefaultConfig() Config {
	return Config{
		TileSize:             world.DefaultTileSize,
		SystemsInterval:      systems.DefaultInterval,
		StartingCredits:      5000,
		StartingFood:         1000,
		MaxMessages:          5,
		NotificationDuration: notify.DefaultDuration,
		CrewRates:            crew.DefaultRates(),
	}
}

// Game represents the state of one station build session
type Game struct {
	Config Config

	Station       *station.Station
	Systems       *systems.Systems
	Catalog       *catalog.Catalog
	Notifications *notify.Log

	Crew []*crew.Member

	Credits int
	Food    float64
	Power   int // net power after the last recompute
	Oxygen  int // net oxygen after the last recompute

	Clock float64 // seconds of game time

	Messages []string
}

// NewGame creates a new game with an empty station
func NewGame(cfg Config, cat *catalog.Catalog) *Game {
	st := station.New(cfg.TileSize, cfg.Origin)
	return &Game{
		Config:        cfg,
		Station:       st,
		Systems:       systems.New(st, cfg.SystemsInterval),
		Catalog:       cat,
		Notifications: notify.NewLog(notify.DefaultMaxLog, notify.DefaultMaxActive),
		Credits:       cfg.StartingCredits,
		Food:          cfg.StartingFood,
		Messages:      make([]string, 0),
	}
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	maxMessages := g.Config.MaxMessages
	if maxMessages <= 0 {
		maxMessages = 5
	}
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}

// Notify raises a notification for the configured duration
func (g *Game) Notify(priority notify.Priority, msg string) {
	g.NotifyFor(priority, g.Config.NotificationDuration, msg)
}

// NotifyFor raises a notification at the current clock and mirrors it to the message log
func (g *Game) NotifyFor(priority notify.Priority, duration float64, msg string) {
	g.Notifications.Add(g.Clock, msg, priority, duration)
	g.AddMessage(msg)
}

// CanAffordModule returns true if the credits cover cost
func (g *Game) CanAffordModule(cost int) bool {
	return g.Credits >= cost
}

// PayForModule deducts cost from the credits, never going below zero
func (g *Game) PayForModule(cost int) {
	g.Credits = max(0, g.Credits-cost)
}

// AddCredits adds to the credits
func (g *Game) AddCredits(amount int) {
	g.Credits += amount
}

// DrawFood takes up to want from the food supply and returns the amount taken
func (g *Game) DrawFood(want float64) float64 {
	got := max(0, min(want, g.Food))
	g.Food -= got
	return got
}

// BuildModule places the catalog module key at the given tile and rotation,
// pays for it and recomputes the station systems
func (g *Game) BuildModule(key string, at world.Coord, r world.Rotation) (*station.Module, error) {
	def, ok := g.Catalog.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, key)
	}
	if !g.CanAffordModule(def.BuildCost) {
		return nil, fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientCredits, def.Name, def.BuildCost, g.Credits)
	}

	m := station.NewModule(def)
	if !g.Station.Place(m, at, r) {
		return nil, fmt.Errorf("%w: %s at %s", ErrInvalidPlacement, def.Name, at)
	}
	g.PayForModule(def.BuildCost)

	g.recompute()
	return m, nil
}

// Demolish removes the module covering at. There is no refund. It returns
// nil if the tile was empty.
func (g *Game) Demolish(at world.Coord) *station.Module {
	m := g.Station.Remove(at)
	if m == nil {
		return nil
	}
	g.recompute()
	return m
}

// RegisterCrew adds a member to the roster. Registering twice does nothing.
func (g *Game) RegisterCrew(m *crew.Member) {
	if m == nil || slices.Contains(g.Crew, m) {
		return
	}
	g.Crew = append(g.Crew, m)
	g.NotifyFor(notify.Success, CrewJoinedDuration, gotext.Get("%s joined the crew", m.Name))
}

// UnregisterCrew removes a member from the roster
func (g *Game) UnregisterCrew(m *crew.Member) bool {
	for i, c := range g.Crew {
		if c == m {
			g.Crew = append(g.Crew[:i], g.Crew[i+1:]...)
			return true
		}
	}
	return false
}

// SpawnCrew creates a member with the configured rates standing on the given tile
func (g *Game) SpawnCrew(name string, at world.Coord) *crew.Member {
	m := crew.NewMember(name, g.Station.GridToWorld(at), g.Config.CrewRates)
	g.RegisterCrew(m)
	return m
}

// AliveCrew returns the number of living crew
func (g *Game) AliveCrew() int {
	alive := 0
	for _, m := range g.Crew {
		if m.Needs.Alive {
			alive++
		}
	}
	return alive
}

// FindNearestModuleForNeed returns the closest module serving need for the member
func (g *Game) FindNearestModuleForNeed(m *crew.Member, need crew.NeedType) *station.Module {
	return crew.FindNearestModule(g.Station, m.Position, need)
}

// Tick advances the game by dt seconds: systems on their cadence, then crew,
// then notifications
func (g *Game) Tick(dt float64) {
	g.Clock += dt

	if g.Systems.Tick(dt) {
		g.syncResources()
	}

	for _, m := range g.Crew {
		g.tickCrew(m, dt)
	}

	g.processEvents()
	g.Notifications.Expire(g.Clock)
}

func (g *Game) tickCrew(m *crew.Member, dt float64) {
	if !m.Needs.Alive {
		return
	}

	res := m.Tick(g.Station, dt, g.DrawFood)

	for _, need := range res.BecameCritical {
		g.Notify(notify.Critical, gotext.Get("%s: %s critical", m.Name, needLabel(need)))
	}
	if res.Died {
		g.Notify(notify.Critical, gotext.Get("%s has died", m.Name))
		return
	}
	m.UpdateTarget(g.Station)
}

// needLabel returns the translated name of a need
func needLabel(need crew.NeedType) string {
	switch need {
	case crew.Oxygen:
		return gotext.Get("Oxygen")
	case crew.Food:
		return gotext.Get("Food")
	case crew.Sleep:
		return gotext.Get("Sleep")
	case crew.Health:
		return gotext.Get("Health")
	default:
		return gotext.Get("Unknown")
	}
}

func (g *Game) recompute() {
	g.Systems.Recalculate()
	g.syncResources()
	g.processEvents()
}

func (g *Game) syncResources() {
	g.Power = g.Systems.NetPower()
	g.Oxygen = g.Systems.NetOxygen()
}

// processEvents drains the station queue into notifications
func (g *Game) processEvents() {
	for _, e := range g.Station.DrainEvents() {
		switch e.Kind {
		case station.EventModulePlaced:
			g.NotifyFor(notify.Info, ModulePlacedDuration, gotext.Get("%s placed", e.Module.Name))
		case station.EventModuleRemoved:
			g.Notify(notify.Info, gotext.Get("%s removed", e.Module.Name))
		case station.EventStationPowerChanged:
			if e.Value {
				g.Notify(notify.Success, gotext.Get("Power restored"))
			} else {
				g.Notify(notify.Critical, gotext.Get("Insufficient power"))
			}
		case station.EventStationOxygenChanged:
			if e.Value {
				g.Notify(notify.Info, gotext.Get("Oxygen production stable"))
			} else {
				g.Notify(notify.Warning, gotext.Get("Insufficient oxygen"))
			}
		}
	}
}
