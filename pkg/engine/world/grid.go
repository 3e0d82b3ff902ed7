package world

import (
	"math"
	"sort"
)

// DefaultTileSize is the world-space edge length of one tile (200cm = 2m)
const DefaultTileSize = 200.0

// Grid is a sparse tile map from coordinates to occupants.
// The grid only records spatial registration; it never owns occupant lifetime.
type Grid[T comparable] struct {
	cells    map[Coord]T
	tileSize float64
	origin   Vec
}

// NewGrid creates an empty grid. A non-positive tile size falls back to DefaultTileSize.
func NewGrid[T comparable](tileSize float64, origin Vec) *Grid[T] {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &Grid[T]{
		cells:    make(map[Coord]T),
		tileSize: tileSize,
		origin:   origin,
	}
}

// TileSize returns the world-space size of one tile
func (g *Grid[T]) TileSize() float64 {
	return g.tileSize
}

// Origin returns the world position of tile (0,0)
func (g *Grid[T]) Origin() Vec {
	return g.origin
}

// WorldToGrid converts a world position to the nearest grid coordinate, per axis
func (g *Grid[T]) WorldToGrid(pos Vec) Coord {
	return Coord{
		X: roundToInt((pos.X - g.origin.X) / g.tileSize),
		Y: roundToInt((pos.Y - g.origin.Y) / g.tileSize),
	}
}

// GridToWorld converts a grid coordinate to its world position relative to the origin
func (g *Grid[T]) GridToWorld(c Coord) Vec {
	return Vec{
		X: g.origin.X + float64(c.X)*g.tileSize,
		Y: g.origin.Y + float64(c.Y)*g.tileSize,
		Z: g.origin.Z,
	}
}

func roundToInt(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Footprint returns every tile of the size.W x size.H rectangle anchored at anchor
func Footprint(anchor Coord, size Size) []Coord {
	if size.W <= 0 || size.H <= 0 {
		return nil
	}
	tiles := make([]Coord, 0, size.Area())
	for x := 0; x < size.W; x++ {
		for y := 0; y < size.H; y++ {
			tiles = append(tiles, Coord{X: anchor.X + x, Y: anchor.Y + y})
		}
	}
	return tiles
}

// IsOccupied returns true if any tile of the footprint is already registered
func (g *Grid[T]) IsOccupied(anchor Coord, size Size) bool {
	for _, c := range Footprint(anchor, size) {
		if _, found := g.cells[c]; found {
			return true
		}
	}
	return false
}

// IsOccupiedAt returns true if the single tile is registered
func (g *Grid[T]) IsOccupiedAt(c Coord) bool {
	_, found := g.cells[c]
	return found
}

// At returns the occupant of a tile
func (g *Grid[T]) At(c Coord) (T, bool) {
	occupant, found := g.cells[c]
	return occupant, found
}

// Claim registers occupant on every tile of the footprint
func (g *Grid[T]) Claim(anchor Coord, size Size, occupant T) {
	for _, c := range Footprint(anchor, size) {
		g.cells[c] = occupant
	}
}

// Release removes every tile of the footprint from the grid
func (g *Grid[T]) Release(anchor Coord, size Size) {
	for _, c := range Footprint(anchor, size) {
		delete(g.cells, c)
	}
}

// Len returns the number of occupied tiles
func (g *Grid[T]) Len() int {
	return len(g.cells)
}

// Empty returns true if no tile is occupied
func (g *Grid[T]) Empty() bool {
	return len(g.cells) == 0
}

// HasOccupiedNeighbor returns true if any tile cardinally adjacent to c is occupied
func (g *Grid[T]) HasOccupiedNeighbor(c Coord) bool {
	for _, n := range c.Neighbors() {
		if g.IsOccupiedAt(n) {
			return true
		}
	}
	return false
}

// Bounds returns the smallest and largest occupied coordinates.
// ok is false for an empty grid.
func (g *Grid[T]) Bounds() (lo, hi Coord, ok bool) {
	for c := range g.cells {
		if !ok {
			lo, hi, ok = c, c, true
			continue
		}
		lo.X = min(lo.X, c.X)
		lo.Y = min(lo.Y, c.Y)
		hi.X = max(hi.X, c.X)
		hi.Y = max(hi.Y, c.Y)
	}
	return lo, hi, ok
}

// ForEachCell iterates over all occupied tiles in row-major (Y, then X) order
func (g *Grid[T]) ForEachCell(fn func(c Coord, occupant T)) {
	coords := make([]Coord, 0, len(g.cells))
	for c := range g.cells {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
	for _, c := range coords {
		fn(c, g.cells[c])
	}
}
