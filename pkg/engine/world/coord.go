// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

import (
	"fmt"
	"math"
)

// Coord is an integer tile position on the grid
type Coord struct {
	X int
	Y int
}

// Add returns the coordinate offset by o
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Neighbor returns the adjacent coordinate in the given direction
func (c Coord) Neighbor(dir Direction) Coord {
	return c.Add(dir.Offset())
}

// Neighbors returns the four cardinally adjacent coordinates
func (c Coord) Neighbors() []Coord {
	neighbors := make([]Coord, 0, 4)
	for _, dir := range AllDirections() {
		neighbors = append(neighbors, c.Neighbor(dir))
	}
	return neighbors
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Vec is a position in world space
type Vec struct {
	X float64
	Y float64
	Z float64
}

// Dist2D returns the distance between two positions ignoring Z
func (v Vec) Dist2D(o Vec) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}
