package world

// Direction represents a cardinal direction on the station plane
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Offset returns the unit grid offset for this direction.
// East is +X (right), North is +Y (forward).
func (d Direction) Offset() Coord {
	switch d {
	case North:
		return Coord{X: 0, Y: 1}
	case East:
		return Coord{X: 1, Y: 0}
	case South:
		return Coord{X: 0, Y: -1}
	case West:
		return Coord{X: -1, Y: 0}
	default:
		return Coord{}
	}
}

// DefaultConnectionPoints returns the four cardinal unit offsets in
// right, left, forward, back order. Modules without a custom shape use these
// whatever their footprint size.
func DefaultConnectionPoints() []Coord {
	return []Coord{
		East.Offset(),
		West.Offset(),
		North.Offset(),
		South.Offset(),
	}
}
