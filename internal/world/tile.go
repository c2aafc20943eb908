// Package world provides the tile grid, rooms and dungeon generation.
package world

// TileKind identifies what occupies a map cell.
type TileKind uint8

const (
	// TileUnknown is solid rock that nothing has carved yet.
	TileUnknown TileKind = iota
	// TileWall is a room border or a wall raised beside a corridor.
	TileWall
	// TileFloor is the walkable interior of a room.
	TileFloor
	// TileCorridor is a walkable passage between rooms.
	TileCorridor
	// TileDoor is a room border cell a corridor has broken through.
	TileDoor
)

// String returns a human-readable tile kind name.
func (k TileKind) String() string {
	switch k {
	case TileUnknown:
		return "unknown"
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileCorridor:
		return "corridor"
	case TileDoor:
		return "door"
	default:
		return "invalid"
	}
}

// Rune returns the tile's display character.
func (k TileKind) Rune() rune {
	switch k {
	case TileWall:
		return '#'
	case TileFloor:
		return '.'
	case TileCorridor:
		return '+'
	case TileDoor:
		return '\''
	default:
		return ' '
	}
}

// Tile is the state of a single map cell.
type Tile struct {
	Kind     TileKind
	Visible  bool // Visible this turn only
	Explored bool // Seen at least once; never cleared
}

// Walkable returns true if the tile can be walked on.
func (t Tile) Walkable() bool {
	switch t.Kind {
	case TileFloor, TileCorridor, TileDoor:
		return true
	default:
		return false
	}
}

// Transparent returns true if the tile does not block line of sight.
func (t Tile) Transparent() bool {
	return t.Walkable()
}

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Orthogonal holds the four non-diagonal neighbour offsets.
var Orthogonal = [4]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
