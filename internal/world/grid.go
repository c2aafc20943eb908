package world

const (
	// Default level dimensions
	DefaultWidth  = 80
	DefaultHeight = 21
)

// Grid is the tile map for one dungeon level.
type Grid struct {
	Width  int
	Height int
	tiles  [][]Tile
}

// NewGrid creates a grid filled with unknown rock.
func NewGrid(width, height int) *Grid {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
	}
	return &Grid{
		Width:  width,
		Height: height,
		tiles:  tiles,
	}
}

// InBounds returns true if the position lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at the given position.
// Positions off the grid read as unknown rock: not walkable, not transparent, not visible.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return Tile{}
	}
	return g.tiles[y][x]
}

// IsWalkable returns true if the given position can be walked on.
func (g *Grid) IsWalkable(x, y int) bool {
	return g.At(x, y).Walkable()
}

// IsTransparent returns true if the given position does not block sight.
func (g *Grid) IsTransparent(x, y int) bool {
	return g.At(x, y).Transparent()
}

// Kind returns the tile kind at the given position.
func (g *Grid) Kind(x, y int) TileKind {
	return g.At(x, y).Kind
}

// SetKind changes the tile kind at the given position. Off-grid writes are ignored.
func (g *Grid) SetKind(x, y int, kind TileKind) {
	if g.InBounds(x, y) {
		g.tiles[y][x].Kind = kind
	}
}

// SetVisible marks a tile visible (and therefore explored) or clears its visible flag.
func (g *Grid) SetVisible(x, y int, visible bool) {
	if !g.InBounds(x, y) {
		return
	}
	g.tiles[y][x].Visible = visible
	if visible {
		g.tiles[y][x].Explored = true
	}
}

// ClearVisible resets the visible flag on every tile.
func (g *Grid) ClearVisible() {
	for y := range g.tiles {
		for x := range g.tiles[y] {
			g.tiles[y][x].Visible = false
		}
	}
}

// CountKind returns how many tiles are of the given kind.
func (g *Grid) CountKind(kind TileKind) int {
	n := 0
	for y := range g.tiles {
		for x := range g.tiles[y] {
			if g.tiles[y][x].Kind == kind {
				n++
			}
		}
	}
	return n
}
