package world

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/yendor/internal/telemetry"
)

// Layout selects how candidate rooms are positioned.
type Layout string

const (
	// LayoutGrid splits the map into fixed cells with one candidate room per cell.
	LayoutGrid Layout = "grid"
	// LayoutBSP splits the map by binary space partitioning, one candidate per leaf.
	LayoutBSP Layout = "bsp"
	// LayoutScatter makes independent random placements across the whole map.
	LayoutScatter Layout = "scatter"
)

// placementAttempts bounds the retries when dropping something into a room.
const placementAttempts = 100

var (
	// ErrRoomLargerThanGrid means no room of the minimum size can ever fit.
	ErrRoomLargerThanGrid = errors.New("minimum room size does not fit the grid")
	// ErrInvalidParams means the generation parameters are inconsistent.
	ErrInvalidParams = errors.New("invalid generation parameters")
)

// SizeBounds constrains room dimensions, walls included.
type SizeBounds struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// Fits returns true if a room of the given size satisfies the bounds.
func (b SizeBounds) Fits(width, height int) bool {
	return width >= b.MinWidth && width <= b.MaxWidth &&
		height >= b.MinHeight && height <= b.MaxHeight
}

// GenParams holds dungeon generation settings.
type GenParams struct {
	Layout     Layout
	RoomBudget int // Upper bound on candidate rooms
	Size       SizeBounds
	Columns    int // Grid layout cell columns
	Rows       int // Grid layout cell rows
}

// DefaultParams returns the classic nine-room, three-by-three layout.
func DefaultParams() GenParams {
	return GenParams{
		Layout:     LayoutGrid,
		RoomBudget: 9,
		Size: SizeBounds{
			MinWidth:  6,
			MaxWidth:  9,
			MinHeight: 4,
			MaxHeight: 7,
		},
		Columns: 3,
		Rows:    3,
	}
}

// Generator carves rooms and corridors into a grid.
type Generator struct {
	params GenParams
	rng    *rand.Rand
	grid   *Grid
	rooms  []Room
}

// NewGenerator creates a generator drawing from rng.
// A nil rng is replaced by a time-seeded source.
func NewGenerator(params GenParams, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{params: params, rng: rng}
}

// Params returns the generation settings.
func (g *Generator) Params() GenParams {
	return g.params
}

// Validate checks that the settings can produce at least one room on a grid of the given size.
func (g *Generator) Validate(width, height int) error {
	p := g.params
	s := p.Size
	if s.MinWidth < 3 || s.MinHeight < 3 {
		return fmt.Errorf("%w: rooms need at least 3x3 to have an interior, got %dx%d",
			ErrInvalidParams, s.MinWidth, s.MinHeight)
	}
	if s.MaxWidth < s.MinWidth || s.MaxHeight < s.MinHeight {
		return fmt.Errorf("%w: size bounds inverted (%d..%d x %d..%d)",
			ErrInvalidParams, s.MinWidth, s.MaxWidth, s.MinHeight, s.MaxHeight)
	}
	if p.RoomBudget < 1 {
		return fmt.Errorf("%w: room budget %d", ErrInvalidParams, p.RoomBudget)
	}

	// One tile of map border plus one tile of separation
	if s.MinWidth > width-3 || s.MinHeight > height-3 {
		return fmt.Errorf("%w: %dx%d room on %dx%d grid",
			ErrRoomLargerThanGrid, s.MinWidth, s.MinHeight, width, height)
	}

	switch p.Layout {
	case LayoutGrid:
		if p.Columns < 1 || p.Rows < 1 {
			return fmt.Errorf("%w: grid layout %dx%d", ErrInvalidParams, p.Columns, p.Rows)
		}
		cellWidth := (width - 2) / p.Columns
		cellHeight := (height - 2) / p.Rows
		if s.MinWidth > cellWidth-1 || s.MinHeight > cellHeight-1 {
			return fmt.Errorf("%w: %dx%d room in %dx%d cell",
				ErrRoomLargerThanGrid, s.MinWidth, s.MinHeight, cellWidth, cellHeight)
		}
	case LayoutBSP, LayoutScatter:
	default:
		return fmt.Errorf("%w: unknown layout %q", ErrInvalidParams, p.Layout)
	}
	return nil
}

// Generate carves rooms into grid and connects them in generation order.
// It returns the accepted rooms; fewer than the budget is not an error.
func (g *Generator) Generate(ctx context.Context, grid *Grid) ([]Room, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	if err := g.Validate(grid.Width, grid.Height); err != nil {
		span.RecordError(err)
		return nil, err
	}

	startTime := time.Now()
	g.grid = grid
	g.rooms = make([]Room, 0, g.params.RoomBudget)

	candidates := 0
	switch g.params.Layout {
	case LayoutGrid:
		candidates = g.placeInRegions(g.gridRegions())
	case LayoutBSP:
		root := &bspNode{x: 1, y: 1, width: grid.Width - 2, height: grid.Height - 2}
		g.splitNode(root)
		candidates = g.placeInRegions(root.leaves(nil))
	case LayoutScatter:
		candidates = g.scatterRooms()
	}

	g.connectRooms()

	shortfall := g.params.RoomBudget - len(g.rooms)
	if shortfall > 0 {
		log.Printf("dungeon: placed %d of %d rooms (%s layout)", len(g.rooms), g.params.RoomBudget, g.params.Layout)
	}

	span.SetAttributes(
		attribute.Int("dungeon.width", grid.Width),
		attribute.Int("dungeon.height", grid.Height),
		attribute.String("dungeon.layout", string(g.params.Layout)),
		attribute.Int("dungeon.candidates", candidates),
		attribute.Int("dungeon.room_count", len(g.rooms)),
		attribute.Int("dungeon.shortfall", max(shortfall, 0)),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)

	rooms := g.rooms
	g.grid, g.rooms = nil, nil
	return rooms, nil
}

// =============================================================================
// Candidate placement
// =============================================================================

// region is a rectangle a single candidate room must fit inside.
type region struct {
	x, y          int
	width, height int
}

// gridRegions splits the playable area into Columns x Rows cells, row by row.
func (g *Generator) gridRegions() []region {
	cellWidth := (g.grid.Width - 2) / g.params.Columns
	cellHeight := (g.grid.Height - 2) / g.params.Rows

	regions := make([]region, 0, g.params.Columns*g.params.Rows)
	for row := 0; row < g.params.Rows; row++ {
		for col := 0; col < g.params.Columns; col++ {
			regions = append(regions, region{
				x:      1 + col*cellWidth,
				y:      1 + row*cellHeight,
				width:  cellWidth,
				height: cellHeight,
			})
		}
	}
	return regions
}

// placeInRegions tries one room per region until the budget is spent.
// It returns the number of candidates considered.
func (g *Generator) placeInRegions(regions []region) int {
	candidates := 0
	for _, r := range regions {
		if candidates >= g.params.RoomBudget {
			break
		}
		candidates++
		if room, ok := g.roomInRegion(r); ok {
			g.accept(room)
		}
	}
	return candidates
}

// roomInRegion draws a room that leaves a one tile gap on the region's far edges.
// It reports false when the region cannot hold a minimum sized room.
func (g *Generator) roomInRegion(r region) (Room, bool) {
	s := g.params.Size
	maxWidth := min(s.MaxWidth, r.width-1)
	maxHeight := min(s.MaxHeight, r.height-1)
	if maxWidth < s.MinWidth || maxHeight < s.MinHeight {
		return Room{}, false
	}

	width := s.MinWidth + g.rng.Intn(maxWidth-s.MinWidth+1)
	height := s.MinHeight + g.rng.Intn(maxHeight-s.MinHeight+1)

	return Room{
		X:      r.x + g.rng.Intn(r.width-width),
		Y:      r.y + g.rng.Intn(r.height-height),
		Width:  width,
		Height: height,
	}, true
}

// scatterRooms makes RoomBudget independent placements over the playable area.
func (g *Generator) scatterRooms() int {
	s := g.params.Size
	maxWidth := min(s.MaxWidth, g.grid.Width-3)
	maxHeight := min(s.MaxHeight, g.grid.Height-3)

	for i := 0; i < g.params.RoomBudget; i++ {
		width := s.MinWidth + g.rng.Intn(maxWidth-s.MinWidth+1)
		height := s.MinHeight + g.rng.Intn(maxHeight-s.MinHeight+1)
		g.accept(Room{
			X:      1 + g.rng.Intn(g.grid.Width-2-width),
			Y:      1 + g.rng.Intn(g.grid.Height-2-height),
			Width:  width,
			Height: height,
		})
	}
	return g.params.RoomBudget
}

// accept carves a candidate unless it overlaps an accepted room.
func (g *Generator) accept(room Room) bool {
	for _, other := range g.rooms {
		if room.Intersects(other) {
			return false
		}
	}
	g.carveRoom(room)
	g.rooms = append(g.rooms, room)
	return true
}

// carveRoom writes floor on the interior and walls on the border.
func (g *Generator) carveRoom(room Room) {
	room.EachCell(func(x, y int) {
		if room.InInterior(x, y) {
			g.grid.SetKind(x, y, TileFloor)
		} else {
			g.grid.SetKind(x, y, TileWall)
		}
	})
}

// =============================================================================
// BSP layout
// =============================================================================

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// leaves appends the leaf regions left to right.
func (n *bspNode) leaves(out []region) []region {
	if n == nil {
		return out
	}
	if n.isLeaf() {
		return append(out, region{x: n.x, y: n.y, width: n.width, height: n.height})
	}
	out = n.left.leaves(out)
	return n.right.leaves(out)
}

// splitNode recursively splits a BSP node while both halves can still hold a room.
func (g *Generator) splitNode(node *bspNode) {
	minLeafWidth := g.params.Size.MinWidth + 1
	minLeafHeight := g.params.Size.MinHeight + 1

	canSplitWidth := node.width >= minLeafWidth*2
	canSplitHeight := node.height >= minLeafHeight*2

	var splitHorizontally bool
	switch {
	case canSplitWidth && canSplitHeight:
		// Prefer cutting across the longer side
		splitHorizontally = node.height*minLeafWidth > node.width*minLeafHeight
	case canSplitHeight:
		splitHorizontally = true
	case canSplitWidth:
		splitHorizontally = false
	default:
		return
	}

	if splitHorizontally {
		splitPos := minLeafHeight + g.rng.Intn(node.height-minLeafHeight*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos}
	} else {
		splitPos := minLeafWidth + g.rng.Intn(node.width-minLeafWidth*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height}
	}

	g.splitNode(node.left)
	g.splitNode(node.right)
}

// =============================================================================
// Corridors
// =============================================================================

// connectRooms joins each room to the next one in generation order.
func (g *Generator) connectRooms() {
	for i := 0; i+1 < len(g.rooms); i++ {
		g.carveCorridor(g.rooms[i], g.rooms[i+1])
	}
}

// carveCorridor creates an L-shaped corridor between two room centers.
func (g *Generator) carveCorridor(room1, room2 Room) {
	x1, y1 := room1.Center()
	x2, y2 := room2.Center()

	// Randomly choose to go horizontal-then-vertical or vertical-then-horizontal
	if g.rng.Intn(2) == 0 {
		g.carveHorizontalTunnel(x1, x2, y1)
		g.carveVerticalTunnel(y1, y2, x2)
	} else {
		g.carveVerticalTunnel(y1, y2, x1)
		g.carveHorizontalTunnel(x1, x2, y2)
	}
}

// carveHorizontalTunnel carves a horizontal run and walls its untouched sides.
func (g *Generator) carveHorizontalTunnel(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.carvePassage(x, y)
		g.raiseWall(x, y-1)
		g.raiseWall(x, y+1)
	}
}

// carveVerticalTunnel carves a vertical run and walls its untouched sides.
func (g *Generator) carveVerticalTunnel(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.carvePassage(x, y)
		g.raiseWall(x-1, y)
		g.raiseWall(x+1, y)
	}
}

// carvePassage makes a cell walkable without disturbing room floors.
func (g *Generator) carvePassage(x, y int) {
	switch g.grid.Kind(x, y) {
	case TileUnknown:
		g.grid.SetKind(x, y, TileCorridor)
	case TileWall:
		if g.onRoomBorder(x, y) {
			g.grid.SetKind(x, y, TileDoor)
		} else {
			g.grid.SetKind(x, y, TileCorridor)
		}
	}
}

// raiseWall turns untouched rock into wall.
func (g *Generator) raiseWall(x, y int) {
	if g.grid.InBounds(x, y) && g.grid.Kind(x, y) == TileUnknown {
		g.grid.SetKind(x, y, TileWall)
	}
}

// onRoomBorder returns true if the position is on any accepted room's wall ring.
func (g *Generator) onRoomBorder(x, y int) bool {
	for _, room := range g.rooms {
		if room.OnBorder(x, y) {
			return true
		}
	}
	return false
}

// =============================================================================
// Placement helpers
// =============================================================================

// RandomInteriorPoint returns a uniformly random interior cell of the room.
func RandomInteriorPoint(rng *rand.Rand, room Room) Point {
	return Point{
		X: room.X + 1 + rng.Intn(room.Width-2),
		Y: room.Y + 1 + rng.Intn(room.Height-2),
	}
}

// PlaceInRoom picks a random room and a random interior cell in it, retrying only when
// occupied reports the cell taken. It reports false if there are no rooms or every
// attempt collided.
func PlaceInRoom(rng *rand.Rand, rooms []Room, occupied func(Point) bool) (Point, int, bool) {
	if len(rooms) == 0 {
		return Point{}, -1, false
	}
	for i := 0; i < placementAttempts; i++ {
		index := rng.Intn(len(rooms))
		p := RandomInteriorPoint(rng, rooms[index])
		if occupied == nil || !occupied(p) {
			return p, index, true
		}
	}
	return Point{}, -1, false
}

// FreeInteriorPoint returns a random unoccupied interior cell of one specific room,
// falling back to the room center.
func FreeInteriorPoint(rng *rand.Rand, room Room, occupied func(Point) bool) Point {
	for i := 0; i < placementAttempts; i++ {
		p := RandomInteriorPoint(rng, room)
		if occupied == nil || !occupied(p) {
			return p
		}
	}
	return room.CenterPoint()
}
