package fov

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/yendor/internal/world"
)

// openGrid returns a grid whose every cell is floor.
func openGrid(width, height int) *world.Grid {
	grid := world.NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			grid.SetKind(x, y, world.TileFloor)
		}
	}
	return grid
}

// roomWithCorridor builds a single room with one door on its east wall and a corridor
// running east from it.
func roomWithCorridor() (*world.Grid, []world.Room) {
	grid := world.NewGrid(20, 10)
	room := world.Room{X: 2, Y: 2, Width: 6, Height: 5}
	room.EachCell(func(x, y int) {
		if room.InInterior(x, y) {
			grid.SetKind(x, y, world.TileFloor)
		} else {
			grid.SetKind(x, y, world.TileWall)
		}
	})
	grid.SetKind(7, 4, world.TileDoor)
	for x := 8; x <= 14; x++ {
		grid.SetKind(x, 4, world.TileCorridor)
		grid.SetKind(x, 3, world.TileWall)
		grid.SetKind(x, 5, world.TileWall)
	}
	return grid, []world.Room{room}
}

func generateLevel(t *testing.T, seed int64) (*world.Grid, []world.Room) {
	t.Helper()
	grid := world.NewGrid(world.DefaultWidth, world.DefaultHeight)
	gen := world.NewGenerator(world.DefaultParams(), rand.New(rand.NewSource(seed)))
	rooms, err := gen.Generate(context.Background(), grid)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return grid, rooms
}

// corridorPath returns the walkable cells from a to b found by breadth-first search.
func corridorPath(grid *world.Grid, from, to world.Point) []world.Point {
	prev := map[world.Point]world.Point{}
	visited := mapset.New[world.Point]()
	visited.Put(from)
	queue := []world.Point{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p == to {
			break
		}
		for _, d := range world.Orthogonal {
			n := p.Add(d.X, d.Y)
			if !visited.Has(n) && grid.IsWalkable(n.X, n.Y) {
				visited.Put(n)
				prev[n] = p
				queue = append(queue, n)
			}
		}
	}

	if !visited.Has(to) {
		return nil
	}
	path := []world.Point{to}
	for p := to; p != from; {
		p = prev[p]
		path = append([]world.Point{p}, path...)
	}
	return path
}

func points(s mapset.Set[world.Point]) []world.Point {
	var out []world.Point
	s.Each(func(p world.Point) { out = append(out, p) })
	return out
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"rooms", ModeRooms, false},
		{"shadowcast", ModeShadowcast, false},
		{"raycast", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownMode) {
				t.Errorf("ParseMode(%q) error = %v, want ErrUnknownMode", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
		}
	}
}

func TestRoomCenterRevealsRoomOnly(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		grid, rooms := generateLevel(t, seed)
		engine := NewEngine(ModeRooms)
		x, y := rooms[0].Center()
		state := engine.Recompute(context.Background(), grid, rooms, x, y, 7)

		rooms[0].EachInterior(func(ix, iy int) {
			if !state.IsVisible(world.Point{X: ix, Y: iy}) {
				t.Errorf("seed %d: interior (%d,%d) of own room not visible", seed, ix, iy)
			}
		})

		for i := 1; i < len(rooms); i++ {
			rooms[i].EachCell(func(ix, iy int) {
				if state.IsVisible(world.Point{X: ix, Y: iy}) {
					t.Errorf("seed %d: cell (%d,%d) of room %d visible from room 0", seed, ix, iy, i)
				}
			})
		}
	}
}

func TestShadowcastRoomCenterSeesWholeRoom(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		grid, rooms := generateLevel(t, seed)
		engine := NewEngine(ModeShadowcast)
		x, y := rooms[0].Center()
		state := engine.Recompute(context.Background(), grid, rooms, x, y, 7)

		// Every default room interior lies inside radius 7 of its center
		rooms[0].EachInterior(func(ix, iy int) {
			if !state.IsVisible(world.Point{X: ix, Y: iy}) {
				t.Errorf("seed %d: interior (%d,%d) not visible", seed, ix, iy)
			}
		})
	}
}

func TestExploredGrowsAndVisibleIsRebuilt(t *testing.T) {
	for _, mode := range []Mode{ModeRooms, ModeShadowcast} {
		for seed := int64(1); seed <= 10; seed++ {
			grid, rooms := generateLevel(t, seed)
			if len(rooms) < 2 {
				continue
			}
			path := corridorPath(grid, rooms[0].CenterPoint(), rooms[1].CenterPoint())
			if path == nil {
				t.Fatalf("%s seed %d: no path between the first two rooms", mode, seed)
			}

			engine := NewEngine(mode)
			previous := mapset.New[world.Point]()
			for step, p := range path {
				state := engine.Recompute(context.Background(), grid, rooms, p.X, p.Y, 7)

				previous.Each(func(q world.Point) {
					if !state.Explored.Has(q) {
						t.Errorf("%s seed %d step %d: explored cell %v forgotten", mode, seed, step, q)
					}
				})
				state.Visible.Each(func(q world.Point) {
					if !state.Explored.Has(q) {
						t.Errorf("%s seed %d step %d: visible cell %v not explored", mode, seed, step, q)
					}
				})

				// A fresh engine at the same spot must see exactly the same cells
				fresh := NewEngine(mode).Recompute(context.Background(), grid, rooms, p.X, p.Y, 7)
				if fresh.Visible.Size() != state.Visible.Size() {
					t.Errorf("%s seed %d step %d: visible has %d cells, fresh recompute has %d",
						mode, seed, step, state.Visible.Size(), fresh.Visible.Size())
				}
				for _, q := range points(fresh.Visible) {
					if !state.Visible.Has(q) {
						t.Errorf("%s seed %d step %d: visible set missing %v", mode, seed, step, q)
					}
				}

				previous = mapset.New[world.Point]()
				state.Explored.Each(func(q world.Point) { previous.Put(q) })
			}
		}
	}
}

func TestGridFlagsMatchState(t *testing.T) {
	grid, rooms := generateLevel(t, 99)
	engine := NewEngine(ModeRooms)

	first := rooms[0].CenterPoint()
	engine.Recompute(context.Background(), grid, rooms, first.X, first.Y, 7)
	last := rooms[len(rooms)-1].CenterPoint()
	state := engine.Recompute(context.Background(), grid, rooms, last.X, last.Y, 7)

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := world.Point{X: x, Y: y}
			tile := grid.At(x, y)
			if tile.Visible != state.IsVisible(p) {
				t.Errorf("(%d,%d): tile visible = %v, set says %v", x, y, tile.Visible, state.IsVisible(p))
			}
			if tile.Explored != state.IsExplored(p) {
				t.Errorf("(%d,%d): tile explored = %v, set says %v", x, y, tile.Explored, state.IsExplored(p))
			}
		}
	}
}

func TestCorridorModeShowsNeighbours(t *testing.T) {
	grid, rooms := roomWithCorridor()
	engine := NewEngine(ModeRooms)

	state := engine.Recompute(context.Background(), grid, rooms, 12, 4, 7)
	want := []world.Point{{X: 12, Y: 4}, {X: 11, Y: 4}, {X: 13, Y: 4}, {X: 12, Y: 3}, {X: 12, Y: 5}}
	if state.Visible.Size() != len(want) {
		t.Errorf("visible has %d cells, want %d: %v", state.Visible.Size(), len(want), points(state.Visible))
	}
	for _, p := range want {
		if !state.IsVisible(p) {
			t.Errorf("%v should be visible from the corridor", p)
		}
	}
	if state.IsVisible(world.Point{X: 11, Y: 3}) {
		t.Error("diagonal neighbour should not be visible in corridor mode")
	}
}

func TestCorridorModeExposesDoorways(t *testing.T) {
	grid, rooms := roomWithCorridor()
	engine := NewEngine(ModeRooms)

	state := engine.Recompute(context.Background(), grid, rooms, 9, 4, 7)
	if !state.IsVisible(world.Point{X: 7, Y: 4}) {
		t.Error("doorway of the adjacent room should be visible")
	}
	if state.IsVisible(world.Point{X: 4, Y: 4}) {
		t.Error("room interior should stay hidden from the corridor")
	}

	// Stepping into the room lights all of it, and the corridor cells stay explored
	state = engine.Recompute(context.Background(), grid, rooms, 5, 4, 7)
	rooms[0].EachCell(func(x, y int) {
		if !state.IsVisible(world.Point{X: x, Y: y}) {
			t.Errorf("room cell (%d,%d) not visible from inside", x, y)
		}
	})
	if !state.IsVisible(world.Point{X: 8, Y: 4}) {
		t.Error("walkable halo cell outside the door should be visible")
	}
	if state.IsVisible(world.Point{X: 9, Y: 4}) {
		t.Error("corridor beyond the halo should not be visible")
	}
	if !state.IsExplored(world.Point{X: 10, Y: 4}) {
		t.Error("corridor cell seen earlier should remain explored")
	}
}

func TestOutOfBoundsObserverIsSkipped(t *testing.T) {
	grid := openGrid(5, 5)

	for _, mode := range []Mode{ModeRooms, ModeShadowcast} {
		engine := NewEngine(mode)
		state := engine.Recompute(context.Background(), grid, nil, 0, 0, 3)
		state.Visible.Each(func(p world.Point) {
			if !grid.InBounds(p.X, p.Y) {
				t.Errorf("%s: out-of-bounds cell %v marked visible", mode, p)
			}
		})
		if !state.IsVisible(world.Point{X: 0, Y: 0}) {
			t.Errorf("%s: observer cell not visible", mode)
		}
	}
}

func TestShadowcastRadius(t *testing.T) {
	grid := openGrid(21, 21)
	engine := NewEngine(ModeShadowcast)
	state := engine.Recompute(context.Background(), grid, nil, 10, 10, 3)

	tests := []struct {
		p       world.Point
		visible bool
	}{
		{world.Point{X: 10, Y: 10}, true},
		{world.Point{X: 13, Y: 10}, true},
		{world.Point{X: 14, Y: 10}, false},
		{world.Point{X: 12, Y: 12}, true},
		{world.Point{X: 13, Y: 12}, false},
		{world.Point{X: 10, Y: 7}, true},
		{world.Point{X: 8, Y: 8}, true},
	}
	for _, tt := range tests {
		if got := state.IsVisible(tt.p); got != tt.visible {
			t.Errorf("IsVisible(%v) = %v, want %v", tt.p, got, tt.visible)
		}
	}
}

func TestShadowcastStopsAtWalls(t *testing.T) {
	grid := openGrid(21, 11)
	for y := 0; y < grid.Height; y++ {
		grid.SetKind(12, y, world.TileWall)
	}
	engine := NewEngine(ModeShadowcast)
	state := engine.Recompute(context.Background(), grid, nil, 10, 5, 7)

	if !state.IsVisible(world.Point{X: 12, Y: 5}) {
		t.Error("the wall itself should be visible")
	}
	for y := 0; y < grid.Height; y++ {
		for x := 13; x < grid.Width; x++ {
			if state.IsVisible(world.Point{X: x, Y: y}) {
				t.Errorf("(%d,%d) behind the wall is visible", x, y)
			}
		}
	}
}

func TestLineOfSightSymmetricAcrossWall(t *testing.T) {
	grid := openGrid(15, 9)
	for y := 0; y < grid.Height; y++ {
		grid.SetKind(7, y, world.TileWall)
	}

	for ay := 0; ay < grid.Height; ay++ {
		for ax := 0; ax < 7; ax++ {
			for by := 0; by < grid.Height; by++ {
				for bx := 8; bx < grid.Width; bx++ {
					a := world.Point{X: ax, Y: ay}
					b := world.Point{X: bx, Y: by}
					if LineOfSight(grid, a, b) || LineOfSight(grid, b, a) {
						t.Fatalf("line of sight crosses the wall between %v and %v", a, b)
					}
				}
			}
		}
	}
}

func TestLineOfSightNoCornerCutting(t *testing.T) {
	grid := openGrid(3, 3)
	grid.SetKind(1, 0, world.TileWall)
	grid.SetKind(0, 1, world.TileWall)

	if LineOfSight(grid, world.Point{X: 0, Y: 0}, world.Point{X: 1, Y: 1}) {
		t.Error("diagonal sight between two touching walls")
	}
	if LineOfSight(grid, world.Point{X: 1, Y: 1}, world.Point{X: 0, Y: 0}) {
		t.Error("diagonal sight between two touching walls (reversed)")
	}
	if !LineOfSight(grid, world.Point{X: 2, Y: 2}, world.Point{X: 2, Y: 0}) {
		t.Error("open column should be in sight")
	}
}

func TestResetClearsExplored(t *testing.T) {
	grid := openGrid(5, 5)
	engine := NewEngine(ModeShadowcast)
	engine.Recompute(context.Background(), grid, nil, 2, 2, 2)
	if engine.State().Explored.Size() == 0 {
		t.Fatal("nothing explored after recompute")
	}
	engine.Reset()
	if engine.State().Explored.Size() != 0 || engine.State().Visible.Size() != 0 {
		t.Error("Reset() should leave an empty state")
	}
}
