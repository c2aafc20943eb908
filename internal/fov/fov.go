// Package fov computes what the player can see on a level.
//
// Two policies are supported. The rooms policy lights a whole room while the
// observer stands inside it and only the immediate neighbours while in a corridor.
// The shadowcast policy walks eight octants out to a sight radius and tests each
// candidate cell with a four-connected line of sight.
package fov

import (
	"context"
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/yendor/internal/telemetry"
	"github.com/samdwyer/yendor/internal/world"
)

// Mode selects the visibility policy.
type Mode string

const (
	// ModeRooms reveals whole rooms and the four neighbours in corridors.
	ModeRooms Mode = "rooms"
	// ModeShadowcast reveals everything in line of sight within the radius.
	ModeShadowcast Mode = "shadowcast"
)

// ErrUnknownMode is returned by ParseMode for unrecognised names.
var ErrUnknownMode = errors.New("unknown fov mode")

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRooms, ModeShadowcast:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// State holds the visible and explored cells for the current level.
// Visible is replaced on every recompute; Explored only grows.
type State struct {
	Visible  mapset.Set[world.Point]
	Explored mapset.Set[world.Point]
}

// NewState returns an empty visibility state.
func NewState() *State {
	return &State{
		Visible:  mapset.New[world.Point](),
		Explored: mapset.New[world.Point](),
	}
}

// IsVisible reports whether p is visible right now.
func (s *State) IsVisible(p world.Point) bool {
	return s.Visible.Has(p)
}

// IsExplored reports whether p has ever been seen on this level.
func (s *State) IsExplored(p world.Point) bool {
	return s.Explored.Has(p)
}

// Engine recomputes visibility for one observer.
type Engine struct {
	mode  Mode
	state *State
}

// NewEngine creates an engine using the given policy.
func NewEngine(mode Mode) *Engine {
	return &Engine{mode: mode, state: NewState()}
}

// Mode returns the engine's policy.
func (e *Engine) Mode() Mode {
	return e.mode
}

// State returns the latest visibility state.
func (e *Engine) State() *State {
	return e.state
}

// Reset forgets everything explored. Call it when the level is replaced.
func (e *Engine) Reset() {
	e.state = NewState()
}

// Recompute rebuilds the visible set for an observer at (x, y) and adds it to the
// explored set. The grid's Visible and Explored flags are kept in step with the sets.
// Radius only applies to the shadowcast policy.
func (e *Engine) Recompute(ctx context.Context, grid *world.Grid, rooms []world.Room, x, y, radius int) *State {
	_, span := telemetry.Tracer("fov").Start(ctx, "fov.recompute")
	defer span.End()

	grid.ClearVisible()
	e.state.Visible = mapset.New[world.Point]()

	origin := world.Point{X: x, Y: y}
	switch e.mode {
	case ModeShadowcast:
		e.shadowcast(grid, origin, radius)
	default:
		if room, ok := roomAt(rooms, x, y); ok {
			e.revealRoom(grid, room)
		} else {
			e.revealCorridor(grid, rooms, origin)
		}
	}

	span.SetAttributes(
		attribute.String("fov.mode", string(e.mode)),
		attribute.Int("fov.visible", e.state.Visible.Size()),
		attribute.Int("fov.explored", e.state.Explored.Size()),
	)
	return e.state
}

// mark makes an in-bounds cell visible and explored.
func (e *Engine) mark(grid *world.Grid, x, y int) {
	if !grid.InBounds(x, y) {
		return
	}
	p := world.Point{X: x, Y: y}
	e.state.Visible.Put(p)
	e.state.Explored.Put(p)
	grid.SetVisible(x, y, true)
}

// roomAt returns the room whose interior holds (x, y).
func roomAt(rooms []world.Room, x, y int) (world.Room, bool) {
	for _, room := range rooms {
		if room.InInterior(x, y) {
			return room, true
		}
	}
	return world.Room{}, false
}

// revealRoom lights the whole room rectangle and the walkable cells of its halo.
func (e *Engine) revealRoom(grid *world.Grid, room world.Room) {
	room.EachCell(func(x, y int) {
		e.mark(grid, x, y)
	})
	room.EachHalo(func(x, y int) {
		if grid.IsWalkable(x, y) {
			e.mark(grid, x, y)
		}
	})
}

// revealCorridor lights the observer and its orthogonal neighbours. A walkable
// revealed cell next to a room also lights that room's doorways.
func (e *Engine) revealCorridor(grid *world.Grid, rooms []world.Room, origin world.Point) {
	cells := []world.Point{origin}
	for _, d := range world.Orthogonal {
		cells = append(cells, origin.Add(d.X, d.Y))
	}

	for _, p := range cells {
		e.mark(grid, p.X, p.Y)
	}

	for _, p := range cells {
		if !grid.IsWalkable(p.X, p.Y) {
			continue
		}
		for _, room := range rooms {
			if room.OnBorder(p.X, p.Y) || room.InHalo(p.X, p.Y) {
				e.revealDoorways(grid, room)
			}
		}
	}
}

// revealDoorways lights the walkable cells on a room's border.
func (e *Engine) revealDoorways(grid *world.Grid, room world.Room) {
	room.EachCell(func(x, y int) {
		if room.OnBorder(x, y) && grid.IsWalkable(x, y) {
			e.mark(grid, x, y)
		}
	})
}

// octants maps (row, col) offsets into each of the eight octants.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// shadowcast walks each octant row by row and keeps the cells in line of sight.
func (e *Engine) shadowcast(grid *world.Grid, origin world.Point, radius int) {
	e.mark(grid, origin.X, origin.Y)
	if radius <= 0 {
		return
	}

	limit := radius * radius
	for _, oct := range octants {
		xx, xy, yx, yy := oct[0], oct[1], oct[2], oct[3]
		for row := 1; row <= radius; row++ {
			for col := 0; col <= row; col++ {
				dx := row*xx + col*xy
				dy := row*yx + col*yy
				if dx*dx+dy*dy > limit {
					continue
				}
				target := origin.Add(dx, dy)
				if !grid.InBounds(target.X, target.Y) {
					continue
				}
				if LineOfSight(grid, origin, target) {
					e.mark(grid, target.X, target.Y)
				}
			}
		}
	}
}

// LineOfSight reports whether every cell strictly between from and to is transparent.
// The line is four-connected: it steps in x or in y, never diagonally, so it cannot
// slip between two walls that touch at a corner.
func LineOfSight(grid *world.Grid, from, to world.Point) bool {
	dx := abs(to.X - from.X)
	dy := abs(to.Y - from.Y)
	stepX := sign(to.X - from.X)
	stepY := sign(to.Y - from.Y)

	x, y := from.X, from.Y
	errTerm := dx - dy
	dx *= 2
	dy *= 2

	for n := 1 + dx/2 + dy/2; n > 0; n-- {
		interior := (x != from.X || y != from.Y) && (x != to.X || y != to.Y)
		if interior && !grid.IsTransparent(x, y) {
			return false
		}
		if errTerm > 0 {
			x += stepX
			errTerm -= dy
		} else {
			y += stepY
			errTerm += dx
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
