// Package level composes dungeon generation, visibility and turn scheduling into a
// playable depth.
//
// A Session owns the active Level. Each transition throws the old level away and
// builds a new one; only the player and the Campaign carry over.
package level

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/yendor/internal/entity"
	"github.com/samdwyer/yendor/internal/fov"
	"github.com/samdwyer/yendor/internal/gamedata"
	"github.com/samdwyer/yendor/internal/schedule"
	"github.com/samdwyer/yendor/internal/telemetry"
	"github.com/samdwyer/yendor/internal/world"
)

// Population limits
const (
	MaxMonstersPerRoom = 2
	goldMin            = 10
	goldMax            = 50
	goldRoomsMin       = 2
	goldRoomsMax       = 4
)

var (
	// ErrDepthOutOfRange is returned when asked for a depth outside [1, MaxDepth].
	ErrDepthOutOfRange = errors.New("depth out of range")
	// ErrNoStairs is returned by Transition when the player is not on matching stairs.
	ErrNoStairs = errors.New("no stairs here")
	// ErrNoRooms means generation produced an empty level.
	ErrNoRooms = errors.New("level has no rooms")
)

// Arrival says which way the player entered a level.
type Arrival int

const (
	// ArriveDescending places the player in the first room.
	ArriveDescending Arrival = iota
	// ArriveAscending places the player in the last room.
	ArriveAscending
)

func (a Arrival) String() string {
	switch a {
	case ArriveDescending:
		return "descending"
	case ArriveAscending:
		return "ascending"
	default:
		return fmt.Sprintf("Arrival(%d)", int(a))
	}
}

// Options configures a session.
type Options struct {
	Width       int
	Height      int
	Gen         world.GenParams
	FOVMode     fov.Mode
	SightRadius int // Shadowcast radius
}

// DefaultOptions returns the classic 80x21 map with room visibility.
func DefaultOptions() Options {
	return Options{
		Width:       world.DefaultWidth,
		Height:      world.DefaultHeight,
		Gen:         world.DefaultParams(),
		FOVMode:     fov.ModeRooms,
		SightRadius: 7,
	}
}

// Session drives one player through a campaign, one level at a time.
type Session struct {
	opts     Options
	rng      *rand.Rand
	gen      *world.Generator
	fov      *fov.Engine
	monsters *gamedata.MonsterRegistry
	campaign *Campaign
	player   *entity.Entity
	level    *Level
}

// NewSession validates the options and creates a session with no level yet.
// Call GenerateLevel before anything else. A nil rng is replaced by a time-seeded source.
func NewSession(opts Options, rng *rand.Rand, monsters *gamedata.MonsterRegistry, campaign *Campaign, player *entity.Entity) (*Session, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if campaign == nil || campaign.MaxDepth < 1 {
		return nil, fmt.Errorf("%w: campaign needs a max depth of at least 1", ErrDepthOutOfRange)
	}
	if player == nil || player.Kind != entity.KindPlayer {
		return nil, errors.New("session requires a player entity")
	}
	if _, err := fov.ParseMode(string(opts.FOVMode)); err != nil {
		return nil, err
	}

	gen := world.NewGenerator(opts.Gen, rng)
	if err := gen.Validate(opts.Width, opts.Height); err != nil {
		return nil, fmt.Errorf("level session: %w", err)
	}

	return &Session{
		opts:     opts,
		rng:      rng,
		gen:      gen,
		fov:      fov.NewEngine(opts.FOVMode),
		monsters: monsters,
		campaign: campaign,
		player:   player,
	}, nil
}

// GenerateLevel replaces the active level with a freshly generated one at depth,
// populates it and recomputes visibility from the player's arrival point.
func (s *Session) GenerateLevel(ctx context.Context, depth int, arrival Arrival) (*Level, error) {
	ctx, span := telemetry.Tracer("level").Start(ctx, "level.generate")
	defer span.End()

	if depth < 1 || depth > s.campaign.MaxDepth {
		err := fmt.Errorf("%w: %d not in [1, %d]", ErrDepthOutOfRange, depth, s.campaign.MaxDepth)
		span.RecordError(err)
		span.SetStatus(codes.Error, "depth out of range")
		return nil, err
	}

	grid := world.NewGrid(s.opts.Width, s.opts.Height)
	rooms, err := s.gen.Generate(ctx, grid)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return nil, err
	}
	if len(rooms) == 0 {
		span.SetStatus(codes.Error, "no rooms")
		return nil, fmt.Errorf("%w: depth %d", ErrNoRooms, depth)
	}

	// An amulet left lying on the old level goes with it
	if s.level != nil && s.level.Count(entity.KindAmulet) > 0 {
		s.campaign.AmuletGenerated = false
	}

	lvl := &Level{Depth: depth, Grid: grid, Rooms: rooms}
	spawnRoom := 0
	if arrival == ArriveAscending {
		spawnRoom = len(rooms) - 1
	}
	center := rooms[spawnRoom].CenterPoint()
	s.player.MoveTo(center.X, center.Y)
	lvl.Add(s.player)

	s.populate(lvl, spawnRoom)

	s.level = lvl
	s.campaign.enter(depth)
	s.fov.Reset()
	s.OnObserverMoved(ctx, center.X, center.Y)

	span.SetAttributes(
		attribute.Int("level.depth", depth),
		attribute.String("level.arrival", arrival.String()),
		attribute.Int("level.rooms", len(rooms)),
		attribute.Int("level.monsters", lvl.Count(entity.KindMonster)),
		attribute.Int("level.gold_piles", lvl.Count(entity.KindGold)),
		attribute.Bool("level.amulet", lvl.Count(entity.KindAmulet) > 0),
	)
	log.Printf("Depth %d: %d rooms, %d monsters", depth, len(rooms), lvl.Count(entity.KindMonster))
	return lvl, nil
}

// populate places stairs, gold, monsters and the amulet.
func (s *Session) populate(lvl *Level, spawnRoom int) {
	rooms := lvl.Rooms
	first, last := rooms[0], rooms[len(rooms)-1]

	if lvl.Depth > 1 {
		p := world.FreeInteriorPoint(s.rng, first, lvl.Occupied)
		lvl.Add(entity.NewStairs(false, p.X, p.Y))
	}
	if lvl.Depth < s.campaign.MaxDepth {
		p := world.FreeInteriorPoint(s.rng, last, lvl.Occupied)
		lvl.Add(entity.NewStairs(true, p.X, p.Y))
	}

	piles := min(goldRoomsMin+s.rng.Intn(goldRoomsMax-goldRoomsMin+1), len(rooms))
	for _, i := range s.rng.Perm(len(rooms))[:piles] {
		p, _, ok := world.PlaceInRoom(s.rng, rooms[i:i+1], lvl.Occupied)
		if !ok {
			continue
		}
		lvl.Add(entity.NewGold(goldMin+s.rng.Intn(goldMax-goldMin+1), p.X, p.Y))
	}

	if s.monsters != nil {
		for i := range rooms {
			if i == spawnRoom {
				continue
			}
			for n := s.rng.Intn(MaxMonstersPerRoom + 1); n > 0; n-- {
				def := s.monsters.SpawnForDepth(s.rng, lvl.Depth)
				if def == nil {
					break
				}
				p, _, ok := world.PlaceInRoom(s.rng, rooms[i:i+1], lvl.Occupied)
				if !ok {
					continue
				}
				lvl.Add(entity.NewMonster(def, s.rng, p.X, p.Y))
			}
		}
	}

	if lvl.Depth == s.campaign.MaxDepth && !s.campaign.AmuletGenerated && !s.campaign.HasAmulet {
		if p, _, ok := world.PlaceInRoom(s.rng, rooms, lvl.Occupied); ok {
			lvl.Add(entity.NewAmulet(p.X, p.Y))
			s.campaign.AmuletGenerated = true
		}
	}
}

// Transition takes the stairs under the player. It returns ErrNoStairs when the
// player is not standing on stairs in the requested direction.
func (s *Session) Transition(ctx context.Context, down bool) (*Level, error) {
	ctx, span := telemetry.Tracer("level").Start(ctx, "level.transition")
	defer span.End()

	want, delta, arrival := entity.KindStairsUp, -1, ArriveAscending
	if down {
		want, delta, arrival = entity.KindStairsDown, 1, ArriveDescending
	}

	onStairs := false
	for _, e := range s.level.EntitiesAt(s.player.X, s.player.Y) {
		if e.Kind == want {
			onStairs = true
			break
		}
	}
	if !onStairs {
		return nil, ErrNoStairs
	}

	from := s.level.Depth
	span.SetAttributes(
		attribute.Int("level.from", from),
		attribute.Int("level.to", from+delta),
	)
	return s.GenerateLevel(ctx, from+delta, arrival)
}

// OnObserverMoved recomputes visibility for an observer at (x, y). Call it after every
// accepted player move and before rendering.
func (s *Session) OnObserverMoved(ctx context.Context, x, y int) *fov.State {
	return s.fov.Recompute(ctx, s.level.Grid, s.level.Rooms, x, y, s.opts.SightRadius)
}

// AdvanceTick runs one scheduler tick over the level's monsters. Confused monsters
// stumble in a random direction instead of following behavior. Regenerating monsters
// heal after every action. Entities removed during the tick are dropped once it ends.
// It returns the number of actions taken.
func (s *Session) AdvanceTick(ctx context.Context, behavior Behavior) int {
	ctx, span := telemetry.Tracer("level").Start(ctx, "turn.advance")
	defer span.End()

	var monsters []*entity.Entity
	for _, e := range s.level.entities {
		if e.Kind == entity.KindMonster {
			monsters = append(monsters, e)
		}
	}

	acted := schedule.AdvanceTick(monsters, func(m *entity.Entity) {
		if m.IsConfused() {
			s.stumble(m)
			m.ConfusedTurns--
		} else if behavior != nil {
			behavior.Act(ctx, s, m)
		}
		if m.Active() && m.Is(entity.AbilityRegenerate) {
			m.Heal(1)
		}
	})

	s.level.compact()
	s.campaign.Turns++

	span.SetAttributes(
		attribute.Int("turn.number", s.campaign.Turns),
		attribute.Int("turn.actions", acted),
	)
	return acted
}

// stumble moves e one step in a random direction if the cell is free.
func (s *Session) stumble(e *entity.Entity) {
	d := compass[s.rng.Intn(len(compass))]
	s.TryMove(e, d.X, d.Y)
}

// compass lists the eight neighbouring offsets.
var compass = []world.Point{
	{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1},
	{X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0}, {X: -1, Y: -1},
}

// TryMove moves e by (dx, dy) if the destination is walkable and not blocked.
func (s *Session) TryMove(e *entity.Entity, dx, dy int) bool {
	x, y := e.X+dx, e.Y+dy
	if s.level.Blocked(x, y) {
		return false
	}
	e.MoveTo(x, y)
	return true
}

// PickUp collects every collectible under the player and returns what was taken.
func (s *Session) PickUp() []*entity.Entity {
	var taken []*entity.Entity
	for _, e := range s.level.EntitiesAt(s.player.X, s.player.Y) {
		switch e.Kind {
		case entity.KindGold:
			s.player.Gold += e.Gold
		case entity.KindAmulet:
			s.campaign.HasAmulet = true
		case entity.KindPlayer, entity.KindMonster, entity.KindStairsUp, entity.KindStairsDown:
			continue
		}
		e.Remove()
		taken = append(taken, e)
	}
	if len(taken) > 0 {
		s.level.compact()
	}
	return taken
}

// IsWalkable reports whether (x, y) is open floor on the active level.
func (s *Session) IsWalkable(x, y int) bool { return s.level.Grid.IsWalkable(x, y) }

// IsTransparent reports whether (x, y) lets light through.
func (s *Session) IsTransparent(x, y int) bool { return s.level.Grid.IsTransparent(x, y) }

// TileAt returns the tile at (x, y), or the zero tile out of bounds.
func (s *Session) TileAt(x, y int) world.Tile { return s.level.Grid.At(x, y) }

// Rooms returns the active level's rooms in generation order.
func (s *Session) Rooms() []world.Room { return s.level.Rooms }

// VisibleSet returns the cells visible after the last recompute.
func (s *Session) VisibleSet() mapset.Set[world.Point] { return s.fov.State().Visible }

// ExploredSet returns every cell seen on the active level.
func (s *Session) ExploredSet() mapset.Set[world.Point] { return s.fov.State().Explored }

// Entities returns the active level's entities in insertion order.
func (s *Session) Entities() []*entity.Entity { return s.level.Entities() }

// EntityAt returns the entity at (x, y), preferring blockers, or nil.
func (s *Session) EntityAt(x, y int) *entity.Entity { return s.level.EntityAt(x, y) }

// Player returns the player entity.
func (s *Session) Player() *entity.Entity { return s.player }

// Level returns the active level, nil before the first GenerateLevel.
func (s *Session) Level() *Level { return s.level }

// Campaign returns the campaign progress.
func (s *Session) Campaign() *Campaign { return s.campaign }

// Options returns the session configuration.
func (s *Session) Options() Options { return s.opts }
