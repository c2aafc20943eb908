package level

import (
	"github.com/samdwyer/yendor/internal/entity"
	"github.com/samdwyer/yendor/internal/world"
)

// Level is one generated dungeon depth. It is rebuilt on every transition; only the
// player carries over.
type Level struct {
	Depth    int
	Grid     *world.Grid
	Rooms    []world.Room
	entities []*entity.Entity
}

// Entities returns the entities in insertion order. Removed entities may linger
// until the end of the current tick; check Active.
func (l *Level) Entities() []*entity.Entity {
	return l.entities
}

// Add appends an entity to the level.
func (l *Level) Add(e *entity.Entity) {
	l.entities = append(l.entities, e)
}

// EntityAt returns the active entity at (x, y), preferring one that blocks movement.
func (l *Level) EntityAt(x, y int) *entity.Entity {
	var found *entity.Entity
	for _, e := range l.entities {
		if !e.Active() || e.X != x || e.Y != y {
			continue
		}
		if e.Kind.Blocks() {
			return e
		}
		if found == nil {
			found = e
		}
	}
	return found
}

// EntitiesAt returns every active entity at (x, y).
func (l *Level) EntitiesAt(x, y int) []*entity.Entity {
	var out []*entity.Entity
	for _, e := range l.entities {
		if e.Active() && e.X == x && e.Y == y {
			out = append(out, e)
		}
	}
	return out
}

// Occupied reports whether any active entity stands on p.
func (l *Level) Occupied(p world.Point) bool {
	return l.EntityAt(p.X, p.Y) != nil
}

// Blocked reports whether (x, y) cannot be entered: off the floor or taken by a blocker.
func (l *Level) Blocked(x, y int) bool {
	if !l.Grid.IsWalkable(x, y) {
		return true
	}
	e := l.EntityAt(x, y)
	return e != nil && e.Kind.Blocks()
}

// Find returns the first active entity of the given kind.
func (l *Level) Find(kind entity.Kind) *entity.Entity {
	for _, e := range l.entities {
		if e.Active() && e.Kind == kind {
			return e
		}
	}
	return nil
}

// Count returns the number of active entities of the given kind.
func (l *Level) Count(kind entity.Kind) int {
	n := 0
	for _, e := range l.entities {
		if e.Active() && e.Kind == kind {
			n++
		}
	}
	return n
}

// compact drops removed entities, keeping insertion order.
func (l *Level) compact() {
	kept := l.entities[:0]
	for _, e := range l.entities {
		if e.Active() {
			kept = append(kept, e)
		}
	}
	clear(l.entities[len(kept):])
	l.entities = kept
}
