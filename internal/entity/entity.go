package entity

import (
	"math/rand"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/samdwyer/yendor/internal/gamedata"
	"github.com/samdwyer/yendor/internal/schedule"
	"github.com/samdwyer/yendor/internal/world"
)

// Entity is anything placed on a level. Monsters are data-driven: their stats and
// abilities come from a gamedata.MonsterDef rather than a per-monster type.
type Entity struct {
	ID     uuid.UUID
	Kind   Kind
	Name   string
	Glyph  rune
	Color  tcell.Color
	X, Y   int
	Def    *gamedata.MonsterDef // Monster definition (nil for other kinds)
	Gold   int                  // Pile value, or gold carried by the player
	XP     int                  // Awarded on kill (monsters), earned so far (player)
	Damage gamedata.Dice

	// Combat stats
	HP, MaxHP     int
	Armor         int
	SightRadius   int
	ConfusedTurns int
	Abilities     Ability

	pace    schedule.Pace
	removed bool
}

func newEntity(kind Kind, name string, x, y int) *Entity {
	return &Entity{
		ID:    uuid.New(),
		Kind:  kind,
		Name:  name,
		Glyph: kind.Glyph(),
		Color: kind.Color(),
		X:     x,
		Y:     y,
	}
}

// NewPlayer creates the player from its starting definition.
func NewPlayer(def *gamedata.PlayerDef, x, y int) *Entity {
	e := newEntity(KindPlayer, def.Name, x, y)
	e.Glyph = def.GlyphRune()
	e.Color = def.TCellColor()
	e.HP = def.HP
	e.MaxHP = def.HP
	e.Damage = def.Damage
	e.Armor = def.Armor
	e.SightRadius = def.SightRadius
	e.pace.Speed = def.Speed
	return e
}

// NewMonster creates a monster from its definition, rolling hit points with rng.
func NewMonster(def *gamedata.MonsterDef, rng *rand.Rand, x, y int) *Entity {
	e := newEntity(KindMonster, def.Name, x, y)
	e.Def = def
	e.Glyph = def.GlyphRune()
	e.Color = def.TCellColor()
	e.HP = def.HP.Roll(rng)
	e.MaxHP = e.HP
	e.Damage = def.Damage
	e.XP = def.XP
	e.SightRadius = def.SightRadius
	e.Abilities = AbilitiesOf(def)
	e.pace.Speed = def.Speed
	return e
}

// NewGold creates a gold pile worth amount.
func NewGold(amount, x, y int) *Entity {
	e := newEntity(KindGold, "gold", x, y)
	e.Gold = amount
	return e
}

// NewStairs creates an up or down staircase.
func NewStairs(down bool, x, y int) *Entity {
	if down {
		return newEntity(KindStairsDown, "stairs down", x, y)
	}
	return newEntity(KindStairsUp, "stairs up", x, y)
}

// NewAmulet creates the Amulet of Yendor.
func NewAmulet(x, y int) *Entity {
	return newEntity(KindAmulet, "Amulet of Yendor", x, y)
}

// Position returns the entity's current x, y coordinates.
func (e *Entity) Position() (int, int) {
	return e.X, e.Y
}

// Point returns the entity's position as a world.Point.
func (e *Entity) Point() world.Point {
	return world.Point{X: e.X, Y: e.Y}
}

// MoveTo places the entity at (x, y).
func (e *Entity) MoveTo(x, y int) {
	e.X = x
	e.Y = y
}

// Pace returns the entity's scheduling state.
func (e *Entity) Pace() *schedule.Pace {
	return &e.pace
}

// Active returns true while the entity is still on its level.
func (e *Entity) Active() bool {
	return !e.removed
}

// Remove takes the entity off its level. The level compacts removed entities
// after the current tick.
func (e *Entity) Remove() {
	e.removed = true
}

// IsAlive returns true if the entity has HP remaining.
func (e *Entity) IsAlive() bool { return e.HP > 0 }

// Is reports whether the entity has every given ability.
func (e *Entity) Is(a Ability) bool { return e.Abilities.Has(a) }

// IsConfused returns true while confusion turns remain.
func (e *Entity) IsConfused() bool { return e.ConfusedTurns > 0 }

// Confuse adds turns of confusion.
func (e *Entity) Confuse(turns int) {
	if turns > 0 {
		e.ConfusedTurns += turns
	}
}

// TakeDamage reduces HP and returns actual damage taken.
func (e *Entity) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, e.HP)
	e.HP -= actual
	return actual
}

// Heal restores HP and returns actual amount healed.
func (e *Entity) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, e.MaxHP-e.HP)
	e.HP += actual
	return actual
}
