package gamedata

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// ErrInvalidMonster is returned when a monster definition has out-of-range values.
var ErrInvalidMonster = errors.New("invalid monster definition")

// Special names a monster's special ability.
type Special string

const (
	SpecialNone       Special = ""
	SpecialRust       Special = "rust"
	SpecialUndead     Special = "undead"
	SpecialFire       Special = "fire"
	SpecialFreeze     Special = "freeze"
	SpecialLevelDrain Special = "level_drain"
	SpecialSteal      Special = "steal"
	SpecialInvisible  Special = "invisible"
	SpecialPoison     Special = "poison"
	SpecialDrainLife  Special = "drain_life"
	SpecialMimic      Special = "mimic"
	SpecialCold       Special = "cold"
	SpecialPetrify    Special = "petrify"
	SpecialFly        Special = "fly"
	SpecialStealGold  Special = "steal_gold"
	SpecialConfuse    Special = "confuse"
	SpecialParalyze   Special = "paralyze"
)

// Known reports whether s is a recognised special ability.
func (s Special) Known() bool {
	switch s {
	case SpecialNone, SpecialRust, SpecialUndead, SpecialFire, SpecialFreeze,
		SpecialLevelDrain, SpecialSteal, SpecialInvisible, SpecialPoison,
		SpecialDrainLife, SpecialMimic, SpecialCold, SpecialPetrify, SpecialFly,
		SpecialStealGold, SpecialConfuse, SpecialParalyze:
		return true
	default:
		return false
	}
}

// Dice is a roll of Count dice with Sides faces each, e.g. 2d6.
type Dice struct {
	Count int `json:"count"`
	Sides int `json:"sides"`
}

// Roll returns the sum of the dice. Empty dice roll zero.
func (d Dice) Roll(rng *rand.Rand) int {
	if d.Count <= 0 || d.Sides <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < d.Count; i++ {
		total += 1 + rng.Intn(d.Sides)
	}
	return total
}

// Max returns the highest possible roll.
func (d Dice) Max() int {
	if d.Count <= 0 || d.Sides <= 0 {
		return 0
	}
	return d.Count * d.Sides
}

// String returns the dice in NdS notation.
func (d Dice) String() string {
	return fmt.Sprintf("%dd%d", d.Count, d.Sides)
}

// HitDice rolls hit points as Base plus one die with Sides faces.
type HitDice struct {
	Base  int `json:"base"`
	Sides int `json:"sides"`
}

// Roll returns a hit point total of at least 1.
func (h HitDice) Roll(rng *rand.Rand) int {
	hp := h.Base
	if h.Sides > 0 {
		hp += 1 + rng.Intn(h.Sides)
	}
	return max(hp, 1)
}

// MonsterDef defines a monster type loaded from JSON.
type MonsterDef struct {
	ID           string  `json:"id"`           // Unique identifier (e.g., "bat")
	Name         string  `json:"name"`         // Display name (e.g., "Bat")
	Glyph        string  `json:"glyph"`        // Single character for rendering (e.g., "B")
	Color        string  `json:"color"`        // Hex color code (e.g., "#8B4513")
	HP           HitDice `json:"hp"`           // Hit points as base + 1dN
	Damage       Dice    `json:"damage"`       // Melee damage; 0d0 for special-only attackers
	XP           int     `json:"xp"`           // Experience awarded on kill
	MinDepth     int     `json:"minDepth"`     // Shallowest depth it appears on
	MaxDepth     int     `json:"maxDepth"`     // Deepest depth it appears on
	Speed        float64 `json:"speed"`        // Actions per tick
	SightRadius  int     `json:"sightRadius"`  // Chase distance
	Special      Special `json:"special"`      // Special ability, if any
	Regeneration bool    `json:"regeneration"` // Heals 1 HP after each action
	SpawnWeight  int     `json:"spawnWeight"`  // Relative spawn frequency (higher = more common)
}

// GlyphRune returns the glyph as a rune for rendering.
func (m *MonsterDef) GlyphRune() rune {
	if len(m.Glyph) == 0 {
		return '?'
	}
	return rune(m.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (m *MonsterDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(m.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// InDepth reports whether the monster may appear on the given depth.
func (m *MonsterDef) InDepth(depth int) bool {
	return depth >= m.MinDepth && depth <= m.MaxDepth
}

// Validate bounds-checks the numeric ranges of the definition.
func (m *MonsterDef) Validate() error {
	switch {
	case m.ID == "" || m.Glyph == "":
		return fmt.Errorf("%w: monster %q needs an id and a glyph", ErrInvalidMonster, m.Name)
	case m.HP.Base < 0 || m.HP.Sides < 0:
		return fmt.Errorf("%w: %s hit dice %+v", ErrInvalidMonster, m.ID, m.HP)
	case m.Damage.Count < 0 || m.Damage.Sides < 0:
		return fmt.Errorf("%w: %s damage %s", ErrInvalidMonster, m.ID, m.Damage)
	case m.MinDepth < 1 || m.MaxDepth < m.MinDepth:
		return fmt.Errorf("%w: %s depth band %d..%d", ErrInvalidMonster, m.ID, m.MinDepth, m.MaxDepth)
	case m.Speed < 0:
		return fmt.Errorf("%w: %s speed %v", ErrInvalidMonster, m.ID, m.Speed)
	case m.SightRadius < 0:
		return fmt.Errorf("%w: %s sight radius %d", ErrInvalidMonster, m.ID, m.SightRadius)
	case m.SpawnWeight < 0:
		return fmt.Errorf("%w: %s spawn weight %d", ErrInvalidMonster, m.ID, m.SpawnWeight)
	case !m.Special.Known():
		return fmt.Errorf("%w: %s special %q", ErrInvalidMonster, m.ID, m.Special)
	}
	return nil
}

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Monsters []MonsterDef `json:"monsters"`
}

// LoadMonsters loads monster definitions from the embedded monsters.json file.
func LoadMonsters() ([]MonsterDef, error) {
	file, err := Load[MonstersFile]("monsters.json")
	if err != nil {
		return nil, err
	}
	return file.Monsters, nil
}
