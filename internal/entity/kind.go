// Package entity provides everything that occupies a cell on a level:
// the player, monsters, gold, stairs and the amulet.
package entity

import "github.com/gdamore/tcell/v2"

// Kind is the closed set of entity kinds. Switches over Kind should be exhaustive.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindMonster
	KindGold
	KindStairsUp
	KindStairsDown
	KindAmulet
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindMonster:
		return "monster"
	case KindGold:
		return "gold"
	case KindStairsUp:
		return "stairs up"
	case KindStairsDown:
		return "stairs down"
	case KindAmulet:
		return "amulet"
	default:
		return "unknown"
	}
}

// Blocks returns true if nothing else can share a cell with this kind.
func (k Kind) Blocks() bool {
	switch k {
	case KindPlayer, KindMonster:
		return true
	case KindGold, KindStairsUp, KindStairsDown, KindAmulet:
		return false
	default:
		return false
	}
}

// Glyph returns the default display symbol for the kind.
func (k Kind) Glyph() rune {
	switch k {
	case KindPlayer:
		return '@'
	case KindMonster:
		return 'M'
	case KindGold:
		return '*'
	case KindStairsUp:
		return '<'
	case KindStairsDown:
		return '>'
	case KindAmulet:
		return '"'
	default:
		return '?'
	}
}

// Color returns the default display color for the kind.
func (k Kind) Color() tcell.Color {
	switch k {
	case KindPlayer:
		return tcell.ColorWhite
	case KindMonster:
		return tcell.ColorRed
	case KindGold:
		return tcell.NewRGBColor(255, 215, 0)
	case KindStairsUp, KindStairsDown:
		return tcell.ColorWhite
	case KindAmulet:
		return tcell.NewRGBColor(255, 255, 0)
	default:
		return tcell.ColorPurple
	}
}

// Collectible returns true if the player picks this kind up by stepping on it.
func (k Kind) Collectible() bool {
	switch k {
	case KindGold, KindAmulet:
		return true
	case KindPlayer, KindMonster, KindStairsUp, KindStairsDown:
		return false
	default:
		return false
	}
}
