package gamedata

import "github.com/gdamore/tcell/v2"

// PlayerDef defines the player's starting stats loaded from JSON.
type PlayerDef struct {
	Name        string  `json:"name"`        // Display name
	Glyph       string  `json:"glyph"`       // Single character for rendering (e.g., "@")
	Color       string  `json:"color"`       // Hex color code
	HP          int     `json:"hp"`          // Starting and maximum hit points
	Damage      Dice    `json:"damage"`      // Bare-handed damage
	Armor       int     `json:"armor"`       // Starting armour class
	Speed       float64 `json:"speed"`       // Actions per tick
	SightRadius int     `json:"sightRadius"` // Shadowcast radius
}

// GlyphRune returns the glyph as a rune for rendering.
func (p *PlayerDef) GlyphRune() rune {
	if len(p.Glyph) == 0 {
		return '@'
	}
	return rune(p.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (p *PlayerDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(p.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// PlayerFile represents the structure of player.json.
type PlayerFile struct {
	Player PlayerDef `json:"player"`
}

// LoadPlayer loads the player definition from the embedded player.json file.
func LoadPlayer() (PlayerDef, error) {
	file, err := Load[PlayerFile]("player.json")
	if err != nil {
		return PlayerDef{}, err
	}
	return file.Player, nil
}
