package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/yendor/internal/entity"
	"github.com/samdwyer/yendor/internal/level"
	"github.com/samdwyer/yendor/internal/world"
)

// messageLines is how many recent messages are shown under the map.
const messageLines = 2

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the active level, the latest messages and the status line.
func (r *Renderer) Render(s *level.Session, messages []string) {
	r.screen.Clear()

	grid := s.Level().Grid
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if ch, style, ok := Glyph(s, x, y); ok {
				r.screen.SetContent(x, y, ch, style)
			}
		}
	}

	start := max(len(messages)-messageLines, 0)
	for i, msg := range messages[start:] {
		r.RenderMessage(msg, grid.Height+i)
	}
	r.screen.DrawText(0, grid.Height+messageLines, StatusLine(s), tcell.StyleDefault.Foreground(tcell.ColorYellow))

	r.screen.Show()
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.DrawText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

// RenderEnd replaces the screen with a closing message and the final score.
func (r *Renderer) RenderEnd(msg string, score int) {
	r.screen.Clear()
	r.RenderMessage(msg, 1)
	r.RenderMessage(fmt.Sprintf("Final score: %d", score), 3)
	r.RenderMessage("Press any key to exit.", 5)
	r.screen.Show()
}

// StatusLine summarises the player's condition.
func StatusLine(s *level.Session) string {
	p := s.Player()
	line := fmt.Sprintf("Depth: %d  HP: %d(%d)  Armor: %d  Gold: %d  Turns: %d",
		s.Level().Depth, p.HP, p.MaxHP, p.Armor, p.Gold, s.Campaign().Turns)
	if p.IsConfused() {
		line += "  Confused"
	}
	if s.Campaign().HasAmulet {
		line += "  Amulet"
	}
	return line
}

// Glyph returns what to draw at (x, y). Visible cells show their tile and every
// entity on them; explored cells show the remembered tile and items; unexplored
// cells are not drawn.
func Glyph(s *level.Session, x, y int) (rune, tcell.Style, bool) {
	tile := s.TileAt(x, y)
	if !tile.Explored {
		return 0, tcell.StyleDefault, false
	}

	if tile.Visible {
		if e := s.EntityAt(x, y); e != nil {
			style := tcell.StyleDefault.Foreground(e.Color)
			if e.Kind == entity.KindPlayer {
				style = style.Bold(true)
			}
			return e.Glyph, style, true
		}
	} else {
		for _, e := range s.Level().EntitiesAt(x, y) {
			if remembered(e.Kind) {
				return e.Glyph, tcell.StyleDefault.Foreground(e.Color).Dim(true), true
			}
		}
	}

	return tile.Kind.Rune(), tileStyle(tile), true
}

// remembered reports whether an out-of-sight entity stays on the map.
func remembered(kind entity.Kind) bool {
	switch kind {
	case entity.KindGold, entity.KindStairsUp, entity.KindStairsDown, entity.KindAmulet:
		return true
	case entity.KindPlayer, entity.KindMonster:
		return false
	default:
		return false
	}
}

// tileStyle returns the appropriate style for a tile.
func tileStyle(tile world.Tile) tcell.Style {
	if !tile.Visible {
		return tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	}
	switch tile.Kind {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileCorridor, world.TileDoor:
		return tcell.StyleDefault.Foreground(tcell.ColorSilver)
	case world.TileUnknown:
		return tcell.StyleDefault
	default:
		return tcell.StyleDefault
	}
}
