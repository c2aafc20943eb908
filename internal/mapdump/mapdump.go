// Package mapdump prints a level as coloured ASCII for inspecting generator output.
package mapdump

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/samdwyer/yendor/internal/entity"
	"github.com/samdwyer/yendor/internal/gamedata"
	"github.com/samdwyer/yendor/internal/level"
	"github.com/samdwyer/yendor/internal/world"
)

var (
	colorWall     = color.Style{color.FgLightWhite}
	colorFloor    = color.Style{color.FgGray}
	colorCorridor = color.Style{color.FgWhite}
	colorDoor     = color.Style{color.FgYellow}
	colorVisible  = color.Style{color.BgBlue}
	colorPlayer   = color.Style{color.FgGreen, color.OpBold}
	colorStairs   = color.Style{color.FgCyan, color.OpBold}
	colorGold     = color.Style{color.FgYellow, color.OpBold}
	colorAmulet   = color.Style{color.FgLightYellow, color.OpBold}
	colorMonster  = color.Style{color.FgRed}
)

// Options controls what Dump shows.
type Options struct {
	Color  bool // Emit ANSI colour codes
	Reveal bool // Show the whole level, not just explored cells
}

// Dump writes a header line and one line per grid row.
func Dump(w io.Writer, s *level.Session, opts Options) error {
	lvl := s.Level()
	if _, err := fmt.Fprintf(w, "depth %d  rooms %d  entities %d  explored %d\n",
		lvl.Depth, len(lvl.Rooms), len(lvl.Entities()), s.ExploredSet().Size()); err != nil {
		return err
	}

	var b strings.Builder
	for y := 0; y < lvl.Grid.Height; y++ {
		b.Reset()
		for x := 0; x < lvl.Grid.Width; x++ {
			b.WriteString(cell(s, x, y, opts))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// String returns the dump without colour, revealing the whole level.
func String(s *level.Session) string {
	var b strings.Builder
	_ = Dump(&b, s, Options{Reveal: true})
	return b.String()
}

func cell(s *level.Session, x, y int, opts Options) string {
	tile := s.TileAt(x, y)
	if !opts.Reveal && !tile.Explored {
		return " "
	}

	if e := s.EntityAt(x, y); e != nil && (opts.Reveal || tile.Visible || e.Kind != entity.KindMonster) {
		return paint(string(e.Glyph), entityStyle(e), tile.Visible, opts.Color)
	}
	return paint(string(tile.Kind.Rune()), tileStyle(tile.Kind), tile.Visible, opts.Color)
}

// sprinter is satisfied by color.Style and color.RGBColor.
type sprinter interface {
	Sprint(a ...any) string
}

func paint(text string, p sprinter, visible, enabled bool) string {
	if !enabled {
		return text
	}
	if style, ok := p.(color.Style); ok && visible {
		p = append(append(color.Style{}, style...), colorVisible...)
	}
	return p.Sprint(text)
}

func tileStyle(kind world.TileKind) color.Style {
	switch kind {
	case world.TileWall:
		return colorWall
	case world.TileFloor:
		return colorFloor
	case world.TileCorridor:
		return colorCorridor
	case world.TileDoor:
		return colorDoor
	case world.TileUnknown:
		return color.Style{}
	default:
		return color.Style{}
	}
}

func entityStyle(e *entity.Entity) sprinter {
	switch e.Kind {
	case entity.KindPlayer:
		return colorPlayer
	case entity.KindMonster:
		if e.Def != nil {
			if r, g, b, err := gamedata.ParseHexRGB(e.Def.Color); err == nil {
				return color.RGB(r, g, b)
			}
		}
		return colorMonster
	case entity.KindGold:
		return colorGold
	case entity.KindStairsUp, entity.KindStairsDown:
		return colorStairs
	case entity.KindAmulet:
		return colorAmulet
	default:
		return color.Style{}
	}
}
