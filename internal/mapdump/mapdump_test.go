package mapdump

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/gookit/color"

	"github.com/samdwyer/yendor/internal/entity"
	"github.com/samdwyer/yendor/internal/gamedata"
	"github.com/samdwyer/yendor/internal/level"
)

func newSession(t *testing.T, seed int64) *level.Session {
	t.Helper()
	player := entity.NewPlayer(&gamedata.PlayerDef{Name: "Rogue", Glyph: "@", HP: 12, Speed: 1}, 0, 0)
	s, err := level.NewSession(level.DefaultOptions(), rand.New(rand.NewSource(seed)),
		gamedata.MustLoadMonsterRegistry(), level.NewCampaign(level.DefaultMaxDepth), player)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	if _, err := s.GenerateLevel(context.Background(), 3, level.ArriveDescending); err != nil {
		t.Fatalf("GenerateLevel() error = %v", err)
	}
	return s
}

func TestStringRevealsWholeLevel(t *testing.T) {
	s := newSession(t, 21)
	lines := strings.Split(strings.TrimSuffix(String(s), "\n"), "\n")

	grid := s.Level().Grid
	if len(lines) != grid.Height+1 {
		t.Fatalf("got %d lines, want header plus %d rows", len(lines), grid.Height)
	}
	if !strings.HasPrefix(lines[0], "depth 3") {
		t.Errorf("header = %q", lines[0])
	}

	rows := lines[1:]
	p := s.Player()
	if got := []rune(rows[p.Y])[p.X]; got != '@' {
		t.Errorf("player cell = %q, want '@'", got)
	}
	for _, room := range s.Rooms() {
		if got := []rune(rows[room.Y])[room.X]; got != '#' && got != '\'' {
			t.Errorf("room corner (%d,%d) = %q, want a wall or door", room.X, room.Y, got)
		}
	}
	up := s.Level().Find(entity.KindStairsUp)
	if got := []rune(rows[up.Y])[up.X]; got != '<' {
		t.Errorf("up stairs cell = %q, want '<'", got)
	}
}

func TestDumpHidesUnexplored(t *testing.T) {
	s := newSession(t, 22)
	var buf bytes.Buffer
	if err := Dump(&buf, s, Options{}); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	rows := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")[1:]
	last := s.Rooms()[len(s.Rooms())-1].CenterPoint()
	if got := []rune(rows[last.Y])[last.X]; got != ' ' {
		t.Errorf("unexplored cell = %q, want blank", got)
	}
	for _, e := range s.Entities() {
		if e.Kind == entity.KindMonster && !s.VisibleSet().Has(e.Point()) && []rune(rows[e.Y])[e.X] == e.Glyph {
			t.Errorf("unseen %s drawn at %v", e.Name, e.Point())
		}
	}
}

func TestColourOutputMatchesPlain(t *testing.T) {
	s := newSession(t, 23)

	var plain, coloured bytes.Buffer
	if err := Dump(&plain, s, Options{Reveal: true}); err != nil {
		t.Fatal(err)
	}
	if err := Dump(&coloured, s, Options{Reveal: true, Color: true}); err != nil {
		t.Fatal(err)
	}
	if got := color.ClearCode(coloured.String()); got != plain.String() {
		t.Error("coloured dump differs from plain dump once codes are stripped")
	}
}
