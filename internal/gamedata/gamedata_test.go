package gamedata

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadMonsters(t *testing.T) {
	monsters, err := LoadMonsters()
	if err != nil {
		t.Fatalf("Failed to load monsters: %v", err)
	}

	if len(monsters) != 28 {
		t.Errorf("Expected 28 monsters, got %d", len(monsters))
	}

	// Verify a few expected monsters exist
	expectedIDs := map[string]bool{"bat": false, "troll": false, "dragon": false, "umber_hulk": false}
	for _, m := range monsters {
		if _, ok := expectedIDs[m.ID]; ok {
			expectedIDs[m.ID] = true
		}
		if err := m.Validate(); err != nil {
			t.Errorf("monster %s failed validation: %v", m.ID, err)
		}
	}

	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected monster %q not found", id)
		}
	}
}

func TestMonsterRegistry(t *testing.T) {
	registry, err := LoadMonsterRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	troll := registry.GetByID("troll")
	if troll == nil {
		t.Fatal("Troll not found by ID")
	}
	if troll.Name != "Troll" || !troll.Regeneration || troll.MinDepth != 13 {
		t.Errorf("unexpected troll definition: %+v", troll)
	}
	if registry.GetByID("unicorn") != nil {
		t.Error("GetByID should return nil for unknown IDs")
	}

	// Weighted spawning is deterministic with the same seed
	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))
	for i := 0; i < 10; i++ {
		a := registry.SpawnForDepth(rng1, 5)
		b := registry.SpawnForDepth(rng2, 5)
		if a.ID != b.ID {
			t.Errorf("Spawn %d mismatch: %s != %s", i, a.ID, b.ID)
		}
	}
}

func TestSpawnForDepthRespectsBand(t *testing.T) {
	registry := MustLoadMonsterRegistry()
	rng := rand.New(rand.NewSource(1))

	for depth := 1; depth <= 26; depth++ {
		for i := 0; i < 50; i++ {
			def := registry.SpawnForDepth(rng, depth)
			if def == nil {
				t.Fatalf("depth %d: no monster spawned", depth)
			}
			if !def.InDepth(depth) {
				t.Errorf("depth %d: spawned %s with band %d..%d", depth, def.ID, def.MinDepth, def.MaxDepth)
			}
		}
	}

	if def := registry.SpawnForDepth(rng, 40); def != nil {
		t.Errorf("depth 40 spawned %s, want nothing", def.ID)
	}
}

func TestMonsterValidate(t *testing.T) {
	valid := MonsterDef{
		ID: "test", Name: "Test", Glyph: "t", Color: "#FFFFFF",
		HP: HitDice{Base: 1, Sides: 8}, Damage: Dice{Count: 1, Sides: 4},
		MinDepth: 1, MaxDepth: 5, Speed: 1, SightRadius: 6, SpawnWeight: 10,
	}

	tests := []struct {
		name   string
		mutate func(*MonsterDef)
		valid  bool
	}{
		{"valid", func(*MonsterDef) {}, true},
		{"special-only attacker", func(m *MonsterDef) { m.Damage = Dice{}; m.Special = SpecialRust }, true},
		{"missing glyph", func(m *MonsterDef) { m.Glyph = "" }, false},
		{"negative hit dice", func(m *MonsterDef) { m.HP.Sides = -1 }, false},
		{"negative damage", func(m *MonsterDef) { m.Damage.Count = -2 }, false},
		{"inverted depth band", func(m *MonsterDef) { m.MinDepth, m.MaxDepth = 9, 3 }, false},
		{"depth zero", func(m *MonsterDef) { m.MinDepth = 0 }, false},
		{"negative speed", func(m *MonsterDef) { m.Speed = -0.5 }, false},
		{"unknown special", func(m *MonsterDef) { m.Special = "teleport" }, false},
	}

	for _, tt := range tests {
		def := valid
		tt.mutate(&def)
		err := def.Validate()
		if tt.valid && err != nil {
			t.Errorf("%s: Validate() error = %v", tt.name, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidMonster) {
			t.Errorf("%s: Validate() error = %v, want ErrInvalidMonster", tt.name, err)
		}
	}

	if _, err := NewMonsterRegistry([]MonsterDef{valid, {ID: "bad"}}); !errors.Is(err, ErrInvalidMonster) {
		t.Errorf("NewMonsterRegistry() error = %v, want ErrInvalidMonster", err)
	}
}

func TestDiceRoll(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	d := Dice{Count: 2, Sides: 6}
	for i := 0; i < 200; i++ {
		if v := d.Roll(rng); v < 2 || v > 12 {
			t.Fatalf("2d6 rolled %d", v)
		}
	}
	if d.Max() != 12 || d.String() != "2d6" {
		t.Errorf("Max() = %d, String() = %q", d.Max(), d.String())
	}
	if (Dice{}).Roll(rng) != 0 {
		t.Error("0d0 should roll 0")
	}

	h := HitDice{Base: 5, Sides: 10}
	for i := 0; i < 200; i++ {
		if v := h.Roll(rng); v < 6 || v > 15 {
			t.Fatalf("5+1d10 rolled %d", v)
		}
	}
	if (HitDice{}).Roll(rng) != 1 {
		t.Error("empty hit dice should still give 1 HP")
	}
}

func TestLoadPlayerAndMessages(t *testing.T) {
	player, err := LoadPlayer()
	if err != nil {
		t.Fatalf("LoadPlayer() error = %v", err)
	}
	if player.HP != 12 || player.GlyphRune() != '@' || player.Damage != (Dice{Count: 1, Sides: 4}) {
		t.Errorf("unexpected player definition: %+v", player)
	}

	messages, err := LoadMessages()
	if err != nil {
		t.Fatalf("LoadMessages() error = %v", err)
	}
	if got := messages.WelcomeTo(3); got != "Welcome to level 3 of the Dungeons of Doom!" {
		t.Errorf("WelcomeTo(3) = %q", got)
	}
	if got := messages.GoldFound(42); !strings.Contains(got, "42") {
		t.Errorf("GoldFound(42) = %q", got)
	}
}

func TestLoadFSRejectsUnknownFields(t *testing.T) {
	fsys := fstest.MapFS{
		"typo.json": {Data: []byte(`{"monsters": [{"id": "bat", "spped": 2.0}]}`)},
		"ok.json":   {Data: []byte(`{"monsters": [{"id": "bat", "speed": 2.0}]}`)},
	}

	if _, err := LoadFS[MonstersFile](fsys, "typo.json"); err == nil {
		t.Error("LoadFS() should reject unknown fields")
	}
	file, err := LoadFS[MonstersFile](fsys, "ok.json")
	if err != nil {
		t.Fatalf("LoadFS() error = %v", err)
	}
	if len(file.Monsters) != 1 || file.Monsters[0].Speed != 2.0 {
		t.Errorf("LoadFS() = %+v", file)
	}
	if _, err := LoadFS[MonstersFile](fsys, "missing.json"); err == nil {
		t.Error("LoadFS() should fail for a missing file")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#8B4513", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}

	r, g, b, err := ParseHexRGB("#8B4513")
	if err != nil || r != 0x8B || g != 0x45 || b != 0x13 {
		t.Errorf("ParseHexRGB(#8B4513) = %d,%d,%d,%v", r, g, b, err)
	}
}

func TestMonsterDefMethods(t *testing.T) {
	def := MonsterDef{ID: "test", Glyph: "T", Color: "#FF0000", MinDepth: 3, MaxDepth: 7}

	if def.GlyphRune() != 'T' {
		t.Errorf("Expected glyph 'T', got %c", def.GlyphRune())
	}
	if def.TCellColor() == 0 {
		t.Error("TCellColor returned zero color")
	}
	for depth, want := range map[int]bool{2: false, 3: true, 7: true, 8: false} {
		if got := def.InDepth(depth); got != want {
			t.Errorf("InDepth(%d) = %v, want %v", depth, got, want)
		}
	}
}
