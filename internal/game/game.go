package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/yendor/internal/combat"
	"github.com/samdwyer/yendor/internal/config"
	"github.com/samdwyer/yendor/internal/entity"
	"github.com/samdwyer/yendor/internal/gamedata"
	"github.com/samdwyer/yendor/internal/level"
	"github.com/samdwyer/yendor/internal/telemetry"
	"github.com/samdwyer/yendor/internal/ui"
)

// Data is the static game content.
type Data struct {
	Monsters *gamedata.MonsterRegistry
	Player   gamedata.PlayerDef
	Messages *gamedata.Messages
}

// LoadData loads the embedded monster, player and message tables.
func LoadData() (Data, error) {
	monsters, err := gamedata.LoadMonsterRegistry()
	if err != nil {
		return Data{}, err
	}
	player, err := gamedata.LoadPlayer()
	if err != nil {
		return Data{}, err
	}
	messages, err := gamedata.LoadMessages()
	if err != nil {
		return Data{}, err
	}
	return Data{Monsters: monsters, Player: player, Messages: messages}, nil
}

// Game holds the entire game state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *level.Session
	resolver *combat.Resolver
	behavior level.Behavior
	messages *gamedata.Messages
	rng      *rand.Rand
	seed     int64
	log      []string
	state    State
}

// New creates a new game instance drawing to the terminal.
func New(cfg config.Config) (*Game, error) {
	data, err := LoadData()
	if err != nil {
		return nil, err
	}
	g, err := newGame(cfg, data)
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g.screen = screen
	g.renderer = ui.NewRenderer(screen)
	return g, nil
}

// newGame builds a game without a screen.
func newGame(cfg config.Config, data Data) (*Game, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	player := entity.NewPlayer(&data.Player, 0, 0)
	session, err := level.NewSession(cfg.SessionOptions(), rng, data.Monsters, level.NewCampaign(cfg.MaxDepth), player)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	g := &Game{
		session:  session,
		resolver: combat.NewResolver(rng, data.Messages),
		messages: data.Messages,
		rng:      rng,
		seed:     seed,
		state:    StatePlaying,
	}
	g.behavior = level.ChaseBehavior{Attacker: g}
	return g, nil
}

// Start generates the first level.
func (g *Game) Start(ctx context.Context) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.init")
	defer span.End()

	lvl, err := g.session.GenerateLevel(ctx, 1, level.ArriveDescending)
	if err != nil {
		return err
	}
	g.say(g.messages.WelcomeTo(1))

	start := g.session.Player().Point()
	span.SetAttributes(
		attribute.Int64("game.seed", g.seed),
		attribute.Int("dungeon.rooms", len(lvl.Rooms)),
		attribute.Int("player.start_x", start.X),
		attribute.Int("player.start_y", start.Y),
	)
	log.Printf("New game, seed %d", g.seed)
	return nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	if err := g.Start(ctx); err != nil {
		g.Close()
		return err
	}

	for !g.state.Over() {
		g.renderer.Render(g.session, g.log)
		g.handleInput(ctx)
	}

	if g.state != StateQuit {
		g.renderer.RenderEnd(g.log[len(g.log)-1], g.Score())
		g.waitForKey()
	}
	log.Printf("Game over: %s after %d turns, score %d", g.state, g.session.Campaign().Turns, g.Score())

	g.Close()
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.state = StateQuit

	case tcell.KeyUp:
		g.Move(ctx, 0, -1)
	case tcell.KeyDown:
		g.Move(ctx, 0, 1)
	case tcell.KeyLeft:
		g.Move(ctx, -1, 0)
	case tcell.KeyRight:
		g.Move(ctx, 1, 0)

	case tcell.KeyRune:
		if d, ok := viKeys[ev.Rune()]; ok {
			g.Move(ctx, d.X, d.Y)
			return
		}
		switch ev.Rune() {
		case '>':
			g.Descend(ctx)
		case '<':
			g.Ascend(ctx)
		case '.', 's':
			g.Rest(ctx)
		case 'q', 'Q':
			g.state = StateQuit
		}
	}
}

// waitForKey blocks until a key is pressed.
func (g *Game) waitForKey() {
	for {
		if _, ok := g.screen.PollEvent().(*tcell.EventKey); ok {
			return
		}
	}
}

// say appends a line to the message log.
func (g *Game) say(msg string) {
	g.log = append(g.log, msg)
}

// Messages returns the message log, oldest first.
func (g *Game) Messages() []string {
	return g.log
}

// State returns the current game state.
func (g *Game) State() State {
	return g.state
}

// Session returns the level session.
func (g *Game) Session() *level.Session {
	return g.session
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.session.Campaign().Score(g.session.Player().Gold)
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
