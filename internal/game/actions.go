package game

import (
	"context"
	"errors"

	"github.com/samdwyer/yendor/internal/entity"
	"github.com/samdwyer/yendor/internal/level"
	"github.com/samdwyer/yendor/internal/world"
)

// regenInterval is how many turns the player needs to recover 1 HP.
const regenInterval = 10

var viKeys = map[rune]world.Point{
	'h': {X: -1, Y: 0},
	'j': {X: 0, Y: 1},
	'k': {X: 0, Y: -1},
	'l': {X: 1, Y: 0},
	'y': {X: -1, Y: -1},
	'u': {X: 1, Y: -1},
	'b': {X: -1, Y: 1},
	'n': {X: 1, Y: 1},
}

var directions = []world.Point{
	{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1},
	{X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0}, {X: -1, Y: -1},
}

// Move steps the player by (dx, dy), attacking any monster in the way. A confused
// player stumbles in a random direction instead. It reports whether a turn passed.
func (g *Game) Move(ctx context.Context, dx, dy int) bool {
	if g.state.Over() {
		return false
	}
	p := g.session.Player()

	confused := p.IsConfused()
	if confused {
		d := directions[g.rng.Intn(len(directions))]
		dx, dy = d.X, d.Y
		p.ConfusedTurns--
	}

	if target := g.session.EntityAt(p.X+dx, p.Y+dy); target != nil && target.Kind == entity.KindMonster {
		g.Attack(ctx, p, target)
		g.endTurn(ctx)
		return true
	}

	if !g.session.TryMove(p, dx, dy) {
		if confused {
			g.endTurn(ctx)
			return true
		}
		g.say(g.messages.Blocked)
		return false
	}

	g.collect()
	g.session.OnObserverMoved(ctx, p.X, p.Y)
	g.endTurn(ctx)
	return true
}

// Rest passes a turn without moving.
func (g *Game) Rest(ctx context.Context) {
	if g.state.Over() {
		return
	}
	g.endTurn(ctx)
}

// Descend takes the down stairs under the player.
func (g *Game) Descend(ctx context.Context) bool {
	if g.state.Over() {
		return false
	}
	c := g.session.Campaign()
	if c.Depth == c.MaxDepth {
		g.say(g.messages.AlreadyBottom)
		return false
	}
	return g.transition(ctx, true)
}

// Ascend takes the up stairs under the player. Reaching the first depth with the
// amulet wins the game.
func (g *Game) Ascend(ctx context.Context) bool {
	if g.state.Over() {
		return false
	}
	c := g.session.Campaign()
	if c.Depth == 1 {
		if c.HasAmulet {
			g.say(g.messages.AlreadyOnTop)
		} else {
			g.say(g.messages.NeedAmulet)
		}
		return false
	}
	if !g.transition(ctx, false) {
		return false
	}
	if c.Victorious() {
		g.say(g.messages.Victory)
		g.state = StateVictory
	}
	return true
}

func (g *Game) transition(ctx context.Context, down bool) bool {
	lvl, err := g.session.Transition(ctx, down)
	if errors.Is(err, level.ErrNoStairs) {
		g.say(g.messages.NoStairs)
		return false
	}
	if err != nil {
		g.say(err.Error())
		return false
	}

	g.say(g.messages.WelcomeTo(lvl.Depth))
	if lvl.Count(entity.KindAmulet) > 0 {
		g.say(g.messages.AmuletNearby)
	}
	return true
}

// collect picks up whatever lies under the player.
func (g *Game) collect() {
	for _, e := range g.session.PickUp() {
		switch e.Kind {
		case entity.KindGold:
			g.say(g.messages.GoldFound(e.Gold))
		case entity.KindAmulet:
			g.say(g.messages.AmuletPower)
		case entity.KindPlayer, entity.KindMonster, entity.KindStairsUp, entity.KindStairsDown:
		}
	}
}

// endTurn lets the monsters act and applies the player's natural recovery.
func (g *Game) endTurn(ctx context.Context) {
	g.session.AdvanceTick(ctx, g.behavior)

	p := g.session.Player()
	if !p.IsAlive() {
		g.state = StateDead
		return
	}
	if g.session.Campaign().Turns%regenInterval == 0 && p.Heal(1) > 0 && p.HP == p.MaxHP {
		g.say(g.messages.Heal)
	}
}
