package game

import (
	"context"

	"github.com/samdwyer/yendor/internal/entity"
)

// Attack resolves a melee attack and logs the outcome. Monsters reach it through
// level.ChaseBehavior; the player through bump attacks.
func (g *Game) Attack(ctx context.Context, attacker, defender *entity.Entity) {
	result := g.resolver.Resolve(ctx, attacker, defender)
	for _, msg := range result.Messages {
		g.say(msg)
	}
	if defender.Kind == entity.KindPlayer && !defender.IsAlive() {
		g.state = StateDead
	}
}
