package level

import (
	"context"

	"github.com/samdwyer/yendor/internal/entity"
)

// Behavior decides what a monster does with one scheduled action.
type Behavior interface {
	Act(ctx context.Context, s *Session, monster *entity.Entity)
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(ctx context.Context, s *Session, monster *entity.Entity)

// Act calls f.
func (f BehaviorFunc) Act(ctx context.Context, s *Session, monster *entity.Entity) {
	f(ctx, s, monster)
}

// Attacker resolves a melee attack. The combat package satisfies it through the game.
type Attacker interface {
	Attack(ctx context.Context, attacker, defender *entity.Entity)
}

// ChaseBehavior walks monsters toward a player within their sight radius and attacks
// when adjacent. Monsters that cannot see the player stay put.
type ChaseBehavior struct {
	Attacker Attacker
}

// Act takes one step toward the player or attacks.
func (c ChaseBehavior) Act(ctx context.Context, s *Session, monster *entity.Entity) {
	player := s.Player()
	if !player.IsAlive() {
		return
	}

	dx, dy := player.X-monster.X, player.Y-monster.Y
	if dx*dx+dy*dy > monster.SightRadius*monster.SightRadius {
		return
	}

	if abs(dx) <= 1 && abs(dy) <= 1 {
		if c.Attacker != nil {
			c.Attacker.Attack(ctx, monster, player)
		}
		return
	}

	sx, sy := sign(dx), sign(dy)
	if s.TryMove(monster, sx, sy) {
		return
	}
	// Slide along walls when the diagonal is blocked
	if sx != 0 && s.TryMove(monster, sx, 0) {
		return
	}
	if sy != 0 {
		s.TryMove(monster, 0, sy)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
