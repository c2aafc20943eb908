// Package combat resolves melee attacks between the player and monsters.
package combat

import (
	"context"
	"math/rand"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/yendor/internal/entity"
	"github.com/samdwyer/yendor/internal/gamedata"
	"github.com/samdwyer/yendor/internal/telemetry"
)

const (
	fireMin       = 3  // Extra fire damage, inclusive range
	fireMax       = 6
	confuseMin    = 2  // Confusion turns inflicted
	confuseSpread = 3  // Random extra confusion turns, exclusive
	stealMin      = 10 // Gold a thief makes off with, inclusive range
	stealMax      = 50
)

// Result contains the outcome of one attack.
type Result struct {
	Damage   int      // HP actually removed from the defender
	Killed   bool     // Defender reached 0 HP
	Drained  int      // HP the attacker regained
	Stolen   int      // Gold taken from the defender
	Messages []string // Human-readable lines, in order
}

// Resolver rolls damage and applies special abilities.
type Resolver struct {
	rng      *rand.Rand
	messages *gamedata.Messages
}

// NewResolver creates a resolver drawing from rng.
func NewResolver(rng *rand.Rand, messages *gamedata.Messages) *Resolver {
	return &Resolver{rng: rng, messages: messages}
}

// Resolve performs one melee attack from attacker on defender.
//
// Damage is the attacker's dice less the defender's armour, at least 1 when the
// attacker has any dice. Attackers with no dice only apply their special ability.
// A monster reduced to 0 HP is removed from its level and its XP goes to the attacker.
func (r *Resolver) Resolve(ctx context.Context, attacker, defender *entity.Entity) Result {
	_, span := telemetry.Tracer("combat").Start(ctx, "combat.attack")
	defer span.End()

	var result Result

	damage := 0
	if attacker.Damage.Max() > 0 {
		damage = max(attacker.Damage.Roll(r.rng)-defender.Armor, 1)
	}
	if attacker.Is(entity.AbilityFire) {
		damage += fireMin + r.rng.Intn(fireMax-fireMin+1)
		if defender.Kind == entity.KindPlayer {
			result.Messages = append(result.Messages, r.messages.FireBreath)
		}
	}

	result.Damage = defender.TakeDamage(damage)
	if result.Damage > 0 {
		result.Messages = append(result.Messages, r.hitMessage(attacker, defender))
	}

	r.applySpecials(attacker, defender, &result)

	if !defender.IsAlive() {
		result.Killed = true
		switch defender.Kind {
		case entity.KindMonster:
			defender.Remove()
			attacker.XP += defender.XP
			result.Messages = append(result.Messages, "The "+defender.Name+" "+r.messages.MonsterDeath+".")
		case entity.KindPlayer:
			result.Messages = append(result.Messages, r.messages.Death)
		case entity.KindGold, entity.KindStairsUp, entity.KindStairsDown, entity.KindAmulet:
		}
	}

	span.SetAttributes(
		attribute.String("combat.attacker", attacker.Name),
		attribute.String("combat.defender", defender.Name),
		attribute.Int("combat.damage", result.Damage),
		attribute.Bool("combat.killed", result.Killed),
		attribute.String("combat.abilities", attacker.Abilities.String()),
	)
	return result
}

func (r *Resolver) hitMessage(attacker, defender *entity.Entity) string {
	if attacker.Kind == entity.KindPlayer {
		return "You hit the " + defender.Name + "."
	}
	if defender.Kind == entity.KindPlayer {
		return "The " + attacker.Name + " " + r.messages.PlayerHit + "."
	}
	return "The " + attacker.Name + " hits the " + defender.Name + "."
}

// applySpecials applies the attacker's on-hit abilities to a living defender.
func (r *Resolver) applySpecials(attacker, defender *entity.Entity, result *Result) {
	if !defender.IsAlive() {
		return
	}

	if attacker.Is(entity.AbilityRust) && defender.Armor > 0 {
		defender.Armor--
		result.Messages = append(result.Messages, r.messages.ArmourRusts)
	}

	if attacker.Is(entity.AbilityPoison) && defender.MaxHP > 1 {
		defender.MaxHP--
		defender.HP = min(defender.HP, defender.MaxHP)
		result.Messages = append(result.Messages, r.messages.Poisoned)
	}

	if attacker.Is(entity.AbilityConfuse) {
		defender.Confuse(confuseMin + r.rng.Intn(confuseSpread))
		if defender.Kind == entity.KindPlayer {
			result.Messages = append(result.Messages, r.messages.Confused)
		}
	}

	if attacker.Is(entity.AbilityDrainLife) && result.Damage > 0 {
		result.Drained = attacker.Heal((result.Damage + 1) / 2)
	}

	if attacker.Is(entity.AbilityStealGold) && defender.Gold > 0 {
		stolen := min(defender.Gold, stealMin+r.rng.Intn(stealMax-stealMin+1))
		defender.Gold -= stolen
		result.Stolen = stolen
		// The thief vanishes with the loot
		attacker.Remove()
		result.Messages = append(result.Messages, "The "+attacker.Name+" stole "+strconv.Itoa(stolen)+" gold!")
	}
}
