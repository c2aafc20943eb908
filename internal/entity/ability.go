package entity

import (
	"strings"

	"github.com/samdwyer/yendor/internal/gamedata"
)

// Ability is a set of capability flags evaluated by the turn and attack logic.
type Ability uint32

const (
	AbilityRegenerate Ability = 1 << iota
	AbilityRust
	AbilityUndead
	AbilityFire
	AbilityFreeze
	AbilityLevelDrain
	AbilitySteal
	AbilityInvisible
	AbilityPoison
	AbilityDrainLife
	AbilityMimic
	AbilityCold
	AbilityPetrify
	AbilityFly
	AbilityStealGold
	AbilityConfuse
	AbilityParalyze
)

var specialAbilities = map[gamedata.Special]Ability{
	gamedata.SpecialRust:       AbilityRust,
	gamedata.SpecialUndead:     AbilityUndead,
	gamedata.SpecialFire:       AbilityFire,
	gamedata.SpecialFreeze:     AbilityFreeze,
	gamedata.SpecialLevelDrain: AbilityLevelDrain,
	gamedata.SpecialSteal:      AbilitySteal,
	gamedata.SpecialInvisible:  AbilityInvisible,
	gamedata.SpecialPoison:     AbilityPoison,
	gamedata.SpecialDrainLife:  AbilityDrainLife,
	gamedata.SpecialMimic:      AbilityMimic,
	gamedata.SpecialCold:       AbilityCold,
	gamedata.SpecialPetrify:    AbilityPetrify,
	gamedata.SpecialFly:        AbilityFly,
	gamedata.SpecialStealGold:  AbilityStealGold,
	gamedata.SpecialConfuse:    AbilityConfuse,
	gamedata.SpecialParalyze:   AbilityParalyze,
}

var abilityNames = []struct {
	flag Ability
	name string
}{
	{AbilityRegenerate, "regenerate"},
	{AbilityRust, "rust"},
	{AbilityUndead, "undead"},
	{AbilityFire, "fire"},
	{AbilityFreeze, "freeze"},
	{AbilityLevelDrain, "level_drain"},
	{AbilitySteal, "steal"},
	{AbilityInvisible, "invisible"},
	{AbilityPoison, "poison"},
	{AbilityDrainLife, "drain_life"},
	{AbilityMimic, "mimic"},
	{AbilityCold, "cold"},
	{AbilityPetrify, "petrify"},
	{AbilityFly, "fly"},
	{AbilityStealGold, "steal_gold"},
	{AbilityConfuse, "confuse"},
	{AbilityParalyze, "paralyze"},
}

// AbilitiesOf derives the capability set from a monster definition.
func AbilitiesOf(def *gamedata.MonsterDef) Ability {
	if def == nil {
		return 0
	}
	a := specialAbilities[def.Special]
	if def.Regeneration {
		a |= AbilityRegenerate
	}
	return a
}

// Has reports whether every flag in other is set.
func (a Ability) Has(other Ability) bool {
	return a&other == other
}

// String lists the set flags, e.g. "regenerate|drain_life".
func (a Ability) String() string {
	var names []string
	for _, n := range abilityNames {
		if a.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}
