package gamedata

import (
	"errors"
	"fmt"
	"math/rand"
)

// MonsterRegistry holds validated monster definitions and provides spawning utilities.
type MonsterRegistry struct {
	monsters []MonsterDef
}

// NewMonsterRegistry creates a registry after bounds-checking every definition.
func NewMonsterRegistry(monsters []MonsterDef) (*MonsterRegistry, error) {
	for i := range monsters {
		if err := monsters[i].Validate(); err != nil {
			return nil, err
		}
	}
	return &MonsterRegistry{monsters: monsters}, nil
}

// LoadMonsterRegistry loads and creates a registry from the embedded monsters.json.
func LoadMonsterRegistry() (*MonsterRegistry, error) {
	monsters, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	if len(monsters) == 0 {
		return nil, errors.New("no monsters loaded from monsters.json")
	}
	registry, err := NewMonsterRegistry(monsters)
	if err != nil {
		return nil, fmt.Errorf("monsters.json: %w", err)
	}
	return registry, nil
}

// MustLoadMonsterRegistry loads a registry, panicking on error.
func MustLoadMonsterRegistry() *MonsterRegistry {
	registry, err := LoadMonsterRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnForDepth selects a random monster that may appear on depth, using weighted
// probability. It returns nil if nothing lives at that depth.
func (r *MonsterRegistry) SpawnForDepth(rng *rand.Rand, depth int) *MonsterDef {
	totalWeight := 0
	for i := range r.monsters {
		if r.monsters[i].InDepth(depth) {
			totalWeight += r.monsters[i].SpawnWeight
		}
	}
	if totalWeight <= 0 {
		return nil
	}

	roll := rng.Intn(totalWeight)

	cumulative := 0
	for i := range r.monsters {
		if !r.monsters[i].InDepth(depth) {
			continue
		}
		cumulative += r.monsters[i].SpawnWeight
		if roll < cumulative {
			return &r.monsters[i]
		}
	}
	return nil
}

// GetByID returns the monster definition with the given ID, or nil if not found.
func (r *MonsterRegistry) GetByID(id string) *MonsterDef {
	for i := range r.monsters {
		if r.monsters[i].ID == id {
			return &r.monsters[i]
		}
	}
	return nil
}

// All returns all monster definitions.
func (r *MonsterRegistry) All() []MonsterDef {
	return r.monsters
}

// Count returns the number of monster types in the registry.
func (r *MonsterRegistry) Count() int {
	return len(r.monsters)
}
