// Package schedule orders entity actions under a fixed tick with fractional speeds.
package schedule

// Threshold is the accumulated credit one action costs.
const Threshold = 1.0

// Pace tracks an entity's speed and unspent action credit.
type Pace struct {
	Speed       float64 // Credit earned per tick; 0 never acts
	Accumulator float64 // Credit carried between ticks
}

// Credit adds one tick's worth of speed.
func (p *Pace) Credit() {
	p.Accumulator += p.Speed
}

// Spend takes one action's worth of credit if available.
// Any surplus stays in the accumulator.
func (p *Pace) Spend() bool {
	if p.Accumulator < Threshold {
		return false
	}
	p.Accumulator -= Threshold
	return true
}

// Scheduled is anything the scheduler can drive.
type Scheduled interface {
	// Pace returns the entity's mutable pace.
	Pace() *Pace
	// Active reports whether the entity is still on the level. Entities removed
	// during a tick stay in the snapshot but are skipped.
	Active() bool
}

// AdvanceTick credits every active entity with its speed, in order, and calls act once
// per whole unit of credit the entity holds. A speed 2.0 entity therefore acts twice per
// tick and a speed 0.5 entity every other tick.
//
// It iterates a copy of entities, so act may add or remove entities from the caller's
// slice. Entities that become inactive stop acting immediately. It returns the number
// of actions taken.
func AdvanceTick[T Scheduled](entities []T, act func(T)) int {
	snapshot := make([]T, len(entities))
	copy(snapshot, entities)

	acted := 0
	for _, e := range snapshot {
		if !e.Active() {
			continue
		}
		pace := e.Pace()
		if pace.Speed == 0 {
			continue
		}
		pace.Credit()
		for e.Active() && pace.Spend() {
			act(e)
			acted++
		}
	}
	return acted
}
