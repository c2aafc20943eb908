// Package game provides the main game loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StatePlaying accepts player commands.
	StatePlaying State = iota
	// StateDead means the player has been killed.
	StateDead
	// StateVictory means the player escaped with the amulet.
	StateVictory
	// StateQuit means the player left the game.
	StateQuit
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateDead:
		return "dead"
	case StateVictory:
		return "victory"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Over reports whether the game has ended.
func (s State) Over() bool {
	return s != StatePlaying
}
