package level

import "github.com/zyedidia/generic/mapset"

// DefaultMaxDepth is the depth holding the Amulet of Yendor.
const DefaultMaxDepth = 26

// Score weights
const (
	depthBonus  = 100
	amuletBonus = 1000
)

// Campaign tracks progress across level transitions. It is owned by the game and
// handed to each Session; nothing about it is global.
type Campaign struct {
	MaxDepth        int
	Depth           int  // Current depth, 0 before the first level
	Deepest         int  // Deepest depth reached
	AmuletGenerated bool // The amulet exists on the active level or in the player's pack
	HasAmulet       bool
	Turns           int // Ticks advanced

	explored mapset.Set[int]
}

// NewCampaign starts a campaign whose amulet lies on maxDepth.
func NewCampaign(maxDepth int) *Campaign {
	return &Campaign{
		MaxDepth: maxDepth,
		explored: mapset.New[int](),
	}
}

// enter records arrival on a depth.
func (c *Campaign) enter(depth int) {
	c.Depth = depth
	c.Deepest = max(c.Deepest, depth)
	c.explored.Put(depth)
}

// HasExplored reports whether the player has ever stood on depth.
func (c *Campaign) HasExplored(depth int) bool {
	return c.explored.Has(depth)
}

// ExploredDepths returns how many distinct depths were visited.
func (c *Campaign) ExploredDepths() int {
	return c.explored.Size()
}

// Victorious reports whether the player is back on the first depth with the amulet.
func (c *Campaign) Victorious() bool {
	return c.HasAmulet && c.Depth == 1
}

// Score returns the end-of-game score for a player carrying gold.
func (c *Campaign) Score(gold int) int {
	score := gold + c.ExploredDepths()*depthBonus
	if c.HasAmulet {
		score += amuletBonus
	}
	return score
}
