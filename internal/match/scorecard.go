// Package match computes hole-by-hole net results for a pairing over a
// segment. The resulting state feeds every settlement calculator and the
// press engine.
package match

import (
	"fmt"

	"github.com/fairway/settlement-engine/internal/model"
)

// Scorecard indexes gross scores and stroke allocations by player.
// It is read-only once built.
type Scorecard struct {
	gross   map[string][model.HoleCount]int
	strokes map[string][model.HoleCount]int
}

// NewScorecard indexes the supplied scores and allocations. A player with no
// allocation receives no strokes.
func NewScorecard(scores []model.PlayerScore, allocations []model.StrokeAllocation) (*Scorecard, error) {
	c := &Scorecard{
		gross:   make(map[string][model.HoleCount]int, len(scores)),
		strokes: make(map[string][model.HoleCount]int, len(allocations)),
	}
	for _, s := range scores {
		if _, dup := c.gross[s.PlayerID]; dup {
			return nil, fmt.Errorf("%w: duplicate scores for player %s", model.ErrConfiguration, s.PlayerID)
		}
		c.gross[s.PlayerID] = s.Gross
	}
	for _, a := range allocations {
		if _, dup := c.strokes[a.PlayerID]; dup {
			return nil, fmt.Errorf("%w: duplicate stroke allocation for player %s", model.ErrConfiguration, a.PlayerID)
		}
		c.strokes[a.PlayerID] = a.Strokes
	}
	return c, nil
}

// Has reports whether the player has a score line.
func (c *Scorecard) Has(playerID string) bool {
	_, ok := c.gross[playerID]
	return ok
}

// Played reports whether the player has a gross score entered on hole.
func (c *Scorecard) Played(playerID string, hole int) bool {
	g, ok := c.gross[playerID]
	if !ok || hole < 1 || hole > model.HoleCount {
		return false
	}
	return g[hole-1] != 0
}

// Net returns gross minus strokes received on a hole (1-based).
func (c *Scorecard) Net(playerID string, hole int) (int, error) {
	if hole < 1 || hole > model.HoleCount {
		return 0, fmt.Errorf("%w: hole %d out of range", model.ErrConfiguration, hole)
	}
	g, ok := c.gross[playerID]
	if !ok {
		return 0, fmt.Errorf("%w: no scores for player %s", model.ErrIncomplete, playerID)
	}
	gross := g[hole-1]
	if gross == 0 {
		return 0, fmt.Errorf("%w: player %s has no score on hole %d", model.ErrIncomplete, playerID, hole)
	}
	if gross < 0 {
		return 0, fmt.Errorf("%w: player %s has invalid score %d on hole %d", model.ErrIncomplete, playerID, gross, hole)
	}
	return gross - c.strokes[playerID][hole-1], nil
}

// NetTotal sums a player's net scores over a segment.
func (c *Scorecard) NetTotal(playerID string, seg model.Segment) (int, error) {
	total := 0
	for h := seg.Start; h <= seg.End; h++ {
		n, err := c.Net(playerID, h)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// Complete verifies every player has a valid score on every hole of seg.
func (c *Scorecard) Complete(playerIDs []string, seg model.Segment) error {
	for _, id := range playerIDs {
		if _, err := c.NetTotal(id, seg); err != nil {
			return err
		}
	}
	return nil
}
