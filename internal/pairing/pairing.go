// Package pairing turns the players or sides of a game into two-sided
// pairings. Output is fully deterministic regardless of input order.
package pairing

import (
	"fmt"
	"sort"

	"github.com/fairway/settlement-engine/internal/model"
)

// MaxIndividualPlayers bounds round-robin games.
const MaxIndividualPlayers = 4

// ID joins two side keys into the canonical pairing id.
func ID(keyA, keyB string) string {
	if keyB < keyA {
		keyA, keyB = keyB, keyA
	}
	return keyA + "_vs_" + keyB
}

// Generate builds the pairings for a game.
func Generate(mode model.PairingMode, playerIDs []string, sides []model.Side) ([]model.Pairing, error) {
	switch mode {
	case model.PairingIndividual:
		return RoundRobin(playerIDs)
	case model.PairingHeadToHead:
		p, err := HeadToHead(sides, 1)
		if err != nil {
			return nil, err
		}
		return []model.Pairing{p}, nil
	case model.PairingTeams:
		p, err := HeadToHead(sides, 2)
		if err != nil {
			return nil, err
		}
		return []model.Pairing{p}, nil
	default:
		return nil, fmt.Errorf("%w: unknown pairing mode %q", model.ErrConfiguration, mode)
	}
}

// RoundRobin returns every unordered pair of players, ordered by the first
// player id and then the second. N players yield N*(N-1)/2 pairings.
func RoundRobin(playerIDs []string) ([]model.Pairing, error) {
	if len(playerIDs) < 2 || len(playerIDs) > MaxIndividualPlayers {
		return nil, fmt.Errorf("%w: individual play needs 2-%d players, got %d",
			model.ErrConfiguration, MaxIndividualPlayers, len(playerIDs))
	}
	ids, err := sortedUnique(playerIDs)
	if err != nil {
		return nil, err
	}

	pairings := make([]model.Pairing, 0, len(ids)*(len(ids)-1)/2)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			pairings = append(pairings, model.Pairing{
				ID:    ID(ids[i], ids[j]),
				SideA: []string{ids[i]},
				SideB: []string{ids[j]},
			})
		}
	}
	return pairings, nil
}

// HeadToHead pairs exactly two sides of teamSize players each. The side with
// the smaller id becomes side A.
func HeadToHead(sides []model.Side, teamSize int) (model.Pairing, error) {
	if len(sides) != 2 {
		return model.Pairing{}, fmt.Errorf("%w: expected 2 sides, got %d", model.ErrConfiguration, len(sides))
	}
	a, b := sides[0], sides[1]
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		return model.Pairing{}, fmt.Errorf("%w: sides need distinct non-empty ids", model.ErrConfiguration)
	}
	if b.ID < a.ID {
		a, b = b, a
	}

	seen := make(map[string]string)
	var out [2][]string
	for i, side := range []model.Side{a, b} {
		if len(side.PlayerIDs) != teamSize {
			return model.Pairing{}, fmt.Errorf("%w: side %s has %d players, this mode needs %d",
				model.ErrConfiguration, side.ID, len(side.PlayerIDs), teamSize)
		}
		ids, err := sortedUnique(side.PlayerIDs)
		if err != nil {
			return model.Pairing{}, err
		}
		for _, id := range ids {
			if other, ok := seen[id]; ok {
				return model.Pairing{}, fmt.Errorf("%w: player %s is on sides %s and %s",
					model.ErrConfiguration, id, other, side.ID)
			}
			seen[id] = side.ID
		}
		out[i] = ids
	}

	return model.Pairing{
		ID:    ID(a.ID, b.ID),
		SideA: out[0],
		SideB: out[1],
	}, nil
}

// Players returns every distinct player across pairings, sorted.
func Players(pairings []model.Pairing) []string {
	set := make(map[string]struct{})
	for _, p := range pairings {
		for _, id := range p.SideA {
			set[id] = struct{}{}
		}
		for _, id := range p.SideB {
			set[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedUnique(ids []string) ([]string, error) {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	for i, id := range out {
		if id == "" {
			return nil, fmt.Errorf("%w: empty player id", model.ErrConfiguration)
		}
		if i > 0 && out[i-1] == id {
			return nil, fmt.Errorf("%w: duplicate player %s", model.ErrConfiguration, id)
		}
	}
	return out, nil
}
