package match

import (
	"fmt"

	"github.com/fairway/settlement-engine/internal/model"
)

// Build computes the match state of a pairing over seg. It fails if any
// member of either side is missing a score on any hole of the segment.
func Build(card *Scorecard, p model.Pairing, seg model.Segment, mode model.ScoringMode) (model.MatchState, error) {
	return build(card, p, seg, mode, false)
}

// BuildPlayed is Build for a round in progress: it stops before the first
// hole that is not yet entered for every member of both sides.
func BuildPlayed(card *Scorecard, p model.Pairing, seg model.Segment, mode model.ScoringMode) (model.MatchState, error) {
	return build(card, p, seg, mode, true)
}

func build(card *Scorecard, p model.Pairing, seg model.Segment, mode model.ScoringMode, stopAtUnplayed bool) (model.MatchState, error) {
	if mode != model.ScoringBestBall && mode != model.ScoringAggregate {
		return model.MatchState{}, fmt.Errorf("%w: unknown scoring mode %q", model.ErrConfiguration, mode)
	}
	if len(p.SideA) == 0 || len(p.SideB) == 0 {
		return model.MatchState{}, fmt.Errorf("%w: pairing %s has an empty side", model.ErrConfiguration, p.ID)
	}
	if seg.Start < 1 || seg.End > model.HoleCount || seg.Start > seg.End {
		return model.MatchState{}, fmt.Errorf("%w: invalid segment %d-%d", model.ErrConfiguration, seg.Start, seg.End)
	}

	state := model.MatchState{
		PairingID: p.ID,
		Segment:   seg,
		Holes:     make([]model.HoleResult, 0, seg.Len()),
	}

	wonA, wonB := 0, 0
	for h := seg.Start; h <= seg.End; h++ {
		if stopAtUnplayed && !holePlayed(card, p, h) {
			break
		}
		netA, err := sideNet(card, p.SideA, h, mode)
		if err != nil {
			return model.MatchState{}, err
		}
		netB, err := sideNet(card, p.SideB, h, mode)
		if err != nil {
			return model.MatchState{}, err
		}

		winner := model.Halved
		switch {
		case netA < netB:
			winner = model.PartyA
			wonA++
		case netB < netA:
			winner = model.PartyB
			wonB++
		}

		leader, margin := model.Halved, wonA-wonB
		switch {
		case margin > 0:
			leader = model.PartyA
		case margin < 0:
			leader = model.PartyB
			margin = -margin
		}

		state.Holes = append(state.Holes, model.HoleResult{
			Hole:     h,
			SideANet: netA,
			SideBNet: netB,
			Winner:   winner,
			Leader:   leader,
			Margin:   margin,
		})
	}
	return state, nil
}

func holePlayed(card *Scorecard, p model.Pairing, hole int) bool {
	for _, id := range p.SideA {
		if !card.Played(id, hole) {
			return false
		}
	}
	for _, id := range p.SideB {
		if !card.Played(id, hole) {
			return false
		}
	}
	return true
}

func sideNet(card *Scorecard, players []string, hole int, mode model.ScoringMode) (int, error) {
	result := 0
	for i, id := range players {
		n, err := card.Net(id, hole)
		if err != nil {
			return 0, err
		}
		switch {
		case mode == model.ScoringAggregate:
			result += n
		case i == 0 || n < result:
			result = n
		}
	}
	return result, nil
}

// Result derives the summary of a state. pressID tags press results.
func Result(state model.MatchState, pressID string) model.MatchResult {
	r := model.MatchResult{
		PairingID: state.PairingID,
		Segment:   state.Segment.Name,
		PressID:   pressID,
		StartHole: state.Segment.Start,
		EndHole:   state.Segment.End,
		Winner:    model.Halved,
	}
	for _, h := range state.Holes {
		switch h.Winner {
		case model.PartyA:
			r.HolesWonA++
		case model.PartyB:
			r.HolesWonB++
		default:
			r.Halved++
		}
	}
	switch {
	case r.HolesWonA > r.HolesWonB:
		r.Winner = model.PartyA
	case r.HolesWonB > r.HolesWonA:
		r.Winner = model.PartyB
	}
	return r
}
