package engine

import (
	"fmt"
	"sort"

	"github.com/fairway/settlement-engine/internal/match"
	"github.com/fairway/settlement-engine/internal/model"
	"github.com/fairway/settlement-engine/internal/pairing"
	"github.com/fairway/settlement-engine/internal/press"
)

// CheckPress decides a manual press request against a round in progress.
// args.Game must be a Nassau; args.Presses are presses already placed on
// the round and are replayed first so caps and duplicates are honoured.
// Holes after the last one scored by every member of the pairing are
// ignored.
func CheckPress(args model.SettlementArgs, req model.ManualPressRequest) (model.PressDecision, error) {
	if args.Scoring == "" {
		args.Scoring = model.ScoringBestBall
	}
	cfg, ok := args.Game.(model.NassauConfig)
	if !ok {
		return model.PressDecision{}, fmt.Errorf("%w: presses only apply to nassau", model.ErrConfiguration)
	}
	if err := validateConfig(args); err != nil {
		return model.PressDecision{}, err
	}

	card, err := match.NewScorecard(args.Scores, args.Allocations)
	if err != nil {
		return model.PressDecision{}, err
	}
	pairings, err := pairing.Generate(args.Mode, scorePlayers(args.Scores), args.Sides)
	if err != nil {
		return model.PressDecision{}, err
	}

	var p model.Pairing
	for _, candidate := range pairings {
		if candidate.ID == req.PairingID {
			p = candidate
		}
	}
	seg, found := model.FindSegment(args.Selection, req.Segment)
	if p.ID == "" || !found {
		return model.PressDecision{
			Request: req,
			Reason:  fmt.Sprintf("no %s segment for pairing %s in this round", req.Segment, req.PairingID),
		}, nil
	}

	state, err := match.BuildPlayed(card, p, seg, args.Scoring)
	if err != nil {
		return model.PressDecision{}, err
	}

	value := cfg.Press.AmountCents
	if value <= 0 {
		value = cfg.AmountFor(seg.Name)
	}
	reg := press.NewRegistry()
	for _, prior := range priorPresses(args.Presses, p.ID, seg.Name) {
		press.ValidateManualPress(prior, cfg.Press, p, seg, state, reg, value)
	}
	return press.ValidateManualPress(req, cfg.Press, p, seg, state, reg, value), nil
}

func priorPresses(reqs []model.ManualPressRequest, pairingID string, seg model.SegmentName) []model.ManualPressRequest {
	var out []model.ManualPressRequest
	for _, r := range reqs {
		if r.PairingID == pairingID && r.Segment == seg {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartHole != out[j].StartHole {
			return out[i].StartHole < out[j].StartHole
		}
		return out[i].RequestedBy < out[j].RequestedBy
	})
	return out
}
