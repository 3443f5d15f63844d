package games

import (
	"fmt"
	"sort"

	"github.com/fairway/settlement-engine/internal/match"
	"github.com/fairway/settlement-engine/internal/model"
	"github.com/fairway/settlement-engine/internal/payout"
	"github.com/fairway/settlement-engine/internal/press"
)

type segmentState struct {
	pairing model.Pairing
	segment model.Segment
	state   model.MatchState
}

// Nassau settles front, back and overall as independent matches per
// pairing, then validates, detects and settles presses on top.
func Nassau(in Input, cfg model.NassauConfig) (Output, error) {
	segments, err := model.SegmentsFor(in.Args.Selection)
	if err != nil {
		return Output{}, err
	}
	pressCfg := cfg.Press.Normalized()

	var out Output
	states := make(map[string]segmentState)
	var order []string

	for _, p := range in.Pairings {
		for _, seg := range segments {
			state, err := match.Build(in.Card, p, seg, in.Args.Scoring)
			if err != nil {
				return Output{}, err
			}
			key := p.ID + ":" + string(seg.Name)
			states[key] = segmentState{pairing: p, segment: seg, state: state}
			order = append(order, key)

			result := match.Result(state, "")
			out.Matches = append(out.Matches, result)
			out.Transactions = append(out.Transactions,
				settleMatch(in.Args, p, result, cfg.AmountFor(seg.Name), nassauCategory(p, seg.Name, ""),
					fmt.Sprintf("Nassau %s", seg.Name))...)
		}
	}

	reg := press.NewRegistry()
	pressValue := func(seg model.SegmentName) int64 {
		if pressCfg.AmountCents > 0 {
			return pressCfg.AmountCents
		}
		return cfg.AmountFor(seg)
	}

	for _, req := range sortedRequests(in.Args.Presses) {
		ss, ok := states[req.PairingID+":"+string(req.Segment)]
		if !ok {
			out.PressDecisions = append(out.PressDecisions, model.PressDecision{
				Request: req,
				Reason:  fmt.Sprintf("no %s segment for pairing %s in this round", req.Segment, req.PairingID),
			})
			continue
		}
		d := press.ValidateManualPress(req, pressCfg, ss.pairing, ss.segment, ss.state, reg, pressValue(ss.segment.Name))
		out.PressDecisions = append(out.PressDecisions, d)
		if d.Accepted {
			out.Presses = append(out.Presses, *d.Press)
		}
	}

	if pressCfg.Enabled {
		for _, key := range order {
			ss := states[key]
			out.Presses = append(out.Presses,
				press.DetectAutoPresses(pressCfg, ss.pairing, ss.segment, ss.state, reg, pressValue(ss.segment.Name))...)
		}
	}

	sort.SliceStable(out.Presses, func(i, j int) bool {
		a, b := out.Presses[i], out.Presses[j]
		if a.PairingID != b.PairingID {
			return a.PairingID < b.PairingID
		}
		if a.Segment != b.Segment {
			return a.Segment.Order() < b.Segment.Order()
		}
		return a.StartHole < b.StartHole
	})

	for i := range out.Presses {
		p := &out.Presses[i]
		ss := states[p.PairingID+":"+string(p.Segment)]
		state, err := match.Build(in.Card, ss.pairing, press.Range(*p), in.Args.Scoring)
		if err != nil {
			return Output{}, err
		}
		result := match.Result(state, p.ID)
		p.Result = &result
		out.Matches = append(out.Matches, result)
		out.Transactions = append(out.Transactions,
			settleMatch(in.Args, ss.pairing, result, p.ValueCents, nassauCategory(ss.pairing, p.Segment, p.ID),
				fmt.Sprintf("Nassau %s press from hole %d", p.Segment, p.StartHole))...)
	}
	return out, nil
}

func nassauCategory(p model.Pairing, seg model.SegmentName, pressID string) model.Category {
	return model.Category{GameType: model.GameNassau, Segment: seg, PairingID: p.ID, PressID: pressID}
}

// settleMatch pays amount per losing player to the winning side. Halved
// matches produce nothing.
func settleMatch(args model.SettlementArgs, p model.Pairing, r model.MatchResult, amount int64, cat model.Category, label string) []model.RawTransaction {
	if r.Winner == model.Halved || amount <= 0 {
		return nil
	}
	winners := p.Players(r.Winner)
	losers := p.Players(r.Winner.Opponent())
	reason := fmt.Sprintf("%s: %s beat %s %d up", label, sideName(args, winners), sideName(args, losers), r.Margin())
	return payout.Transfer(losers, winners, amount, reason, cat)
}

func sortedRequests(reqs []model.ManualPressRequest) []model.ManualPressRequest {
	out := append([]model.ManualPressRequest(nil), reqs...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PairingID != b.PairingID {
			return a.PairingID < b.PairingID
		}
		if a.Segment != b.Segment {
			return a.Segment.Order() < b.Segment.Order()
		}
		if a.StartHole != b.StartHole {
			return a.StartHole < b.StartHole
		}
		return a.RequestedBy < b.RequestedBy
	})
	return out
}
