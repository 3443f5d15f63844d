package games

import (
	"fmt"
	"sort"

	"github.com/fairway/settlement-engine/internal/model"
	"github.com/fairway/settlement-engine/internal/payout"
)

// countbackLengths are the trailing hole ranges compared, longest first.
var countbackLengths = []int{9, 6, 3, 1}

// StrokePlay settles total net strokes over the played range. cfg must
// have passed Validate.
func StrokePlay(in Input, cfg model.StrokePlayConfig) (Output, error) {
	tieBreak := cfg.TieBreak
	if tieBreak == "" {
		tieBreak = model.TieBreakSplit
	}

	totals := make(map[string]int, len(in.Players))
	for _, id := range in.Players {
		t, err := in.Card.NetTotal(id, in.Played)
		if err != nil {
			return Output{}, err
		}
		totals[id] = t
	}

	var out Output
	switch cfg.Payout {
	case model.StrokePot:
		winners, err := potWinners(in, totals, tieBreak)
		if err != nil {
			return Output{}, err
		}
		out.Standings = standings(in.Players, totals, winners)
		reason := fmt.Sprintf("Stroke play: %s won with %d net", sideName(in.Args, winners), totals[winners[0]])
		cat := model.Category{GameType: model.GameStrokePlay, Segment: model.SegmentOverall}
		for _, loser := range others(in.Players, winners...) {
			out.Transactions = append(out.Transactions, payout.Transfer([]string{loser}, winners, cfg.UnitCents, reason, cat)...)
		}
	case model.StrokeWar:
		out.Standings = standings(in.Players, totals, lowest(in.Players, totals))
		out.Transactions = war(in, totals, cfg)
	}
	return out, nil
}

// potWinners returns the tied-lowest players, narrowed by countback when
// configured. The result is never empty and is sorted.
func potWinners(in Input, totals map[string]int, tieBreak model.TieBreak) ([]string, error) {
	winners := lowest(in.Players, totals)
	if len(winners) == 1 || tieBreak != model.TieBreakCountback {
		return winners, nil
	}
	for _, n := range countbackLengths {
		if n >= in.Played.Len() {
			continue
		}
		rng := model.Segment{Name: model.SegmentOverall, Start: in.Played.End - n + 1, End: in.Played.End}
		sub := make(map[string]int, len(winners))
		for _, id := range winners {
			t, err := in.Card.NetTotal(id, rng)
			if err != nil {
				return nil, err
			}
			sub[id] = t
		}
		winners = lowest(winners, sub)
		if len(winners) == 1 {
			break
		}
	}
	return winners, nil
}

func war(in Input, totals map[string]int, cfg model.StrokePlayConfig) []model.RawTransaction {
	cat := model.Category{GameType: model.GameStrokePlay, Segment: model.SegmentOverall}
	var txs []model.RawTransaction
	for i, a := range in.Players {
		for _, b := range in.Players[i+1:] {
			winner, loser := a, b
			if totals[b] < totals[a] {
				winner, loser = b, a
			}
			margin := totals[loser] - totals[winner]
			if margin == 0 {
				continue
			}
			if cfg.WarCapStrokes > 0 && margin > cfg.WarCapStrokes {
				margin = cfg.WarCapStrokes
			}
			reason := fmt.Sprintf("Stroke play war: %s (%d) beat %s (%d)",
				in.Args.Name(winner), totals[winner], in.Args.Name(loser), totals[loser])
			txs = append(txs, payout.Pay(loser, winner, cfg.UnitCents*int64(margin), reason, cat)...)
		}
	}
	return txs
}

// lowest returns the ids with the minimum score, keeping input order.
func lowest(ids []string, scores map[string]int) []string {
	var out []string
	for _, id := range ids {
		switch {
		case len(out) == 0 || scores[id] < scores[out[0]]:
			out = []string{id}
		case scores[id] == scores[out[0]]:
			out = append(out, id)
		}
	}
	return out
}

func standings(players []string, totals map[string]int, winners []string) []model.Standing {
	won := make(map[string]bool, len(winners))
	for _, id := range winners {
		won[id] = true
	}
	out := make([]model.Standing, 0, len(players))
	for _, id := range players {
		rank := 1
		for _, other := range players {
			if totals[other] < totals[id] {
				rank++
			}
		}
		out = append(out, model.Standing{PlayerID: id, NetTotal: totals[id], Rank: rank, Winner: won[id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NetTotal != out[j].NetTotal {
			return out[i].NetTotal < out[j].NetTotal
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}
