package games

import (
	"fmt"

	"github.com/fairway/settlement-engine/internal/model"
	"github.com/fairway/settlement-engine/internal/payout"
)

// Skins pays the sole low net score on each hole from every other player.
// Tied holes carry the stake forward when carryover is enabled.
func Skins(in Input, cfg model.SkinsConfig) (Output, error) {
	out := Output{SkinsWon: make(map[string]int, len(in.Players))}
	cat := model.Category{GameType: model.GameSkins, Segment: model.SegmentOverall}

	carry := 0
	var lastLow []string
	for h := in.Played.Start; h <= in.Played.End; h++ {
		nets := make(map[string]int, len(in.Players))
		for _, id := range in.Players {
			n, err := in.Card.Net(id, h)
			if err != nil {
				return Output{}, err
			}
			nets[id] = n
		}
		low := lowest(in.Players, nets)
		lastLow = low

		if len(low) > 1 {
			if cfg.Carryover {
				carry++
			}
			out.SkinsHoles = append(out.SkinsHoles, model.SkinsHole{Hole: h, Carry: carry})
			continue
		}

		winner := low[0]
		skins := 1 + carry
		carry = 0
		out.SkinsWon[winner] += skins
		out.SkinsHoles = append(out.SkinsHoles, model.SkinsHole{Hole: h, WinnerID: winner, Skins: skins})

		reason := fmt.Sprintf("Skins hole %d: %s won %d skin(s)", h, in.Args.Name(winner), skins)
		for _, loser := range others(in.Players, winner) {
			out.Transactions = append(out.Transactions,
				payout.Pay(loser, winner, cfg.UnitCents*int64(skins), reason, cat)...)
		}
	}

	if carry > 0 && cfg.SplitFinalCarryover {
		reason := fmt.Sprintf("Skins: %d carried skin(s) split by %s", carry, sideName(in.Args, lastLow))
		for _, payer := range others(in.Players, lastLow...) {
			out.Transactions = append(out.Transactions,
				payout.Transfer([]string{payer}, lastLow, cfg.UnitCents*int64(carry), reason, cat)...)
		}
	}
	return out, nil
}
