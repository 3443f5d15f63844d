package games

import (
	"fmt"

	"github.com/fairway/settlement-engine/internal/model"
	"github.com/fairway/settlement-engine/internal/payout"
)

// SideBets settles birdies (net under par, detected from the card) and
// externally counted greenies and sandies. Every occurrence is paid by
// every other player. cfg must have passed Validate.
func SideBets(in Input, cfg model.SideBetConfig) (Output, error) {
	var out Output
	if cfg.BirdieCents > 0 {
		txs, err := birdies(in, cfg.BirdieCents)
		if err != nil {
			return Output{}, err
		}
		out.Transactions = append(out.Transactions, txs...)
	}
	if cfg.GreenieCents > 0 {
		out.Transactions = append(out.Transactions,
			counted(in, model.GameGreenies, "Greenie", in.Args.Greenies, cfg.GreenieCents)...)
	}
	if cfg.SandyCents > 0 {
		out.Transactions = append(out.Transactions,
			counted(in, model.GameSandies, "Sandy", in.Args.Sandies, cfg.SandyCents)...)
	}
	return out, nil
}

func birdies(in Input, unit int64) ([]model.RawTransaction, error) {
	cat := model.Category{GameType: model.GameBirdies, Segment: model.SegmentOverall}
	var txs []model.RawTransaction
	for _, id := range in.Players {
		for h := in.Played.Start; h <= in.Played.End; h++ {
			n, err := in.Card.Net(id, h)
			if err != nil {
				return nil, err
			}
			if n >= in.Args.Pars[h-1] {
				continue
			}
			reason := fmt.Sprintf("Birdie by %s on hole %d", in.Args.Name(id), h)
			for _, payer := range others(in.Players, id) {
				txs = append(txs, payout.Pay(payer, id, unit, reason, cat)...)
			}
		}
	}
	return txs, nil
}

func counted(in Input, game model.GameType, label string, counts map[string]int, unit int64) []model.RawTransaction {
	cat := model.Category{GameType: game, Segment: model.SegmentOverall}
	var txs []model.RawTransaction
	for _, id := range in.Players {
		n := counts[id]
		if n == 0 {
			continue
		}
		reason := fmt.Sprintf("%s x%d by %s", label, n, in.Args.Name(id))
		for _, payer := range others(in.Players, id) {
			txs = append(txs, payout.Pay(payer, id, unit*int64(n), reason, cat)...)
		}
	}
	return txs
}
