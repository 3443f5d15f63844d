package games

import (
	"fmt"

	"github.com/fairway/settlement-engine/internal/match"
	"github.com/fairway/settlement-engine/internal/model"
)

// MatchPlay settles holes won over one segment per pairing, either as a
// flat bet or per hole of margin. cfg must have passed Validate.
func MatchPlay(in Input, cfg model.MatchPlayConfig) (Output, error) {
	seg, _ := model.FindSegment(in.Args.Selection, matchSegment(cfg))

	var out Output
	for _, p := range in.Pairings {
		state, err := match.Build(in.Card, p, seg, in.Args.Scoring)
		if err != nil {
			return Output{}, err
		}
		result := match.Result(state, "")
		out.Matches = append(out.Matches, result)

		amount := cfg.AmountCents
		label := "Match play"
		if cfg.Mode == model.MatchPlayPerHole {
			amount *= int64(result.Margin())
			label = fmt.Sprintf("Match play (%s per hole)", model.FormatCents(cfg.AmountCents))
		}
		cat := model.Category{GameType: model.GameMatchPlay, Segment: seg.Name, PairingID: p.ID}
		out.Transactions = append(out.Transactions, settleMatch(in.Args, p, result, amount, cat, label)...)
	}
	return out, nil
}
