// Package games turns match results into raw transactions for each
// supported game type: Nassau (with presses), match play, stroke play,
// skins and per-occurrence side bets.
//
// Calculators are pure: they read an Input and return an Output. All
// amounts are int64 cents and every multi-party payout goes through
// payout.Transfer so no cent is lost or duplicated.
package games

import (
	"fmt"
	"strings"

	"github.com/fairway/settlement-engine/internal/match"
	"github.com/fairway/settlement-engine/internal/model"
)

// Input is shared by every calculator.
type Input struct {
	Args     model.SettlementArgs
	Card     *match.Scorecard
	Pairings []model.Pairing
	Players  []string      // every participating player, sorted
	Played   model.Segment // the holes covered by the round
}

// Output is what a calculator produced. Only the fields relevant to the
// game type are populated.
type Output struct {
	Transactions   []model.RawTransaction
	Matches        []model.MatchResult
	Presses        []model.Press
	PressDecisions []model.PressDecision
	Standings      []model.Standing
	SkinsHoles     []model.SkinsHole
	SkinsWon       map[string]int
}

func (o *Output) merge(other Output) {
	o.Transactions = append(o.Transactions, other.Transactions...)
	o.Matches = append(o.Matches, other.Matches...)
	o.Presses = append(o.Presses, other.Presses...)
	o.PressDecisions = append(o.PressDecisions, other.PressDecisions...)
	o.Standings = append(o.Standings, other.Standings...)
	o.SkinsHoles = append(o.SkinsHoles, other.SkinsHoles...)
	if other.SkinsWon != nil {
		o.SkinsWon = other.SkinsWon
	}
}

// Run settles the main game and any side bets.
func Run(in Input) (Output, error) {
	var out Output
	var err error
	switch cfg := in.Args.Game.(type) {
	case model.NassauConfig:
		out, err = Nassau(in, cfg)
	case model.MatchPlayConfig:
		out, err = MatchPlay(in, cfg)
	case model.StrokePlayConfig:
		out, err = StrokePlay(in, cfg)
	case model.SkinsConfig:
		out, err = Skins(in, cfg)
	case nil:
		return Output{}, fmt.Errorf("%w: no game configured", model.ErrConfiguration)
	default:
		return Output{}, fmt.Errorf("%w: unsupported game %T", model.ErrConfiguration, cfg)
	}
	if err != nil {
		return Output{}, err
	}

	if in.Args.SideBets != nil {
		side, err := SideBets(in, *in.Args.SideBets)
		if err != nil {
			return Output{}, err
		}
		out.merge(side)
	}
	return out, nil
}

// sideName renders the players of a side for explanations.
func sideName(args model.SettlementArgs, ids []string) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = args.Name(id)
	}
	return strings.Join(names, " & ")
}

func others(players []string, exclude ...string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	out := make([]string, 0, len(players))
	for _, id := range players {
		if !skip[id] {
			out = append(out, id)
		}
	}
	return out
}
