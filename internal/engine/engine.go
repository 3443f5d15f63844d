// Package engine runs a full settlement: it validates the configuration,
// checks the round is complete for the holes in scope, generates pairings,
// runs the game calculator, nets the raw transactions and checks the
// invariants before anything is returned.
//
// Settle is pure and synchronous. Identical arguments produce identical
// results, and concurrent calls share no state.
package engine

import (
	"fmt"

	"github.com/fairway/settlement-engine/internal/games"
	"github.com/fairway/settlement-engine/internal/invariant"
	"github.com/fairway/settlement-engine/internal/match"
	"github.com/fairway/settlement-engine/internal/model"
	"github.com/fairway/settlement-engine/internal/netting"
	"github.com/fairway/settlement-engine/internal/pairing"
)

// Result is the complete output of one settlement.
type Result struct {
	GameType        model.GameType         `json:"game_type"`
	Players         []string               `json:"players"`
	RawTransactions []model.RawTransaction `json:"raw_transactions"`
	Payments        []model.NettedPayment  `json:"payments"`
	Balances        map[string]int64       `json:"balances"`
	Matches         []model.MatchResult    `json:"matches,omitempty"`
	Presses         []model.Press          `json:"presses,omitempty"`
	PressDecisions  []model.PressDecision  `json:"press_decisions,omitempty"`
	Standings       []model.Standing       `json:"standings,omitempty"`
	SkinsHoles      []model.SkinsHole      `json:"skins_holes,omitempty"`
	SkinsWon        map[string]int         `json:"skins_won,omitempty"`
}

// Settle computes who owes whom. Errors wrap model.ErrConfiguration,
// model.ErrIncomplete or model.ErrInvariant.
func Settle(args model.SettlementArgs) (Result, error) {
	if args.Scoring == "" {
		args.Scoring = model.ScoringBestBall
	}
	if err := validateConfig(args); err != nil {
		return Result{}, err
	}
	played, err := model.PlayedRange(args.Selection)
	if err != nil {
		return Result{}, err
	}

	card, err := match.NewScorecard(args.Scores, args.Allocations)
	if err != nil {
		return Result{}, err
	}
	pairings, err := pairing.Generate(args.Mode, scorePlayers(args.Scores), args.Sides)
	if err != nil {
		return Result{}, err
	}
	players := pairing.Players(pairings)
	for _, id := range players {
		if !card.Has(id) {
			return Result{}, fmt.Errorf("%w: no scores for player %s", model.ErrIncomplete, id)
		}
	}
	if err := card.Complete(players, played); err != nil {
		return Result{}, err
	}

	out, err := games.Run(games.Input{
		Args:     args,
		Card:     card,
		Pairings: pairings,
		Players:  players,
		Played:   played,
	})
	if err != nil {
		return Result{}, err
	}

	payments := netting.Net(out.Transactions)
	if err := invariant.Validate(out.Transactions, payments); err != nil {
		return Result{}, err
	}

	balances := netting.Balances(out.Transactions)
	for _, id := range players {
		if _, ok := balances[id]; !ok {
			balances[id] = 0
		}
	}
	return Result{
		GameType:        args.Game.GameType(),
		Players:         players,
		RawTransactions: out.Transactions,
		Payments:        payments,
		Balances:        balances,
		Matches:         out.Matches,
		Presses:         out.Presses,
		PressDecisions:  out.PressDecisions,
		Standings:       out.Standings,
		SkinsHoles:      out.SkinsHoles,
		SkinsWon:        out.SkinsWon,
	}, nil
}

func scorePlayers(scores []model.PlayerScore) []string {
	ids := make([]string, len(scores))
	for i, s := range scores {
		ids[i] = s.PlayerID
	}
	return ids
}

func validateConfig(args model.SettlementArgs) error {
	if args.Game == nil {
		return fmt.Errorf("%w: no game configured", model.ErrConfiguration)
	}
	if args.Scoring != model.ScoringBestBall && args.Scoring != model.ScoringAggregate {
		return fmt.Errorf("%w: unknown scoring mode %q", model.ErrConfiguration, args.Scoring)
	}
	if args.Mode == model.PairingTeams {
		switch args.Game.(type) {
		case model.StrokePlayConfig, model.SkinsConfig:
			return fmt.Errorf("%w: %s is not played in teams", model.ErrConfiguration, args.Game.GameType())
		}
	}

	negative := func(name string, cents int64) error {
		if cents < 0 {
			return fmt.Errorf("%w: %s must not be negative", model.ErrConfiguration, name)
		}
		return nil
	}
	var amounts []error
	switch cfg := args.Game.(type) {
	case model.NassauConfig:
		amounts = append(amounts,
			negative("front amount", cfg.FrontCents),
			negative("back amount", cfg.BackCents),
			negative("overall amount", cfg.OverallCents),
			negative("press amount", cfg.Press.AmountCents),
			validatePress(cfg.Press))
	case model.MatchPlayConfig:
		amounts = append(amounts, negative("match amount", cfg.AmountCents))
	case model.StrokePlayConfig:
		amounts = append(amounts, negative("stroke unit", cfg.UnitCents))
	case model.SkinsConfig:
		amounts = append(amounts, negative("skin value", cfg.UnitCents))
	}
	for _, err := range amounts {
		if err != nil {
			return err
		}
	}
	if len(args.Presses) > 0 {
		if _, ok := args.Game.(model.NassauConfig); !ok {
			return fmt.Errorf("%w: presses only apply to nassau", model.ErrConfiguration)
		}
	}
	return games.Validate(args, participants(args))
}

// participants are the players a side bet may name: every scored player
// in individual mode, the side members otherwise.
func participants(args model.SettlementArgs) []string {
	if args.Mode == model.PairingIndividual {
		return scorePlayers(args.Scores)
	}
	var ids []string
	for _, side := range args.Sides {
		ids = append(ids, side.PlayerIDs...)
	}
	return ids
}

func validatePress(cfg model.PressConfig) error {
	switch cfg.Mode {
	case "", model.PressManual, model.PressAuto:
	default:
		return fmt.Errorf("%w: unknown press mode %q", model.ErrConfiguration, cfg.Mode)
	}
	switch cfg.StartRule {
	case "", model.PressNextHole, model.PressSameHole:
	default:
		return fmt.Errorf("%w: unknown press start rule %q", model.ErrConfiguration, cfg.StartRule)
	}
	if cfg.TriggerDown < 0 || cfg.MaxPerSegment < 0 {
		return fmt.Errorf("%w: press trigger and cap must not be negative", model.ErrConfiguration)
	}
	return nil
}
