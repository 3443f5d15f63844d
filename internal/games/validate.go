package games

import (
	"fmt"

	"github.com/fairway/settlement-engine/internal/model"
)

// Validate checks the game and side-bet settings of a round. players are
// the ids taking part; greenie and sandy counts must name one of them.
// Every error wraps model.ErrConfiguration.
func Validate(args model.SettlementArgs, players []string) error {
	switch cfg := args.Game.(type) {
	case model.MatchPlayConfig:
		if err := validateMatchPlay(args.Selection, cfg); err != nil {
			return err
		}
	case model.StrokePlayConfig:
		if err := validateStrokePlay(cfg); err != nil {
			return err
		}
	}
	if args.SideBets != nil {
		return validateSideBets(args, *args.SideBets, players)
	}
	return nil
}

func validateMatchPlay(sel model.HoleSelection, cfg model.MatchPlayConfig) error {
	if cfg.Mode != model.MatchPlayFlat && cfg.Mode != model.MatchPlayPerHole {
		return fmt.Errorf("%w: unknown match play mode %q", model.ErrConfiguration, cfg.Mode)
	}
	name := matchSegment(cfg)
	if _, ok := model.FindSegment(sel, name); !ok {
		return fmt.Errorf("%w: segment %s is not part of a %s round", model.ErrConfiguration, name, sel)
	}
	return nil
}

func validateStrokePlay(cfg model.StrokePlayConfig) error {
	switch cfg.Payout {
	case model.StrokePot, model.StrokeWar:
	default:
		return fmt.Errorf("%w: unknown stroke play payout %q", model.ErrConfiguration, cfg.Payout)
	}
	switch cfg.TieBreak {
	case "", model.TieBreakSplit, model.TieBreakCountback:
	default:
		return fmt.Errorf("%w: unknown tie break %q", model.ErrConfiguration, cfg.TieBreak)
	}
	if cfg.WarCapStrokes < 0 {
		return fmt.Errorf("%w: war cap must not be negative", model.ErrConfiguration)
	}
	return nil
}

func validateSideBets(args model.SettlementArgs, cfg model.SideBetConfig, players []string) error {
	if cfg.BirdieCents < 0 || cfg.GreenieCents < 0 || cfg.SandyCents < 0 {
		return fmt.Errorf("%w: side bet amounts must not be negative", model.ErrConfiguration)
	}
	if cfg.BirdieCents > 0 {
		played, err := model.PlayedRange(args.Selection)
		if err != nil {
			return err
		}
		for h := played.Start; h <= played.End; h++ {
			if args.Pars[h-1] <= 0 {
				return fmt.Errorf("%w: birdies need a par for hole %d", model.ErrConfiguration, h)
			}
		}
	}

	known := make(map[string]bool, len(players))
	for _, id := range players {
		known[id] = true
	}
	counted := []struct {
		label  string
		unit   int64
		counts map[string]int
	}{
		{"greenie", cfg.GreenieCents, args.Greenies},
		{"sandy", cfg.SandyCents, args.Sandies},
	}
	for _, c := range counted {
		if c.unit == 0 {
			continue
		}
		for id, n := range c.counts {
			if !known[id] {
				return fmt.Errorf("%w: %s count for unknown player %s", model.ErrConfiguration, c.label, id)
			}
			if n < 0 {
				return fmt.Errorf("%w: negative %s count for player %s", model.ErrConfiguration, c.label, id)
			}
		}
	}
	return nil
}

// matchSegment is the segment a match-play bet covers, overall by default.
func matchSegment(cfg model.MatchPlayConfig) model.SegmentName {
	if cfg.Segment == "" {
		return model.SegmentOverall
	}
	return cfg.Segment
}
