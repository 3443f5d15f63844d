// Package limits enforces house limits on configured wager sizes.
//
// Two checks run before a settlement is computed: every single configured
// amount must stay under a per-bet cap, and the worst case a single player
// can lose across the whole configuration must stay under an exposure cap.
package limits

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fairway/settlement-engine/internal/model"
)

var (
	// ErrStakeLimitExceeded is returned when one configured amount is above
	// the per-bet maximum.
	ErrStakeLimitExceeded = fmt.Errorf("%w: stake limit exceeded", model.ErrConfiguration)

	// ErrExposureLimitExceeded is returned when a single player could lose
	// more than the exposure maximum.
	ErrExposureLimitExceeded = fmt.Errorf("%w: exposure limit exceeded", model.ErrConfiguration)
)

// StakeLimiter holds the house limits in cents. A zero limit disables that
// check.
type StakeLimiter struct {
	MaxStakeCents    int64
	MaxExposureCents int64
}

// NewStakeLimiter creates a limiter. Negative limits are treated as zero.
func NewStakeLimiter(maxStake, maxExposure int64) *StakeLimiter {
	return &StakeLimiter{
		MaxStakeCents:    max(maxStake, 0),
		MaxExposureCents: max(maxExposure, 0),
	}
}

// CheckLimit validates the wager configuration of a settlement.
func (l *StakeLimiter) CheckLimit(args model.SettlementArgs) error {
	if l.MaxStakeCents > 0 {
		for _, s := range stakes(args) {
			if s.cents > l.MaxStakeCents {
				return fmt.Errorf("%w: %s of %s is above %s", ErrStakeLimitExceeded,
					s.name, model.FormatCents(s.cents), model.FormatCents(l.MaxStakeCents))
			}
		}
	}

	if l.MaxExposureCents > 0 {
		worst, err := WorstCase(args)
		if err != nil {
			return err
		}
		if worst.GreaterThan(decimal.NewFromInt(l.MaxExposureCents)) {
			return fmt.Errorf("%w: a player could lose %s cents, limit is %d", ErrExposureLimitExceeded,
				worst.String(), l.MaxExposureCents)
		}
	}
	return nil
}

type stake struct {
	name  string
	cents int64
}

func stakes(args model.SettlementArgs) []stake {
	var out []stake
	switch cfg := args.Game.(type) {
	case model.NassauConfig:
		out = append(out,
			stake{"front bet", cfg.FrontCents},
			stake{"back bet", cfg.BackCents},
			stake{"overall bet", cfg.OverallCents},
			stake{"press bet", cfg.Press.AmountCents})
	case model.MatchPlayConfig:
		out = append(out, stake{"match bet", cfg.AmountCents})
	case model.StrokePlayConfig:
		out = append(out, stake{"stroke unit", cfg.UnitCents})
	case model.SkinsConfig:
		out = append(out, stake{"skin value", cfg.UnitCents})
	}
	if sb := args.SideBets; sb != nil {
		out = append(out,
			stake{"birdie bet", sb.BirdieCents},
			stake{"greenie bet", sb.GreenieCents},
			stake{"sandy bet", sb.SandyCents})
	}
	return out
}

// WorstCase returns the most a single player can lose under the wager
// configuration. Externally counted side bets are not bounded and are left
// out, as is uncapped stroke-play war.
func WorstCase(args model.SettlementArgs) (decimal.Decimal, error) {
	played, err := model.PlayedRange(args.Selection)
	if err != nil {
		return decimal.Zero, err
	}
	players, opponents := fieldSize(args)
	holes := decimal.NewFromInt(int64(played.Len()))
	opp := decimal.NewFromInt(int64(opponents))
	cents := decimal.NewFromInt

	worst := decimal.Zero
	switch cfg := args.Game.(type) {
	case model.NassauConfig:
		segments, err := model.SegmentsFor(args.Selection)
		if err != nil {
			return decimal.Zero, err
		}
		pressCfg := cfg.Press.Normalized()
		perOpponent := decimal.Zero
		for _, seg := range segments {
			amount := cfg.AmountFor(seg.Name)
			perOpponent = perOpponent.Add(cents(amount))
			if pressCfg.Pressable(seg.Name) {
				value := pressCfg.AmountCents
				if value <= 0 {
					value = amount
				}
				perOpponent = perOpponent.Add(cents(value).Mul(cents(int64(pressCfg.MaxPerSegment))))
			}
		}
		worst = perOpponent.Mul(opp)
	case model.MatchPlayConfig:
		worst = cents(cfg.AmountCents).Mul(opp)
		if cfg.Mode == model.MatchPlayPerHole {
			worst = worst.Mul(holes)
		}
	case model.StrokePlayConfig:
		switch {
		case cfg.Payout == model.StrokePot:
			worst = cents(cfg.UnitCents)
		case cfg.WarCapStrokes > 0:
			worst = cents(cfg.UnitCents).Mul(cents(int64(cfg.WarCapStrokes))).Mul(opp)
		}
	case model.SkinsConfig:
		worst = cents(cfg.UnitCents).Mul(holes)
	case nil:
		return decimal.Zero, fmt.Errorf("%w: no game configured", model.ErrConfiguration)
	}

	if sb := args.SideBets; sb != nil && players > 1 {
		worst = worst.Add(cents(sb.BirdieCents).Mul(holes).Mul(cents(int64(players - 1))))
	}
	return worst, nil
}

// fieldSize returns the number of players and the number of opponents a
// single player settles against.
func fieldSize(args model.SettlementArgs) (players, opponents int) {
	if args.Mode == model.PairingIndividual || args.Mode == "" {
		return len(args.Scores), max(len(args.Scores)-1, 0)
	}
	seen := make(map[string]bool)
	for _, s := range args.Sides {
		for _, id := range s.PlayerIDs {
			seen[id] = true
		}
	}
	return len(seen), 1
}
