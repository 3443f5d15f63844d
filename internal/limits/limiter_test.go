package limits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairway/settlement-engine/internal/model"
)

func fourPlayers() []model.PlayerScore {
	return []model.PlayerScore{{PlayerID: "a"}, {PlayerID: "b"}, {PlayerID: "c"}, {PlayerID: "d"}}
}

func nassauArgs(front, back, overall int64) model.SettlementArgs {
	return model.SettlementArgs{
		Scores:    fourPlayers(),
		Mode:      model.PairingIndividual,
		Selection: model.Holes18,
		Game:      model.NassauConfig{FrontCents: front, BackCents: back, OverallCents: overall},
	}
}

func TestCheckLimit_WithinLimits(t *testing.T) {
	limiter := NewStakeLimiter(1000, 10000)

	assert.NoError(t, limiter.CheckLimit(nassauArgs(500, 500, 1000)))
}

func TestCheckLimit_StakeExceeded(t *testing.T) {
	limiter := NewStakeLimiter(1000, 0)

	err := limiter.CheckLimit(nassauArgs(500, 500, 1500))
	assert.ErrorIs(t, err, ErrStakeLimitExceeded)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestCheckLimit_SideBetStakeExceeded(t *testing.T) {
	limiter := NewStakeLimiter(1000, 0)
	args := nassauArgs(100, 100, 100)
	args.SideBets = &model.SideBetConfig{SandyCents: 2000}

	assert.ErrorIs(t, limiter.CheckLimit(args), ErrStakeLimitExceeded)
}

func TestCheckLimit_ExposureExceeded(t *testing.T) {
	// (500 + 500 + 1000) × 3 opponents = 6000 > 5000.
	limiter := NewStakeLimiter(0, 5000)

	assert.ErrorIs(t, limiter.CheckLimit(nassauArgs(500, 500, 1000)), ErrExposureLimitExceeded)
}

func TestCheckLimit_DisabledLimits(t *testing.T) {
	limiter := NewStakeLimiter(-1, 0)

	assert.NoError(t, limiter.CheckLimit(nassauArgs(1_000_000, 1_000_000, 1_000_000)), "zero limits disable checks")
}

func TestWorstCase(t *testing.T) {
	withPresses := nassauArgs(500, 500, 1000)
	withPresses.Game = model.NassauConfig{
		FrontCents: 500, BackCents: 500, OverallCents: 1000,
		Press: model.PressConfig{Enabled: true, MaxPerSegment: 2},
	}

	teams := model.SettlementArgs{
		Mode:      model.PairingTeams,
		Selection: model.FrontNine,
		Sides: []model.Side{
			{ID: "red", PlayerIDs: []string{"a", "b"}},
			{ID: "blue", PlayerIDs: []string{"c", "d"}},
		},
		Game:     model.MatchPlayConfig{AmountCents: 100, Mode: model.MatchPlayPerHole},
		SideBets: &model.SideBetConfig{BirdieCents: 10, GreenieCents: 999},
	}

	tests := []struct {
		name string
		args model.SettlementArgs
		want int64
	}{
		{"nassau", nassauArgs(500, 500, 1000), 6000},
		// front and back pressable twice each: (2000 + 2×500 + 2×500) × 3
		{"nassau with presses", withPresses, 12000},
		// 100 × 9 holes × 1 opposing side + birdies 10 × 9 × 3
		{"teams per hole", teams, 900 + 270},
		{"stroke pot", model.SettlementArgs{Scores: fourPlayers(), Selection: model.Holes18,
			Game: model.StrokePlayConfig{UnitCents: 1000, Payout: model.StrokePot}}, 1000},
		{"stroke war capped", model.SettlementArgs{Scores: fourPlayers(), Selection: model.Holes18,
			Game: model.StrokePlayConfig{UnitCents: 100, Payout: model.StrokeWar, WarCapStrokes: 5}}, 1500},
		{"stroke war uncapped", model.SettlementArgs{Scores: fourPlayers(), Selection: model.Holes18,
			Game: model.StrokePlayConfig{UnitCents: 100, Payout: model.StrokeWar}}, 0},
		{"skins", model.SettlementArgs{Scores: fourPlayers(), Selection: model.BackNine,
			Game: model.SkinsConfig{UnitCents: 50}}, 450},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WorstCase(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.IntPart(), "worst case %s", got)
		})
	}
}

func TestWorstCase_UnknownSelection(t *testing.T) {
	args := nassauArgs(1, 1, 1)
	args.Selection = "27"
	_, err := WorstCase(args)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}
