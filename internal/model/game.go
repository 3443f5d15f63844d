package model

// GameType names a settlement game or side bet. It is also the first
// element of every netting category.
type GameType string

const (
	GameStrokePlay GameType = "stroke_play"
	GameMatchPlay  GameType = "match_play"
	GameNassau     GameType = "nassau"
	GameSkins      GameType = "skins"
	GameBirdies    GameType = "birdies"
	GameGreenies   GameType = "greenies"
	GameSandies    GameType = "sandies"
)

// GameConfig is the bet configuration for the main game. Exactly one of
// NassauConfig, MatchPlayConfig, StrokePlayConfig or SkinsConfig.
type GameConfig interface {
	GameType() GameType
	isGameConfig()
}

// NassauConfig bets front, back and overall independently, with optional presses.
type NassauConfig struct {
	FrontCents   int64       `json:"front_cents"`
	BackCents    int64       `json:"back_cents"`
	OverallCents int64       `json:"overall_cents"`
	Press        PressConfig `json:"press"`
}

func (NassauConfig) GameType() GameType { return GameNassau }
func (NassauConfig) isGameConfig()      {}

// AmountFor returns the bet on a segment.
func (c NassauConfig) AmountFor(name SegmentName) int64 {
	switch name {
	case SegmentFront:
		return c.FrontCents
	case SegmentBack:
		return c.BackCents
	default:
		return c.OverallCents
	}
}

// MatchPlayMode selects the match-play payout rule.
type MatchPlayMode string

const (
	MatchPlayFlat    MatchPlayMode = "flat"
	MatchPlayPerHole MatchPlayMode = "per_hole"
)

// MatchPlayConfig settles holes won over a single segment.
type MatchPlayConfig struct {
	AmountCents int64         `json:"amount_cents"`
	Mode        MatchPlayMode `json:"mode"`
	Segment     SegmentName   `json:"segment,omitempty"` // defaults to overall
}

func (MatchPlayConfig) GameType() GameType { return GameMatchPlay }
func (MatchPlayConfig) isGameConfig()      {}

// StrokePayout selects the stroke-play payout rule.
type StrokePayout string

const (
	StrokePot StrokePayout = "pot"
	StrokeWar StrokePayout = "war"
)

// TieBreak selects how pot-mode ties are resolved.
type TieBreak string

const (
	TieBreakSplit     TieBreak = "split"
	TieBreakCountback TieBreak = "countback"
)

// StrokePlayConfig settles total net strokes over the played range.
type StrokePlayConfig struct {
	UnitCents     int64        `json:"unit_cents"`
	Payout        StrokePayout `json:"payout"`
	TieBreak      TieBreak     `json:"tie_break,omitempty"`
	WarCapStrokes int          `json:"war_cap_strokes,omitempty"` // 0 = uncapped
}

func (StrokePlayConfig) GameType() GameType { return GameStrokePlay }
func (StrokePlayConfig) isGameConfig()      {}

// SkinsConfig settles the lowest net score on each hole.
type SkinsConfig struct {
	UnitCents           int64 `json:"unit_cents"`
	Carryover           bool  `json:"carryover"`
	SplitFinalCarryover bool  `json:"split_final_carryover"`
}

func (SkinsConfig) GameType() GameType { return GameSkins }
func (SkinsConfig) isGameConfig()      {}

// SideBetConfig prices per-occurrence side bets. Zero disables a bet.
type SideBetConfig struct {
	BirdieCents  int64 `json:"birdie_cents"`
	GreenieCents int64 `json:"greenie_cents"`
	SandyCents   int64 `json:"sandy_cents"`
}

// SettlementArgs is everything one settlement run consumes.
type SettlementArgs struct {
	Scores      []PlayerScore        `json:"scores"`
	Allocations []StrokeAllocation   `json:"allocations"`
	Names       map[string]string    `json:"names,omitempty"`
	Mode        PairingMode          `json:"mode"`
	Sides       []Side               `json:"sides,omitempty"`
	Selection   HoleSelection        `json:"selection"`
	Scoring     ScoringMode          `json:"scoring"`
	Game        GameConfig           `json:"-"`
	Presses     []ManualPressRequest `json:"presses,omitempty"`
	SideBets    *SideBetConfig       `json:"side_bets,omitempty"`
	Greenies    map[string]int       `json:"greenies,omitempty"`
	Sandies     map[string]int       `json:"sandies,omitempty"`
	Pars        [HoleCount]int       `json:"pars"`
}

// Name returns the display name for a player, falling back to the id.
func (a SettlementArgs) Name(playerID string) string {
	if n, ok := a.Names[playerID]; ok && n != "" {
		return n
	}
	return playerID
}
