// Package model defines the core domain types shared across the settlement engine.
// All monetary values are int64 cents — never float64 for money.
package model

// HoleCount is the number of holes on a scorecard.
const HoleCount = 18

// PlayerScore holds one player's gross strokes per hole. Index 0 is hole 1.
// A zero entry means the hole has not been entered yet.
type PlayerScore struct {
	PlayerID string         `json:"player_id"`
	Gross    [HoleCount]int `json:"gross"`
}

// StrokeAllocation holds the handicap strokes a player receives per hole.
// Values may be negative for plus handicaps. Produced by the handicap
// subsystem and treated as opaque here.
type StrokeAllocation struct {
	PlayerID string         `json:"player_id"`
	Strokes  [HoleCount]int `json:"strokes"`
}

// Side is one competing unit: a single player in head-to-head play or a
// two-player team.
type Side struct {
	ID        string   `json:"id"`
	Name      string   `json:"name,omitempty"`
	PlayerIDs []string `json:"player_ids"`
}

// PairingMode controls how players are matched against each other.
type PairingMode string

const (
	PairingIndividual PairingMode = "individual"   // round robin over every player
	PairingHeadToHead PairingMode = "head_to_head" // two sides of one player
	PairingTeams      PairingMode = "teams"        // two sides of two players
)

// ScoringMode controls how a multi-player side's hole score is derived.
type ScoringMode string

const (
	ScoringBestBall  ScoringMode = "best_ball" // lowest member net score
	ScoringAggregate ScoringMode = "aggregate" // sum of member net scores
)

// Party identifies one side of a pairing, or neither.
type Party string

const (
	PartyA Party = "A"
	PartyB Party = "B"
	Halved Party = "halved"
)

// Opponent returns the other side. Halved has no opponent.
func (p Party) Opponent() Party {
	switch p {
	case PartyA:
		return PartyB
	case PartyB:
		return PartyA
	default:
		return Halved
	}
}

// Pairing is a two-sided matchup. ID is the canonical, order-independent
// identifier used for press lookups and netting categories.
type Pairing struct {
	ID    string   `json:"id"`
	SideA []string `json:"side_a"`
	SideB []string `json:"side_b"`
}

// Players returns the player ids on the given side.
func (p Pairing) Players(party Party) []string {
	switch party {
	case PartyA:
		return p.SideA
	case PartyB:
		return p.SideB
	default:
		return nil
	}
}

// PartyOf reports which side a player belongs to.
func (p Pairing) PartyOf(playerID string) (Party, bool) {
	for _, id := range p.SideA {
		if id == playerID {
			return PartyA, true
		}
	}
	for _, id := range p.SideB {
		if id == playerID {
			return PartyB, true
		}
	}
	return Halved, false
}

// HoleResult is one hole of a match state, including the running tally
// after the hole is played.
type HoleResult struct {
	Hole     int   `json:"hole"`
	SideANet int   `json:"side_a_net"`
	SideBNet int   `json:"side_b_net"`
	Winner   Party `json:"winner"`
	Leader   Party `json:"leader"`
	Margin   int   `json:"margin"`
}

// MatchState is the hole-by-hole result of one pairing over one segment.
type MatchState struct {
	PairingID string       `json:"pairing_id"`
	Segment   Segment      `json:"segment"`
	Holes     []HoleResult `json:"holes"`
}

// At returns the result recorded for the given hole.
func (s MatchState) At(hole int) (HoleResult, bool) {
	for _, h := range s.Holes {
		if h.Hole == hole {
			return h, true
		}
	}
	return HoleResult{}, false
}

// MatchResult summarises a completed match state.
type MatchResult struct {
	PairingID string      `json:"pairing_id"`
	Segment   SegmentName `json:"segment"`
	PressID   string      `json:"press_id,omitempty"`
	StartHole int         `json:"start_hole"`
	EndHole   int         `json:"end_hole"`
	HolesWonA int         `json:"holes_won_a"`
	HolesWonB int         `json:"holes_won_b"`
	Halved    int         `json:"halved"`
	Winner    Party       `json:"winner"`
}

// Margin is the absolute difference in holes won.
func (r MatchResult) Margin() int {
	if r.HolesWonA > r.HolesWonB {
		return r.HolesWonA - r.HolesWonB
	}
	return r.HolesWonB - r.HolesWonA
}

// Standing is one player's line in a stroke-play leaderboard.
type Standing struct {
	PlayerID string `json:"player_id"`
	NetTotal int    `json:"net_total"`
	Rank     int    `json:"rank"`
	Winner   bool   `json:"winner"`
}

// SkinsHole records what happened on one hole of a skins game.
type SkinsHole struct {
	Hole     int    `json:"hole"`
	WinnerID string `json:"winner_id,omitempty"` // empty when the hole was tied
	Skins    int    `json:"skins"`               // skins awarded on this hole
	Carry    int    `json:"carry"`               // carry after the hole
}
