package model

import "fmt"

// PressMode selects whether presses are only requested manually or also
// triggered automatically when a side falls N down.
type PressMode string

const (
	PressManual PressMode = "manual"
	PressAuto   PressMode = "auto"
)

// PressStartRule selects which hole a press starts on relative to the
// hole where the deficit is evaluated.
type PressStartRule string

const (
	PressNextHole PressStartRule = "next_hole"
	PressSameHole PressStartRule = "same_hole"
)

// Press defaults applied by Normalized.
const (
	DefaultPressTrigger = 2
	DefaultPressCap     = 2
)

// PressConfig configures presses on a Nassau.
type PressConfig struct {
	Enabled        bool           `json:"enabled"`
	Mode           PressMode      `json:"mode"`
	TriggerDown    int            `json:"trigger_down"`
	StartRule      PressStartRule `json:"start_rule"`
	MaxPerSegment  int            `json:"max_per_segment"`
	ApplyToOverall bool           `json:"apply_to_overall"`
	AmountCents    int64          `json:"amount_cents"` // 0 = the segment's amount
}

// Normalized fills defaults for unset fields.
func (c PressConfig) Normalized() PressConfig {
	if c.Mode == "" {
		c.Mode = PressManual
	}
	if c.TriggerDown <= 0 {
		c.TriggerDown = DefaultPressTrigger
	}
	if c.StartRule == "" {
		c.StartRule = PressNextHole
	}
	if c.MaxPerSegment <= 0 {
		c.MaxPerSegment = DefaultPressCap
	}
	return c
}

// Pressable reports whether presses may be placed on the segment.
func (c PressConfig) Pressable(name SegmentName) bool {
	if !c.Enabled {
		return false
	}
	return name != SegmentOverall || c.ApplyToOverall
}

// PressSource records how a press came to exist.
type PressSource string

const (
	PressSourceManual PressSource = "manual"
	PressSourceAuto   PressSource = "auto"
)

// Press is a side wager over [StartHole, EndHole] of a segment.
type Press struct {
	ID         string       `json:"id"`
	PairingID  string       `json:"pairing_id"`
	Segment    SegmentName  `json:"segment"`
	StartHole  int          `json:"start_hole"`
	EndHole    int          `json:"end_hole"`
	PressedBy  Party        `json:"pressed_by"`
	ValueCents int64        `json:"value_cents"`
	Source     PressSource  `json:"source"`
	Result     *MatchResult `json:"result,omitempty"`
}

// PressKey is the registry key and press id for a pairing, segment and start hole.
func PressKey(pairingID string, segment SegmentName, startHole int) string {
	return fmt.Sprintf("%s:%s:%d", pairingID, segment, startHole)
}

// ManualPressRequest is a press a player asked for.
type ManualPressRequest struct {
	PairingID   string      `json:"pairing_id"`
	Segment     SegmentName `json:"segment"`
	StartHole   int         `json:"start_hole"`
	RequestedBy string      `json:"requested_by"`
}

// PressDecision is the outcome of validating a manual press. Rejection is
// a value, not an error.
type PressDecision struct {
	Request  ManualPressRequest `json:"request"`
	Accepted bool               `json:"accepted"`
	Reason   string             `json:"reason,omitempty"`
	Press    *Press             `json:"press,omitempty"`
}
