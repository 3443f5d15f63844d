package model

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrConfiguration marks a caller mistake detected before any computation.
	ErrConfiguration = errors.New("settlement: invalid configuration")

	// ErrIncomplete marks a round that is not finished for the holes in scope.
	ErrIncomplete = errors.New("settlement: round incomplete")

	// ErrInvariant marks an engine defect found after settlement.
	ErrInvariant = errors.New("settlement: invariant violated")
)

// Category is the attribution tag carried by every raw transaction and
// every ledger bucket.
type Category struct {
	GameType  GameType    `json:"game_type"`
	Segment   SegmentName `json:"segment,omitempty"`
	PairingID string      `json:"pairing_id,omitempty"`
	PressID   string      `json:"press_id,omitempty"`
}

// Key is the stable sort key of the category.
func (c Category) Key() string {
	return string(c.GameType) + "|" + string(c.Segment) + "|" + c.PairingID + "|" + c.PressID
}

// Label renders the category for payment breakdowns, e.g. "nassau front (a_vs_b)".
func (c Category) Label() string {
	var b strings.Builder
	b.WriteString(strings.ReplaceAll(string(c.GameType), "_", " "))
	if c.Segment != "" && (c.Segment != SegmentOverall || c.GameType == GameNassau) {
		b.WriteString(" ")
		b.WriteString(string(c.Segment))
	}
	if c.PressID != "" {
		b.WriteString(" press (")
		b.WriteString(c.PressID)
		b.WriteString(")")
	} else if c.PairingID != "" {
		b.WriteString(" (")
		b.WriteString(c.PairingID)
		b.WriteString(")")
	}
	return b.String()
}

// RawTransaction is one unsimplified payer → payee flow from a single bet outcome.
type RawTransaction struct {
	FromPlayerID string   `json:"from_player_id"`
	ToPlayerID   string   `json:"to_player_id"`
	AmountCents  int64    `json:"amount_cents"`
	Reason       string   `json:"reason"`
	Category     Category `json:"category"`
}

// Allocation is the part of a netted payment funded by one category.
type Allocation struct {
	Category    Category `json:"category"`
	AmountCents int64    `json:"amount_cents"`
}

// NettedPayment is one simplified payment between a net debtor and a net creditor.
type NettedPayment struct {
	FromPlayerID string       `json:"from_player_id"`
	ToPlayerID   string       `json:"to_player_id"`
	AmountCents  int64        `json:"amount_cents"`
	Allocations  []Allocation `json:"allocations"`
	Breakdown    string       `json:"breakdown"`
}

// FormatCents renders cents as dollars, e.g. 1050 → "$10.50".
func FormatCents(cents int64) string {
	if cents < 0 {
		return "-$" + decimal.New(-cents, -2).StringFixed(2)
	}
	return "$" + decimal.New(cents, -2).StringFixed(2)
}
