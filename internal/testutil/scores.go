// Package testutil builds scorecard fixtures for tests.
package testutil

import "github.com/fairway/settlement-engine/internal/model"

// Flat returns a score line with the same gross score on all 18 holes.
func Flat(playerID string, gross int) model.PlayerScore {
	s := model.PlayerScore{PlayerID: playerID}
	for i := range s.Gross {
		s.Gross[i] = gross
	}
	return s
}

// Score returns a flat score line with per-hole overrides keyed by hole number.
func Score(playerID string, base int, holes map[int]int) model.PlayerScore {
	s := Flat(playerID, base)
	for h, g := range holes {
		s.Gross[h-1] = g
	}
	return s
}

// Strokes returns an allocation giving the player strokes on the listed holes.
func Strokes(playerID string, holes map[int]int) model.StrokeAllocation {
	a := model.StrokeAllocation{PlayerID: playerID}
	for h, n := range holes {
		a.Strokes[h-1] = n
	}
	return a
}

// Pars returns a par-4 course with per-hole overrides.
func Pars(overrides map[int]int) [model.HoleCount]int {
	var p [model.HoleCount]int
	for i := range p {
		p[i] = 4
	}
	for h, v := range overrides {
		p[h-1] = v
	}
	return p
}

// SumCents totals the amounts of raw transactions.
func SumCents(txs []model.RawTransaction) int64 {
	var total int64
	for _, tx := range txs {
		total += tx.AmountCents
	}
	return total
}

// Balances returns each player's net position implied by raw transactions.
func Balances(txs []model.RawTransaction) map[string]int64 {
	out := make(map[string]int64)
	for _, tx := range txs {
		out[tx.FromPlayerID] -= tx.AmountCents
		out[tx.ToPlayerID] += tx.AmountCents
	}
	return out
}
