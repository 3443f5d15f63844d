// Package invariant checks a finished settlement for engine defects:
// money that appears or disappears, self-directed flows and payments whose
// breakdown does not add up. A failure here is never the caller's fault.
package invariant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fairway/settlement-engine/internal/model"
)

// Violation lists every failed check of one settlement.
type Violation struct {
	Problems []string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", model.ErrInvariant, strings.Join(v.Problems, "; "))
}

func (v *Violation) Unwrap() error { return model.ErrInvariant }

func (v *Violation) addf(format string, args ...any) {
	v.Problems = append(v.Problems, fmt.Sprintf(format, args...))
}

// Validate returns a *Violation when raw transactions or netted payments
// break a settlement invariant, nil otherwise.
func Validate(raw []model.RawTransaction, payments []model.NettedPayment) error {
	v := &Violation{}

	rawBal := make(map[string]int64)
	for i, tx := range raw {
		if tx.FromPlayerID == tx.ToPlayerID {
			v.addf("raw transaction %d is self-directed (%s)", i, tx.FromPlayerID)
		}
		if tx.AmountCents <= 0 {
			v.addf("raw transaction %d has non-positive amount %d", i, tx.AmountCents)
		}
		if tx.Category.GameType == "" || tx.Category.Segment == "" {
			v.addf("raw transaction %d is missing category tags", i)
		}
		rawBal[tx.FromPlayerID] -= tx.AmountCents
		rawBal[tx.ToPlayerID] += tx.AmountCents
	}
	var sum int64
	for _, b := range rawBal {
		sum += b
	}
	if sum != 0 {
		v.addf("raw flows do not balance: %d cents unaccounted", sum)
	}

	payBal := make(map[string]int64)
	for i, p := range payments {
		if p.FromPlayerID == p.ToPlayerID {
			v.addf("payment %d is self-directed (%s)", i, p.FromPlayerID)
		}
		if p.AmountCents <= 0 {
			v.addf("payment %d has non-positive amount %d", i, p.AmountCents)
		}
		var allocated int64
		for _, a := range p.Allocations {
			if a.AmountCents <= 0 {
				v.addf("payment %d has non-positive allocation %d", i, a.AmountCents)
			}
			allocated += a.AmountCents
		}
		if allocated != p.AmountCents {
			v.addf("payment %d allocates %d of %d cents", i, allocated, p.AmountCents)
		}
		payBal[p.FromPlayerID] -= p.AmountCents
		payBal[p.ToPlayerID] += p.AmountCents
	}

	for _, id := range playerIDs(rawBal, payBal) {
		if rawBal[id] != payBal[id] {
			v.addf("player %s nets %d from bets but %d from payments", id, rawBal[id], payBal[id])
		}
	}

	if len(v.Problems) > 0 {
		return v
	}
	return nil
}

func playerIDs(balances ...map[string]int64) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, m := range balances {
		for id := range m {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}
