// Package netting collapses raw transactions into the smallest deterministic
// set of payments between net debtors and net creditors. Every payment
// carries the category buckets it was allocated from so it can be traced
// back to the bets it settles.
package netting

import (
	"sort"
	"strings"

	"github.com/fairway/settlement-engine/internal/model"
)

// ledger holds one player's signed balance per category.
type ledger struct {
	buckets map[string]int64
	cats    map[string]model.Category
}

func newLedger() *ledger {
	return &ledger{buckets: make(map[string]int64), cats: make(map[string]model.Category)}
}

func (l *ledger) add(cat model.Category, cents int64) {
	k := cat.Key()
	l.buckets[k] += cents
	l.cats[k] = cat
}

func (l *ledger) total() int64 {
	var t int64
	for _, v := range l.buckets {
		t += v
	}
	return t
}

// lossTracker is a per-debtor copy of the remaining loss in each losing
// bucket, consumed in ascending key order.
type lossTracker struct {
	keys      []string
	remaining map[string]int64
	cats      map[string]model.Category
}

func newLossTracker(l *ledger) *lossTracker {
	t := &lossTracker{remaining: make(map[string]int64), cats: l.cats}
	for k, v := range l.buckets {
		if v < 0 {
			t.keys = append(t.keys, k)
			t.remaining[k] = -v
		}
	}
	sort.Strings(t.keys)
	return t
}

// take allocates amount against the smallest keys that still carry a loss.
func (t *lossTracker) take(amount int64) []model.Allocation {
	var out []model.Allocation
	for _, k := range t.keys {
		if amount == 0 {
			break
		}
		left := t.remaining[k]
		if left == 0 {
			continue
		}
		n := min(left, amount)
		t.remaining[k] = left - n
		amount -= n
		out = append(out, model.Allocation{Category: t.cats[k], AmountCents: n})
	}
	return out
}

type position struct {
	playerID string
	cents    int64 // absolute outstanding amount
}

// Balances returns each player's net position from raw transactions.
// Players whose flows cancel out are present with a zero balance.
func Balances(txs []model.RawTransaction) map[string]int64 {
	out := make(map[string]int64)
	for _, tx := range txs {
		out[tx.FromPlayerID] -= tx.AmountCents
		out[tx.ToPlayerID] += tx.AmountCents
	}
	return out
}

// Net reduces raw transactions to netted payments. The output depends only
// on the set of transactions, not on their order.
func Net(txs []model.RawTransaction) []model.NettedPayment {
	ledgers := make(map[string]*ledger)
	get := func(id string) *ledger {
		l, ok := ledgers[id]
		if !ok {
			l = newLedger()
			ledgers[id] = l
		}
		return l
	}
	for _, tx := range txs {
		get(tx.FromPlayerID).add(tx.Category, -tx.AmountCents)
		get(tx.ToPlayerID).add(tx.Category, tx.AmountCents)
	}

	ids := make([]string, 0, len(ledgers))
	for id := range ledgers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var debtors, creditors []position
	for _, id := range ids {
		switch bal := ledgers[id].total(); {
		case bal < 0:
			debtors = append(debtors, position{playerID: id, cents: -bal})
		case bal > 0:
			creditors = append(creditors, position{playerID: id, cents: bal})
		}
	}

	trackers := make(map[string]*lossTracker, len(debtors))
	var payments []model.NettedPayment
	d, c := 0, 0
	for d < len(debtors) && c < len(creditors) {
		debtor, creditor := &debtors[d], &creditors[c]
		amount := min(debtor.cents, creditor.cents)

		t, ok := trackers[debtor.playerID]
		if !ok {
			t = newLossTracker(ledgers[debtor.playerID])
			trackers[debtor.playerID] = t
		}
		allocs := t.take(amount)
		payments = append(payments, model.NettedPayment{
			FromPlayerID: debtor.playerID,
			ToPlayerID:   creditor.playerID,
			AmountCents:  amount,
			Allocations:  allocs,
			Breakdown:    Breakdown(allocs),
		})

		debtor.cents -= amount
		creditor.cents -= amount
		if debtor.cents == 0 {
			d++
		}
		if creditor.cents == 0 {
			c++
		}
	}
	return payments
}

// Breakdown renders allocations as "$4.00 from nassau front (a_vs_b) + $6.00 from skins".
func Breakdown(allocs []model.Allocation) string {
	parts := make([]string, len(allocs))
	for i, a := range allocs {
		parts[i] = model.FormatCents(a.AmountCents) + " from " + a.Category.Label()
	}
	return strings.Join(parts, " + ")
}
