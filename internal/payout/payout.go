// Package payout splits integer cent amounts between sets of players without
// losing or duplicating a cent.
package payout

import (
	"sort"

	"github.com/fairway/settlement-engine/internal/model"
)

// Split divides total among count recipients. The first total%count
// recipients receive one cent more than the rest. The parts always sum to
// total. Returns nil when count < 1.
func Split(total int64, count int) []int64 {
	if count < 1 {
		return nil
	}
	base := total / int64(count)
	remainder := total % int64(count)
	parts := make([]int64, count)
	for i := range parts {
		parts[i] = base
		if int64(i) < remainder {
			parts[i]++
		}
	}
	return parts
}

// Transfer moves perLoserCents from every loser to the winners. The total
// (perLoserCents × len(losers)) is split across the losers, then each
// loser's share is split across the winners, both in player-id order.
// Zero-cent legs are dropped.
func Transfer(losers, winners []string, perLoserCents int64, reason string, cat model.Category) []model.RawTransaction {
	if len(losers) == 0 || len(winners) == 0 || perLoserCents <= 0 {
		return nil
	}
	from := sorted(losers)
	to := sorted(winners)

	total := perLoserCents * int64(len(from))
	var txs []model.RawTransaction
	for i, share := range Split(total, len(from)) {
		for j, part := range Split(share, len(to)) {
			if part == 0 {
				continue
			}
			txs = append(txs, model.RawTransaction{
				FromPlayerID: from[i],
				ToPlayerID:   to[j],
				AmountCents:  part,
				Reason:       reason,
				Category:     cat,
			})
		}
	}
	return txs
}

// Pay is a single payer → payee transaction.
func Pay(from, to string, cents int64, reason string, cat model.Category) []model.RawTransaction {
	return Transfer([]string{from}, []string{to}, cents, reason, cat)
}

func sorted(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}
