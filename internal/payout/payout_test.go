package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairway/settlement-engine/internal/model"
	"github.com/fairway/settlement-engine/internal/testutil"
)

func sum(parts []int64) int64 {
	var s int64
	for _, p := range parts {
		s += p
	}
	return s
}

func TestSplit_SumsExactly(t *testing.T) {
	for total := int64(0); total <= 1001; total += 37 {
		for count := 1; count <= 7; count++ {
			parts := Split(total, count)
			require.Len(t, parts, count)
			assert.Equal(t, total, sum(parts), "total=%d count=%d", total, count)
			for i := 1; i < count; i++ {
				assert.LessOrEqual(t, parts[i], parts[i-1])
				assert.LessOrEqual(t, parts[0]-parts[i], int64(1))
			}
		}
	}
}

func TestSplit_RemainderGoesFirst(t *testing.T) {
	assert.Equal(t, []int64{334, 333, 333}, Split(1000, 3))
	assert.Equal(t, []int64{5}, Split(5, 1))
	assert.Nil(t, Split(5, 0))
}

func TestTransfer_HeadToHead(t *testing.T) {
	cat := model.Category{GameType: model.GameNassau, Segment: model.SegmentFront, PairingID: "a_vs_b"}
	txs := Transfer([]string{"b"}, []string{"a"}, 1000, "front", cat)
	require.Len(t, txs, 1)
	assert.Equal(t, model.RawTransaction{FromPlayerID: "b", ToPlayerID: "a", AmountCents: 1000, Reason: "front", Category: cat}, txs[0])
}

func TestTransfer_TeamsTwoLevel(t *testing.T) {
	txs := Transfer([]string{"l2", "l1"}, []string{"w2", "w1", "w3"}, 1000, "", model.Category{GameType: model.GameMatchPlay})
	assert.Equal(t, int64(2000), testutil.SumCents(txs))

	bal := testutil.Balances(txs)
	assert.Equal(t, int64(-1000), bal["l1"])
	assert.Equal(t, int64(-1000), bal["l2"])
	// each loser splits 1000 as 334/333/333 in id order, so w1 gets two extra cents
	assert.Equal(t, int64(668), bal["w1"])
	assert.Equal(t, int64(666), bal["w2"])
	assert.Equal(t, int64(666), bal["w3"])
}

func TestTransfer_DropsZeroLegs(t *testing.T) {
	txs := Transfer([]string{"l"}, []string{"w1", "w2", "w3"}, 2, "", model.Category{GameType: model.GameSkins})
	require.Len(t, txs, 2)
	assert.Equal(t, int64(2), testutil.SumCents(txs))
}

func TestTransfer_Empty(t *testing.T) {
	assert.Nil(t, Transfer(nil, []string{"w"}, 100, "", model.Category{}))
	assert.Nil(t, Transfer([]string{"l"}, nil, 100, "", model.Category{}))
	assert.Nil(t, Pay("l", "w", 0, "", model.Category{}))
}
