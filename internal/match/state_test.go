package match

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairway/settlement-engine/internal/model"
	"github.com/fairway/settlement-engine/internal/testutil"
)

var front = model.Segment{Name: model.SegmentFront, Start: 1, End: 9}

func heads(a, b string) model.Pairing {
	return model.Pairing{ID: a + "_vs_" + b, SideA: []string{a}, SideB: []string{b}}
}

func TestBuild_RunningMargin(t *testing.T) {
	card, err := NewScorecard([]model.PlayerScore{
		testutil.Score("a", 4, map[int]int{1: 3, 2: 3, 3: 5}),
		testutil.Flat("b", 4),
	}, nil)
	require.NoError(t, err)

	state, err := Build(card, heads("a", "b"), front, model.ScoringBestBall)
	require.NoError(t, err)
	require.Len(t, state.Holes, 9)

	assert.Equal(t, model.HoleResult{Hole: 1, SideANet: 3, SideBNet: 4, Winner: model.PartyA, Leader: model.PartyA, Margin: 1}, state.Holes[0])
	assert.Equal(t, model.PartyA, state.Holes[1].Leader)
	assert.Equal(t, 2, state.Holes[1].Margin)
	assert.Equal(t, model.PartyB, state.Holes[2].Winner)
	assert.Equal(t, 1, state.Holes[2].Margin)
	assert.Equal(t, model.Halved, state.Holes[3].Winner)

	r := Result(state, "")
	assert.Equal(t, 2, r.HolesWonA)
	assert.Equal(t, 1, r.HolesWonB)
	assert.Equal(t, 6, r.Halved)
	assert.Equal(t, model.PartyA, r.Winner)
	assert.Equal(t, 1, r.Margin())
}

func TestBuild_StrokesReceived(t *testing.T) {
	card, err := NewScorecard(
		[]model.PlayerScore{testutil.Flat("a", 4), testutil.Score("b", 4, map[int]int{1: 5})},
		[]model.StrokeAllocation{testutil.Strokes("b", map[int]int{1: 1, 2: 1}), testutil.Strokes("a", map[int]int{3: -1})},
	)
	require.NoError(t, err)

	state, err := Build(card, heads("a", "b"), front, model.ScoringBestBall)
	require.NoError(t, err)
	assert.Equal(t, model.Halved, state.Holes[0].Winner) // 4 vs 5-1
	assert.Equal(t, model.PartyB, state.Holes[1].Winner) // 4 vs 3
	assert.Equal(t, 5, state.Holes[2].SideANet)          // plus handicap gives a stroke back
	assert.Equal(t, model.PartyB, state.Holes[2].Winner)
}

func TestBuild_ScoringModes(t *testing.T) {
	card, err := NewScorecard([]model.PlayerScore{
		testutil.Score("a1", 4, map[int]int{1: 3}),
		testutil.Score("a2", 4, map[int]int{1: 7}),
		testutil.Flat("b1", 4),
		testutil.Flat("b2", 4),
	}, nil)
	require.NoError(t, err)
	p := model.Pairing{ID: "x_vs_y", SideA: []string{"a1", "a2"}, SideB: []string{"b1", "b2"}}

	best, err := Build(card, p, front, model.ScoringBestBall)
	require.NoError(t, err)
	assert.Equal(t, 3, best.Holes[0].SideANet)
	assert.Equal(t, model.PartyA, best.Holes[0].Winner)

	agg, err := Build(card, p, front, model.ScoringAggregate)
	require.NoError(t, err)
	assert.Equal(t, 10, agg.Holes[0].SideANet)
	assert.Equal(t, 8, agg.Holes[0].SideBNet)
	assert.Equal(t, model.PartyB, agg.Holes[0].Winner)

	_, err = Build(card, p, front, "stableford")
	assert.True(t, errors.Is(err, model.ErrConfiguration))
}

func TestBuild_FailsOnMissingHole(t *testing.T) {
	card, err := NewScorecard([]model.PlayerScore{
		testutil.Score("a", 4, map[int]int{7: 0}),
		testutil.Flat("b", 4),
	}, nil)
	require.NoError(t, err)

	_, err = Build(card, heads("a", "b"), front, model.ScoringBestBall)
	assert.True(t, errors.Is(err, model.ErrIncomplete))

	// The back nine never reads hole 7.
	back := model.Segment{Name: model.SegmentBack, Start: 10, End: 18}
	_, err = Build(card, heads("a", "b"), back, model.ScoringBestBall)
	assert.NoError(t, err)
}

func TestBuild_FailsOnInvalidScore(t *testing.T) {
	card, err := NewScorecard([]model.PlayerScore{
		testutil.Score("a", 4, map[int]int{2: -3}),
		testutil.Flat("b", 4),
	}, nil)
	require.NoError(t, err)

	_, err = Build(card, heads("a", "b"), front, model.ScoringBestBall)
	assert.True(t, errors.Is(err, model.ErrIncomplete))
}

func TestBuildPlayed_StopsAtFirstGap(t *testing.T) {
	card, err := NewScorecard([]model.PlayerScore{
		testutil.Score("a", 4, map[int]int{5: 0, 6: 0}),
		testutil.Flat("b", 4),
	}, nil)
	require.NoError(t, err)

	state, err := BuildPlayed(card, heads("a", "b"), front, model.ScoringBestBall)
	require.NoError(t, err)
	assert.Len(t, state.Holes, 4)
	_, ok := state.At(5)
	assert.False(t, ok)
}

func TestNewScorecard_Duplicates(t *testing.T) {
	_, err := NewScorecard([]model.PlayerScore{testutil.Flat("a", 4), testutil.Flat("a", 5)}, nil)
	assert.True(t, errors.Is(err, model.ErrConfiguration))
}

func TestScorecard_NetTotal(t *testing.T) {
	card, err := NewScorecard(
		[]model.PlayerScore{testutil.Flat("a", 5)},
		[]model.StrokeAllocation{testutil.Strokes("a", map[int]int{1: 1, 2: 1})},
	)
	require.NoError(t, err)
	total, err := card.NetTotal("a", front)
	require.NoError(t, err)
	assert.Equal(t, 43, total)

	_, err = card.NetTotal("ghost", front)
	assert.True(t, errors.Is(err, model.ErrIncomplete))
}
