package press

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairway/settlement-engine/internal/match"
	"github.com/fairway/settlement-engine/internal/model"
	"github.com/fairway/settlement-engine/internal/testutil"
)

var (
	front   = model.Segment{Name: model.SegmentFront, Start: 1, End: 9}
	back    = model.Segment{Name: model.SegmentBack, Start: 10, End: 18}
	pairing = model.Pairing{ID: "amy_vs_bob", SideA: []string{"amy"}, SideB: []string{"bob"}}
)

// amy wins holes 1, 2 and 4 on the front; bob wins hole 10 on the back.
func fixtureState(t *testing.T, seg model.Segment) model.MatchState {
	t.Helper()
	card, err := match.NewScorecard([]model.PlayerScore{
		testutil.Score("amy", 4, map[int]int{1: 3, 2: 3, 4: 3}),
		testutil.Score("bob", 4, map[int]int{10: 3}),
	}, nil)
	require.NoError(t, err)
	state, err := match.Build(card, pairing, seg, model.ScoringBestBall)
	require.NoError(t, err)
	return state
}

func manualCfg() model.PressConfig {
	return model.PressConfig{Enabled: true, Mode: model.PressManual, TriggerDown: 2, StartRule: model.PressNextHole, MaxPerSegment: 2}
}

func TestValidateManualPress_Accepted(t *testing.T) {
	reg := NewRegistry()
	state := fixtureState(t, front)

	// bob is 2 down after hole 2, so he may press from hole 3.
	d := ValidateManualPress(model.ManualPressRequest{
		PairingID: pairing.ID, Segment: model.SegmentFront, StartHole: 3, RequestedBy: "bob",
	}, manualCfg(), pairing, front, state, reg, 500)

	require.True(t, d.Accepted, d.Reason)
	require.NotNil(t, d.Press)
	assert.Equal(t, "amy_vs_bob:front:3", d.Press.ID)
	assert.Equal(t, 3, d.Press.StartHole)
	assert.Equal(t, 9, d.Press.EndHole)
	assert.Equal(t, model.PartyB, d.Press.PressedBy)
	assert.Equal(t, int64(500), d.Press.ValueCents)
	assert.Equal(t, 1, reg.Count(pairing.ID, model.SegmentFront))
}

func TestValidateManualPress_OnlyOneDown(t *testing.T) {
	reg := NewRegistry()
	state := fixtureState(t, front)

	// After hole 1 bob is only 1 down; the threshold is 2.
	d := ValidateManualPress(model.ManualPressRequest{
		PairingID: pairing.ID, Segment: model.SegmentFront, StartHole: 2, RequestedBy: "bob",
	}, manualCfg(), pairing, front, state, reg, 500)

	assert.False(t, d.Accepted)
	assert.Contains(t, d.Reason, "1 down")
	assert.Nil(t, d.Press)
	assert.Equal(t, 0, reg.Len())
}

func TestValidateManualPress_LeaderCannotPress(t *testing.T) {
	d := ValidateManualPress(model.ManualPressRequest{
		PairingID: pairing.ID, Segment: model.SegmentFront, StartHole: 3, RequestedBy: "amy",
	}, manualCfg(), pairing, front, fixtureState(t, front), NewRegistry(), 500)
	assert.False(t, d.Accepted)
	assert.Contains(t, d.Reason, "0 down")
}

func TestValidateManualPress_DuplicateAndCap(t *testing.T) {
	reg := NewRegistry()
	state := fixtureState(t, front)
	req := model.ManualPressRequest{PairingID: pairing.ID, Segment: model.SegmentFront, StartHole: 3, RequestedBy: "bob"}

	require.True(t, ValidateManualPress(req, manualCfg(), pairing, front, state, reg, 500).Accepted)

	dup := ValidateManualPress(req, manualCfg(), pairing, front, state, reg, 500)
	assert.False(t, dup.Accepted)
	assert.Contains(t, dup.Reason, "already starts")

	req.StartHole = 5 // bob is 3 down after hole 4
	require.True(t, ValidateManualPress(req, manualCfg(), pairing, front, state, reg, 500).Accepted)

	req.StartHole = 6
	capped := ValidateManualPress(req, manualCfg(), pairing, front, state, reg, 500)
	assert.False(t, capped.Accepted)
	assert.Contains(t, capped.Reason, "already has 2 presses")
}

func TestValidateManualPress_EvaluationClampedToSegmentStart(t *testing.T) {
	state := fixtureState(t, back)
	cfg := manualCfg()
	cfg.TriggerDown = 1

	// A press from hole 10 must not look at hole 9; amy is 1 down after hole 10.
	d := ValidateManualPress(model.ManualPressRequest{
		PairingID: pairing.ID, Segment: model.SegmentBack, StartHole: 10, RequestedBy: "amy",
	}, cfg, pairing, back, state, NewRegistry(), 500)
	assert.True(t, d.Accepted, d.Reason)
}

func TestValidateManualPress_UnplayedHole(t *testing.T) {
	card, err := match.NewScorecard([]model.PlayerScore{
		testutil.Score("amy", 4, map[int]int{1: 3, 2: 3, 3: 0, 4: 0, 5: 0, 6: 0, 7: 0, 8: 0, 9: 0}),
		testutil.Flat("bob", 4),
	}, nil)
	require.NoError(t, err)
	state, err := match.BuildPlayed(card, pairing, front, model.ScoringBestBall)
	require.NoError(t, err)

	d := ValidateManualPress(model.ManualPressRequest{
		PairingID: pairing.ID, Segment: model.SegmentFront, StartHole: 5, RequestedBy: "bob",
	}, manualCfg(), pairing, front, state, NewRegistry(), 500)
	assert.False(t, d.Accepted)
	assert.Contains(t, d.Reason, "not been played")
}

func TestValidateManualPress_SameHoleRule(t *testing.T) {
	cfg := manualCfg()
	cfg.StartRule = model.PressSameHole
	state := fixtureState(t, front)

	// Under the same-hole rule the deficit is read on the start hole itself.
	d := ValidateManualPress(model.ManualPressRequest{
		PairingID: pairing.ID, Segment: model.SegmentFront, StartHole: 2, RequestedBy: "bob",
	}, cfg, pairing, front, state, NewRegistry(), 500)
	assert.True(t, d.Accepted, d.Reason)
}

func TestValidateManualPress_Rejections(t *testing.T) {
	state := fixtureState(t, front)
	base := model.ManualPressRequest{PairingID: pairing.ID, Segment: model.SegmentFront, StartHole: 3, RequestedBy: "bob"}

	disabled := manualCfg()
	disabled.Enabled = false
	assert.False(t, ValidateManualPress(base, disabled, pairing, front, state, NewRegistry(), 500).Accepted)

	outside := base
	outside.StartHole = 12
	assert.False(t, ValidateManualPress(outside, manualCfg(), pairing, front, state, NewRegistry(), 500).Accepted)

	stranger := base
	stranger.RequestedBy = "cal"
	assert.False(t, ValidateManualPress(stranger, manualCfg(), pairing, front, state, NewRegistry(), 500).Accepted)

	overall := model.Segment{Name: model.SegmentOverall, Start: 1, End: 18}
	ovReq := base
	ovReq.Segment = model.SegmentOverall
	d := ValidateManualPress(ovReq, manualCfg(), pairing, overall, fixtureState(t, overall), NewRegistry(), 500)
	assert.False(t, d.Accepted)
	assert.Contains(t, d.Reason, "overall")
}

func TestDetectAutoPresses_TriggersOncePerCrossing(t *testing.T) {
	cfg := model.PressConfig{Enabled: true, Mode: model.PressAuto, TriggerDown: 2, MaxPerSegment: 3}
	reg := NewRegistry()

	// amy goes 2 up after hole 2 and 3 up after hole 4: one crossing only.
	presses := DetectAutoPresses(cfg, pairing, front, fixtureState(t, front), reg, 1000)
	require.Len(t, presses, 1)
	assert.Equal(t, 3, presses[0].StartHole)
	assert.Equal(t, model.PartyB, presses[0].PressedBy)
	assert.Equal(t, model.PressSourceAuto, presses[0].Source)
	assert.Equal(t, int64(1000), presses[0].ValueCents)
}

func TestDetectAutoPresses_Recrossing(t *testing.T) {
	card, err := match.NewScorecard([]model.PlayerScore{
		// amy: 2 up after 2, back to 1 up after 3, 2 up again after 4.
		testutil.Score("amy", 4, map[int]int{1: 3, 2: 3, 3: 5, 4: 3}),
		testutil.Flat("bob", 4),
	}, nil)
	require.NoError(t, err)
	state, err := match.Build(card, pairing, front, model.ScoringBestBall)
	require.NoError(t, err)

	cfg := model.PressConfig{Enabled: true, Mode: model.PressAuto, TriggerDown: 2, MaxPerSegment: 5}
	presses := DetectAutoPresses(cfg, pairing, front, state, NewRegistry(), 1000)
	require.Len(t, presses, 2)
	assert.Equal(t, 3, presses[0].StartHole)
	assert.Equal(t, 5, presses[1].StartHole)
}

func TestDetectAutoPresses_SkipsLateTrigger(t *testing.T) {
	card, err := match.NewScorecard([]model.PlayerScore{
		testutil.Score("amy", 4, map[int]int{7: 3, 8: 3}),
		testutil.Flat("bob", 4),
	}, nil)
	require.NoError(t, err)
	state, err := match.Build(card, pairing, front, model.ScoringBestBall)
	require.NoError(t, err)

	cfg := model.PressConfig{Enabled: true, Mode: model.PressAuto, TriggerDown: 2}
	reg := NewRegistry()
	assert.Empty(t, DetectAutoPresses(cfg, pairing, front, state, reg, 1000))
	assert.Equal(t, 0, reg.Count(pairing.ID, model.SegmentFront))
}

func TestDetectAutoPresses_RespectsManualRegistry(t *testing.T) {
	reg := NewRegistry()
	state := fixtureState(t, front)
	manual := ValidateManualPress(model.ManualPressRequest{
		PairingID: pairing.ID, Segment: model.SegmentFront, StartHole: 3, RequestedBy: "bob",
	}, manualCfg(), pairing, front, state, reg, 500)
	require.True(t, manual.Accepted)

	cfg := model.PressConfig{Enabled: true, Mode: model.PressAuto, TriggerDown: 2, MaxPerSegment: 3}
	assert.Empty(t, DetectAutoPresses(cfg, pairing, front, state, reg, 500))
	assert.Equal(t, 1, reg.Len())
}

func TestDetectAutoPresses_ManualModeDoesNothing(t *testing.T) {
	assert.Empty(t, DetectAutoPresses(manualCfg(), pairing, front, fixtureState(t, front), NewRegistry(), 500))
}
