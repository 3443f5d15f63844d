// Package press validates manually requested presses and detects automatic
// presses from a match state.
//
// A press is a new wager over the remaining holes of a segment, started by
// the side that has fallen behind. All presses accepted during one
// settlement run are recorded in a Registry owned by that run, so manual and
// automatic presses can never duplicate each other.
package press

import (
	"fmt"

	"github.com/fairway/settlement-engine/internal/model"
)

// MinHolesAfterStart is how many holes an automatic press needs after its
// start hole to be worth placing.
const MinHolesAfterStart = 2

// Registry tracks presses accepted within a single settlement run.
// It is not safe for concurrent use.
type Registry struct {
	keys   map[string]struct{}
	counts map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		keys:   make(map[string]struct{}),
		counts: make(map[string]int),
	}
}

// Has reports whether a press already starts at the given key.
func (r *Registry) Has(key string) bool {
	_, ok := r.keys[key]
	return ok
}

// Count returns the number of presses on a pairing and segment.
func (r *Registry) Count(pairingID string, segment model.SegmentName) int {
	return r.counts[slotKey(pairingID, segment)]
}

// Len is the total number of registered presses.
func (r *Registry) Len() int {
	return len(r.keys)
}

func (r *Registry) register(p model.Press) {
	r.keys[p.ID] = struct{}{}
	r.counts[slotKey(p.PairingID, p.Segment)]++
}

func slotKey(pairingID string, segment model.SegmentName) string {
	return pairingID + ":" + string(segment)
}

// Range is the hole range a press is evaluated over.
func Range(p model.Press) model.Segment {
	return model.Segment{Name: p.Segment, Start: p.StartHole, End: p.EndHole}
}

// ValidateManualPress checks a requested press against the match state of
// its segment and registers it when accepted. state may be partial; the
// evaluation hole must have been played.
func ValidateManualPress(
	req model.ManualPressRequest,
	cfg model.PressConfig,
	pairing model.Pairing,
	seg model.Segment,
	state model.MatchState,
	reg *Registry,
	valueCents int64,
) model.PressDecision {
	cfg = cfg.Normalized()
	reject := func(format string, args ...any) model.PressDecision {
		return model.PressDecision{Request: req, Reason: fmt.Sprintf(format, args...)}
	}

	if !cfg.Enabled {
		return reject("presses are not enabled")
	}
	if req.PairingID != pairing.ID || state.PairingID != pairing.ID {
		return reject("press is for pairing %s, not %s", req.PairingID, pairing.ID)
	}
	if req.Segment != seg.Name {
		return reject("press is for segment %s, not %s", req.Segment, seg.Name)
	}
	if !cfg.Pressable(seg.Name) {
		return reject("presses do not apply to the %s segment", seg.Name)
	}
	if !seg.Contains(req.StartHole) {
		return reject("start hole %d is outside the %s segment (%d-%d)", req.StartHole, seg.Name, seg.Start, seg.End)
	}
	party, ok := pairing.PartyOf(req.RequestedBy)
	if !ok {
		return reject("player %s is not in pairing %s", req.RequestedBy, pairing.ID)
	}
	if n := reg.Count(pairing.ID, seg.Name); n >= cfg.MaxPerSegment {
		return reject("%s already has %d presses on the %s segment", pairing.ID, n, seg.Name)
	}
	key := model.PressKey(pairing.ID, seg.Name, req.StartHole)
	if reg.Has(key) {
		return reject("a press already starts on hole %d", req.StartHole)
	}

	evalHole := req.StartHole
	if cfg.StartRule == model.PressNextHole {
		evalHole--
	}
	if evalHole < seg.Start {
		evalHole = seg.Start
	}
	hole, played := state.At(evalHole)
	if !played {
		return reject("hole %d has not been played", evalHole)
	}
	if hole.Leader != party.Opponent() || hole.Margin < cfg.TriggerDown {
		down := 0
		if hole.Leader == party.Opponent() {
			down = hole.Margin
		}
		return reject("requesting side is %d down after hole %d, needs %d", down, evalHole, cfg.TriggerDown)
	}

	p := model.Press{
		ID:         key,
		PairingID:  pairing.ID,
		Segment:    seg.Name,
		StartHole:  req.StartHole,
		EndHole:    seg.End,
		PressedBy:  party,
		ValueCents: valueCents,
		Source:     model.PressSourceManual,
	}
	reg.register(p)
	return model.PressDecision{Request: req, Accepted: true, Press: &p}
}

// DetectAutoPresses scans a segment's match state and places a press each
// time the trailing side first falls TriggerDown behind. Presses that would
// leave fewer than MinHolesAfterStart holes after their start are skipped
// without using a slot.
func DetectAutoPresses(
	cfg model.PressConfig,
	pairing model.Pairing,
	seg model.Segment,
	state model.MatchState,
	reg *Registry,
	valueCents int64,
) []model.Press {
	cfg = cfg.Normalized()
	if cfg.Mode != model.PressAuto || !cfg.Pressable(seg.Name) {
		return nil
	}

	var presses []model.Press
	prevLeader, prevMargin := model.Halved, 0
	for _, h := range state.Holes {
		crossed := h.Margin >= cfg.TriggerDown &&
			(prevMargin < cfg.TriggerDown || prevLeader != h.Leader)
		prevLeader, prevMargin = h.Leader, h.Margin
		if !crossed {
			continue
		}

		start := h.Hole
		if cfg.StartRule == model.PressNextHole {
			start++
		}
		if seg.End-start < MinHolesAfterStart {
			continue
		}
		if reg.Count(pairing.ID, seg.Name) >= cfg.MaxPerSegment {
			continue
		}
		key := model.PressKey(pairing.ID, seg.Name, start)
		if reg.Has(key) {
			continue
		}

		p := model.Press{
			ID:         key,
			PairingID:  pairing.ID,
			Segment:    seg.Name,
			StartHole:  start,
			EndHole:    seg.End,
			PressedBy:  h.Leader.Opponent(),
			ValueCents: valueCents,
			Source:     model.PressSourceAuto,
		}
		reg.register(p)
		presses = append(presses, p)
	}
	return presses
}
