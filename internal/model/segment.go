package model

import "fmt"

// SegmentName identifies a named hole range.
type SegmentName string

const (
	SegmentFront   SegmentName = "front"
	SegmentBack    SegmentName = "back"
	SegmentOverall SegmentName = "overall"
)

// Order is the position of the segment in settlement order.
func (n SegmentName) Order() int {
	switch n {
	case SegmentFront:
		return 0
	case SegmentBack:
		return 1
	default:
		return 2
	}
}

// Segment is a named, inclusive hole range.
type Segment struct {
	Name  SegmentName `json:"name"`
	Start int         `json:"start"`
	End   int         `json:"end"`
}

// Len is the number of holes in the segment.
func (s Segment) Len() int {
	return s.End - s.Start + 1
}

// Contains reports whether hole falls inside the segment.
func (s Segment) Contains(hole int) bool {
	return hole >= s.Start && hole <= s.End
}

// HoleSelection is which holes of the course a round covers.
type HoleSelection string

const (
	Holes18   HoleSelection = "18"
	FrontNine HoleSelection = "front9"
	BackNine  HoleSelection = "back9"
)

// PlayedRange returns the holes covered by the selection as an overall segment.
func PlayedRange(sel HoleSelection) (Segment, error) {
	switch sel {
	case Holes18:
		return Segment{Name: SegmentOverall, Start: 1, End: 18}, nil
	case FrontNine:
		return Segment{Name: SegmentOverall, Start: 1, End: 9}, nil
	case BackNine:
		return Segment{Name: SegmentOverall, Start: 10, End: 18}, nil
	default:
		return Segment{}, fmt.Errorf("%w: unknown hole selection %q", ErrConfiguration, sel)
	}
}

// SegmentsFor returns the segments that apply to a hole selection, in
// settlement order. Nine-hole rounds only have an overall segment.
func SegmentsFor(sel HoleSelection) ([]Segment, error) {
	played, err := PlayedRange(sel)
	if err != nil {
		return nil, err
	}
	if sel != Holes18 {
		return []Segment{played}, nil
	}
	return []Segment{
		{Name: SegmentFront, Start: 1, End: 9},
		{Name: SegmentBack, Start: 10, End: 18},
		played,
	}, nil
}

// FindSegment looks up a named segment for a hole selection.
func FindSegment(sel HoleSelection, name SegmentName) (Segment, bool) {
	segments, err := SegmentsFor(sel)
	if err != nil {
		return Segment{}, false
	}
	for _, s := range segments {
		if s.Name == name {
			return s, true
		}
	}
	return Segment{}, false
}
