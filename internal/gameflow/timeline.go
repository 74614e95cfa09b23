package gameflow

import (
	"GameFlowApi/internal/clock"
	"sort"
)

// SegmentKind labels a timeline segment as court time or bench time.
type SegmentKind string

const (
	SegmentOnCourt  SegmentKind = "on-court"
	SegmentOffCourt SegmentKind = "off-court"
)

// Segment is one span of a player's lane within a period block, in layout
// units. On-court segments carry a back-reference to their Stint for detail
// lookup; the reference is never serialized.
type Segment struct {
	Start float64     `json:"startOffset"`
	Width float64     `json:"length"`
	Kind  SegmentKind `json:"kind"`
	Stint *Stint      `json:"-"`
}

// PeriodBlock is one period's worth of a player's timeline: its horizontal
// offset within the full game layout plus the alternating segments that fill
// its width exactly.
type PeriodBlock struct {
	Period   int       `json:"period"`
	Offset   float64   `json:"offset"`
	Width    float64   `json:"width"`
	Segments []Segment `json:"segments"`
}

// SecondsToPosition maps a seconds offset onto a linear coordinate axis.
// Exact at both ends: 0 maps to 0 and totalSeconds maps to totalWidth, so two
// stints ending at the same game clock always share an end coordinate.
func SecondsToPosition(seconds, totalWidth, totalSeconds float64) float64 {
	if totalSeconds <= 0 {
		return 0
	}
	return seconds / totalSeconds * totalWidth
}

// PeriodWidth returns a period block's width given the width of a regulation
// block. Overtime blocks are proportional: 5/12 of a regulation quarter.
func PeriodWidth(period int, regulationWidth float64) float64 {
	return regulationWidth * clock.PeriodSeconds(period) / clock.RegulationSeconds
}

// PeriodSegments lays out one player's stints within one period as an ordered
// alternation of off-court and on-court segments covering [0, width] with no
// gaps. The final segment always extends to the full width, so rounding can
// never leave a sliver at the right edge.
func PeriodSegments(stints []Stint, period int, width float64) []Segment {
	periodStart := clock.PeriodStart(period)
	periodSeconds := clock.PeriodSeconds(period)

	inPeriod := make([]*Stint, 0, len(stints))
	for i := range stints {
		if stints[i].Period == period {
			inPeriod = append(inPeriod, &stints[i])
		}
	}
	sort.SliceStable(inPeriod, func(i, j int) bool {
		return inPeriod[i].start < inPeriod[j].start
	})

	segments := make([]Segment, 0, 2*len(inPeriod)+1)
	cursor := 0.0
	for _, st := range inPeriod {
		from := st.start - periodStart
		to := st.end - periodStart

		if from > cursor {
			segments = append(segments, offSegment(cursor, from, width, periodSeconds))
		}
		startPos := SecondsToPosition(from, width, periodSeconds)
		endPos := SecondsToPosition(to, width, periodSeconds)
		segments = append(segments, Segment{
			Start: startPos,
			Width: endPos - startPos,
			Kind:  SegmentOnCourt,
			Stint: st,
		})
		cursor = to
	}

	if cursor < periodSeconds || len(segments) == 0 {
		segments = append(segments, offSegment(cursor, periodSeconds, width, periodSeconds))
	}

	// Pin the last segment's right edge to the block width.
	last := &segments[len(segments)-1]
	last.Width = width - last.Start

	return segments
}

func offSegment(fromSec, toSec, width, periodSeconds float64) Segment {
	startPos := SecondsToPosition(fromSec, width, periodSeconds)
	endPos := SecondsToPosition(toSec, width, periodSeconds)
	return Segment{
		Start: startPos,
		Width: endPos - startPos,
		Kind:  SegmentOffCourt,
	}
}

// Layout concatenates per-period blocks left to right for one player's full
// game, sized from a regulation block width.
func Layout(stints []Stint, numPeriods int, regulationWidth float64) []PeriodBlock {
	blocks := make([]PeriodBlock, 0, numPeriods)
	offset := 0.0
	for p := 1; p <= numPeriods; p++ {
		width := PeriodWidth(p, regulationWidth)
		blocks = append(blocks, PeriodBlock{
			Period:   p,
			Offset:   offset,
			Width:    width,
			Segments: PeriodSegments(stints, p, width),
		})
		offset += width
	}
	return blocks
}

// PeriodOffsets returns the numPeriods+1 block boundary coordinates of a full
// game layout, for drawing quarter dividers and alignment guides.
func PeriodOffsets(numPeriods int, regulationWidth float64) []float64 {
	offsets := make([]float64, 0, numPeriods+1)
	offset := 0.0
	offsets = append(offsets, 0)
	for p := 1; p <= numPeriods; p++ {
		offset += PeriodWidth(p, regulationWidth)
		offsets = append(offsets, offset)
	}
	return offsets
}
