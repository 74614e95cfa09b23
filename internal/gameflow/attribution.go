package gameflow

import "GameFlowApi/internal/clock"

// Attribution tallies what happened during an attribution pass. Dropped
// events are a diagnostic signal, never a failure.
type Attribution struct {
	Attributed      int
	DroppedNoStint  int
	DroppedBadClock int
}

// Attribute folds play-by-play events into the statlines of the stints that
// contain them and appends each primary event to its stint's Events list.
// Matching is half-open [in, out) on the elapsed axis; an event timed exactly
// on a boundary shared by two consecutive stints of the same player belongs to
// the stint that is ending. Secondary credit (assist, steal, block) lands on
// the covering stint of the credited player; a missing secondary stint is
// ignored rather than counted, since the primary event still attributed.
func Attribute(stints map[int64][]Stint, events []Event) Attribution {
	var att Attribution

	for _, e := range events {
		point, err := clock.Elapsed(e.Period, e.Clock)
		if err != nil {
			att.DroppedBadClock++
			continue
		}

		st := coveringStint(stints[e.PlayerID], point)
		if st == nil {
			att.DroppedNoStint++
			continue
		}

		statFolds[e.Kind](&st.Stats, e)
		st.Events = append(st.Events, e)
		att.Attributed++

		if e.AssistID != 0 {
			if ast := coveringStint(stints[e.AssistID], point); ast != nil {
				ast.Stats.Ast++
			}
		}
		if e.StealID != 0 {
			if stl := coveringStint(stints[e.StealID], point); stl != nil {
				stl.Stats.Stl++
			}
		}
		if e.BlockID != 0 {
			if blk := coveringStint(stints[e.BlockID], point); blk != nil {
				blk.Stats.Blk++
			}
		}
	}

	return att
}

// coveringStint finds the stint containing an elapsed-time point. Stints must
// be ordered by start time, as BuildStints guarantees. A point that is both
// the end of one stint and the start of the next resolves to the ending stint
// so boundary events are never double-counted.
func coveringStint(stints []Stint, point float64) *Stint {
	for i := range stints {
		st := &stints[i]
		if !st.covers(point) {
			continue
		}
		if point == st.start && i > 0 && stints[i-1].end == st.start {
			return &stints[i-1]
		}
		return st
	}
	return nil
}
