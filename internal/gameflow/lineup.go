package gameflow

import (
	"GameFlowApi/internal/clock"
	"slices"
)

// MaxOnCourt is the most players one team can field at once.
const MaxOnCourt = 5

// MidpointOffset is the sampling policy for lineup reconstruction: each game
// minute is tested at its midpoint, minute + 0.5, so stints that begin or end
// mid-minute resolve consistently.
const MidpointOffset = 0.5

// LineupMinute records which players were on court for one game minute.
// CarriedIDs is the subset inferred by carry-over rather than evidenced by a
// covering stint; renderers use it to mark uncertain minutes.
type LineupMinute struct {
	Minute     int     `json:"minute"`
	PlayerIDs  []int64 `json:"playerIds"`
	CarriedIDs []int64 `json:"carriedIds,omitempty"`
}

// LineupSnapshot is the per-minute lineup for one team across a whole game.
type LineupSnapshot struct {
	NumPeriods int            `json:"numPeriods"`
	Minutes    []LineupMinute `json:"minutes"`
}

// ReconstructLineup builds a minute-by-minute lineup from one team's stints.
// The rotation feed under-reports lineups after the first quarter, so minutes
// with fewer than five evidenced players are patched by carrying forward
// previously seen players. Live evidence always wins over carry-over, no
// minute ever exceeds five players, and no player is ever fabricated: only
// ids with recorded court time somewhere in the game can be carried. The
// function is total; any input degrades to the evidenced lineup alone.
func ReconstructLineup(stints map[int64][]Stint, numPeriods int) LineupSnapshot {
	snapshot := LineupSnapshot{
		NumPeriods: numPeriods,
		Minutes:    make([]LineupMinute, 0, clock.TotalMinutes(numPeriods)),
	}

	var carried []int64
	for m := 0; m < clock.TotalMinutes(numPeriods); m++ {
		point := (float64(m) + MidpointOffset) * 60
		live := liveLineup(stints, point)

		switch {
		case m == 0:
			// Period 1 has no prior data to merge.
			carried = slices.Clone(live)
		case clock.MinuteStartsPeriod(m, numPeriods):
			carried = periodCarry(carried, live)
		default:
			carried = carryMinute(carried, live)
		}
		carried = capLineup(carried, live)

		snapshot.Minutes = append(snapshot.Minutes, LineupMinute{
			Minute:     m,
			PlayerIDs:  slices.Clone(carried),
			CarriedIDs: carriedOnly(carried, live),
		})
	}

	return snapshot
}

// liveLineup returns the sorted ids of every player with a stint covering the
// sample point.
func liveLineup(stints map[int64][]Stint, point float64) []int64 {
	ids := make([]int64, 0, MaxOnCourt)
	for id, playerStints := range stints {
		for i := range playerStints {
			if playerStints[i].covers(point) {
				ids = append(ids, id)
				break
			}
		}
	}
	slices.Sort(ids)
	return ids
}

// periodCarry handles the first minute of a period after the first: a full
// five-man evidenced lineup is trusted outright, otherwise the prior period's
// closing lineup tops it up to five.
func periodCarry(prior []int64, live []int64) []int64 {
	if len(live) >= MaxOnCourt {
		return slices.Clone(live)
	}

	next := slices.Clone(live)
	for _, id := range prior {
		if len(next) >= MaxOnCourt {
			break
		}
		if !slices.Contains(next, id) {
			next = append(next, id)
		}
	}
	slices.Sort(next)
	return next
}

// carryMinute is the per-minute transition for non-boundary minutes: a pure
// fold (priorCarried, liveLineup) -> nextCarried. Each player newly evidenced
// this minute displaces one carried player who is no longer evidenced, exact
// one-for-one. If the merged set still exceeds five, carried-only players are
// shed until it fits. Whenever a player must be dropped, the lowest id among
// the eligible players goes first, keeping the result deterministic.
func carryMinute(prior []int64, live []int64) []int64 {
	remaining := slices.Clone(prior)

	arrivals := 0
	for _, id := range live {
		if !slices.Contains(prior, id) {
			arrivals++
		}
	}
	for i := 0; i < arrivals; i++ {
		if !removeLowestAbsent(&remaining, live) {
			break
		}
	}

	next := slices.Clone(live)
	for _, id := range remaining {
		if !slices.Contains(next, id) {
			next = append(next, id)
		}
	}
	slices.Sort(next)

	return next
}

// capLineup trims a lineup to MaxOnCourt, shedding carried-only players
// before evidenced ones, lowest id first. A feed anomaly reporting more than
// five simultaneous evidenced players trims to the five lowest ids.
func capLineup(set []int64, live []int64) []int64 {
	for len(set) > MaxOnCourt {
		if !removeLowestAbsent(&set, live) {
			set = set[:MaxOnCourt]
		}
	}
	return set
}

// removeLowestAbsent removes from ids the lowest id not present in keep.
// Returns false when every id is in keep.
func removeLowestAbsent(ids *[]int64, keep []int64) bool {
	for i, id := range *ids {
		if !slices.Contains(keep, id) {
			*ids = slices.Delete(*ids, i, i+1)
			return true
		}
	}
	return false
}

// carriedOnly returns the members of set with no live evidence, sorted.
func carriedOnly(set []int64, live []int64) []int64 {
	var out []int64
	for _, id := range set {
		if !slices.Contains(live, id) {
			out = append(out, id)
		}
	}
	return out
}
