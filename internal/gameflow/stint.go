package gameflow

import (
	"GameFlowApi/internal/clock"
	"sort"
)

// Statline holds the box-score categories a stint can accrue. Writes happen in
// a single attribution pass; after that the statline is read-only.
type Statline struct {
	FGM  int `json:"fgm"`
	FGA  int `json:"fga"`
	FG3M int `json:"fg3m"`
	FG3A int `json:"fg3a"`
	FTM  int `json:"ftm"`
	FTA  int `json:"fta"`
	OReb int `json:"oreb"`
	Reb  int `json:"reb"`
	Ast  int `json:"ast"`
	Blk  int `json:"blk"`
	Stl  int `json:"stl"`
	Tov  int `json:"tov"`
	PF   int `json:"pf"`
	Pts  int `json:"pts"`
}

// Stint is one continuous on-court interval for one player. In and Out are
// countdown clocks within Period; start and end cache the elapsed-time axis
// so interval checks never reparse the clock strings.
type Stint struct {
	PlayerID  int64          `json:"-"`
	Period    int            `json:"period"`
	In        clock.Duration `json:"inTime"`
	Out       clock.Duration `json:"outTime"`
	Minutes   float64        `json:"minutes"`
	PlusMinus int            `json:"plusMinus"`
	Stats     Statline       `json:"stats"`
	Events    []Event        `json:"-"`

	start float64
	end   float64
}

// StartSeconds returns the stint's in-time on the elapsed axis.
func (s *Stint) StartSeconds() float64 { return s.start }

// EndSeconds returns the stint's out-time on the elapsed axis.
func (s *Stint) EndSeconds() float64 { return s.end }

// covers reports whether an elapsed-time point falls inside the half-open
// interval [start, end).
func (s *Stint) covers(point float64) bool {
	return point >= s.start && point < s.end
}

// Rotation is one raw in/out record from the rotation feed, already
// normalized to (period, countdown clock) form.
type Rotation struct {
	PlayerID  int64
	Period    int
	In        clock.Duration
	Out       clock.Duration
	PlusMinus int
}

// BuildStints turns rotation records into per-player stint lists, ordered by
// elapsed in-time ascending. The feed's in/out pairs are trusted as given; no
// merging or splitting happens here. Records with malformed clocks are
// skipped, and the count of skipped records returned for diagnostics.
func BuildStints(rotations []Rotation) (map[int64][]Stint, int) {
	stints := make(map[int64][]Stint)
	dropped := 0

	for _, rot := range rotations {
		start, err := clock.Elapsed(rot.Period, rot.In)
		if err != nil {
			dropped++
			continue
		}
		end, err := clock.Elapsed(rot.Period, rot.Out)
		if err != nil {
			dropped++
			continue
		}

		minutes := (end - start) / 60
		if minutes < 0 {
			minutes = 0
		}

		stints[rot.PlayerID] = append(stints[rot.PlayerID], Stint{
			PlayerID:  rot.PlayerID,
			Period:    rot.Period,
			In:        rot.In,
			Out:       rot.Out,
			Minutes:   minutes,
			PlusMinus: rot.PlusMinus,
			start:     start,
			end:       end,
		})
	}

	for id := range stints {
		sort.SliceStable(stints[id], func(i, j int) bool {
			return stints[id][i].start < stints[id][j].start
		})
	}

	return stints, dropped
}

// NumPeriods returns the highest period any stint touches, never less than a
// regulation game.
func NumPeriods(stints map[int64][]Stint) int {
	periods := clock.RegulationPeriods
	for _, playerStints := range stints {
		for _, s := range playerStints {
			if s.Period > periods {
				periods = s.Period
			}
		}
	}
	return periods
}
