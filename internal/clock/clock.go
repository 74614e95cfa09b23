package clock

import (
	"errors"
	"fmt"
	"strconv"
	strings2 "strings"
	"time"
)

var ErrInvalidDuration = errors.New("invalid clock duration string")

// Regulation quarters run 12 minutes, overtime periods 5.
const (
	RegulationPeriods  = 4
	RegulationSeconds  = 720
	OvertimeSeconds    = 300
	RegulationTotalSec = RegulationPeriods * RegulationSeconds
)

// Duration represents a countdown game clock string in the format "M:SS",
// counting down within a period ("12:00" at the start of a quarter).
type Duration string

// ToDuration converts string from format "M:SS" to a time.Duration.
func (cd Duration) ToDuration() (time.Duration, error) {
	strings := strings2.Split(string(cd), ":")
	if len(strings) != 2 {
		return 0, ErrInvalidDuration
	}
	minutes, err := strconv.Atoi(strings[0])
	if err != nil {
		return 0, errors.Join(ErrInvalidDuration, err)
	}
	seconds, err := strconv.Atoi(strings[1])
	if err != nil {
		return 0, errors.Join(ErrInvalidDuration, err)
	}
	if seconds >= 60 || seconds < 0 || minutes < 0 {
		return 0, ErrInvalidDuration
	}

	dur, err := time.ParseDuration(fmt.Sprintf("%dm%ds", minutes, seconds))
	if err != nil {
		return 0, errors.Join(ErrInvalidDuration, err)
	}

	return dur, nil
}

// Seconds converts a Duration to whole seconds remaining in the period.
func (cd Duration) Seconds() (float64, error) {
	dur, err := cd.ToDuration()
	if err != nil {
		return 0, err
	}
	return dur.Seconds(), nil
}

// FromSeconds formats seconds remaining as a Duration string. Minutes are not
// zero-padded to match the upstream feed ("9:04", not "09:04").
func FromSeconds(seconds int) Duration {
	if seconds < 0 {
		seconds = 0
	}
	return Duration(fmt.Sprintf("%d:%02d", seconds/60, seconds%60))
}

// PeriodSeconds returns the length of a period in seconds: 720 for regulation
// quarters, 300 for any overtime period.
func PeriodSeconds(period int) float64 {
	if period <= RegulationPeriods {
		return RegulationSeconds
	}
	return OvertimeSeconds
}

// PeriodStart returns the elapsed seconds from game start at which a period begins.
func PeriodStart(period int) float64 {
	if period <= RegulationPeriods {
		return float64(period-1) * RegulationSeconds
	}
	return RegulationTotalSec + float64(period-RegulationPeriods-1)*OvertimeSeconds
}

// Elapsed converts a (period, countdown clock) pair into monotonic seconds
// from game start. A malformed clock string returns ErrInvalidDuration; the
// record carrying it must be skipped, never the whole run.
func Elapsed(period int, cd Duration) (float64, error) {
	remaining, err := cd.Seconds()
	if err != nil {
		return 0, err
	}
	return PeriodStart(period) + PeriodSeconds(period) - remaining, nil
}

// Boundary is one period's span on the elapsed-time axis.
type Boundary struct {
	Period       int     `json:"period"`
	StartSeconds float64 `json:"startSeconds"`
	EndSeconds   float64 `json:"endSeconds"`
}

// PeriodBoundaries returns one Boundary per period, contiguous and gap-free:
// boundaries[i+1].StartSeconds == boundaries[i].EndSeconds for all i.
func PeriodBoundaries(numPeriods int) []Boundary {
	boundaries := make([]Boundary, 0, numPeriods)
	start := 0.0
	for p := 1; p <= numPeriods; p++ {
		end := start + PeriodSeconds(p)
		boundaries = append(boundaries, Boundary{
			Period:       p,
			StartSeconds: start,
			EndSeconds:   end,
		})
		start = end
	}
	return boundaries
}

// TotalSeconds returns the full game length in seconds for numPeriods periods.
func TotalSeconds(numPeriods int) float64 {
	if numPeriods <= 0 {
		return 0
	}
	b := PeriodBoundaries(numPeriods)
	return b[len(b)-1].EndSeconds
}

// TotalMinutes returns the number of whole game minutes for numPeriods periods.
func TotalMinutes(numPeriods int) int {
	return int(TotalSeconds(numPeriods)) / 60
}

// MinuteStartsPeriod reports whether game minute m is the first minute of some
// period in a game of numPeriods periods.
func MinuteStartsPeriod(m int, numPeriods int) bool {
	for _, b := range PeriodBoundaries(numPeriods) {
		if float64(m*60) == b.StartSeconds {
			return true
		}
	}
	return false
}

// FromGameTime normalizes an absolute in-game timestamp in milliseconds (the
// rotation feed's native unit, 0 at tipoff) into a (period, countdown clock)
// pair. Overtime timestamps land in 5-minute periods past regulation.
func FromGameTime(ms int64) (int, Duration) {
	seconds := ms / 1000

	var period int
	var intoPeriod int64
	if seconds < RegulationTotalSec {
		period = int(seconds/RegulationSeconds) + 1
		intoPeriod = seconds % RegulationSeconds
	} else {
		past := seconds - RegulationTotalSec
		period = RegulationPeriods + int(past/OvertimeSeconds) + 1
		intoPeriod = past % OvertimeSeconds
	}

	remaining := int(PeriodSeconds(period)) - int(intoPeriod)
	return period, FromSeconds(remaining)
}

// FromGameTimeRange normalizes a rotation in/out millisecond pair into the
// period of the in-time plus countdown clocks for both ends, both measured
// against that period. Rotation stints never span a period in practice; an
// out-time past the period end clamps to "0:00".
func FromGameTimeRange(inMs, outMs int64) (int, Duration, Duration) {
	period, inClock := FromGameTime(inMs)
	periodStartMs := int64(PeriodStart(period)) * 1000
	outRemaining := int(PeriodSeconds(period)) - int((outMs-periodStartMs)/1000)
	return period, inClock, FromSeconds(outRemaining)
}
