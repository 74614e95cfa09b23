package gameflow

import (
	"GameFlowApi/internal/assert"
	"reflect"
	"testing"
)

func TestAttributeStintBreakdown(t *testing.T) {
	// One stint: in at 12:00, out at 1:54 of the first quarter (10.1 minutes).
	stints, dropped := BuildStints([]Rotation{
		{PlayerID: 10, Period: 1, In: "12:00", Out: "1:54"},
	})
	assert.Equal(t, dropped, 0)

	events := []Event{
		{Period: 1, Clock: "10:30", Kind: KindMake2, PlayerID: 10},
		{Period: 1, Clock: "8:15", Kind: KindRebound, PlayerID: 10},
		// After the out-time on the elapsed axis; must not attribute.
		{Period: 1, Clock: "1:53", Kind: KindFreeThrow, PlayerID: 10, Made: true},
	}

	att := Attribute(stints, events)
	assert.Equal(t, att.Attributed, 2)
	assert.Equal(t, att.DroppedNoStint, 1)

	st := stints[10][0]
	assert.FloatNear(t, st.Minutes, 10.1, 0.001)
	assert.Equal(t, st.Stats.FGM, 1)
	assert.Equal(t, st.Stats.FGA, 1)
	assert.Equal(t, st.Stats.Pts, 2)
	assert.Equal(t, st.Stats.Reb, 1)
	assert.Equal(t, st.Stats.FTM, 0)
	assert.Equal(t, st.Stats.FTA, 0)
	assert.Equal(t, len(st.Events), 2)
}

func TestAttributeBoundaryGoesToEndingStint(t *testing.T) {
	stints, _ := BuildStints([]Rotation{
		{PlayerID: 10, Period: 1, In: "12:00", Out: "6:00"},
		{PlayerID: 10, Period: 1, In: "6:00", Out: "0:00"},
	})

	events := []Event{
		{Period: 1, Clock: "6:00", Kind: KindMake3, PlayerID: 10},
	}

	att := Attribute(stints, events)
	assert.Equal(t, att.Attributed, 1)
	assert.Equal(t, stints[10][0].Stats.Pts, 3)
	assert.Equal(t, stints[10][1].Stats.Pts, 0)
}

func TestAttributeStatFolds(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  Statline
	}{
		{
			name:  "Made Two",
			event: Event{Kind: KindMake2},
			want:  Statline{FGM: 1, FGA: 1, Pts: 2},
		},
		{
			name:  "Made Three",
			event: Event{Kind: KindMake3},
			want:  Statline{FGM: 1, FGA: 1, FG3M: 1, FG3A: 1, Pts: 3},
		},
		{
			name:  "Missed Two",
			event: Event{Kind: KindMiss2},
			want:  Statline{FGA: 1},
		},
		{
			name:  "Missed Three",
			event: Event{Kind: KindMiss3},
			want:  Statline{FGA: 1, FG3A: 1},
		},
		{
			name:  "Made Free Throw",
			event: Event{Kind: KindFreeThrow, Made: true},
			want:  Statline{FTM: 1, FTA: 1, Pts: 1},
		},
		{
			name:  "Missed Free Throw",
			event: Event{Kind: KindFreeThrow},
			want:  Statline{FTA: 1},
		},
		{
			name:  "Defensive Rebound",
			event: Event{Kind: KindRebound},
			want:  Statline{Reb: 1},
		},
		{
			name:  "Offensive Rebound",
			event: Event{Kind: KindRebound, Offensive: true},
			want:  Statline{Reb: 1, OReb: 1},
		},
		{
			name:  "Turnover",
			event: Event{Kind: KindTurnover},
			want:  Statline{Tov: 1},
		},
		{
			name:  "Foul",
			event: Event{Kind: KindFoul},
			want:  Statline{PF: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Statline
			statFolds[tt.event.Kind](&got, tt.event)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestStatFoldsExhaustive(t *testing.T) {
	for k := EventKind(0); k < kindSentinel; k++ {
		if _, ok := statFolds[k]; !ok {
			t.Errorf("no stat fold registered for kind %q", k)
		}
	}
}

func TestAttributeSecondaryCredit(t *testing.T) {
	stints, _ := BuildStints([]Rotation{
		{PlayerID: 10, Period: 1, In: "12:00", Out: "0:00"},
		{PlayerID: 11, Period: 1, In: "12:00", Out: "0:00"},
		{PlayerID: 20, Period: 1, In: "12:00", Out: "0:00"},
	})

	events := []Event{
		{Period: 1, Clock: "9:00", Kind: KindMake2, PlayerID: 10, AssistID: 11},
		{Period: 1, Clock: "7:00", Kind: KindTurnover, PlayerID: 10, StealID: 20},
		{Period: 1, Clock: "5:00", Kind: KindMiss2, PlayerID: 10, BlockID: 20},
	}

	att := Attribute(stints, events)
	assert.Equal(t, att.Attributed, 3)
	assert.Equal(t, stints[11][0].Stats.Ast, 1)
	assert.Equal(t, stints[20][0].Stats.Stl, 1)
	assert.Equal(t, stints[20][0].Stats.Blk, 1)
	// Secondary credit never leaks onto the primary actor.
	assert.Equal(t, stints[10][0].Stats.Ast, 0)
}

func TestAttributeDrops(t *testing.T) {
	stints, _ := BuildStints([]Rotation{
		{PlayerID: 10, Period: 1, In: "12:00", Out: "6:00"},
	})

	events := []Event{
		// No rotation record at all for this player.
		{Period: 1, Clock: "9:00", Kind: KindMake2, PlayerID: 99},
		// Gap in the player's own rotation.
		{Period: 1, Clock: "3:00", Kind: KindMake2, PlayerID: 10},
		// Unparseable clock.
		{Period: 1, Clock: "junk", Kind: KindMake2, PlayerID: 10},
	}

	att := Attribute(stints, events)
	assert.Equal(t, att.Attributed, 0)
	assert.Equal(t, att.DroppedNoStint, 2)
	assert.Equal(t, att.DroppedBadClock, 1)
	assert.Equal(t, stints[10][0].Stats, Statline{})
}

func TestAttributeIdempotent(t *testing.T) {
	rotations := []Rotation{
		{PlayerID: 10, Period: 1, In: "12:00", Out: "4:00"},
		{PlayerID: 11, Period: 1, In: "8:00", Out: "0:00"},
	}
	events := []Event{
		{Period: 1, Clock: "10:00", Kind: KindMake3, PlayerID: 10, AssistID: 11},
		{Period: 1, Clock: "6:00", Kind: KindRebound, PlayerID: 11},
	}

	first, _ := BuildStints(rotations)
	Attribute(first, events)
	second, _ := BuildStints(rotations)
	Attribute(second, events)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated reconstruction differs:\n%+v\n%+v", first, second)
	}
}
