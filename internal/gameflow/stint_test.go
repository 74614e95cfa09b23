package gameflow

import (
	"GameFlowApi/internal/assert"
	"testing"
)

func TestBuildStints(t *testing.T) {
	rotations := []Rotation{
		{PlayerID: 20, Period: 2, In: "12:00", Out: "6:00", PlusMinus: -3},
		{PlayerID: 10, Period: 1, In: "4:30", Out: "0:00"},
		{PlayerID: 10, Period: 1, In: "12:00", Out: "7:00", PlusMinus: 4},
	}

	stints, dropped := BuildStints(rotations)
	assert.Equal(t, dropped, 0)
	assert.Equal(t, len(stints), 2)

	p10 := stints[10]
	assert.Equal(t, len(p10), 2)

	// Ordered by elapsed in-time ascending regardless of input order.
	assert.Equal(t, p10[0].In, "12:00")
	assert.Equal(t, p10[0].Out, "7:00")
	assert.Equal(t, p10[0].StartSeconds(), 0)
	assert.Equal(t, p10[0].EndSeconds(), 300)
	assert.Equal(t, p10[0].Minutes, 5)
	assert.Equal(t, p10[0].PlusMinus, 4)
	assert.Equal(t, p10[1].In, "4:30")
	assert.Equal(t, p10[1].Minutes, 4.5)

	p20 := stints[20]
	assert.Equal(t, p20[0].StartSeconds(), 720)
	assert.Equal(t, p20[0].EndSeconds(), 1080)
}

func TestBuildStintsMalformedClock(t *testing.T) {
	rotations := []Rotation{
		{PlayerID: 10, Period: 1, In: "12:00", Out: "oops"},
		{PlayerID: 10, Period: 1, In: "bad", Out: "0:00"},
		{PlayerID: 10, Period: 1, In: "6:00", Out: "3:00"},
	}

	stints, dropped := BuildStints(rotations)
	assert.Equal(t, dropped, 2)
	assert.Equal(t, len(stints[10]), 1)
	assert.Equal(t, stints[10][0].In, "6:00")
}

func TestBuildStintsNegativeDurationClampsToZero(t *testing.T) {
	rotations := []Rotation{
		{PlayerID: 10, Period: 1, In: "3:00", Out: "6:00"},
	}

	stints, dropped := BuildStints(rotations)
	assert.Equal(t, dropped, 0)
	assert.Equal(t, stints[10][0].Minutes, 0)
}

func TestBuildStintsEmptyInput(t *testing.T) {
	stints, dropped := BuildStints(nil)
	assert.Equal(t, dropped, 0)
	assert.Equal(t, len(stints), 0)
}

func TestNumPeriods(t *testing.T) {
	stints, _ := BuildStints([]Rotation{
		{PlayerID: 10, Period: 1, In: "12:00", Out: "6:00"},
	})
	assert.Equal(t, NumPeriods(stints), 4)

	stints, _ = BuildStints([]Rotation{
		{PlayerID: 10, Period: 5, In: "5:00", Out: "0:00"},
	})
	assert.Equal(t, NumPeriods(stints), 5)

	assert.Equal(t, NumPeriods(nil), 4)
}
