package store

import (
	"GameFlowApi/internal/assert"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

func TestWriteAndReadScores(t *testing.T) {
	s := New(t.TempDir())

	err := s.WriteScores("2025-01-15", []map[string]string{{"gameId": "001"}})
	assert.NilError(t, err)

	raw, err := s.ReadScores("2025-01-15")
	assert.NilError(t, err)
	assert.StringContains(t, string(raw), "001")

	_, err = s.ReadScores("2025-01-16")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got err %v; want ErrNotFound", err)
	}
}

func TestWriteGameData(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	err := s.WriteGameData("0022400555",
		map[string]string{"date": "2025-01-15"},
		map[string]string{"gameId": "0022400555"})
	assert.NilError(t, err)

	raw, err := s.ReadGameFile("0022400555", "boxscore.json")
	assert.NilError(t, err)
	assert.StringContains(t, string(raw), "2025-01-15")

	// No stray temp files left behind.
	leftovers, _ := filepath.Glob(filepath.Join(dir, "games", "0022400555", ".tmp_*"))
	assert.Equal(t, len(leftovers), 0)
}

func TestMergeIndex(t *testing.T) {
	s := New(t.TempDir())

	err := s.MergeIndex([]IndexDate{
		{Date: "2025-01-14", Games: []IndexGame{{GameID: "A"}}},
	})
	assert.NilError(t, err)

	// A second merge replaces the existing date entry and sorts descending.
	err = s.MergeIndex([]IndexDate{
		{Date: "2025-01-14", Games: []IndexGame{{GameID: "B"}}},
		{Date: "2025-01-15", Games: []IndexGame{{GameID: "C"}}},
	})
	assert.NilError(t, err)

	var idx struct {
		Dates []IndexDate `json:"dates"`
	}
	raw, err := s.ReadIndex()
	assert.NilError(t, err)
	assert.NilError(t, json.Unmarshal(raw, &idx))

	assert.Equal(t, len(idx.Dates), 2)
	assert.Equal(t, idx.Dates[0].Date, "2025-01-15")
	assert.Equal(t, idx.Dates[1].Date, "2025-01-14")
	assert.Equal(t, idx.Dates[1].Games[0].GameID, "B")
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	assert.NilError(t, s.WriteScores("2024-12-30", []string{}))
	assert.NilError(t, s.WriteScores("2025-01-15", []string{}))
	assert.NilError(t, s.WriteGameData("OLD", map[string]string{"date": "2024-12-30"}, map[string]string{}))
	assert.NilError(t, s.WriteGameData("NEW", map[string]string{"date": "2025-01-15"}, map[string]string{}))
	assert.NilError(t, s.MergeIndex([]IndexDate{{Date: "2024-12-30"}, {Date: "2025-01-15"}}))

	deleted, err := s.Cleanup("2025-01-20")
	assert.NilError(t, err)
	assert.Equal(t, len(deleted), 2)

	if _, err := s.ReadScores("2024-12-30"); !errors.Is(err, ErrNotFound) {
		t.Fatal("stale score file survived cleanup")
	}
	if _, err := s.ReadGameFile("OLD", "boxscore.json"); !errors.Is(err, ErrNotFound) {
		t.Fatal("stale game directory survived cleanup")
	}
	if _, err := s.ReadGameFile("NEW", "boxscore.json"); err != nil {
		t.Fatal("current game directory deleted by cleanup")
	}

	var idx struct {
		Dates []IndexDate `json:"dates"`
	}
	raw, err := s.ReadIndex()
	assert.NilError(t, err)
	assert.NilError(t, json.Unmarshal(raw, &idx))
	assert.Equal(t, len(idx.Dates), 1)
	assert.Equal(t, idx.Dates[0].Date, "2025-01-15")
}

func TestCleanupEmptyStore(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing"))
	deleted, err := s.Cleanup("2025-01-20")
	assert.NilError(t, err)
	assert.Equal(t, len(deleted), 0)
}
