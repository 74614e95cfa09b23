package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
)

var ErrNotFound = errors.New("stored file not found")

// Store lays out derived game data as static JSON under a base directory:
//
//	index.json
//	scores/YYYY-MM-DD.json
//	games/{gameId}/boxscore.json
//	games/{gameId}/gameflow.json
//
// All writes are atomic (temp file + rename) so readers never observe a
// partially written document.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// IndexGame is one game entry in the date index.
type IndexGame struct {
	GameID    string `json:"gameId"`
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
}

// IndexDate groups a date's games in the index.
type IndexDate struct {
	Date  string      `json:"date"`
	Games []IndexGame `json:"games"`
}

type index struct {
	Dates []IndexDate `json:"dates"`
}

// WriteScores writes the scores document for a date.
func (s *Store) WriteScores(date string, v any) error {
	return s.writeJSONAtomic(filepath.Join(s.dir, "scores", date+".json"), v)
}

// WriteGameData writes a game's boxscore and gameflow documents.
func (s *Store) WriteGameData(gameID string, boxscore, gameflow any) error {
	gameDir := filepath.Join(s.dir, "games", gameID)
	if err := s.writeJSONAtomic(filepath.Join(gameDir, "boxscore.json"), boxscore); err != nil {
		return err
	}
	return s.writeJSONAtomic(filepath.Join(gameDir, "gameflow.json"), gameflow)
}

// MergeIndex folds new date entries into index.json, replacing any existing
// entry for the same date and keeping dates sorted descending.
func (s *Store) MergeIndex(entries []IndexDate) error {
	existing := make(map[string]IndexDate)

	current, err := s.readIndex()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	for _, d := range current.Dates {
		existing[d.Date] = d
	}
	for _, d := range entries {
		existing[d.Date] = d
	}

	merged := make([]IndexDate, 0, len(existing))
	for _, d := range existing {
		merged = append(merged, d)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date > merged[j].Date })

	return s.writeJSONAtomic(filepath.Join(s.dir, "index.json"), index{Dates: merged})
}

// ReadScores returns the raw scores document for a date.
func (s *Store) ReadScores(date string) ([]byte, error) {
	return s.readFile(filepath.Join(s.dir, "scores", date+".json"))
}

// ReadGameFile returns a raw per-game document ("boxscore.json" or
// "gameflow.json").
func (s *Store) ReadGameFile(gameID, name string) ([]byte, error) {
	return s.readFile(filepath.Join(s.dir, "games", gameID, name))
}

// ReadIndex returns the raw index document.
func (s *Store) ReadIndex() ([]byte, error) {
	return s.readFile(filepath.Join(s.dir, "index.json"))
}

func (s *Store) readIndex() (index, error) {
	var idx index
	raw, err := s.ReadIndex()
	if err != nil {
		return idx, err
	}
	if err := json.Unmarshal(raw, &idx); err != nil {
		return idx, err
	}
	return idx, nil
}

func (s *Store) readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *Store) writeJSONAtomic(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp_*.json")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}
