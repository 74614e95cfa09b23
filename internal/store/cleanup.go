package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Cleanup removes stored data older than the month of referenceDate
// (YYYY-MM-DD): stale score files, stale game directories (dated by their
// boxscore document) and stale index entries. Returns the deleted paths for
// logging. Unreadable game documents are skipped, not treated as errors.
func (s *Store) Cleanup(referenceDate string) ([]string, error) {
	if len(referenceDate) < 7 {
		return nil, errors.New("reference date must be YYYY-MM-DD")
	}
	currentMonth := referenceDate[:7]
	var deleted []string

	scoreFiles, err := filepath.Glob(filepath.Join(s.dir, "scores", "*.json"))
	if err != nil {
		return deleted, err
	}
	for _, path := range scoreFiles {
		date := strings.TrimSuffix(filepath.Base(path), ".json")
		if monthOf(date) < currentMonth {
			if err := os.Remove(path); err == nil {
				deleted = append(deleted, path)
			}
		}
	}

	gameDirs, err := os.ReadDir(filepath.Join(s.dir, "games"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return deleted, err
	}
	for _, entry := range gameDirs {
		if !entry.IsDir() {
			continue
		}
		gameDir := filepath.Join(s.dir, "games", entry.Name())
		date, ok := s.gameDate(entry.Name())
		if !ok {
			continue
		}
		if monthOf(date) < currentMonth {
			if err := os.RemoveAll(gameDir); err == nil {
				deleted = append(deleted, gameDir)
			}
		}
	}

	idx, err := s.readIndex()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return deleted, nil
		}
		return deleted, err
	}
	kept := make([]IndexDate, 0, len(idx.Dates))
	for _, d := range idx.Dates {
		if monthOf(d.Date) >= currentMonth {
			kept = append(kept, d)
		}
	}
	if len(kept) != len(idx.Dates) {
		if err := s.writeJSONAtomic(filepath.Join(s.dir, "index.json"), index{Dates: kept}); err != nil {
			return deleted, err
		}
	}

	return deleted, nil
}

// gameDate reads a game's date from its stored boxscore document.
func (s *Store) gameDate(gameID string) (string, bool) {
	raw, err := s.ReadGameFile(gameID, "boxscore.json")
	if err != nil {
		return "", false
	}
	var doc struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", false
	}
	return doc.Date, doc.Date != ""
}

func monthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}
