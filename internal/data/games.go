package data

import (
	"GameFlowApi/internal/store"
	"context"
	"database/sql"
	"time"
)

// Game is one row of the game index mirror.
type Game struct {
	GameID    string    `json:"gameId"`
	Date      string    `json:"date"`
	Home      string    `json:"home"`
	Away      string    `json:"away"`
	HomeScore int       `json:"homeScore"`
	AwayScore int       `json:"awayScore"`
	CreatedAt time.Time `json:"-"`
}

type GameModel struct {
	db *sql.DB
}

// Upsert inserts a game row or refreshes an existing one. Re-running a
// pipeline date must be idempotent, so conflicts on game_id update in place.
func (m GameModel) Upsert(ctx context.Context, game *Game) error {
	stmt := `
		INSERT INTO games (game_id, game_date, home, away, home_score, away_score)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (game_id) DO UPDATE
		SET game_date = EXCLUDED.game_date,
			home = EXCLUDED.home,
			away = EXCLUDED.away,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score
		RETURNING created_at`

	args := []any{game.GameID, game.Date, game.Home, game.Away, game.HomeScore,
		game.AwayScore}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return m.db.QueryRowContext(ctx, stmt, args...).Scan(&game.CreatedAt)
}

// GetDates returns every distinct game date, newest first.
func (m GameModel) GetDates(ctx context.Context) ([]string, error) {
	stmt := `
		SELECT DISTINCT game_date
		FROM games
		ORDER BY game_date DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return dates, nil
}

// GetByDate returns every game row for a date.
func (m GameModel) GetByDate(ctx context.Context, date string) ([]*Game, error) {
	stmt := `
		SELECT game_id, game_date, home, away, home_score, away_score, created_at
		FROM games
		WHERE game_date = $1
		ORDER BY game_id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []*Game{}
	for rows.Next() {
		var game Game
		err := rows.Scan(
			&game.GameID,
			&game.Date,
			&game.Home,
			&game.Away,
			&game.HomeScore,
			&game.AwayScore,
			&game.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		games = append(games, &game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, ErrRecordNotFound
	}

	return games, nil
}

// RecordDate mirrors a pipeline run's index entries for one date. Satisfies
// the pipeline's IndexRecorder.
func (m GameModel) RecordDate(ctx context.Context, date string, games []store.IndexGame) error {
	for _, g := range games {
		game := &Game{
			GameID:    g.GameID,
			Date:      date,
			Home:      g.Home,
			Away:      g.Away,
			HomeScore: g.HomeScore,
			AwayScore: g.AwayScore,
		}
		if err := m.Upsert(ctx, game); err != nil {
			return err
		}
	}
	return nil
}
