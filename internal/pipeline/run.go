package pipeline

import (
	"GameFlowApi/internal/jsonlog"
	"GameFlowApi/internal/nba"
	"GameFlowApi/internal/store"
	"context"
	"fmt"
	"strings"
)

// Fetcher is the slice of the NBA client the pipeline needs. *nba.Client
// satisfies it.
type Fetcher interface {
	Scoreboard(ctx context.Context, gameDate string) (*nba.Scoreboard, error)
	Boxscore(ctx context.Context, gameID string) (*nba.Boxscore, error)
	PlayByPlay(ctx context.Context, gameID string) ([]nba.PlayByPlayRecord, error)
	GameRotation(ctx context.Context, gameID string) (*nba.Rotation, error)
}

// IndexRecorder mirrors a date's games into a secondary index (the database
// model, when one is configured).
type IndexRecorder interface {
	RecordDate(ctx context.Context, date string, games []store.IndexGame) error
}

// RunEvent is one progress notification emitted while a run executes.
type RunEvent struct {
	Stage   string `json:"stage"`
	GameID  string `json:"gameId,omitempty"`
	Message string `json:"message"`
}

// RunSummary reports what a run accomplished.
type RunSummary struct {
	Date          string `json:"date"`
	GamesFound    int    `json:"gamesFound"`
	GamesWritten  int    `json:"gamesWritten"`
	GamesSkipped  int    `json:"gamesSkipped"`
	EventsDropped int    `json:"eventsDropped"`
}

// Runner executes the fetch-transform-write pipeline for a date. Index and
// Notify are optional.
type Runner struct {
	Client Fetcher
	Store  *store.Store
	Logger *jsonlog.Logger
	Index  IndexRecorder
	Notify func(RunEvent)
}

func (r *Runner) notify(stage, gameID, format string, args ...any) {
	if r.Notify != nil {
		r.Notify(RunEvent{Stage: stage, GameID: gameID, Message: fmt.Sprintf(format, args...)})
	}
}

// RunDate fetches the scoreboard for a date, writes the scores document, then
// reconstructs and writes boxscore and gameflow documents for every finished
// game. A failure on one game skips that game rather than aborting the run.
func (r *Runner) RunDate(ctx context.Context, date string) (*RunSummary, error) {
	summary := &RunSummary{Date: date}

	r.notify("scoreboard", "", "fetching scoreboard for %s", date)
	sb, err := r.Client.Scoreboard(ctx, date)
	if err != nil {
		return summary, fmt.Errorf("fetch scoreboard: %w", err)
	}
	summary.GamesFound = len(sb.Headers)

	scores := TransformScores(sb, date)
	if err := r.Store.WriteScores(date, scores); err != nil {
		return summary, fmt.Errorf("write scores: %w", err)
	}
	r.Logger.PrintInfo("wrote scores", map[string]string{
		"date":  date,
		"games": fmt.Sprint(len(scores)),
	})

	indexGames := make([]store.IndexGame, 0, len(scores))

	for _, header := range sb.Headers {
		if !isFinal(header.GameStatusText) {
			summary.GamesSkipped++
			r.notify("skip", header.GameID, "game not final (%s)", header.GameStatusText)
			continue
		}

		if err := ctx.Err(); err != nil {
			return summary, err
		}

		dropped, err := r.runGame(ctx, date, header.GameID, sb)
		if err != nil {
			summary.GamesSkipped++
			r.Logger.PrintError(err, map[string]string{"game_id": header.GameID})
			r.notify("error", header.GameID, "%v", err)
			continue
		}

		summary.GamesWritten++
		summary.EventsDropped += dropped
		r.notify("written", header.GameID, "boxscore and gameflow written")

		for _, score := range scores {
			if score.GameID == header.GameID {
				indexGames = append(indexGames, store.IndexGame{
					GameID:    score.GameID,
					Home:      score.HomeTeam.Tricode,
					Away:      score.AwayTeam.Tricode,
					HomeScore: score.HomeTeam.Score,
					AwayScore: score.AwayTeam.Score,
				})
			}
		}
	}

	if len(indexGames) > 0 {
		if err := r.Store.MergeIndex([]store.IndexDate{{Date: date, Games: indexGames}}); err != nil {
			return summary, fmt.Errorf("merge index: %w", err)
		}
		if r.Index != nil {
			if err := r.Index.RecordDate(ctx, date, indexGames); err != nil {
				// The file store is the source of truth; index mirroring is
				// best-effort.
				r.Logger.PrintError(err, map[string]string{"date": date})
			}
		}
	}

	r.notify("done", "", "run complete: %d written, %d skipped", summary.GamesWritten, summary.GamesSkipped)
	return summary, nil
}

// runGame fetches one game's feeds and writes its derived documents,
// returning the count of play-by-play events that could not be attributed.
func (r *Runner) runGame(ctx context.Context, date, gameID string, sb *nba.Scoreboard) (int, error) {
	box, err := r.Client.Boxscore(ctx, gameID)
	if err != nil {
		return 0, fmt.Errorf("fetch boxscore: %w", err)
	}
	rot, err := r.Client.GameRotation(ctx, gameID)
	if err != nil {
		return 0, fmt.Errorf("fetch rotation: %w", err)
	}
	pbp, err := r.Client.PlayByPlay(ctx, gameID)
	if err != nil {
		return 0, fmt.Errorf("fetch play-by-play: %w", err)
	}

	boxDoc, err := TransformBoxscore(gameID, date, sb, box, rot, pbp)
	if err != nil {
		return 0, fmt.Errorf("transform boxscore: %w", err)
	}
	flowDoc, att, err := TransformGameflow(gameID, sb, rot, pbp)
	if err != nil {
		return 0, fmt.Errorf("transform gameflow: %w", err)
	}

	dropped := att.DroppedNoStint + att.DroppedBadClock
	if dropped > 0 {
		r.Logger.PrintInfo("events not attributed", map[string]string{
			"game_id":   gameID,
			"no_stint":  fmt.Sprint(att.DroppedNoStint),
			"bad_clock": fmt.Sprint(att.DroppedBadClock),
		})
	}

	if err := r.Store.WriteGameData(gameID, boxDoc, flowDoc); err != nil {
		return dropped, fmt.Errorf("write game data: %w", err)
	}
	return dropped, nil
}

func isFinal(status string) bool {
	return strings.HasPrefix(strings.TrimSpace(status), "Final")
}
