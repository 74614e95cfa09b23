package pipeline

import (
	"GameFlowApi/internal/assert"
	"GameFlowApi/internal/jsonlog"
	"GameFlowApi/internal/nba"
	"GameFlowApi/internal/store"
	"context"
	"errors"
	"io"
	"testing"
)

type fakeFetcher struct {
	sb  *nba.Scoreboard
	box map[string]*nba.Boxscore
	rot map[string]*nba.Rotation
	pbp map[string][]nba.PlayByPlayRecord
}

var errFeed = errors.New("feed unavailable")

func (f *fakeFetcher) Scoreboard(_ context.Context, _ string) (*nba.Scoreboard, error) {
	if f.sb == nil {
		return nil, errFeed
	}
	return f.sb, nil
}

func (f *fakeFetcher) Boxscore(_ context.Context, gameID string) (*nba.Boxscore, error) {
	box, ok := f.box[gameID]
	if !ok {
		return nil, errFeed
	}
	return box, nil
}

func (f *fakeFetcher) GameRotation(_ context.Context, gameID string) (*nba.Rotation, error) {
	rot, ok := f.rot[gameID]
	if !ok {
		return nil, errFeed
	}
	return rot, nil
}

func (f *fakeFetcher) PlayByPlay(_ context.Context, gameID string) ([]nba.PlayByPlayRecord, error) {
	pbp, ok := f.pbp[gameID]
	if !ok {
		return nil, errFeed
	}
	return pbp, nil
}

type fakeIndex struct {
	date  string
	games []store.IndexGame
}

func (f *fakeIndex) RecordDate(_ context.Context, date string, games []store.IndexGame) error {
	f.date = date
	f.games = games
	return nil
}

func testRunner(t *testing.T, client Fetcher) (*Runner, *store.Store) {
	t.Helper()
	s := store.New(t.TempDir())
	return &Runner{
		Client: client,
		Store:  s,
		Logger: jsonlog.New(io.Discard, jsonlog.LevelFatal),
	}, s
}

func TestRunDate(t *testing.T) {
	sb := testScoreboard()

	// A second, unfinished game must be skipped without touching the feeds.
	sb.Headers = append(sb.Headers, nba.GameHeader{
		GameID:         "0022400002",
		HomeTeamID:     homeTeamID,
		VisitorTeamID:  awayTeamID,
		GameStatusText: "7:30 pm ET",
	})

	client := &fakeFetcher{
		sb:  sb,
		box: map[string]*nba.Boxscore{testGameID: testNBABoxscore()},
		rot: map[string]*nba.Rotation{testGameID: testRotation()},
		pbp: map[string][]nba.PlayByPlayRecord{testGameID: testPlayByPlay()},
	}

	runner, s := testRunner(t, client)
	idx := &fakeIndex{}
	runner.Index = idx

	var stages []string
	runner.Notify = func(e RunEvent) { stages = append(stages, e.Stage) }

	summary, err := runner.RunDate(context.Background(), testDate)
	assert.NilError(t, err)

	assert.Equal(t, summary.GamesFound, 2)
	assert.Equal(t, summary.GamesWritten, 1)
	assert.Equal(t, summary.GamesSkipped, 1)
	assert.Equal(t, summary.EventsDropped, 0)

	raw, err := s.ReadScores(testDate)
	assert.NilError(t, err)
	assert.StringContains(t, string(raw), testGameID)

	raw, err = s.ReadGameFile(testGameID, "boxscore.json")
	assert.NilError(t, err)
	assert.StringContains(t, string(raw), `"hv": 12`)

	raw, err = s.ReadGameFile(testGameID, "gameflow.json")
	assert.NilError(t, err)
	assert.StringContains(t, string(raw), `"make2"`)

	raw, err = s.ReadIndex()
	assert.NilError(t, err)
	assert.StringContains(t, string(raw), `"home": "GSW"`)

	assert.Equal(t, idx.date, testDate)
	assert.Equal(t, len(idx.games), 1)
	assert.Equal(t, idx.games[0].GameID, testGameID)

	assert.Equal(t, stages[len(stages)-1], "done")
}

func TestRunDateSkipsFailingGame(t *testing.T) {
	// Scoreboard has the game, but every per-game feed errors.
	client := &fakeFetcher{sb: testScoreboard()}

	runner, s := testRunner(t, client)

	summary, err := runner.RunDate(context.Background(), testDate)
	assert.NilError(t, err)

	assert.Equal(t, summary.GamesFound, 1)
	assert.Equal(t, summary.GamesWritten, 0)
	assert.Equal(t, summary.GamesSkipped, 1)

	// Scores still written; the failing game left nothing behind.
	_, err = s.ReadScores(testDate)
	assert.NilError(t, err)

	_, err = s.ReadGameFile(testGameID, "boxscore.json")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got err %v; want ErrNotFound", err)
	}
	_, err = s.ReadIndex()
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got err %v; want ErrNotFound", err)
	}
}

func TestRunDateScoreboardError(t *testing.T) {
	runner, _ := testRunner(t, &fakeFetcher{})

	_, err := runner.RunDate(context.Background(), testDate)
	assert.Error(t, err)
}

func TestRunDateHonorsContext(t *testing.T) {
	client := &fakeFetcher{
		sb:  testScoreboard(),
		box: map[string]*nba.Boxscore{testGameID: testNBABoxscore()},
		rot: map[string]*nba.Rotation{testGameID: testRotation()},
		pbp: map[string][]nba.PlayByPlayRecord{testGameID: testPlayByPlay()},
	}

	runner, _ := testRunner(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := runner.RunDate(ctx, testDate)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got err %v; want context.Canceled", err)
	}
	assert.Equal(t, summary.GamesWritten, 0)
}
