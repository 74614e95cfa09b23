package pipeline

import (
	"GameFlowApi/internal/assert"
	"GameFlowApi/internal/gameflow"
	"GameFlowApi/internal/nba"
	"testing"
)

const (
	testGameID = "0022400001"
	testDate   = "2025-01-15"

	homeTeamID = int64(100)
	awayTeamID = int64(200)

	playerStarter = int64(10)
	playerBench   = int64(11)
	playerAway    = int64(20)
)

func testScoreboard() *nba.Scoreboard {
	return &nba.Scoreboard{
		Headers: []nba.GameHeader{{
			GameID:         testGameID,
			HomeTeamID:     homeTeamID,
			VisitorTeamID:  awayTeamID,
			GameStatusText: "Final",
		}},
		LineScores: []nba.LineScore{
			{GameID: testGameID, TeamID: homeTeamID, TeamAbbreviation: "GSW", TeamName: "Warriors", Pts: 120},
			{GameID: testGameID, TeamID: awayTeamID, TeamAbbreviation: "LAL", TeamName: "Lakers", Pts: 110},
		},
	}
}

func testRotation() *nba.Rotation {
	return &nba.Rotation{
		Home: []nba.RotationRecord{
			{GameID: testGameID, TeamID: homeTeamID, PersonID: playerStarter,
				PlayerFirst: "Home", PlayerLast: "Starter",
				InTimeReal: 0, OutTimeReal: 720000, PtDiff: 6},
			{GameID: testGameID, TeamID: homeTeamID, PersonID: playerBench,
				PlayerFirst: "Home", PlayerLast: "Bench",
				InTimeReal: 0, OutTimeReal: 360000, PtDiff: 2},
		},
		Away: []nba.RotationRecord{
			{GameID: testGameID, TeamID: awayTeamID, PersonID: playerAway,
				PlayerFirst: "Away", PlayerLast: "Starter",
				InTimeReal: 0, OutTimeReal: 720000, PtDiff: -6},
		},
	}
}

// testPlayByPlay covers every stat category plus secondary credit: an
// assisted make, a blocked miss, an offensive rebound off that miss, a steal,
// and a made and missed free throw.
func testPlayByPlay() []nba.PlayByPlayRecord {
	return []nba.PlayByPlayRecord{
		{EventMsgType: 1, EventMsgActionType: 1, Period: 1, PCTimeString: "10:00",
			Player1ID: playerStarter, Player1TeamID: homeTeamID, Player2ID: playerBench,
			HomeDescription: "Starter 12' Jump Shot (2 PTS) (Bench 1 AST)"},
		{EventMsgType: 2, EventMsgActionType: 2, Period: 1, PCTimeString: "8:00",
			Player1ID: playerAway, Player1TeamID: awayTeamID, Player3ID: playerStarter,
			VisitorDescription: "MISS Away 26' 3PT Jump Shot (Starter BLK)"},
		{EventMsgType: 4, EventMsgActionType: 0, Period: 1, PCTimeString: "7:59",
			Player1ID: playerAway, Player1TeamID: awayTeamID,
			VisitorDescription: "Away REBOUND (Off:1 Def:0)"},
		{EventMsgType: 5, EventMsgActionType: 1, Period: 1, PCTimeString: "7:00",
			Player1ID: playerAway, Player1TeamID: awayTeamID, Player2ID: playerStarter,
			VisitorDescription: "Away Bad Pass Turnover (Starter STL)"},
		{EventMsgType: 3, EventMsgActionType: 10, Period: 1, PCTimeString: "5:00",
			Player1ID: playerStarter, Player1TeamID: homeTeamID,
			HomeDescription: "Starter Free Throw 1 of 1 (3 PTS)"},
		{EventMsgType: 3, EventMsgActionType: 10, Period: 1, PCTimeString: "4:00",
			Player1ID: playerStarter, Player1TeamID: homeTeamID,
			HomeDescription: "MISS Starter Free Throw 1 of 1"},
	}
}

func testNBABoxscore() *nba.Boxscore {
	return &nba.Boxscore{
		Players: []nba.PlayerLine{
			{PlayerID: playerStarter, PlayerName: "Home Starter", TeamAbbreviation: "GSW",
				Min: 34.5, FGM: 10, FGA: 20, FG3M: 2, FG3A: 6, FTM: 5, FTA: 6,
				OReb: 1, Reb: 5, Ast: 7, Stl: 2, Blk: 1, Tov: 3, PF: 2, Pts: 27, PlusMinus: 8},
			{PlayerID: playerAway, PlayerName: "Away Starter", TeamAbbreviation: "LAL",
				Min: 30, FGM: 8, FGA: 18, FTM: 4, FTA: 4,
				Reb: 10, Ast: 2, Tov: 2, PF: 3, Pts: 20, PlusMinus: -6},
			{PlayerID: 99, PlayerName: "Deep Bench", TeamAbbreviation: "GSW", Min: 0},
		},
		Teams: []nba.TeamLine{
			{TeamID: homeTeamID, TeamAbbreviation: "GSW", TeamName: "Warriors",
				FGM: 45, FGA: 90, FG3M: 15, FG3A: 40, FTM: 15, FTA: 18, Pts: 120},
			{TeamID: awayTeamID, TeamAbbreviation: "LAL", TeamName: "Lakers",
				FGM: 42, FGA: 88, FG3M: 10, FG3A: 35, FTM: 16, FTA: 20, Pts: 110},
		},
	}
}

func TestTransformScores(t *testing.T) {
	scores := TransformScores(testScoreboard(), testDate)

	assert.Equal(t, len(scores), 1)
	assert.Equal(t, scores[0].GameID, testGameID)
	assert.Equal(t, scores[0].Date, testDate)
	assert.Equal(t, scores[0].HomeTeam.Tricode, "GSW")
	assert.Equal(t, scores[0].HomeTeam.Score, 120)
	assert.Equal(t, scores[0].AwayTeam.Tricode, "LAL")
	assert.Equal(t, scores[0].AwayTeam.Score, 110)
	assert.Equal(t, scores[0].Status, "Final")
}

func TestTransformScoresSkipsIncompleteGames(t *testing.T) {
	sb := testScoreboard()
	sb.LineScores = sb.LineScores[:1]

	scores := TransformScores(sb, testDate)
	assert.Equal(t, len(scores), 0)
}

func TestNormalizeEvents(t *testing.T) {
	events := normalizeEvents(testPlayByPlay())
	assert.Equal(t, len(events), 6)

	make := events[0]
	assert.Equal(t, make.Kind, gameflow.KindMake2)
	assert.Equal(t, make.PlayerID, playerStarter)
	assert.Equal(t, make.AssistID, playerBench)

	miss := events[1]
	assert.Equal(t, miss.Kind, gameflow.KindMiss3)
	assert.Equal(t, miss.BlockID, playerStarter)

	// The rebounding team took the preceding miss, so it is offensive.
	reb := events[2]
	assert.Equal(t, reb.Kind, gameflow.KindRebound)
	assert.Equal(t, reb.Offensive, true)

	tov := events[3]
	assert.Equal(t, tov.Kind, gameflow.KindTurnover)
	assert.Equal(t, tov.StealID, playerStarter)

	assert.Equal(t, events[4].Made, true)
	assert.Equal(t, events[5].Made, false)
}

func TestNormalizeEventsDefensiveRebound(t *testing.T) {
	records := []nba.PlayByPlayRecord{
		{EventMsgType: 2, EventMsgActionType: 1, Period: 1, PCTimeString: "8:00",
			Player1ID: playerAway, Player1TeamID: awayTeamID},
		{EventMsgType: 4, EventMsgActionType: 0, Period: 1, PCTimeString: "7:58",
			Player1ID: playerStarter, Player1TeamID: homeTeamID},
	}

	events := normalizeEvents(records)
	assert.Equal(t, events[1].Offensive, false)
}

func TestNormalizeEventsReboundAfterPeriodBreak(t *testing.T) {
	// A miss at the end of one period must not mark a same-team rebound at
	// the start of the next period as offensive.
	records := []nba.PlayByPlayRecord{
		{EventMsgType: 2, EventMsgActionType: 1, Period: 1, PCTimeString: "0:01",
			Player1ID: playerAway, Player1TeamID: awayTeamID},
		{EventMsgType: 4, EventMsgActionType: 0, Period: 2, PCTimeString: "11:58",
			Player1ID: playerAway, Player1TeamID: awayTeamID},
	}

	events := normalizeEvents(records)
	assert.Equal(t, events[1].Offensive, false)
}

func TestTransformBoxscore(t *testing.T) {
	box, err := TransformBoxscore(testGameID, testDate, testScoreboard(),
		testNBABoxscore(), testRotation(), testPlayByPlay())
	assert.NilError(t, err)

	assert.Equal(t, box.GameID, testGameID)
	assert.Equal(t, box.HomeTeam.Tricode, "GSW")
	assert.Equal(t, box.AwayTeam.Score, 110)

	// DNP rows are dropped.
	assert.Equal(t, len(box.Players), 2)

	starter := box.Players[0]
	assert.Equal(t, starter.PlayerID, "10")
	assert.Equal(t, starter.Totals.Min, 34.5)
	assert.Equal(t, starter.Totals.Pts, 27)
	assert.Equal(t, starter.Totals.PlusMinus, 8)

	// hv = reb + ast + blk + stl - tov = 5+7+1+2-3.
	assert.Equal(t, starter.Totals.HV, 12)
	// prod = round((pts + hv) / min, 2) = 39 / 34.5.
	assert.Equal(t, starter.Totals.Prod, 1.13)
	// eff = pts + reb + ast + stl + blk - missed FG - missed FT - tov.
	assert.Equal(t, starter.Totals.Eff, 28)

	// Stint breakdown attached from the rotation and play-by-play feeds.
	assert.Equal(t, len(starter.Stints), 1)
	st := starter.Stints[0]
	assert.Equal(t, st.Period, 1)
	assert.Equal(t, string(st.InTime), "12:00")
	assert.Equal(t, string(st.OutTime), "0:00")
	assert.Equal(t, st.Minutes, 12.0)
	assert.Equal(t, st.FGM, 1)
	assert.Equal(t, st.FTM, 1)
	assert.Equal(t, st.FTA, 2)
	assert.Equal(t, st.Pts, 3)
	assert.Equal(t, st.Blk, 1)
	assert.Equal(t, st.Stl, 1)

	assert.Equal(t, box.TeamTotals.Home.Pts, 120)
	assert.Equal(t, box.TeamTotals.Away.Pts, 110)
	assert.Equal(t, len(box.PeriodTotals.Home), 1)
	assert.Equal(t, box.PeriodTotals.Home[0].Period, "Game")
	assert.Equal(t, box.PeriodTotals.Home[0].Pts, 120)
}

func TestTransformBoxscoreUnknownGame(t *testing.T) {
	_, err := TransformBoxscore("0099999999", testDate, testScoreboard(),
		testNBABoxscore(), testRotation(), testPlayByPlay())
	assert.Error(t, err)
}

func TestTransformGameflow(t *testing.T) {
	flow, att, err := TransformGameflow(testGameID, testScoreboard(),
		testRotation(), testPlayByPlay())
	assert.NilError(t, err)

	assert.Equal(t, att.Attributed, 6)
	assert.Equal(t, att.DroppedNoStint, 0)
	assert.Equal(t, att.DroppedBadClock, 0)

	assert.Equal(t, flow.HomeTeam.Tricode, "GSW")
	assert.Equal(t, flow.AwayTeam.Name, "Lakers")

	// Home players first, one entry per player regardless of stint count.
	assert.Equal(t, len(flow.Players), 3)
	assert.Equal(t, flow.Players[0].PlayerID, "10")
	assert.Equal(t, flow.Players[0].Name, "Home Starter")
	assert.Equal(t, flow.Players[0].Team, "GSW")
	assert.Equal(t, flow.Players[2].Team, "LAL")

	starter := flow.Players[0]
	assert.Equal(t, len(starter.Stints), 1)
	st := starter.Stints[0]
	assert.Equal(t, st.Stats.Pts, 3)
	assert.Equal(t, st.PlusMinus, 6)

	// The starter's primary events: the make and both free throws.
	assert.Equal(t, len(st.Events), 3)
	assert.Equal(t, st.Events[0].Type, "make2")
	assert.Equal(t, st.Events[0].Clock, "10:00")
	assert.Equal(t, st.Events[1].Type, "fta")
	assert.StringContains(t, st.Events[2].Description, "MISS")

	// Secondary credit lands without a primary event on the bench stint.
	bench := flow.Players[1]
	assert.Equal(t, bench.Stints[0].Stats.Ast, 1)
	assert.Equal(t, len(bench.Stints[0].Events), 0)
}

func TestGameflowTeamStints(t *testing.T) {
	flow, _, err := TransformGameflow(testGameID, testScoreboard(),
		testRotation(), testPlayByPlay())
	assert.NilError(t, err)

	stints := flow.TeamStints("GSW")
	assert.Equal(t, len(stints), 2)

	starter := stints[playerStarter]
	assert.Equal(t, len(starter), 1)
	assert.Equal(t, starter[0].Period, 1)
	assert.Equal(t, starter[0].Stats.Pts, 3)
	assert.Equal(t, starter[0].Stats.Stl, 1)

	away := flow.TeamStints("LAL")
	assert.Equal(t, len(away), 1)
	assert.Equal(t, away[playerAway][0].Stats.Tov, 1)
}

func TestGameflowTricodes(t *testing.T) {
	flow, _, err := TransformGameflow(testGameID, testScoreboard(),
		testRotation(), testPlayByPlay())
	assert.NilError(t, err)

	assert.StringSliceEqual(t, flow.Tricodes(), []string{"GSW", "LAL"})
}
