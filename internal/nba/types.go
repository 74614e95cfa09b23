package nba

// GameHeader is one game's row from the scoreboard endpoint.
type GameHeader struct {
	GameID         string
	HomeTeamID     int64
	VisitorTeamID  int64
	GameStatusText string
}

// LineScore is one team's scoring row for one game.
type LineScore struct {
	GameID           string
	TeamID           int64
	TeamAbbreviation string
	TeamName         string
	Pts              int
}

// Scoreboard pairs the two result sets of the scoreboardv2 endpoint.
type Scoreboard struct {
	Headers    []GameHeader
	LineScores []LineScore
}

// PlayerLine is one player's full-game totals from the traditional box score.
type PlayerLine struct {
	PlayerID         int64
	PlayerName       string
	TeamAbbreviation string
	Min              float64
	FGM              int
	FGA              int
	FG3M             int
	FG3A             int
	FTM              int
	FTA              int
	OReb             int
	Reb              int
	Ast              int
	Stl              int
	Blk              int
	Tov              int
	PF               int
	Pts              int
	PlusMinus        int
}

// TeamLine is one team's full-game totals.
type TeamLine struct {
	TeamID           int64
	TeamAbbreviation string
	TeamName         string
	FGM              int
	FGA              int
	FG3M             int
	FG3A             int
	FTM              int
	FTA              int
	OReb             int
	Reb              int
	Ast              int
	Stl              int
	Blk              int
	Tov              int
	PF               int
	Pts              int
}

// Boxscore pairs the player and team result sets of boxscoretraditionalv2.
type Boxscore struct {
	Players []PlayerLine
	Teams   []TeamLine
}

// RotationRecord is one raw in/out row from the gamerotation endpoint; times
// are absolute in-game milliseconds.
type RotationRecord struct {
	GameID      string
	TeamID      int64
	PersonID    int64
	PlayerFirst string
	PlayerLast  string
	InTimeReal  int64
	OutTimeReal int64
	PtDiff      int
}

// Rotation splits rotation records by side, mirroring the feed's two result
// sets.
type Rotation struct {
	Away []RotationRecord
	Home []RotationRecord
}

// PlayByPlayRecord is one raw event row from playbyplayv2.
type PlayByPlayRecord struct {
	GameID             string
	EventNum           int
	EventMsgType       int
	EventMsgActionType int
	Period             int
	PCTimeString       string
	HomeDescription    string
	NeutralDescription string
	VisitorDescription string
	Player1ID          int64
	Player1TeamID      int64
	Player2ID          int64
	Player3ID          int64
}

// Description returns whichever side's description the event carries.
func (r PlayByPlayRecord) Description() string {
	if r.HomeDescription != "" {
		return r.HomeDescription
	}
	if r.VisitorDescription != "" {
		return r.VisitorDescription
	}
	return r.NeutralDescription
}

func decodeGameHeaders(rs resultSet) []GameHeader {
	t := newTable(rs)
	out := make([]GameHeader, 0, t.len())
	for i := 0; i < t.len(); i++ {
		out = append(out, GameHeader{
			GameID:         t.str(i, "GAME_ID"),
			HomeTeamID:     t.int64(i, "HOME_TEAM_ID"),
			VisitorTeamID:  t.int64(i, "VISITOR_TEAM_ID"),
			GameStatusText: t.str(i, "GAME_STATUS_TEXT"),
		})
	}
	return out
}

func decodeLineScores(rs resultSet) []LineScore {
	t := newTable(rs)
	out := make([]LineScore, 0, t.len())
	for i := 0; i < t.len(); i++ {
		out = append(out, LineScore{
			GameID:           t.str(i, "GAME_ID"),
			TeamID:           t.int64(i, "TEAM_ID"),
			TeamAbbreviation: t.str(i, "TEAM_ABBREVIATION"),
			TeamName:         t.str(i, "TEAM_NAME"),
			Pts:              t.int(i, "PTS"),
		})
	}
	return out
}

func decodePlayerLines(rs resultSet) []PlayerLine {
	t := newTable(rs)
	out := make([]PlayerLine, 0, t.len())
	for i := 0; i < t.len(); i++ {
		out = append(out, PlayerLine{
			PlayerID:         t.int64(i, "PLAYER_ID"),
			PlayerName:       t.str(i, "PLAYER_NAME"),
			TeamAbbreviation: t.str(i, "TEAM_ABBREVIATION"),
			Min:              t.minutes(i, "MIN"),
			FGM:              t.int(i, "FGM"),
			FGA:              t.int(i, "FGA"),
			FG3M:             t.int(i, "FG3M"),
			FG3A:             t.int(i, "FG3A"),
			FTM:              t.int(i, "FTM"),
			FTA:              t.int(i, "FTA"),
			OReb:             t.int(i, "OREB"),
			Reb:              t.int(i, "REB"),
			Ast:              t.int(i, "AST"),
			Stl:              t.int(i, "STL"),
			Blk:              t.int(i, "BLK"),
			Tov:              t.int(i, "TO"),
			PF:               t.int(i, "PF"),
			Pts:              t.int(i, "PTS"),
			PlusMinus:        t.int(i, "PLUS_MINUS"),
		})
	}
	return out
}

func decodeTeamLines(rs resultSet) []TeamLine {
	t := newTable(rs)
	out := make([]TeamLine, 0, t.len())
	for i := 0; i < t.len(); i++ {
		out = append(out, TeamLine{
			TeamID:           t.int64(i, "TEAM_ID"),
			TeamAbbreviation: t.str(i, "TEAM_ABBREVIATION"),
			TeamName:         t.str(i, "TEAM_NAME"),
			FGM:              t.int(i, "FGM"),
			FGA:              t.int(i, "FGA"),
			FG3M:             t.int(i, "FG3M"),
			FG3A:             t.int(i, "FG3A"),
			FTM:              t.int(i, "FTM"),
			FTA:              t.int(i, "FTA"),
			OReb:             t.int(i, "OREB"),
			Reb:              t.int(i, "REB"),
			Ast:              t.int(i, "AST"),
			Stl:              t.int(i, "STL"),
			Blk:              t.int(i, "BLK"),
			Tov:              t.int(i, "TO"),
			PF:               t.int(i, "PF"),
			Pts:              t.int(i, "PTS"),
		})
	}
	return out
}

func decodeRotationRecords(rs resultSet) []RotationRecord {
	t := newTable(rs)
	out := make([]RotationRecord, 0, t.len())
	for i := 0; i < t.len(); i++ {
		out = append(out, RotationRecord{
			GameID:      t.str(i, "GAME_ID"),
			TeamID:      t.int64(i, "TEAM_ID"),
			PersonID:    t.int64(i, "PERSON_ID"),
			PlayerFirst: t.str(i, "PLAYER_FIRST"),
			PlayerLast:  t.str(i, "PLAYER_LAST"),
			InTimeReal:  t.int64(i, "IN_TIME_REAL"),
			OutTimeReal: t.int64(i, "OUT_TIME_REAL"),
			PtDiff:      t.int(i, "PT_DIFF"),
		})
	}
	return out
}

func decodePlayByPlayRecords(rs resultSet) []PlayByPlayRecord {
	t := newTable(rs)
	out := make([]PlayByPlayRecord, 0, t.len())
	for i := 0; i < t.len(); i++ {
		out = append(out, PlayByPlayRecord{
			GameID:             t.str(i, "GAME_ID"),
			EventNum:           t.int(i, "EVENTNUM"),
			EventMsgType:       t.int(i, "EVENTMSGTYPE"),
			EventMsgActionType: t.int(i, "EVENTMSGACTIONTYPE"),
			Period:             t.int(i, "PERIOD"),
			PCTimeString:       t.str(i, "PCTIMESTRING"),
			HomeDescription:    t.str(i, "HOMEDESCRIPTION"),
			NeutralDescription: t.str(i, "NEUTRALDESCRIPTION"),
			VisitorDescription: t.str(i, "VISITORDESCRIPTION"),
			Player1ID:          t.int64(i, "PLAYER1_ID"),
			Player1TeamID:      t.int64(i, "PLAYER1_TEAM_ID"),
			Player2ID:          t.int64(i, "PLAYER2_ID"),
			Player3ID:          t.int64(i, "PLAYER3_ID"),
		})
	}
	return out
}
