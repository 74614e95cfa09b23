package nba

import (
	"context"
	"net/url"
)

// Scoreboard fetches all games for a date (YYYY-MM-DD).
func (c *Client) Scoreboard(ctx context.Context, gameDate string) (*Scoreboard, error) {
	params := url.Values{}
	params.Set("GameDate", gameDate)
	params.Set("DayOffset", "0")
	params.Set("LeagueID", "00")

	body, err := c.get(ctx, "scoreboardv2", params)
	if err != nil {
		return nil, err
	}
	sets, err := parseResponse(body)
	if err != nil {
		return nil, err
	}

	headers, err := findSet(sets, "GameHeader")
	if err != nil {
		return nil, err
	}
	lines, err := findSet(sets, "LineScore")
	if err != nil {
		return nil, err
	}

	return &Scoreboard{
		Headers:    decodeGameHeaders(headers),
		LineScores: decodeLineScores(lines),
	}, nil
}

// Boxscore fetches full-game player and team totals for a game.
func (c *Client) Boxscore(ctx context.Context, gameID string) (*Boxscore, error) {
	params := url.Values{}
	params.Set("GameID", gameID)
	params.Set("StartPeriod", "1")
	params.Set("EndPeriod", "10")
	params.Set("StartRange", "0")
	params.Set("EndRange", "0")
	params.Set("RangeType", "0")

	body, err := c.get(ctx, "boxscoretraditionalv2", params)
	if err != nil {
		return nil, err
	}
	sets, err := parseResponse(body)
	if err != nil {
		return nil, err
	}

	players, err := findSet(sets, "PlayerStats")
	if err != nil {
		return nil, err
	}
	teams, err := findSet(sets, "TeamStats")
	if err != nil {
		return nil, err
	}

	return &Boxscore{
		Players: decodePlayerLines(players),
		Teams:   decodeTeamLines(teams),
	}, nil
}

// PlayByPlay fetches every event row for a game.
func (c *Client) PlayByPlay(ctx context.Context, gameID string) ([]PlayByPlayRecord, error) {
	params := url.Values{}
	params.Set("GameID", gameID)
	params.Set("StartPeriod", "1")
	params.Set("EndPeriod", "10")

	body, err := c.get(ctx, "playbyplayv2", params)
	if err != nil {
		return nil, err
	}
	sets, err := parseResponse(body)
	if err != nil {
		return nil, err
	}

	// Single-set endpoint: some games serve the set under "PlayByPlay", the
	// legacy shape serves it unnamed as the lone "resultSet".
	pbp, err := findSet(sets, "PlayByPlay")
	if err != nil {
		if len(sets) != 1 {
			return nil, err
		}
		pbp = sets[0]
	}

	return decodePlayByPlayRecords(pbp), nil
}

// GameRotation fetches the raw substitution feed for a game, one result set
// per side.
func (c *Client) GameRotation(ctx context.Context, gameID string) (*Rotation, error) {
	params := url.Values{}
	params.Set("GameID", gameID)
	params.Set("LeagueID", "00")

	body, err := c.get(ctx, "gamerotation", params)
	if err != nil {
		return nil, err
	}
	sets, err := parseResponse(body)
	if err != nil {
		return nil, err
	}

	away, err := findSet(sets, "AwayTeam")
	if err != nil {
		return nil, err
	}
	home, err := findSet(sets, "HomeTeam")
	if err != nil {
		return nil, err
	}

	return &Rotation{
		Away: decodeRotationRecords(away),
		Home: decodeRotationRecords(home),
	}, nil
}
