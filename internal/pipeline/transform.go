package pipeline

import (
	"GameFlowApi/internal/clock"
	"GameFlowApi/internal/gameflow"
	"GameFlowApi/internal/nba"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TransformScores maps a scoreboard response into the scores contract for a
// date, pairing each game's home and away line scores. Games missing either
// side are skipped.
func TransformScores(sb *nba.Scoreboard, date string) []GameScore {
	scores := make([]GameScore, 0, len(sb.Headers))
	for _, header := range sb.Headers {
		var home, away *nba.LineScore
		for i := range sb.LineScores {
			line := &sb.LineScores[i]
			if line.GameID != header.GameID {
				continue
			}
			switch line.TeamID {
			case header.HomeTeamID:
				home = line
			case header.VisitorTeamID:
				away = line
			}
		}
		if home == nil || away == nil {
			continue
		}

		scores = append(scores, GameScore{
			GameID:   header.GameID,
			Date:     date,
			HomeTeam: TeamScore{Tricode: home.TeamAbbreviation, Name: home.TeamName, Score: home.Pts},
			AwayTeam: TeamScore{Tricode: away.TeamAbbreviation, Name: away.TeamName, Score: away.Pts},
			Status:   header.GameStatusText,
		})
	}
	return scores
}

// normalizeRotations converts raw millisecond in/out rows into clock-form
// rotation records for stint construction.
func normalizeRotations(records []nba.RotationRecord) []gameflow.Rotation {
	rotations := make([]gameflow.Rotation, 0, len(records))
	for _, rec := range records {
		period, in, out := clock.FromGameTimeRange(rec.InTimeReal, rec.OutTimeReal)
		rotations = append(rotations, gameflow.Rotation{
			PlayerID:  rec.PersonID,
			Period:    period,
			In:        in,
			Out:       out,
			PlusMinus: rec.PtDiff,
		})
	}
	return rotations
}

// normalizeEvents converts raw play-by-play rows into attribution events.
// Secondary credit follows the feed's conventions: PLAYER2 is the assister on
// makes and the stealer on turnovers, PLAYER3 the blocker on misses. A
// rebound is offensive when the rebounding team also took the preceding miss.
func normalizeEvents(records []nba.PlayByPlayRecord) []gameflow.Event {
	events := make([]gameflow.Event, 0, len(records))
	var lastMissTeam int64
	lastPeriod := 0

	for _, rec := range records {
		// A miss never carries across the period break.
		if rec.Period != lastPeriod {
			lastMissTeam = 0
			lastPeriod = rec.Period
		}

		kind := gameflow.KindOf(rec.EventMsgType, rec.EventMsgActionType)
		desc := rec.Description()

		e := gameflow.Event{
			Period:      rec.Period,
			Clock:       clock.Duration(rec.PCTimeString),
			Kind:        kind,
			PlayerID:    rec.Player1ID,
			Description: desc,
		}

		switch kind {
		case gameflow.KindMake2, gameflow.KindMake3, gameflow.KindMakeOther:
			e.AssistID = rec.Player2ID
		case gameflow.KindMiss2, gameflow.KindMiss3, gameflow.KindMissOther:
			e.BlockID = rec.Player3ID
			lastMissTeam = rec.Player1TeamID
		case gameflow.KindTurnover:
			e.StealID = rec.Player2ID
		case gameflow.KindFreeThrow:
			e.Made = !strings.Contains(desc, "MISS")
			if !e.Made {
				lastMissTeam = rec.Player1TeamID
			}
		case gameflow.KindRebound:
			e.Offensive = rec.Player1TeamID != 0 && rec.Player1TeamID == lastMissTeam
		}

		events = append(events, e)
	}
	return events
}

// buildAttributedStints runs the full reconstruction for one game: stint
// construction from both teams' rotations, then event attribution.
func buildAttributedStints(rot *nba.Rotation, pbp []nba.PlayByPlayRecord) (map[int64][]gameflow.Stint, gameflow.Attribution) {
	rotations := normalizeRotations(append(append([]nba.RotationRecord{}, rot.Home...), rot.Away...))
	stints, _ := gameflow.BuildStints(rotations)
	att := gameflow.Attribute(stints, normalizeEvents(pbp))
	return stints, att
}

// gameLines finds a game's home and away line scores.
func gameLines(sb *nba.Scoreboard, gameID string) (nba.GameHeader, *nba.LineScore, *nba.LineScore, error) {
	for _, header := range sb.Headers {
		if header.GameID != gameID {
			continue
		}
		var home, away *nba.LineScore
		for i := range sb.LineScores {
			line := &sb.LineScores[i]
			if line.GameID != gameID {
				continue
			}
			if line.TeamID == header.HomeTeamID {
				home = line
			} else {
				away = line
			}
		}
		if home == nil || away == nil {
			return header, nil, nil, fmt.Errorf("line scores incomplete for game %s", gameID)
		}
		return header, home, away, nil
	}
	return nba.GameHeader{}, nil, nil, fmt.Errorf("game %s not found in scoreboard", gameID)
}

// TransformBoxscore builds the boxscore contract: full-game totals with
// derived metrics per player, plus per-stint breakdowns reconstructed from
// the rotation and play-by-play feeds.
func TransformBoxscore(gameID, date string, sb *nba.Scoreboard, box *nba.Boxscore,
	rot *nba.Rotation, pbp []nba.PlayByPlayRecord) (*Boxscore, error) {

	_, home, away, err := gameLines(sb, gameID)
	if err != nil {
		return nil, err
	}

	stints, _ := buildAttributedStints(rot, pbp)

	out := &Boxscore{
		GameID:   gameID,
		Date:     date,
		HomeTeam: TeamScore{Tricode: home.TeamAbbreviation, Name: home.TeamName, Score: home.Pts},
		AwayTeam: TeamScore{Tricode: away.TeamAbbreviation, Name: away.TeamName, Score: away.Pts},
		Players:  make([]BoxPlayer, 0, len(box.Players)),
	}

	for _, p := range box.Players {
		if p.Min == 0 {
			// DNP
			continue
		}

		hv := p.Reb + p.Ast + p.Blk + p.Stl - p.Tov
		prod := 0.0
		if p.Min > 0 {
			prod = math.Round(float64(p.Pts+hv)/p.Min*100) / 100
		}
		eff := p.Pts + p.Reb + p.Ast + p.Stl + p.Blk - (p.FGA - p.FGM) - (p.FTA - p.FTM) - p.Tov

		player := BoxPlayer{
			PlayerID: strconv.FormatInt(p.PlayerID, 10),
			Name:     p.PlayerName,
			Team:     p.TeamAbbreviation,
			Totals: PlayerTotals{
				Min: math.Round(p.Min*10) / 10,
				Statline: gameflow.Statline{
					FGM: p.FGM, FGA: p.FGA, FG3M: p.FG3M, FG3A: p.FG3A,
					FTM: p.FTM, FTA: p.FTA, OReb: p.OReb, Reb: p.Reb,
					Ast: p.Ast, Blk: p.Blk, Stl: p.Stl, Tov: p.Tov,
					PF: p.PF, Pts: p.Pts,
				},
				PlusMinus: p.PlusMinus,
				HV:        hv,
				Prod:      prod,
				Eff:       eff,
			},
		}

		for _, st := range stints[p.PlayerID] {
			player.Stints = append(player.Stints, BoxStint{
				Period:    st.Period,
				InTime:    st.In,
				OutTime:   st.Out,
				Minutes:   math.Round(st.Minutes*10) / 10,
				PlusMinus: st.PlusMinus,
				Statline:  st.Stats,
			})
		}

		out.Players = append(out.Players, player)
	}

	homeTotals, awayTotals := teamTotals(box, home.TeamAbbreviation, away.TeamAbbreviation)
	out.TeamTotals.Home = homeTotals
	out.TeamTotals.Away = awayTotals
	out.PeriodTotals.Home = []PeriodLine{periodLine(homeTotals)}
	out.PeriodTotals.Away = []PeriodLine{periodLine(awayTotals)}

	return out, nil
}

// teamTotals matches team stat lines by abbreviation, falling back to feed
// order when the abbreviations disagree with the scoreboard.
func teamTotals(box *nba.Boxscore, homeAbbr, awayAbbr string) (gameflow.Statline, gameflow.Statline) {
	var home, away *nba.TeamLine
	for i := range box.Teams {
		switch box.Teams[i].TeamAbbreviation {
		case homeAbbr:
			home = &box.Teams[i]
		case awayAbbr:
			away = &box.Teams[i]
		}
	}
	if home == nil || away == nil {
		if len(box.Teams) >= 2 {
			home, away = &box.Teams[0], &box.Teams[1]
		} else if len(box.Teams) == 1 {
			home, away = &box.Teams[0], &box.Teams[0]
		} else {
			return gameflow.Statline{}, gameflow.Statline{}
		}
	}
	return teamStatline(home), teamStatline(away)
}

func teamStatline(t *nba.TeamLine) gameflow.Statline {
	return gameflow.Statline{
		FGM: t.FGM, FGA: t.FGA, FG3M: t.FG3M, FG3A: t.FG3A,
		FTM: t.FTM, FTA: t.FTA, OReb: t.OReb, Reb: t.Reb,
		Ast: t.Ast, Blk: t.Blk, Stl: t.Stl, Tov: t.Tov,
		PF: t.PF, Pts: t.Pts,
	}
}

func periodLine(s gameflow.Statline) PeriodLine {
	return PeriodLine{
		Period: "Game",
		FGM:    s.FGM, FGA: s.FGA, FG3M: s.FG3M, FG3A: s.FG3A,
		FTM: s.FTM, FTA: s.FTA, Pts: s.Pts,
	}
}

// TransformGameflow builds the gameflow contract: per player, the ordered
// stint list with attributed stats and the events that fell inside each
// stint. Returns attribution diagnostics for logging.
func TransformGameflow(gameID string, sb *nba.Scoreboard, rot *nba.Rotation,
	pbp []nba.PlayByPlayRecord) (*Gameflow, gameflow.Attribution, error) {

	header, home, away, err := gameLines(sb, gameID)
	if err != nil {
		return nil, gameflow.Attribution{}, err
	}

	stints, att := buildAttributedStints(rot, pbp)

	out := &Gameflow{
		GameID:   gameID,
		HomeTeam: TeamRef{Tricode: home.TeamAbbreviation, Name: home.TeamName},
		AwayTeam: TeamRef{Tricode: away.TeamAbbreviation, Name: away.TeamName},
	}

	appendSide := func(records []nba.RotationRecord, team string) {
		seen := make(map[int64]bool)
		for _, rec := range records {
			if seen[rec.PersonID] {
				continue
			}
			seen[rec.PersonID] = true

			player := FlowPlayer{
				PlayerID: strconv.FormatInt(rec.PersonID, 10),
				Name:     strings.TrimSpace(rec.PlayerFirst + " " + rec.PlayerLast),
				Team:     team,
			}
			for _, st := range stints[rec.PersonID] {
				flow := FlowStint{
					Period:    st.Period,
					InTime:    st.In,
					OutTime:   st.Out,
					Minutes:   math.Round(st.Minutes*10) / 10,
					PlusMinus: st.PlusMinus,
					Stats:     st.Stats,
					Events:    make([]FlowEvent, 0, len(st.Events)),
				}
				for _, e := range st.Events {
					flow.Events = append(flow.Events, FlowEvent{
						Clock:       string(e.Clock),
						Type:        e.Kind.String(),
						Description: e.Description,
					})
				}
				player.Stints = append(player.Stints, flow)
			}
			out.Players = append(out.Players, player)
		}
	}

	homeRecords, awayRecords := rot.Home, rot.Away
	if header.HomeTeamID != 0 && len(rot.Home) > 0 && rot.Home[0].TeamID != 0 &&
		rot.Home[0].TeamID != header.HomeTeamID {
		// The rotation feed's home/away sets occasionally arrive swapped.
		homeRecords, awayRecords = rot.Away, rot.Home
	}
	appendSide(homeRecords, home.TeamAbbreviation)
	appendSide(awayRecords, away.TeamAbbreviation)

	return out, att, nil
}

// TeamStints rebuilds the stint-interval model for one team from a stored
// gameflow document, re-attaching the attributed stats to each interval.
// This is what lineup reconstruction and timeline layout consume when serving
// derived views without re-running the pipeline.
func (g *Gameflow) TeamStints(tricode string) map[int64][]gameflow.Stint {
	var rotations []gameflow.Rotation
	statsFor := make(map[string]gameflow.Statline)

	for _, player := range g.Players {
		if player.Team != tricode {
			continue
		}
		id, err := strconv.ParseInt(player.PlayerID, 10, 64)
		if err != nil {
			continue
		}
		for _, st := range player.Stints {
			rotations = append(rotations, gameflow.Rotation{
				PlayerID:  id,
				Period:    st.Period,
				In:        st.InTime,
				Out:       st.OutTime,
				PlusMinus: st.PlusMinus,
			})
			statsFor[stintKey(id, st.Period, string(st.InTime), string(st.OutTime))] = st.Stats
		}
	}

	stints, _ := gameflow.BuildStints(rotations)
	for id := range stints {
		for i := range stints[id] {
			st := &stints[id][i]
			st.Stats = statsFor[stintKey(id, st.Period, string(st.In), string(st.Out))]
		}
	}
	return stints
}

// Tricodes returns the team codes of a gameflow document, home first.
func (g *Gameflow) Tricodes() []string {
	return []string{g.HomeTeam.Tricode, g.AwayTeam.Tricode}
}

func stintKey(id int64, period int, in, out string) string {
	return fmt.Sprintf("%d/%d/%s/%s", id, period, in, out)
}
