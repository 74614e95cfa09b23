package main

import (
	"GameFlowApi/internal/gameflow"
	"GameFlowApi/internal/pipeline"
	"GameFlowApi/internal/store"
	json2 "encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// defaultRegulationWidth is the layout width of one regulation quarter block,
// in frontend pixels.
const defaultRegulationWidth = 240.0

// GetBoxscore serves a game's stored boxscore document.
func (app *application) GetBoxscore(w http.ResponseWriter, r *http.Request) {
	app.serveGameFile(w, r, "boxscore.json")
}

// GetGameflow serves a game's stored gameflow document.
func (app *application) GetGameflow(w http.ResponseWriter, r *http.Request) {
	app.serveGameFile(w, r, "gameflow.json")
}

func (app *application) serveGameFile(w http.ResponseWriter, r *http.Request, name string) {
	gameID := chi.URLParam(r, "id")

	raw, err := app.store.ReadGameFile(gameID, name)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeRawJSON(w, http.StatusOK, raw)
	if err != nil {
		app.logError(r, err)
	}
}

func (app *application) loadGameflow(gameID string) (*pipeline.Gameflow, error) {
	raw, err := app.store.ReadGameFile(gameID, "gameflow.json")
	if err != nil {
		return nil, err
	}

	var flow pipeline.Gameflow
	if err := json2.Unmarshal(raw, &flow); err != nil {
		return nil, err
	}
	return &flow, nil
}

// GetLineups serves the minute-by-minute lineup reconstruction for both
// teams, derived on demand from the stored gameflow document.
func (app *application) GetLineups(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	flow, err := app.loadGameflow(gameID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	homeStints := flow.TeamStints(flow.HomeTeam.Tricode)
	awayStints := flow.TeamStints(flow.AwayTeam.Tricode)
	numPeriods := max(gameflow.NumPeriods(homeStints), gameflow.NumPeriods(awayStints))

	err = app.writeJSON(w, http.StatusOK, envelope{
		"gameId":     gameID,
		"numPeriods": numPeriods,
		"home": envelope{
			"tricode": flow.HomeTeam.Tricode,
			"lineups": gameflow.ReconstructLineup(homeStints, numPeriods),
		},
		"away": envelope{
			"tricode": flow.AwayTeam.Tricode,
			"lineups": gameflow.ReconstructLineup(awayStints, numPeriods),
		},
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type timelineLane struct {
	PlayerID string                 `json:"playerId"`
	Name     string                 `json:"name"`
	Blocks   []gameflow.PeriodBlock `json:"blocks"`
}

// GetTimeline serves the pixel layout of every player's court time, one lane
// per player, derived on demand from the stored gameflow document. The width
// of a regulation quarter block is adjustable via the "width" query
// parameter.
func (app *application) GetTimeline(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	regulationWidth := defaultRegulationWidth
	if s := app.readString(r.URL.Query(), "width", ""); s != "" {
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil || parsed <= 0 {
			app.badRequestResponse(w, r, errors.New("width must be a positive number"))
			return
		}
		regulationWidth = parsed
	}

	flow, err := app.loadGameflow(gameID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	homeStints := flow.TeamStints(flow.HomeTeam.Tricode)
	awayStints := flow.TeamStints(flow.AwayTeam.Tricode)
	numPeriods := max(gameflow.NumPeriods(homeStints), gameflow.NumPeriods(awayStints))

	err = app.writeJSON(w, http.StatusOK, envelope{
		"gameId":        gameID,
		"numPeriods":    numPeriods,
		"periodOffsets": gameflow.PeriodOffsets(numPeriods, regulationWidth),
		"home": envelope{
			"tricode": flow.HomeTeam.Tricode,
			"lanes":   app.timelineLanes(flow, flow.HomeTeam.Tricode, homeStints, numPeriods, regulationWidth),
		},
		"away": envelope{
			"tricode": flow.AwayTeam.Tricode,
			"lanes":   app.timelineLanes(flow, flow.AwayTeam.Tricode, awayStints, numPeriods, regulationWidth),
		},
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// timelineLanes lays out one lane per player, preserving the gameflow
// document's player order.
func (app *application) timelineLanes(flow *pipeline.Gameflow, tricode string,
	stints map[int64][]gameflow.Stint, numPeriods int, regulationWidth float64) []timelineLane {

	lanes := make([]timelineLane, 0, len(stints))
	for _, player := range flow.Players {
		if player.Team != tricode {
			continue
		}
		id, err := strconv.ParseInt(player.PlayerID, 10, 64)
		if err != nil {
			continue
		}

		lanes = append(lanes, timelineLane{
			PlayerID: player.PlayerID,
			Name:     player.Name,
			Blocks:   gameflow.Layout(stints[id], numPeriods, regulationWidth),
		})
	}
	return lanes
}
