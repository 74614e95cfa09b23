package main

import (
	"GameFlowApi/internal/data"
	"GameFlowApi/internal/store"
	json2 "encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type storedIndex struct {
	Dates []store.IndexDate `json:"dates"`
}

func (app *application) readStoredIndex() (*storedIndex, error) {
	raw, err := app.store.ReadIndex()
	if err != nil {
		return nil, err
	}

	var idx storedIndex
	if err := json2.Unmarshal(raw, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// GetScores serves the stored scores document for a date.
func (app *application) GetScores(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !validDate(date) {
		app.badRequestResponse(w, r, errors.New("date must be a valid date (YYYY-MM-DD)"))
		return
	}

	raw, err := app.store.ReadScores(date)
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

// GetIndex serves the stored game index.
func (app *application) GetIndex(w http.ResponseWriter, r *http.Request) {
	raw, err := app.store.ReadIndex()
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

// GetDates lists every date with stored games, newest first. Uses the
// database mirror when configured, the file index otherwise.
func (app *application) GetDates(w http.ResponseWriter, r *http.Request) {
	if app.models != nil {
		dates, err := app.models.Games.GetDates(r.Context())
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		err = app.writeJSON(w, http.StatusOK, envelope{"dates": dates}, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	idx, err := app.readStoredIndex()
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.writeJSON(w, http.StatusOK, envelope{"dates": []string{}}, nil)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	dates := make([]string, 0, len(idx.Dates))
	for _, d := range idx.Dates {
		dates = append(dates, d.Date)
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"dates": dates}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetDateGames lists the indexed games for one date. Uses the database mirror
// when configured, the file index otherwise.
func (app *application) GetDateGames(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !validDate(date) {
		app.badRequestResponse(w, r, errors.New("date must be a valid date (YYYY-MM-DD)"))
		return
	}

	if app.models != nil {
		games, err := app.models.Games.GetByDate(r.Context(), date)
		if err != nil {
			switch {
			case errors.Is(err, data.ErrRecordNotFound):
				app.notFoundResponse(w, r)
			default:
				app.serverErrorResponse(w, r, err)
			}
			return
		}

		err = app.writeJSON(w, http.StatusOK, envelope{"date": date, "games": games}, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	idx, err := app.readStoredIndex()
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	for _, d := range idx.Dates {
		if d.Date == date {
			err = app.writeJSON(w, http.StatusOK, envelope{"date": date, "games": d.Games}, nil)
			if err != nil {
				app.serverErrorResponse(w, r, err)
			}
			return
		}
	}

	app.notFoundResponse(w, r)
}
