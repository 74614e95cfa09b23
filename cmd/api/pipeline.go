package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// RunPipeline starts a pipeline run for a date in the background. Defaults to
// yesterday, matching the nightly schedule. Only one run may be in flight.
func (app *application) RunPipeline(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Date string `json:"date"`
	}

	if r.ContentLength > 0 {
		err := app.readJSON(w, r, &input)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
	}

	date := input.Date
	if date == "" {
		date = time.Now().AddDate(0, 0, -1).Format(time.DateOnly)
	}
	if !validDate(date) {
		app.badRequestResponse(w, r, errors.New("date must be a valid date (YYYY-MM-DD)"))
		return
	}

	app.runMu.Lock()
	if app.runActive {
		app.runMu.Unlock()
		app.conflictResponse(w, r, "a pipeline run is already in progress")
		return
	}
	app.runActive = true
	app.runMu.Unlock()

	app.backgroundTask(func() {
		defer func() {
			app.runMu.Lock()
			app.runActive = false
			app.runMu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		summary, err := app.runner.RunDate(ctx, date)
		if err != nil {
			app.logger.PrintError(err, map[string]string{"date": date})
			return
		}

		app.logger.PrintInfo("pipeline run complete", map[string]string{
			"date":    summary.Date,
			"found":   strconv.Itoa(summary.GamesFound),
			"written": strconv.Itoa(summary.GamesWritten),
			"skipped": strconv.Itoa(summary.GamesSkipped),
		})

		if app.config.smtp.recipient != "" {
			err = app.mailer.Send(app.config.smtp.recipient, "run_report.tmpl", summary)
			if err != nil {
				app.logger.PrintError(err, map[string]string{"date": date})
			}
		}
	})

	err := app.writeJSON(w, http.StatusAccepted, envelope{
		"message": "pipeline run started",
		"date":    date,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// WatchPipeline upgrades the connection to a websocket streaming pipeline run
// progress events.
func (app *application) WatchPipeline(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logError(r, err)
		return
	}

	app.hub.Join(conn)
}
