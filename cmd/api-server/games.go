package main

import (
	"net/http"
	"strconv"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/schedule"
)

func (app *App) CreateGame(w http.ResponseWriter, r *http.Request) {
	var in schedule.GameInput
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	game, err := schedule.New(app.KVStore, app.DB).CreateGame(in)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: game})
}

func (app *App) BulkCreateGames(w http.ResponseWriter, r *http.Request) {
	var inputs []schedule.GameInput
	if err := getBody(r, &inputs); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	created, failures := schedule.New(app.KVStore, app.DB).BulkCreate(inputs)

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{
		"created": created,
		"errors":  failures,
	}})
}

func (app *App) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "game_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	if err := schedule.New(app.KVStore, app.DB).DeleteGame(id); err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Game deleted successfully"}})
}

func (app *App) GetWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "offset must be a number"})
			return
		}
		offset = parsed
	}

	start, end, games, err := schedule.New(app.KVStore, app.DB).WeeklySchedule(offset)
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{
		"week_start": start,
		"week_end":   end,
		"games":      games,
	}})
}

func (app *App) GetUnassignedGames(w http.ResponseWriter, r *http.Request) {
	unassigned, partial, stats, err := schedule.New(app.KVStore, app.DB).UnassignedGames()
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{
		"unassigned": unassigned,
		"partial":    partial,
		"stats":      stats,
	}})
}
