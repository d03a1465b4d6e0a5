package main

import (
	"net/http"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/roster"
)

func (app *App) CreateUmpire(w http.ResponseWriter, r *http.Request) {
	var in roster.UmpireInput
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	umpire, err := roster.New(app.DB).CreateUmpire(in)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: umpire})
}

func (app *App) GetUmpires(w http.ResponseWriter, r *http.Request) {
	umpires, err := roster.New(app.DB).ListUmpires()
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: umpires})
}

func (app *App) UpdateUmpire(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "umpire_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	var in roster.UmpireInput
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	if err := roster.New(app.DB).UpdateUmpire(id, in); err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Umpire updated successfully"}})
}

func (app *App) DeleteUmpire(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "umpire_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	if err := roster.New(app.DB).DeleteUmpire(id); err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Umpire deleted successfully"}})
}

func (app *App) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "umpire_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	var in roster.AvailabilityInput
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	if err := roster.New(app.DB).SetAvailability(id, in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Availability saved successfully"}})
}

func (app *App) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "umpire_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	declarations, err := roster.New(app.DB).ListAvailability(id)
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: declarations})
}

func (app *App) GetGameDateSlots(w http.ResponseWriter, r *http.Request) {
	dates, err := roster.New(app.DB).GameDateSlots()
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: dates})
}

func (app *App) GetAvailabilityGrid(w http.ResponseWriter, r *http.Request) {
	dates, rows, err := roster.New(app.DB).AvailabilityGrid()
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{
		"dates": dates,
		"rows":  rows,
	}})
}
