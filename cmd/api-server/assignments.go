package main

import (
	"net/http"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/assignments"
	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/models"
)

func (app *App) AssignUmpire(w http.ResponseWriter, r *http.Request) {
	var in struct {
		GameID   uint   `json:"game_id"`
		UmpireID uint   `json:"umpire_id"`
		Position string `json:"position"`
	}
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	assignment, err := assignments.New(app.KVStore, app.DB).Assign(in.GameID, in.UmpireID, in.Position)
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: assignment})
}

func (app *App) GetAvailableUmpires(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "game_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	umpires, err := assignments.New(app.KVStore, app.DB).AvailableUmpires(id)
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: umpires})
}

func (app *App) EditGame(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "game_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	var in struct {
		Game        assignments.GameUpdate        `json:"game"`
		Assignments []assignments.AssignmentInput `json:"assignments"`
	}
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	if err := assignments.New(app.KVStore, app.DB).ReconcileGame(id, in.Game, in.Assignments); err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Game updated successfully"}})
}

func (app *App) CompleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "game_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	var in struct {
		Status   string                `json:"status"`
		Outcomes []assignments.Outcome `json:"outcomes"`
	}
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	if err := assignments.New(app.KVStore, app.DB).CompleteGame(id, in.Status, in.Outcomes); err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Game outcomes recorded successfully"}})
}

func (app *App) OverridePay(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "assignment_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	var in struct {
		Amount string `json:"amount"`
	}
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	cents, err := assignments.New(app.KVStore, app.DB).OverridePay(id, in.Amount)
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{
		"pay_amount": models.FormatCents(cents),
	}})
}
