package main

import (
	"net/http"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/refdata"
)

func (app *App) CreateLeagueAdmin(w http.ResponseWriter, r *http.Request) {
	var in refdata.PersonInput
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	admin, err := refdata.New(app.DB).CreateLeagueAdmin(in)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: admin})
}

func (app *App) GetLeagueAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := refdata.New(app.DB).ListLeagueAdmins()
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: admins})
}

func (app *App) DeleteLeagueAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "admin_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	if err := refdata.New(app.DB).DeleteLeagueAdmin(id); err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "League admin deleted successfully"}})
}

func (app *App) CreateCoach(w http.ResponseWriter, r *http.Request) {
	var in refdata.PersonInput
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	coach, err := refdata.New(app.DB).CreateCoach(in)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: coach})
}

func (app *App) GetCoaches(w http.ResponseWriter, r *http.Request) {
	coaches, err := refdata.New(app.DB).ListCoaches()
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: coaches})
}

func (app *App) DeleteCoach(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "coach_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	if err := refdata.New(app.DB).DeleteCoach(id); err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Coach deleted successfully"}})
}

func (app *App) CreateTown(w http.ResponseWriter, r *http.Request) {
	var in refdata.TownInput
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	town, err := refdata.New(app.DB).CreateTown(in)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: town})
}

func (app *App) GetTowns(w http.ResponseWriter, r *http.Request) {
	towns, err := refdata.New(app.DB).ListTowns()
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: towns})
}

func (app *App) DeleteTown(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "town_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	if err := refdata.New(app.DB).DeleteTown(id); err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Town deleted successfully"}})
}

func (app *App) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var in refdata.TeamInput
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	team, err := refdata.New(app.DB).CreateTeam(in)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: team})
}

func (app *App) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := refdata.New(app.DB).ListTeams()
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: teams})
}

func (app *App) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "team_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	if err := refdata.New(app.DB).DeleteTeam(id); err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Team deleted successfully"}})
}
