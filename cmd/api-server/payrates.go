package main

import (
	"net/http"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/models"
	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/payrates"
)

func (app *App) GetPayRates(w http.ResponseWriter, r *http.Request) {
	rate, err := payrates.New(app.KVStore, app.DB).Current()
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: rate})
}

func (app *App) CreatePayRates(w http.ResponseWriter, r *http.Request) {
	// Amounts arrive as dollar strings, the same shape the payroll screens
	// render.
	var in struct {
		SoloPatched    string `json:"solo_patched"`
		SoloUnpatched  string `json:"solo_unpatched"`
		PlatePatched   string `json:"plate_patched"`
		PlateUnpatched string `json:"plate_unpatched"`
		BaseUnpatched  string `json:"base_unpatched"`
		EffectiveDate  string `json:"effective_date"`
	}
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	rate := models.PayRate{EffectiveDate: models.Today()}
	if in.EffectiveDate != "" {
		date, err := models.ParseDate(in.EffectiveDate)
		if err != nil {
			sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "invalid effective_date"})
			return
		}
		rate.EffectiveDate = date
	}

	fields := []struct {
		raw  string
		dest *int64
	}{
		{in.SoloPatched, &rate.SoloPatched},
		{in.SoloUnpatched, &rate.SoloUnpatched},
		{in.PlatePatched, &rate.PlatePatched},
		{in.PlateUnpatched, &rate.PlateUnpatched},
		{in.BaseUnpatched, &rate.BaseUnpatched},
	}
	for _, f := range fields {
		cents, err := models.ParseCents(f.raw)
		if err != nil {
			sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
			return
		}
		*f.dest = cents
	}

	if err := payrates.New(app.KVStore, app.DB).Create(rate); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: rate})
}
