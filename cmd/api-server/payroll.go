package main

import (
	"net/http"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/payroll"
)

func (app *App) GetPayrollSummary(w http.ResponseWriter, r *http.Request) {
	summaries, totals, err := payroll.New(app.KVStore, app.DB).SummarizeUmpires()
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{
		"umpires": summaries,
		"totals":  totals,
	}})
}

func (app *App) GetWeeklyPayroll(w http.ResponseWriter, r *http.Request) {
	weeks, err := payroll.New(app.KVStore, app.DB).SummarizeWeeks()
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: weeks})
}

func (app *App) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var in payroll.PaymentInput
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	payment, err := payroll.New(app.KVStore, app.DB).CreatePayment(in)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: payment})
}

func (app *App) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "payment_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	var in payroll.PaymentInput
	if err := getBody(r, &in); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	if err := payroll.New(app.KVStore, app.DB).UpdatePayment(id, in); err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Payment updated successfully"}})
}

func (app *App) GetPayments(w http.ResponseWriter, r *http.Request) {
	var umpireID uint
	if r.URL.Query().Get("umpire_id") != "" {
		id, err := queryID(r, "umpire_id")
		if err != nil {
			sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
			return
		}
		umpireID = id
	}

	payments, err := payroll.New(app.KVStore, app.DB).ListPayments(umpireID)
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: payments})
}

func (app *App) MarkGameDatePaid(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "assignment_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	method := r.URL.Query().Get("method")
	notes := r.URL.Query().Get("notes")

	if err := payroll.New(app.KVStore, app.DB).MarkGameDatePaid(id, method, notes); err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Game date marked paid"}})
}

func (app *App) MarkGameDateUnpaid(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "assignment_id")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	if err := payroll.New(app.KVStore, app.DB).MarkGameDateUnpaid(id); err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Game date marked unpaid"}})
}
