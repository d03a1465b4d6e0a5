package main

import (
	"io"
	"net/http"
	"strings"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/importer"
)

// ImportCSV accepts a CSV body, either as a multipart "file" field or as the
// raw request body, and loads it into the entity named by the query string.
func (app *App) ImportCSV(w http.ResponseWriter, r *http.Request) {
	entity := r.URL.Query().Get("entity")
	if entity == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "entity is required"})
		return
	}

	var data io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "file field is required"})
			return
		}
		defer file.Close()
		data = file
	}

	count, err := importer.New(app.DB).Import(entity, data)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{
		"imported": count,
	}})
}
