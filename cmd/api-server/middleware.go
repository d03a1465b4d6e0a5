package main

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// requestLogger tags every request with an id and logs method, path, and
// duration once the handler returns.
func (app *App) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-Id", reqID)

		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s %s", reqID, r.Method, r.URL.Path, time.Since(start))
	})
}
