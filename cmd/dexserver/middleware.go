package main

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type requestIDKey struct{}

// requestID stamps every request with a correlation id, generalizing the
// teacher's bare poolsHandler (cmd/dexserver/main.go in the teacher, no
// middleware at all) with the uuid-based pattern the rest of the pack uses
// for cross-service tracing.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rid, _ := r.Context().Value(requestIDKey{}).(string)
			next.ServeHTTP(w, r)
			logger.WithFields(log.Fields{
				"request_id": rid,
				"method":     r.Method,
				"path":       r.URL.Path,
				"duration":   time.Since(start).String(),
			}).Info("request")
		})
	}
}
