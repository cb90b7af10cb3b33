package endpoints

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/middleware"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithServerError logs err against the request id before answering 500
func respondWithServerError(w http.ResponseWriter, r *http.Request, prefix string, err error) {
	log.Printf("request %s: %s: %v", middleware.RequestIDFromContext(r.Context()), prefix, err)
	respondWithError(w, http.StatusInternalServerError, prefix+": "+err.Error())
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
