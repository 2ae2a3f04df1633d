package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"showdeck/services/shows"
)

// errorBody is the uniform error envelope returned by every handler.
type errorBody struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Message: message})
}

// writeServiceError maps service-layer failures onto HTTP responses.
// Upstream errors keep their upstream status (504 for timeouts, 502 when
// the code is not a usable HTTP error); anything unrecognized becomes a
// generic 502. Raw internals are never leaked to the caller.
func writeServiceError(w http.ResponseWriter, err error) {
	var ue *shows.UpstreamError
	if errors.As(err, &ue) {
		status := ue.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		log.Printf("[api] upstream error status=%d url=%s: %s", ue.StatusCode, ue.URL, ue.Message)
		body := errorBody{Message: ue.Message}
		if ue.Body != "" {
			body.Details = ue.Body
		}
		writeJSON(w, status, body)
		return
	}
	log.Printf("[api] unexpected error: %v", err)
	writeError(w, http.StatusBadGateway, "upstream service error")
}
