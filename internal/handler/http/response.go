package http

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-2xx response. Only the message is
// exposed; internal identifiers and stack traces never leave the server.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// Headers are already sent at this point; an encode failure cannot be
	// reported to the client.
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, ErrorResponse{
		Error: message,
	})
}
