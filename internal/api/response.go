package api

import (
	"encoding/json"
	"net/http"
)

const (
	msgInternal         = "Something went wrong!"
	msgInternalRedacted = "Internal server error"
	msgInvalidBody      = "Invalid request body"
)

// envelope wraps every JSON response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Total   *int   `json:"total,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

func writeList[T any](w http.ResponseWriter, items []T) {
	total := len(items)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: items, Total: &total})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// writeInternalError reports an unexpected failure. The cause is only exposed in development.
func writeInternalError(w http.ResponseWriter, development bool, cause error) {
	detail := msgInternalRedacted
	if development && cause != nil {
		detail = cause.Error()
	}
	writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Message: msgInternal, Error: detail})
}

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
