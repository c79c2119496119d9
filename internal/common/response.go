package common

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Envelope is the shape of every API response:
// the payload (or error body) under "response", plus a success flag.
type Envelope struct {
	Response interface{} `json:"response"`
	Success  bool        `json:"success"`
}

// ErrorBody is the payload carried inside the envelope on failure.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RespondWithJSON writes a success envelope with the given status code.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	writeEnvelope(w, code, Envelope{Response: payload, Success: true})
}

// RespondWithError classifies err against the sentinel taxonomy and writes
// a failure envelope. Unclassified errors become a generic 500; the real
// error is logged, never sent to the client.
func RespondWithError(w http.ResponseWriter, err error) {
	status := HTTPStatusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError && !errors.Is(err, ErrInternal) {
		slog.Error("unclassified error", slog.String("error", err.Error()))
		message = "an internal error occurred"
	}
	writeEnvelope(w, status, Envelope{
		Response: ErrorBody{Error: ErrorType(err), Message: message},
		Success:  false,
	})
}

func writeEnvelope(w http.ResponseWriter, code int, env Envelope) {
	body, err := json.Marshal(env)
	if err != nil {
		// Headers are not sent yet, so a plain 500 is still possible.
		slog.Error("failed to marshal response", slog.String("error", err.Error()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"response":{"error":"internal_error","message":"an internal error occurred"},"success":false}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}
