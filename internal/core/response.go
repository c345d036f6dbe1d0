package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"orderline/internal/types"
)

// failureEnvelope is the standard error body for all non-200 responses:
// {"ok":false,"error":"<message>"}.
type failureEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code and data. If
// marshalling fails it falls back to a 500 failure envelope.
func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(failureEnvelope{Error: "failed to marshal response"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Error writes a failure envelope to the client. It inspects the error chain:
//   - An error that is (or wraps) a *types.AppError uses the AppError's code
//     to determine the HTTP status, and its message as the error text.
//   - Any other error returns 500 with a safe generic message; internal
//     details are never exposed to the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		JSON(w, r, appErr.HTTPStatus(), failureEnvelope{Error: appErr.Message})
		return
	}

	JSON(w, r, http.StatusInternalServerError, failureEnvelope{Error: "an unexpected error occurred"})
}
