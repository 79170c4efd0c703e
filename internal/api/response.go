package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/NgigiN/ledger/internal/ledger"
)

type envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func respondWithJSON(w http.ResponseWriter, code int, data any, message string) {
	response, err := json.Marshal(envelope{StatusCode: code, Data: data, Message: message, Success: code < 400})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	respondWithJSON(w, code, nil, msg)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidInput), errors.Is(err, ledger.ErrBusinessRule):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
