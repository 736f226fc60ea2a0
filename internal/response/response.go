// Package response provides shared response helpers for HTTP handlers.
//
// Success bodies are the raw JSON representation of the resource; failure
// bodies are the raw error text. There is no response envelope — the client
// consumes the resources directly.
package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// OK writes a 200 response with the payload as JSON.
func OK(w http.ResponseWriter, payload interface{}) {
	JSON(w, http.StatusOK, payload)
}

// Text writes a plain-text response with the given status code.
func Text(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// BadRequest writes a 400 response with the message as body.
func BadRequest(w http.ResponseWriter, message string) {
	Text(w, http.StatusBadRequest, message)
}
