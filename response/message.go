// Package response contains the JSON envelopes the service writes back to clients.
package response

import (
	"encoding/json"
	"net/http"
	"time"
)

// A struct type that represents a message with a status and body.
// Message has the following properties:
// - Status: The status of the message.
// - Body: The body of the message.
type Message struct {
	Status string `json:"status"`
	Body   string `json:"body"`
}

// Response carries a single confirmation message.
type Response struct {
	Message string `json:"message"`
}

// ErrorResponse describes why a request failed.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Health reports service liveness.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// Error writes an ErrorResponse with the given status code.
func Error(w http.ResponseWriter, status int, detail string) error {
	return JSON(w, status, ErrorResponse{Detail: detail})
}
