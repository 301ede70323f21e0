// Package response writes the JSON envelope used by every Vitrine endpoint:
//
//	{"status": 200, "data": {...}}
//	{"status": 400, "message": "Invalid credentials"}
//	{"status": 400, "message": "The email field is required.", "errors": {"email": "..."}}
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape of every response body.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, Envelope{Status: http.StatusOK, Data: data})
}

// Message sends a 200 carrying only a message, for operations with no
// resource to return.
func Message(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, Envelope{Status: http.StatusOK, Message: message})
}

// Error sends an error with a human-readable message.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Status: status, Message: message})
}

// ValidationError sends a 400 with the first failing field's message plus
// the full field→message map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	msg := "Validation failed"
	for _, m := range errs {
		msg = m
		break
	}
	write(w, http.StatusBadRequest, Envelope{
		Status:  http.StatusBadRequest,
		Message: msg,
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// Internal sends a generic 500 without leaking detail.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal Server Error")
}
