// Package response writes the API's JSON envelope.
//
// Every payload follows the same convention:
//
//	{ "success": true,  "message": "...", "<entity-key>": <payload> }
//	{ "success": false, "message": "...", "errors": {...} }
package response

import (
	"encoding/json"
	"net/http"
)

// M is the envelope body. Entity payloads are merged in under their own key,
// e.g. response.OK(w, "", response.M{"products": list}).
type M map[string]interface{}

func write(w http.ResponseWriter, status int, body M) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func envelope(success bool, message string, data M) M {
	body := M{"success": success}
	if message != "" {
		body["message"] = message
	}
	for k, v := range data {
		body[k] = v
	}
	return body
}

// OK sends a 200 success envelope with optional entity payload.
func OK(w http.ResponseWriter, message string, data M) {
	write(w, http.StatusOK, envelope(true, message, data))
}

// Created sends a 201 success envelope.
func Created(w http.ResponseWriter, message string, data M) {
	write(w, http.StatusCreated, envelope(true, message, data))
}

// Fail sends a failure envelope with the given status.
func Fail(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope(false, message, nil))
}

// ValidationFailed sends a 400 with a field-level error map.
func ValidationFailed(w http.ResponseWriter, message string, errs map[string]string) {
	write(w, http.StatusBadRequest, envelope(false, message, M{"errors": errs}))
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized Access"
	}
	Fail(w, http.StatusUnauthorized, message)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Not Found"
	}
	Fail(w, http.StatusNotFound, message)
}

// Conflict sends a 409 (uniqueness violations).
func Conflict(w http.ResponseWriter, message string) {
	Fail(w, http.StatusConflict, message)
}

// TooLarge sends a 413 (oversized upload).
func TooLarge(w http.ResponseWriter, message string) {
	Fail(w, http.StatusRequestEntityTooLarge, message)
}

// Internal sends a generic 500 without leaking internals.
func Internal(w http.ResponseWriter) {
	Fail(w, http.StatusInternalServerError, "Internal Server Error")
}
