// internal/app/system/httpjson/httpjson.go

// Package httpjson writes JSON response bodies with the status codes the
// API exposes to clients. Errors always serialize as {"error": "..."}.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Respond writes v as a JSON body with the given status code.
func Respond(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": msg} with the given status code.
func Error(w http.ResponseWriter, code int, msg string) {
	Respond(w, code, map[string]string{"error": msg})
}

// BadRequest writes a 400 validation error.
func BadRequest(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadRequest, msg)
}

// Unauthorized writes a 401 for missing or malformed credentials.
func Unauthorized(w http.ResponseWriter, msg string) {
	Error(w, http.StatusUnauthorized, msg)
}

// Forbidden writes a 403 for failed role, membership or ownership checks.
func Forbidden(w http.ResponseWriter, msg string) {
	Error(w, http.StatusForbidden, msg)
}

// NotFound writes a 404 for an absent group, user, message or file.
func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

// ServerError writes a 500 with a generic body. The underlying error is
// logged by the caller, never sent to the client.
func ServerError(w http.ResponseWriter, msg string) {
	Error(w, http.StatusInternalServerError, msg)
}

// Decode parses the request body into dst. It returns false after writing a
// 400 response when the body is not valid JSON.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		BadRequest(w, "invalid request body")
		return false
	}
	return true
}
