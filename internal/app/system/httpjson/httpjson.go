// Package httpjson holds the JSON conventions every handler follows.
//
// Success bodies are handler-specific structs; failures always use the
// envelope {"success":false,"message":...} the front end surfaces as a
// toast. Status codes follow one taxonomy: 400 validation, 401
// unauthenticated, 403 permission, 404 not found, 409 business-rule
// conflict, 500 unhandled.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ErrBodyTooLarge is returned by Decode when the request body exceeds
// the byte limit.
var ErrBodyTooLarge = errors.New("request body too large")

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with status 200.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Message writes a {"success":true,"message":...} envelope.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]any{"success": true, "message": msg})
}

// Error writes the failure envelope.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]any{"success": false, "message": msg})
}

// Decode reads a JSON body into v, enforcing maxBytes and rejecting
// unknown fields so typos in payloads fail loudly.
func Decode(r *http.Request, v any, maxBytes int64) error {
	body := http.MaxBytesReader(nil, r.Body, maxBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return err
	}
	// Reject trailing garbage after the first JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
