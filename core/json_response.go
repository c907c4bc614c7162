package core

import (
	"encoding/json"
	"net/http"
)

// ErrorDetail is the body of the error envelope returned for every
// failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error ErrorDetail `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status code. A nil
// v writes the status with an empty body.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes err as the standard error envelope
// {"error":{"code":...,"message":...}}. HTTPError values keep their
// status and code; anything else becomes a 500 internal_error with the
// underlying message withheld from the client.
func WriteError(w http.ResponseWriter, err error) error {
	httpErr, ok := err.(HTTPError)
	if !ok {
		httpErr = ErrInternalServerError
	}

	msg := httpErr.Message
	if msg == "" {
		msg = http.StatusText(httpErr.Status)
	}

	return WriteJSON(w, httpErr.Status, errorEnvelope{
		Error: ErrorDetail{Code: httpErr.Code, Message: msg},
	})
}
