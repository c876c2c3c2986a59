// Package response provides HTTP response helpers for the coursemap API.
//
// Catalog routes answer with plain-text bodies; operational endpoints
// (health, readiness) and panics answer with the JSON envelope below.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/agentstation/coursemap/pkg/constants"
	"github.com/agentstation/coursemap/pkg/errors"
)

// Response represents the JSON envelope used by operational endpoints.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error represents an API error with code, message, and optional details.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding errors are ignored as headers are already sent (best effort)
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes a successful JSON response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// ServiceUnavailable writes a 503 JSON error response.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	JSON(w, http.StatusServiceUnavailable, Fail(
		"SERVICE_UNAVAILABLE",
		"Service unavailable",
		message,
	))
}

// InternalError writes a 500 JSON error response. Details are not exposed.
func InternalError(w http.ResponseWriter) {
	JSON(w, http.StatusInternalServerError, Fail(
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	))
}

// Text writes a plain-text body with the given status code.
func Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// TextOK writes a 200 plain-text body.
func TextOK(w http.ResponseWriter, body string) {
	Text(w, http.StatusOK, body)
}

// BadRequest writes a 400 plain-text body.
func BadRequest(w http.ResponseWriter, message string) {
	Text(w, http.StatusBadRequest, message)
}

// MissingParam writes the 400 body for an absent query parameter.
func MissingParam(w http.ResponseWriter, name string) {
	BadRequest(w, constants.MsgMissingParam+name)
}

// NotFound writes a 404 plain-text body.
func NotFound(w http.ResponseWriter, message string) {
	Text(w, http.StatusNotFound, message)
}

// MethodNotAllowed writes a 405 with an Allow header.
func MethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	Text(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

// NotReady writes the 503 body returned by catalog routes before the
// service is Ready.
func NotReady(w http.ResponseWriter) {
	Text(w, http.StatusServiceUnavailable, "Catalog not available")
}

// ErrorFromType maps typed errors to plain-text responses.
func ErrorFromType(w http.ResponseWriter, err error) {
	var nf *errors.NotFoundError
	switch {
	case errors.As(err, &nf):
		NotFound(w, NotFoundMessage(nf.Resource))
	case errors.IsNotReady(err):
		NotReady(w)
	case errors.IsValidationError(err):
		BadRequest(w, err.Error())
	default:
		Text(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// NotFoundMessage returns the 404 body for a missing resource.
func NotFoundMessage(resource string) string {
	if resource == "course" {
		return constants.MsgCourseNotFound
	}
	return constants.MsgDepartmentNotFound
}
