package endpoint

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// Result is what a handler or filter returns for the pipeline to write.
type Result interface {
	StatusCode() int
	WriteResponse(w http.ResponseWriter, r *http.Request) error
}

type jsonResult struct {
	status int
	value  any
}

func (res jsonResult) StatusCode() int { return res.status }

func (res jsonResult) WriteResponse(w http.ResponseWriter, _ *http.Request) error {
	return WriteJSON(w, res.status, "application/json", res.value)
}

// OK returns a 200 result with v encoded as JSON.
func OK(v any) Result {
	return jsonResult{status: http.StatusOK, value: v}
}

// Created returns a 201 result with v encoded as JSON.
func Created(v any) Result {
	return jsonResult{status: http.StatusCreated, value: v}
}

type noContent struct{}

func (noContent) StatusCode() int { return http.StatusNoContent }

func (noContent) WriteResponse(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// NoContent returns an empty 204 result.
func NoContent() Result {
	return noContent{}
}

type textResult string

func (textResult) StatusCode() int { return http.StatusOK }

func (t textResult) WriteResponse(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := io.WriteString(w, string(t))
	return err
}

// Text returns a 200 text/plain result.
func Text(s string) Result {
	return textResult(s)
}

// ProblemDetail is an RFC 7807 problem details body.
//
// Embed it in richer problem types to add extension members.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	TraceID  string `json:"traceId,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}

// StatusCode implements [Result].
func (p ProblemDetail) StatusCode() int {
	return p.Status
}

// WriteResponse implements [Result].
func (p ProblemDetail) WriteResponse(w http.ResponseWriter, r *http.Request) error {
	if p.TraceID == "" {
		p.TraceID = TraceID(r)
	}
	return WriteJSON(w, p.Status, ProblemContentType, p)
}

// ProblemContentType is the media type of problem details responses.
const ProblemContentType = "application/problem+json"

// TraceID returns the request id chi's RequestID middleware assigned to r,
// or "" when there is none.
func TraceID(r *http.Request) string {
	if r == nil {
		return ""
	}
	return middleware.GetReqID(r.Context())
}

// WriteJSON writes v as the response body with the given status and content type.
func WriteJSON(w http.ResponseWriter, status int, contentType string, v any) error {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
