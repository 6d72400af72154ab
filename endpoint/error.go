package endpoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// MissingParameterError is returned when a required parameter could not be
// bound from the request.
type MissingParameterError struct {
	Name string
}

func (e MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter: %s", e.Name)
}

// StatusCode reports 400.
func (MissingParameterError) StatusCode() int {
	return http.StatusBadRequest
}

type badRequestError struct {
	cause error
}

func (e badRequestError) Error() string { return e.cause.Error() }

func (e badRequestError) Unwrap() error { return e.cause }

func (badRequestError) StatusCode() int { return http.StatusBadRequest }

// BadRequest marks err as caused by the client.
func BadRequest(err error) error {
	return badRequestError{cause: err}
}

type statusCoder interface {
	error
	StatusCode() int
}

// StatusCode returns the HTTP status err maps to: the status of the first
// error in its chain with a StatusCode method, otherwise 500.
func StatusCode(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// ErrorHandler writes the response for an error raised while binding
// parameters or running filters and the handler.
type ErrorHandler interface {
	OnError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error)
}

// ErrorHandlerFunc is a func type of the [ErrorHandler] interface.
type ErrorHandlerFunc func(context.Context, http.ResponseWriter, *http.Request, error)

// OnError implements [ErrorHandler].
func (f ErrorHandlerFunc) OnError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	f(ctx, w, r, err)
}

type problemErrorHandler struct {
	log *slog.Logger
}

func (h problemErrorHandler) OnError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	pd := ProblemDetail{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
	}
	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(ctx, "request failed", slog.Any("error", err))
		pd.Detail = "An internal server error occurred."
	} else {
		h.log.WarnContext(ctx, "rejected request", slog.Any("error", err))
		pd.Detail = err.Error()
	}
	if werr := pd.WriteResponse(w, r); werr != nil {
		h.log.ErrorContext(ctx, "failed to write problem details", slog.Any("error", werr))
	}
}
