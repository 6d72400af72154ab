package validated

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"reflect"
	"slices"
	"strings"
)

// Errors maps field names to their validation messages, in the order the
// failing rules reported them.
type Errors map[string][]string

// Fields returns the failing field names, sorted.
func (e Errors) Fields() []string {
	return slices.Sorted(maps.Keys(e))
}

// String renders the errors the way ozzo-validation does:
// "age: must be no less than 18; name: cannot be blank."
func (e Errors) String() string {
	if len(e) == 0 {
		return ""
	}
	var b strings.Builder
	for i, field := range e.Fields() {
		if i > 0 {
			b.WriteString("; ")
		}
		if field != "" {
			b.WriteString(field)
			b.WriteString(": ")
		}
		b.WriteString(strings.Join(e[field], ", "))
	}
	b.WriteString(".")
	return b.String()
}

func (e Errors) clone() Errors {
	if len(e) == 0 {
		return nil
	}
	out := make(Errors, len(e))
	for field, msgs := range e {
		out[field] = slices.Clone(msgs)
	}
	return out
}

// merge appends the messages of other after the messages already in e.
func (e Errors) merge(other Errors) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

// ErrNoValidator is wrapped by the [ConfigError] returned when a validated
// body is bound for a type with no registered validator.
var ErrNoValidator = errors.New("no validator registered")

// ConfigError reports an application wiring defect. The request that hit it
// fails with a 500.
type ConfigError struct {
	Type reflect.Type
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("validated: %s for %s", e.Err, e.Type)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// StatusCode reports 500.
func (e *ConfigError) StatusCode() int {
	return http.StatusInternalServerError
}

// ErrUnsupportedMediaType is wrapped by the [BindError] returned when a
// request body is not JSON.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// BindError reports a request body that could not be bound.
type BindError struct {
	Status int
	Err    error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("validated: binding request body: %s", e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status the error maps to.
func (e *BindError) StatusCode() int {
	return e.Status
}
