package endpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"slices"

	"github.com/go-chi/chi/v5"
)

// Marker tags a parameter so filters can find it at construction time.
type Marker string

// Parameter declares one positional handler argument and how it is bound
// from a request.
type Parameter struct {
	name     string
	typ      reflect.Type
	optional bool
	markers  []Marker
	bind     func(r *http.Request) (any, bool, error)
	populate []func(*Builder, ParameterInfo)
}

// ParameterOption configures a [Parameter].
type ParameterOption func(*Parameter)

// Mark attaches markers to the parameter.
func Mark(markers ...Marker) ParameterOption {
	return func(p *Parameter) {
		p.markers = append(p.markers, markers...)
	}
}

// Optional allows the parameter to be absent. Absent optional arguments are
// passed to filters and the handler as nil.
func Optional() ParameterOption {
	return func(p *Parameter) {
		p.optional = true
	}
}

// PopulateMetadata registers f to run against the endpoint's [Builder] when
// the endpoint is constructed.
func PopulateMetadata(f func(b *Builder, p ParameterInfo)) ParameterOption {
	return func(p *Parameter) {
		p.populate = append(p.populate, f)
	}
}

// BindFunc extracts a value of type T from a request. The bool result
// reports whether the value was present.
type BindFunc[T any] func(r *http.Request) (T, bool, error)

// Param declares a parameter of type T bound by bind.
func Param[T any](name string, bind BindFunc[T], opts ...ParameterOption) Parameter {
	p := Parameter{
		name: name,
		typ:  reflect.TypeFor[T](),
		bind: func(r *http.Request) (any, bool, error) {
			v, ok, err := bind(r)
			if err != nil || !ok {
				return nil, ok, err
			}
			return v, true, nil
		},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Name returns the parameter name.
func (p Parameter) Name() string {
	return p.name
}

// Type returns the declared argument type.
func (p Parameter) Type() reflect.Type {
	return p.typ
}

// JSON declares a parameter decoded from a JSON request body. An empty body
// or a JSON null leaves the parameter absent.
func JSON[T any](name string, opts ...ParameterOption) Parameter {
	return Param(name, func(r *http.Request) (T, bool, error) {
		return DecodeJSON[T](r.Body)
	}, opts...)
}

// ErrTrailingData is wrapped by the error [DecodeJSON] returns when the body
// holds more than one JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

// DecodeJSON decodes a JSON document from body into a T. It reports false
// when body is nil, empty or null. Anything but whitespace after the
// document is an error.
func DecodeJSON[T any](body io.Reader) (T, bool, error) {
	var zero T
	if body == nil {
		return zero, false, nil
	}
	dec := json.NewDecoder(body)
	var v *T
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return zero, false, nil
		}
		return zero, false, BadRequest(fmt.Errorf("decoding %s: %w", reflect.TypeFor[T](), err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return zero, false, BadRequest(fmt.Errorf("decoding %s: %w", reflect.TypeFor[T](), ErrTrailingData))
	}
	if v == nil {
		return zero, false, nil
	}
	return *v, true, nil
}

// URLParam declares a string parameter read from a chi route parameter.
func URLParam(name string, opts ...ParameterOption) Parameter {
	return Param(name, func(r *http.Request) (string, bool, error) {
		v := chi.URLParam(r, name)
		return v, v != "", nil
	}, opts...)
}

// Query declares a string parameter read from the URL query.
func Query(name string, opts ...ParameterOption) Parameter {
	return Param(name, func(r *http.Request) (string, bool, error) {
		q := r.URL.Query()
		if !q.Has(name) {
			return "", false, nil
		}
		return q.Get(name), true, nil
	}, opts...)
}

// ParameterInfo is the construction-time view of a [Parameter].
type ParameterInfo struct {
	Index    int
	Name     string
	Type     reflect.Type
	Optional bool
	markers  []Marker
}

// Has reports whether the parameter carries m.
func (p ParameterInfo) Has(m Marker) bool {
	return slices.Contains(p.markers, m)
}

// Markers returns a copy of the parameter's markers.
func (p ParameterInfo) Markers() []Marker {
	return slices.Clone(p.markers)
}
