package validated

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"slices"
	"strings"

	"github.com/Gobd/validated/endpoint"
)

// Bind decodes the JSON body of r into a T, normalizes it and validates it
// with the validators registered for T.
//
// The validator is resolved before the request is looked at: with none
// registered, Bind returns a [*ConfigError] wrapping [ErrNoValidator]. An
// empty body or a JSON null returns (nil, nil), meaning the body is absent.
// Malformed JSON or a non-JSON content type returns a [*BindError]. Errors
// from the validator itself are returned as is; rule failures are not errors.
func Bind[T any](ctx context.Context, r *http.Request, reg *Registry) (*Validated[T], error) {
	validator, err := validatorFor[T](reg)
	if err != nil {
		return nil, err
	}
	if err := checkContentType(r); err != nil {
		return nil, err
	}
	return bindJSON(ctx, r.Body, validator)
}

// BindJSON is like [Bind] but reads the JSON document from body.
func BindJSON[T any](ctx context.Context, body io.Reader, reg *Registry) (*Validated[T], error) {
	validator, err := validatorFor[T](reg)
	if err != nil {
		return nil, err
	}
	return bindJSON(ctx, body, validator)
}

func bindJSON[T any](ctx context.Context, body io.Reader, validator Validator[T]) (*Validated[T], error) {
	value, ok, err := endpoint.DecodeJSON[T](body)
	if err != nil {
		return nil, &BindError{Status: http.StatusBadRequest, Err: err}
	}
	if !ok {
		return nil, nil
	}

	normalize(ctx, &value)

	res, err := validator.Validate(ctx, value)
	if err != nil {
		return nil, fmt.Errorf("validated: validating %s: %w", reflect.TypeFor[T](), err)
	}
	return &Validated[T]{value: value, errors: res.Errors.clone()}, nil
}

func checkContentType(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err == nil && (mt == "application/json" || strings.HasSuffix(mt, "+json")) {
		return nil
	}
	return &BindError{
		Status: http.StatusUnsupportedMediaType,
		Err:    fmt.Errorf("%w: %q", ErrUnsupportedMediaType, ct),
	}
}

// Body declares an endpoint parameter bound by [Bind]. The argument passed
// to filters and the handler is a *Validated[T].
//
// Unless the endpoint's method is GET or HEAD, the parameter adds an
// [endpoint.Accepts] entry for T and a 400 [endpoint.Produces] entry for
// [Problem] to the endpoint metadata.
func Body[T any](reg *Registry, name string, opts ...endpoint.ParameterOption) endpoint.Parameter {
	bind := func(r *http.Request) (*Validated[T], bool, error) {
		v, err := Bind[T](r.Context(), r, reg)
		if err != nil || v == nil {
			return nil, false, err
		}
		return v, true, nil
	}

	opts = append(slices.Clone(opts), endpoint.PopulateMetadata(populateBodyMetadata[T]))
	return endpoint.Param(name, bind, opts...)
}

func populateBodyMetadata[T any](b *endpoint.Builder, p endpoint.ParameterInfo) {
	if !endpoint.HasBody(b.Method) {
		return
	}

	accepts := endpoint.AcceptedContentTypes(b.Metadata)
	if len(accepts) == 0 {
		accepts = []string{"application/json"}
	}
	b.Add(endpoint.Accepts{
		ContentTypes: accepts,
		RequestType:  reflect.TypeFor[T](),
		Optional:     p.Optional,
	})

	for _, pr := range endpoint.MetadataOf[endpoint.Produces](b.Metadata) {
		if pr.StatusCode == http.StatusBadRequest && pr.Type == problemType {
			return
		}
	}
	b.Add(endpoint.Produces{
		StatusCode:   http.StatusBadRequest,
		Type:         problemType,
		ContentTypes: []string{endpoint.ProblemContentType},
	})
}
