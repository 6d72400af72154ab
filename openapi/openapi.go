package openapi

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"slices"
	"strconv"

	"github.com/Gobd/validated/endpoint"
	"github.com/getkin/kin-openapi/openapi3"
)

// Response describes an HTTP response with a description and body types for schema generation.
type Response struct {
	Desc   string
	Bodies []any
}

// Endpoint holds the documentation of an operation that endpoint metadata
// cannot supply.
type Endpoint struct {
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Response    any                 // single 200 response type (convenience)
	Responses   map[string]Response // merged over responses derived from metadata
}

// DocBase returns a basic OpenAPI 3.0.3 document structure.
func DocBase(serviceName, description, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       serviceName,
			Description: description,
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
	}
}

// AddPath adds an operation to the OpenAPI spec at the given path and method.
func AddPath(path, method string, s *openapi3.T, op *openapi3.Operation) {
	if s.Paths == nil {
		s.Paths = openapi3.NewPaths()
	}
	p := s.Paths.Value(path)
	if p == nil {
		p = &openapi3.PathItem{}
	}
	p.SetOperation(method, op)
	s.Paths.Set(path, p)
}

// AddEndpoint documents ep in doc. The request body comes from the
// endpoint's [endpoint.Accepts] metadata and responses from its
// [endpoint.Produces] metadata, plus whatever desc declares.
func AddEndpoint(doc *openapi3.T, ep *endpoint.Endpoint, desc Endpoint) error {
	info := ep.Info()

	op := &openapi3.Operation{
		OperationID: desc.OperationID,
		Summary:     desc.Summary,
		Description: desc.Description,
		Tags:        desc.Tags,
	}

	body, err := requestBody(endpoint.MetadataOf[endpoint.Accepts](info.Metadata))
	if err != nil {
		return fmt.Errorf("documenting %s %s: %w", info.Method, info.Pattern, err)
	}
	op.RequestBody = body

	responses, err := responses(endpoint.MetadataOf[endpoint.Produces](info.Metadata), desc)
	if err != nil {
		return fmt.Errorf("documenting %s %s: %w", info.Method, info.Pattern, err)
	}
	op.Responses = responses

	AddPath(Path(info.Pattern), info.Method, doc, op)
	return nil
}

// AddEndpoints documents every endpoint with an empty [Endpoint] description.
func AddEndpoints(doc *openapi3.T, eps ...*endpoint.Endpoint) error {
	for _, ep := range eps {
		if err := AddEndpoint(doc, ep, Endpoint{}); err != nil {
			return err
		}
	}
	return nil
}

func requestBody(accepts []endpoint.Accepts) (*openapi3.RequestBodyRef, error) {
	if len(accepts) == 0 {
		return nil, nil
	}

	required := false
	var refs openapi3.SchemaRefs
	var contentTypes []string
	for _, a := range accepts {
		ref, err := NewSchemaRefForType(a.RequestType)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
		required = required || !a.Optional
		for _, ct := range a.ContentTypes {
			if !slices.Contains(contentTypes, ct) {
				contentTypes = append(contentTypes, ct)
			}
		}
	}

	schema := &openapi3.SchemaRef{Value: &openapi3.Schema{OneOf: refs}}
	if len(refs) == 1 {
		schema = refs[0]
	}

	content := openapi3.Content{}
	for _, ct := range contentTypes {
		content[ct] = &openapi3.MediaType{Schema: schema}
	}

	return &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Required: required,
			Content:  content,
		},
	}, nil
}

func responses(produces []endpoint.Produces, desc Endpoint) (*openapi3.Responses, error) {
	var opts []openapi3.NewResponsesOption

	declared := desc.Responses
	if declared == nil && desc.Response != nil {
		declared = map[string]Response{
			"200": {Desc: "OK", Bodies: []any{desc.Response}},
		}
	}
	for code, resp := range declared {
		r, err := newResponse(resp.Desc, []string{"application/json"}, resp.Bodies)
		if err != nil {
			return nil, err
		}
		opts = append(opts, openapi3.WithName(code, r))
	}

	for _, p := range produces {
		code := strconv.Itoa(p.StatusCode)
		if _, ok := declared[code]; ok {
			continue
		}
		var bodies []any
		if p.Type != nil {
			bodies = []any{reflect.Zero(p.Type).Interface()}
		}
		r, err := newResponse(http.StatusText(p.StatusCode), p.ContentTypes, bodies)
		if err != nil {
			return nil, err
		}
		opts = append(opts, openapi3.WithName(code, r))
	}

	if len(declared) == 0 {
		desc := "OK"
		opts = append(opts, openapi3.WithName("200", &openapi3.Response{Description: &desc}))
	}
	return openapi3.NewResponses(opts...), nil
}

// NewResponse creates an OpenAPI responses object.
// Map key is status code (e.g. "200", "4xx").
func NewResponse(vs map[string]Response) (*openapi3.Responses, error) {
	if len(vs) == 0 {
		return nil, errors.New("no values given")
	}
	return responses(nil, Endpoint{Responses: vs})
}

func newResponse(desc string, contentTypes []string, bodies []any) (*openapi3.Response, error) {
	var refs openapi3.SchemaRefs
	for _, b := range bodies {
		schema, err := NewSchemaRefForValue(b)
		if err != nil {
			return nil, err
		}
		refs = append(refs, schema)
	}

	resp := &openapi3.Response{Description: &desc}
	if len(refs) == 0 {
		return resp, nil
	}

	schema := &openapi3.SchemaRef{Value: &openapi3.Schema{OneOf: refs}}
	if len(refs) == 1 {
		schema = refs[0]
	}
	resp.Content = openapi3.Content{}
	for _, ct := range contentTypes {
		resp.Content[ct] = &openapi3.MediaType{Schema: schema}
	}
	return resp, nil
}

var routeRegexp = regexp.MustCompile(`\{([^}:]+):[^}]*\}`)

// Path converts a chi route pattern into an OpenAPI path template by
// dropping parameter regular expressions.
func Path(pattern string) string {
	return routeRegexp.ReplaceAllString(pattern, "{$1}")
}
