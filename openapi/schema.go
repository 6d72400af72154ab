package openapi

import (
	"errors"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// NewSchemaRefForValue generates an OpenAPI schema for the given value.
func NewSchemaRefForValue(value any) (*openapi3.SchemaRef, error) {
	g := openapi3gen.NewGenerator(openapi3gen.UseAllExportedFields())
	return g.NewSchemaRefForValue(value, nil)
}

// NewSchemaRefForType generates an OpenAPI schema for values of type t.
func NewSchemaRefForType(t reflect.Type) (*openapi3.SchemaRef, error) {
	if t == nil {
		return nil, errors.New("no type given")
	}
	return NewSchemaRefForValue(reflect.Zero(t).Interface())
}
