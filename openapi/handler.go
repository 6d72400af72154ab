package openapi

import (
	"context"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// Handler returns an http.Handler serving doc as JSON. The document is
// validated and encoded once, up front:
//
//	r.Handle("/openapi.json", openapi.HandlerMust(doc))
func Handler(doc *openapi3.T) (http.Handler, error) {
	if err := doc.Validate(context.Background()); err != nil {
		return nil, err
	}

	specJSON, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(specJSON)
	}), nil
}

// HandlerMust is like Handler but panics on error.
func HandlerMust(doc *openapi3.T) http.Handler {
	h, err := Handler(doc)
	if err != nil {
		panic(err)
	}
	return h
}
