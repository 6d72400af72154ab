package openapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobd/validated"
	"github.com/Gobd/validated/endpoint"
	"github.com/Gobd/validated/openapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemRegistry() *validated.Registry {
	return validated.NewRegistry(validated.Register(validated.RulesOf[Item]()))
}

func TestAddEndpoint_RequestBodyAndProblem(t *testing.T) {
	ep := endpoint.New(http.MethodPost, "/items", createItem,
		endpoint.WithParameters(validated.Body[Item](itemRegistry(), "item")),
	)
	doc := openapi.DocBase("Shop API", "", "1.0.0")

	require.NoError(t, openapi.AddEndpoint(doc, ep, openapi.Endpoint{OperationID: "createItem"}))
	require.NoError(t, doc.Validate(context.Background()))

	op := doc.Paths.Value("/items").Post
	require.NotNil(t, op)

	body := op.RequestBody.Value
	assert.True(t, body.Required)
	media := body.Content.Get("application/json")
	require.NotNil(t, media)
	assert.Contains(t, media.Schema.Value.Properties, "name")
	assert.Contains(t, media.Schema.Value.Properties, "price")

	problem := op.Responses.Value("400")
	require.NotNil(t, problem)
	assert.Equal(t, "Bad Request", *problem.Value.Description)
	pm := problem.Value.Content.Get(endpoint.ProblemContentType)
	require.NotNil(t, pm)
	for _, prop := range []string{"type", "title", "status", "errors"} {
		assert.Contains(t, pm.Schema.Value.Properties, prop)
	}

	assert.NotNil(t, op.Responses.Value("200"), "declared default response")
}

func TestAddEndpoint_OptionalBody(t *testing.T) {
	ep := endpoint.New(http.MethodPut, "/items/{id:[0-9]+}", createItem,
		endpoint.WithParameters(validated.Body[Item](itemRegistry(), "item", endpoint.Optional())),
	)
	doc := openapi.DocBase("Shop API", "", "1.0.0")

	require.NoError(t, openapi.AddEndpoint(doc, ep, openapi.Endpoint{}))

	op := doc.Paths.Value("/items/{id}").Put
	require.NotNil(t, op)
	assert.False(t, op.RequestBody.Value.Required)
}

func TestAddEndpoint_GetHasNoBody(t *testing.T) {
	ep := endpoint.New(http.MethodGet, "/items", createItem)
	doc := openapi.DocBase("Shop API", "", "1.0.0")

	require.NoError(t, openapi.AddEndpoint(doc, ep, openapi.Endpoint{
		Responses: map[string]openapi.Response{
			"200": {Desc: "Items", Bodies: []any{[]Item{}}},
		},
	}))

	op := doc.Paths.Value("/items").Get
	require.NotNil(t, op)
	assert.Nil(t, op.RequestBody)
	assert.Nil(t, op.Responses.Value("400"))
	assert.Equal(t, "Items", *op.Responses.Value("200").Value.Description)
}

func TestAddEndpoints(t *testing.T) {
	reg := itemRegistry()
	api := endpoint.NewGroup("/api")
	api.Post("/items", createItem, endpoint.WithParameters(validated.Body[Item](reg, "item")))
	api.Put("/items", createItem, endpoint.WithParameters(validated.Body[Item](reg, "item")))
	doc := openapi.DocBase("Shop API", "", "1.0.0")

	require.NoError(t, openapi.AddEndpoints(doc, api.Endpoints()...))

	path := doc.Paths.Value("/api/items")
	require.NotNil(t, path)
	assert.NotNil(t, path.Post)
	assert.NotNil(t, path.Put)
}

func TestNewResponse(t *testing.T) {
	_, err := openapi.NewResponse(nil)
	require.Error(t, err)

	resps, err := openapi.NewResponse(map[string]openapi.Response{
		"201": {Desc: "Created", Bodies: []any{Item{}}},
		"4xx": {Desc: "Client error", Bodies: []any{Item{}, endpoint.ProblemDetail{}}},
	})
	require.NoError(t, err)

	created := resps.Value("201").Value.Content.Get("application/json")
	require.NotNil(t, created)
	assert.Contains(t, created.Schema.Value.Properties, "price")

	clientErr := resps.Value("4xx").Value.Content.Get("application/json")
	require.NotNil(t, clientErr)
	assert.Len(t, clientErr.Schema.Value.OneOf, 2)
}

func TestHandler(t *testing.T) {
	ep := endpoint.New(http.MethodPost, "/items", createItem,
		endpoint.WithParameters(validated.Body[Item](itemRegistry(), "item")),
	)
	doc := openapi.DocBase("Shop API", "", "1.0.0")
	require.NoError(t, openapi.AddEndpoint(doc, ep, openapi.Endpoint{}))

	h, err := openapi.Handler(doc)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "3.0.3", got["openapi"])
	assert.Contains(t, got["paths"], "/items")
}

func TestHandlerMust_PanicsOnInvalidDoc(t *testing.T) {
	doc := openapi.DocBase("", "", "")
	doc.Info = nil

	assert.Panics(t, func() { openapi.HandlerMust(doc) })
}
