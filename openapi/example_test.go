package openapi_test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gobd/validated"
	"github.com/Gobd/validated/endpoint"
	"github.com/Gobd/validated/openapi"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (it *Item) Rules() []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&it.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&it.Price, validation.Required, validation.Min(0.01)),
	}
}

func createItem(context.Context, endpoint.Args) (endpoint.Result, error) {
	return endpoint.NoContent(), nil
}

func ExampleAddEndpoint() {
	reg := validated.NewRegistry(validated.Register(validated.RulesOf[Item]()))
	ep := endpoint.New(http.MethodPost, "/items", createItem,
		endpoint.WithParameters(validated.Body[Item](reg, "item")),
	)

	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")
	if err := openapi.AddEndpoint(doc, ep, openapi.Endpoint{OperationID: "createItem", Response: Item{}}); err != nil {
		fmt.Println(err)
		return
	}

	op := doc.Paths.Value("/items").Post
	fmt.Println(op.OperationID)
	fmt.Println(op.RequestBody.Value.Required)
	fmt.Println(op.Responses.Value("400").Value.Content.Get("application/problem+json") != nil)
	// Output:
	// createItem
	// true
	// true
}

func ExampleDocBase() {
	doc := openapi.DocBase("My Service", "A cool service", "0.1.0")
	fmt.Println(doc.Info.Title)
	fmt.Println(doc.OpenAPI)
	// Output:
	// My Service
	// 3.0.3
}

func ExamplePath() {
	fmt.Println(openapi.Path("/items/{id:[0-9]+}/tags/{tag}"))
	// Output: /items/{id}/tags/{tag}
}
