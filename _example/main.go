// Command example serves a validated endpoint on a chi router.
//
// Run:
//
//	go run ./_example
//
// Then try:
//
//	curl -i -d '{"name":"Al","age":17}' localhost:8080/api/person
//	curl -i -d '{"name":"Alice","age":21}' localhost:8080/api/person
//	curl localhost:8080/openapi.json
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/Gobd/validated"
	"github.com/Gobd/validated/endpoint"
	"github.com/Gobd/validated/openapi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type Person struct {
	Name  string `json:"name"`
	Age   int    `json:"age" validate:"lte=150"`
	Email string `json:"email,omitempty"`
}

func (p *Person) Rules() []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Age, validation.Min(18)),
	}
}

func (p *Person) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	reg := validated.NewRegistry(
		validated.Register(
			validated.RulesOf[Person](),
			validated.Rules(func(p *Person) []*validation.FieldRules {
				return []*validation.FieldRules{
					validation.Field(&p.Email, is.EmailFormat),
				}
			}),
			validated.Tags[Person](),
		),
	)

	api := endpoint.NewGroup("/api",
		endpoint.WithLogger(log),
		validated.WithValidation(reg),
	)

	create := api.Post("/person", hello,
		endpoint.WithParameters(validated.Body[Person](reg, "person")),
	)
	draft := api.Post("/person/draft", checkDraft,
		endpoint.WithParameters(validated.Body[Person](reg, "person", endpoint.Mark(validated.ManualValidation))),
	)

	doc := openapi.DocBase("people", "Validated request bodies", "0.1.0")
	if err := openapi.AddEndpoint(doc, create, openapi.Endpoint{OperationID: "createPerson", Summary: "Greet a person"}); err != nil {
		log.Error("failed to document endpoint", slog.Any("error", err))
		os.Exit(1)
	}
	if err := openapi.AddEndpoint(doc, draft, openapi.Endpoint{OperationID: "checkPerson", Summary: "Report validation errors"}); err != nil {
		log.Error("failed to document endpoint", slog.Any("error", err))
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	api.Mount(r)
	r.Handle("/openapi.json", openapi.HandlerMust(doc))

	log.Info("listening", slog.String("addr", ":8080"))
	if err := http.ListenAndServe(":8080", r); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func hello(_ context.Context, args endpoint.Args) (endpoint.Result, error) {
	person := endpoint.Arg[*validated.Validated[Person]](args, 0)
	return endpoint.Text(fmt.Sprintf("Hello %s", person.Value().Name)), nil
}

func checkDraft(_ context.Context, args endpoint.Args) (endpoint.Result, error) {
	person := endpoint.Arg[*validated.Validated[Person]](args, 0)
	return endpoint.OK(map[string]any{
		"valid":  person.IsValid(),
		"errors": person.Errors(),
	}), nil
}
