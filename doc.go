// Package validated validates JSON request bodies before endpoint handlers
// run, answering invalid requests with a validation problem response.
//
// Register validators per model type. Validators are usually built from
// ozzo-validation field rules:
//
//	reg := validated.NewRegistry(
//	    validated.Register(validated.Rules(func(p *Person) []*validation.FieldRules {
//	        return []*validation.FieldRules{
//	            validation.Field(&p.Name, validation.Required, validation.RuneLength(3, 0)),
//	            validation.Field(&p.Age, validation.Min(18)),
//	        }
//	    })),
//	)
//
// [Tags] checks go-playground/validator struct tags instead, and [Combine]
// merges validators; registering several for one type combines them.
//
// Declare the body as a [Validated] parameter with [Body] and install the
// filters with [WithValidation]:
//
//	api := endpoint.NewGroup("/api", validated.WithValidation(reg))
//	api.Post("/person", hello, endpoint.WithParameters(validated.Body[Person](reg, "person")))
//
// An invalid body never reaches the handler; the client gets a 400
// application/problem+json response listing the failing fields. Mark the
// parameter with [ManualValidation] to receive invalid bodies and branch on
// [Validated.IsValid] yourself, or mark a plain parameter with [Validate] to
// have it checked without wrapping it.
package validated
