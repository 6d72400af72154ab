package validated

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Result is the outcome of validating one value.
type Result struct {
	Errors Errors
}

// IsValid reports whether no rule failed.
func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Validator checks values of type T. A rule failure is reported in the
// Result; a returned error means validation itself could not run.
type Validator[T any] interface {
	Validate(ctx context.Context, value T) (Result, error)
}

// ValidatorFunc is a func type of the [Validator] interface.
type ValidatorFunc[T any] func(ctx context.Context, value T) (Result, error)

// Validate implements [Validator].
func (f ValidatorFunc[T]) Validate(ctx context.Context, value T) (Result, error) {
	return f(ctx, value)
}

// Ruler is implemented by models that declare their own field rules.
//
//	func (p *Person) Rules() []*validation.FieldRules {
//	    return []*validation.FieldRules{
//	        validation.Field(&p.Name, validation.Required, validation.RuneLength(3, 0)),
//	        validation.Field(&p.Age, validation.Min(18)),
//	    }
//	}
type Ruler interface {
	Rules() []*validation.FieldRules
}

// Rules returns a [Validator] for the struct type T. For each value, fields is
// called with a pointer to a copy of the value and must return ozzo field
// rules for that pointer's fields.
func Rules[T any](fields func(v *T) []*validation.FieldRules) Validator[T] {
	return rulesValidator[T]{fields: fields}
}

// RulesOf returns a [Validator] using the rules *T declares via [Ruler].
func RulesOf[T any, P interface {
	*T
	Ruler
}]() Validator[T] {
	return Rules(func(v *T) []*validation.FieldRules {
		return P(v).Rules()
	})
}

type rulesValidator[T any] struct {
	fields func(v *T) []*validation.FieldRules
}

func (r rulesValidator[T]) Validate(ctx context.Context, value T) (Result, error) {
	v := value
	err := validation.ValidateStructWithContext(ctx, &v, r.fields(&v)...)
	errs, err := errorsFrom(err)
	if err != nil {
		return Result{}, fmt.Errorf("validating %s: %w", reflect.TypeFor[T](), err)
	}
	return Result{Errors: errs}, nil
}

// errorsFrom converts an ozzo validation error into an [Errors] map.
// Nested struct and collection errors are flattened into dotted keys.
// Internal errors are returned as errors.
func errorsFrom(err error) (Errors, error) {
	if err == nil {
		return nil, nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return nil, internal.InternalError()
	}

	var ve validation.Errors
	if !errors.As(err, &ve) {
		return Errors{"": {err.Error()}}, nil
	}

	out := Errors{}
	flatten(out, "", ve)
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func flatten(out Errors, prefix string, ve validation.Errors) {
	for field, err := range ve {
		if err == nil {
			continue
		}
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(err, &nested) {
			flatten(out, key, nested)
			continue
		}
		out[key] = append(out[key], err.Error())
	}
}
