package validated

import "reflect"

// Model is the type-erased view of a [Validated] value that filters inspect.
type Model interface {
	IsValid() bool
	Errors() Errors
	ModelType() reflect.Type
}

var modelType = reflect.TypeFor[Model]()

// Validated is a request body of type T together with the outcome of
// validating it. It is only created by [Bind] and never changes afterwards.
type Validated[T any] struct {
	value  T
	errors Errors
}

// Value returns the bound body, whether or not it is valid.
func (v *Validated[T]) Value() T {
	return v.value
}

// IsValid reports whether every rule passed.
func (v *Validated[T]) IsValid() bool {
	return len(v.errors) == 0
}

// Errors returns a copy of the failing fields and their messages.
func (v *Validated[T]) Errors() Errors {
	return v.errors.clone()
}

// ModelType returns the type of T.
func (v *Validated[T]) ModelType() reflect.Type {
	return reflect.TypeFor[T]()
}
