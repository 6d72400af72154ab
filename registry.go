package validated

import (
	"context"
	"fmt"
	"reflect"
	"slices"
)

// Registry holds the validators for each model type. It is built once with
// [NewRegistry] and read concurrently afterwards.
type Registry struct {
	sets map[reflect.Type]validatorSet
}

type validatorSet interface {
	len() int
	validateAny(ctx context.Context, value any) (Result, error)
}

type typedSet[T any] []Validator[T]

func (s typedSet[T]) len() int { return len(s) }

func (s typedSet[T]) validateAny(ctx context.Context, value any) (Result, error) {
	v, ok := value.(T)
	if !ok {
		return Result{}, fmt.Errorf("validated: argument of type %T is not a %s", value, reflect.TypeFor[T]())
	}
	return Combine[T](s...).Validate(ctx, v)
}

// RegistryOption adds validators to a [Registry].
type RegistryOption func(*Registry)

// Register adds validators for T. Registering several validators for the
// same type, in one call or many, combines them with [Combine].
func Register[T any](vs ...Validator[T]) RegistryOption {
	return func(r *Registry) {
		key := reflect.TypeFor[T]()
		set, _ := r.sets[key].(typedSet[T])
		r.sets[key] = append(set, vs...)
	}
}

// NewRegistry builds a registry from opts.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{sets: map[reflect.Type]validatorSet{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup returns the validators registered for T, in registration order.
func Lookup[T any](r *Registry) []Validator[T] {
	if r == nil {
		return nil
	}
	set, _ := r.sets[reflect.TypeFor[T]()].(typedSet[T])
	return slices.Clone([]Validator[T](set))
}

// Count returns the number of validators registered for t.
func (r *Registry) Count(t reflect.Type) int {
	if r == nil {
		return 0
	}
	set, ok := r.sets[t]
	if !ok {
		return 0
	}
	return set.len()
}

// validate runs the validators registered for t against value. The bool
// result is false when no validator is registered.
func (r *Registry) validate(ctx context.Context, t reflect.Type, value any) (Result, bool, error) {
	if r.Count(t) == 0 {
		return Result{}, false, nil
	}
	res, err := r.sets[t].validateAny(ctx, value)
	return res, true, err
}

// validatorFor resolves the single validator a [Validated] body of type T
// runs. No registered validator is a configuration error.
func validatorFor[T any](r *Registry) (Validator[T], error) {
	vs := Lookup[T](r)
	switch len(vs) {
	case 0:
		return nil, &ConfigError{Type: reflect.TypeFor[T](), Err: ErrNoValidator}
	case 1:
		return vs[0], nil
	default:
		return Combine(vs...), nil
	}
}
