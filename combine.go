package validated

import (
	"context"
	"slices"

	"github.com/sourcegraph/conc/pool"
)

// Combine returns a Validator applying the union of vs' rules. Every
// validator is consulted; messages for a field are ordered by the position
// of the validator that produced them. If any validator fails to run, the
// first error is returned.
func Combine[T any](vs ...Validator[T]) Validator[T] {
	if len(vs) == 1 {
		return vs[0]
	}
	return combined[T](slices.Clone(vs))
}

type combined[T any] []Validator[T]

func (c combined[T]) Validate(ctx context.Context, value T) (Result, error) {
	results := make([]Result, len(c))

	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, v := range c {
		p.Go(func(ctx context.Context) error {
			res, err := v.Validate(ctx, value)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return Result{}, err
	}

	errs := Errors{}
	for _, res := range results {
		errs.merge(res.Errors)
	}
	if len(errs) == 0 {
		return Result{}, nil
	}
	return Result{Errors: errs}, nil
}
