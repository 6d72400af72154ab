package validated

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	tagValidatorOnce sync.Once
	tagValidator     *validator.Validate
)

func defaultTagValidator() *validator.Validate {
	tagValidatorOnce.Do(func() {
		tagValidator = validator.New(validator.WithRequiredStructEnabled())
		tagValidator.RegisterTagNameFunc(jsonFieldName)
	})
	return tagValidator
}

// jsonFieldName reports struct fields by their JSON name so tag errors use
// the same keys as rule errors.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// Tags returns a [Validator] checking the `validate` struct tags of T with
// go-playground/validator:
//
//	type Person struct {
//	    Email string `json:"email" validate:"omitempty,email"`
//	}
//
// Pass a configured *validator.Validate to register custom tags; it should
// report JSON field names (see RegisterTagNameFunc) for errors to line up
// with the request body.
func Tags[T any](v ...*validator.Validate) Validator[T] {
	tv := defaultTagValidator()
	if len(v) > 0 && v[0] != nil {
		tv = v[0]
	}
	return tagsValidator[T]{v: tv}
}

type tagsValidator[T any] struct {
	v *validator.Validate
}

func (t tagsValidator[T]) Validate(ctx context.Context, value T) (Result, error) {
	err := t.v.StructCtx(ctx, value)
	if err == nil {
		return Result{}, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Result{}, fmt.Errorf("validating %s: %w", reflect.TypeFor[T](), err)
	}

	errs := Errors{}
	for _, fe := range fieldErrs {
		key := tagKey(fe.Namespace())
		errs[key] = append(errs[key], tagMessage(fe))
	}
	return Result{Errors: errs}, nil
}

var indexReplacer = strings.NewReplacer("[", ".", "]", "")

// tagKey turns a validator namespace such as "order.items[0].name" into the
// dotted key ozzo errors flatten to, "items.0.name".
func tagKey(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		namespace = rest
	}
	return indexReplacer.Replace(namespace)
}

func tagMessage(fe validator.FieldError) string {
	tag := fe.Tag()
	if p := fe.Param(); p != "" {
		tag += "=" + p
	}
	return fmt.Sprintf("failed on the '%s' validation", tag)
}
