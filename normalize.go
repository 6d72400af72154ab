package validated

import (
	"context"
	"reflect"
)

// Normalizer is implemented by models that clean themselves up after
// decoding, e.g. trimming whitespace. [Bind] normalizes before validating.
type Normalizer interface {
	Normalize()
}

// ContextNormalizer is like [Normalizer] but receives the request context.
type ContextNormalizer interface {
	Normalize(context.Context)
}

// normalize calls Normalize on v, then depth-first on nested struct fields,
// pointers, slice elements and map values that implement it.
func normalize(ctx context.Context, v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	callNormalize(ctx, v)
	walkNormalize(ctx, rv.Elem())
}

func callNormalize(ctx context.Context, v any) {
	switch n := v.(type) {
	case ContextNormalizer:
		n.Normalize(ctx)
	case Normalizer:
		n.Normalize()
	}
}

func walkNormalize(ctx context.Context, rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Ptr:
		normalizeValue(ctx, rv)
	case reflect.Struct:
		for i := range rv.NumField() {
			if !rv.Type().Field(i).IsExported() {
				continue
			}
			normalizeValue(ctx, rv.Field(i))
		}
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			normalizeValue(ctx, rv.Index(i))
		}
	case reflect.Map:
		for _, key := range rv.MapKeys() {
			// Map values aren't addressable; copy, normalize, put back.
			cp := reflect.New(rv.Type().Elem())
			cp.Elem().Set(rv.MapIndex(key))
			normalizeValue(ctx, cp.Elem())
			rv.SetMapIndex(key, cp.Elem())
		}
	}
}

func normalizeValue(ctx context.Context, field reflect.Value) {
	switch field.Kind() {
	case reflect.Struct:
		if field.CanAddr() {
			callNormalize(ctx, field.Addr().Interface())
		}
		walkNormalize(ctx, field)
	case reflect.Ptr:
		if field.IsNil() {
			return
		}
		callNormalize(ctx, field.Interface())
		walkNormalize(ctx, field.Elem())
	case reflect.Slice, reflect.Array, reflect.Map:
		walkNormalize(ctx, field)
	}
}
