package validated_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	v "github.com/Gobd/validated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageValidator(field, msg string) v.Validator[person] {
	return v.ValidatorFunc[person](func(context.Context, person) (v.Result, error) {
		return v.Result{Errors: v.Errors{field: {msg}}}, nil
	})
}

func TestCombine_Union(t *testing.T) {
	combined := v.Combine(v.Rules(nameRules), v.Rules(ageRules))

	res, err := combined.Validate(context.Background(), person{Name: "Al", Age: 17})
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "name"}, res.Errors.Fields())
}

func TestCombine_RulesAreIndependent(t *testing.T) {
	combined := v.Combine(v.Rules(nameRules), v.Rules(ageRules))

	tests := []struct {
		name   string
		in     person
		fields []string
	}{
		{name: "both valid", in: person{Name: "Alice", Age: 21}, fields: nil},
		{name: "only name invalid", in: person{Name: "Al", Age: 21}, fields: []string{"name"}},
		{name: "only age invalid", in: person{Name: "Alice", Age: 17}, fields: []string{"age"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := combined.Validate(context.Background(), tt.in)
			require.NoError(t, err)
			if tt.fields == nil {
				assert.True(t, res.IsValid())
				assert.Empty(t, res.Errors)
				return
			}
			assert.Equal(t, tt.fields, res.Errors.Fields())
		})
	}
}

func TestCombine_MessagesFollowValidatorOrder(t *testing.T) {
	combined := v.Combine(
		messageValidator("name", "first"),
		messageValidator("name", "second"),
		messageValidator("name", "third"),
	)

	for range 20 {
		res, err := combined.Validate(context.Background(), person{})
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second", "third"}, res.Errors["name"])
	}
}

func TestCombine_ConsultsEveryValidator(t *testing.T) {
	var calls atomic.Int32
	count := v.ValidatorFunc[person](func(context.Context, person) (v.Result, error) {
		calls.Add(1)
		return v.Result{Errors: v.Errors{"name": {"bad"}}}, nil
	})

	_, err := v.Combine[person](count, count, count).Validate(context.Background(), person{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCombine_ValidatorErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	failing := v.ValidatorFunc[person](func(context.Context, person) (v.Result, error) {
		return v.Result{}, boom
	})

	_, err := v.Combine[person](v.Rules(nameRules), failing).Validate(context.Background(), person{})
	require.ErrorIs(t, err, boom)
}
