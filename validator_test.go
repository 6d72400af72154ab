package validated_test

import (
	"context"
	"errors"
	"testing"

	v "github.com/Gobd/validated"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============ Test types ============

type person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func (p *person) Rules() []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&p.Name, validation.Required, validation.RuneLength(3, 0)),
		validation.Field(&p.Age, validation.Min(18)),
	}
}

func nameRules(p *person) []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&p.Name, validation.RuneLength(3, 0)),
	}
}

func ageRules(p *person) []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&p.Age, validation.Min(18)),
	}
}

type address struct {
	City string `json:"city"`
}

func (a address) Validate() error {
	return validation.ValidateStruct(&a, validation.Field(&a.City, validation.Required))
}

type customer struct {
	Name    string  `json:"name"`
	Address address `json:"address"`
}

// ============ Rules ============

func TestRules_Valid(t *testing.T) {
	res, err := v.RulesOf[person]().Validate(context.Background(), person{Name: "Alice", Age: 21})
	require.NoError(t, err)

	assert.True(t, res.IsValid())
	assert.Empty(t, res.Errors)
}

func TestRules_Invalid(t *testing.T) {
	res, err := v.RulesOf[person]().Validate(context.Background(), person{Name: "Al", Age: 17})
	require.NoError(t, err)

	assert.False(t, res.IsValid())
	assert.Equal(t, []string{"age", "name"}, res.Errors.Fields())
	assert.Equal(t, []string{"must be no less than 18"}, res.Errors["age"])
	assert.Equal(t, []string{"the length must be no less than 3"}, res.Errors["name"])
}

func TestRules_OnlyViolatedFields(t *testing.T) {
	res, err := v.RulesOf[person]().Validate(context.Background(), person{Name: "Alice", Age: 12})
	require.NoError(t, err)

	assert.Equal(t, []string{"age"}, res.Errors.Fields())
}

func TestRules_NestedErrorsUseDottedKeys(t *testing.T) {
	rules := v.Rules(func(c *customer) []*validation.FieldRules {
		return []*validation.FieldRules{
			validation.Field(&c.Name, validation.Required),
			validation.Field(&c.Address),
		}
	})

	res, err := rules.Validate(context.Background(), customer{Name: "Bob"})
	require.NoError(t, err)

	assert.Equal(t, v.Errors{"address.city": {"cannot be blank"}}, res.Errors)
}

func TestRules_DoesNotMutateInput(t *testing.T) {
	in := person{Name: "Alice", Age: 30}
	rules := v.Rules(func(p *person) []*validation.FieldRules {
		p.Name = "changed"
		return nil
	})

	_, err := rules.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Alice", in.Name)
}

func TestRules_InternalErrorIsReturned(t *testing.T) {
	var stray string
	rules := v.Rules(func(p *person) []*validation.FieldRules {
		return []*validation.FieldRules{
			validation.Field(&stray, validation.Required),
		}
	})

	_, err := rules.Validate(context.Background(), person{})
	require.Error(t, err)
}

func TestValidatorFunc(t *testing.T) {
	boom := errors.New("boom")
	f := v.ValidatorFunc[person](func(context.Context, person) (v.Result, error) {
		return v.Result{}, boom
	})

	_, err := f.Validate(context.Background(), person{})
	require.ErrorIs(t, err, boom)
}

// ============ Errors ============

func TestErrors_String(t *testing.T) {
	errs := v.Errors{
		"name": {"cannot be blank"},
		"age":  {"must be no less than 18", "must be even"},
	}
	assert.Equal(t, "age: must be no less than 18, must be even; name: cannot be blank.", errs.String())
	assert.Empty(t, v.Errors{}.String())
}
