package validated

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type tag struct {
	Label string
}

func (t *tag) Normalize() {
	t.Label = strings.ToLower(strings.TrimSpace(t.Label))
}

type ctxKey struct{}

type tenant struct {
	ID string
}

func (t *tenant) Normalize(ctx context.Context) {
	if t.ID == "" {
		t.ID, _ = ctx.Value(ctxKey{}).(string)
	}
}

type order struct {
	Note    string
	Tags    []tag
	Primary *tag
	Labels  map[string]tag
	Tenant  tenant
	hidden  tag
}

func (o *order) Normalize() {
	o.Note = strings.TrimSpace(o.Note)
}

func TestNormalize(t *testing.T) {
	o := order{
		Note:    "  rush  ",
		Tags:    []tag{{Label: " A "}, {Label: "B"}},
		Primary: &tag{Label: " Main "},
		Labels:  map[string]tag{"x": {Label: "X "}},
		hidden:  tag{Label: " Keep "},
	}
	ctx := context.WithValue(context.Background(), ctxKey{}, "acme")

	normalize(ctx, &o)

	assert.Equal(t, "rush", o.Note)
	assert.Equal(t, []tag{{Label: "a"}, {Label: "b"}}, o.Tags)
	assert.Equal(t, "main", o.Primary.Label)
	assert.Equal(t, map[string]tag{"x": {Label: "x"}}, o.Labels)
	assert.Equal(t, "acme", o.Tenant.ID)
	assert.Equal(t, " Keep ", o.hidden.Label)
}

func TestNormalize_NilAndPlainValues(t *testing.T) {
	assert.NotPanics(t, func() {
		normalize(context.Background(), (*order)(nil))
		normalize(context.Background(), &order{})

		n := 3
		normalize(context.Background(), &n)
	})
}

func TestNormalize_PointerModel(t *testing.T) {
	p := &tag{Label: " Up "}

	normalize(context.Background(), &p)

	assert.Equal(t, "up", p.Label)
}
