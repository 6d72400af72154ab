package validated

import (
	"cmp"
	"context"
	"log/slog"
	"reflect"
	"slices"

	"github.com/Gobd/validated/endpoint"
)

const (
	// Validate marks a plain parameter for validation by [ValidateArguments]
	// with the validators registered for its declared type.
	Validate endpoint.Marker = "validated.validate"

	// ManualValidation exempts a [Validated] parameter from [AutoValidate].
	// The handler receives the container even when it is invalid.
	ManualValidation endpoint.Marker = "validated.manual"
)

// FilterOptions configures [AutoValidate].
type FilterOptions struct {
	// AutoValidated makes AutoValidate answer with a [Problem] when a
	// Validated parameter is invalid. Defaults to true.
	AutoValidated bool
}

// DefaultFilterOptions returns the options AutoValidate starts from.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{AutoValidated: true}
}

// FilterOption configures [FilterOptions].
type FilterOption func(*FilterOptions)

// WithOptions replaces the options with o.
func WithOptions(o FilterOptions) FilterOption {
	return func(fo *FilterOptions) {
		*fo = o
	}
}

// Configure runs f against the options.
func Configure(f func(*FilterOptions)) FilterOption {
	return FilterOption(f)
}

// AutoValidated sets [FilterOptions.AutoValidated].
func AutoValidated(enabled bool) FilterOption {
	return func(fo *FilterOptions) {
		fo.AutoValidated = enabled
	}
}

// checkKind is how a descriptor's argument is checked.
type checkKind int

const (
	// checkArgument runs the registry's validators for the declared type.
	checkArgument checkKind = iota
	// checkModel reads the outcome stored in a [Model].
	checkModel
)

// descriptor is a parameter a filter checks, computed when the endpoint is
// constructed.
type descriptor struct {
	index int
	name  string
	typ   reflect.Type
	kind  checkKind
}

func argumentDescriptors(info endpoint.Info) []descriptor {
	var ds []descriptor
	for _, p := range info.Parameters {
		if p.Has(Validate) {
			ds = append(ds, descriptor{index: p.Index, name: p.Name, typ: p.Type, kind: checkArgument})
		}
	}
	return ds
}

func modelDescriptors(info endpoint.Info) []descriptor {
	var ds []descriptor
	for _, p := range info.Parameters {
		if p.Type == nil || !p.Type.Implements(modelType) || p.Has(ManualValidation) {
			continue
		}
		ds = append(ds, descriptor{index: p.Index, name: p.Name, typ: p.Type, kind: checkModel})
	}
	return ds
}

// check returns the problem for arg, or nil when arg passes or is not checked.
func (d descriptor) check(ctx context.Context, reg *Registry, arg any) (*Problem, error) {
	if arg == nil {
		return nil, nil
	}

	if d.kind == checkModel {
		m, ok := arg.(Model)
		if !ok || m.IsValid() {
			return nil, nil
		}
		return NewProblem(d.name, m.ModelType(), m.Errors()), nil
	}

	res, ok, err := reg.validate(ctx, d.typ, arg)
	if err != nil {
		return nil, err
	}
	if !ok || res.IsValid() {
		return nil, nil
	}
	return NewProblem(d.name, d.typ, res.Errors), nil
}

// checkParameters builds a filter running descriptors, in declaration order,
// against each request. The first failing parameter answers the request.
func checkParameters(reg *Registry, describe func(endpoint.Info) []descriptor) endpoint.FilterFactory {
	return func(info endpoint.Info, next endpoint.Next) endpoint.Next {
		descriptors := describe(info)
		if len(descriptors) == 0 {
			return next
		}
		// Stable, so a parameter's argument check precedes its model check.
		slices.SortStableFunc(descriptors, func(a, b descriptor) int {
			return cmp.Compare(a.index, b.index)
		})
		log := logger(info)

		return func(ctx context.Context, inv *endpoint.Invocation) (endpoint.Result, error) {
			for _, d := range descriptors {
				problem, err := d.check(ctx, reg, inv.Args[d.index])
				if err != nil {
					return nil, err
				}
				if problem == nil {
					continue
				}

				log.DebugContext(ctx, "parameter failed validation",
					slog.String("parameter", d.name),
					slog.String("type", problem.Type),
					slog.Any("fields", problem.Errors.Fields()),
				)
				return problem, nil
			}
			return next(ctx, inv)
		}
	}
}

// ValidateArguments returns a filter validating every parameter marked with
// [Validate] using the validators reg holds for the parameter's declared
// type. Parameters are checked in declaration order and the first invalid
// one is answered with a [Problem]; the handler and later parameters are
// skipped. Absent arguments and types without validators are skipped.
func ValidateArguments(reg *Registry) endpoint.FilterFactory {
	return checkParameters(reg, argumentDescriptors)
}

// AutoValidate returns a filter answering with a [Problem] for the first
// invalid [Validated] parameter, in declaration order, so the handler only
// runs with valid bodies. Parameters marked [ManualValidation] are left to
// the handler. With AutoValidated off the filter passes every request on
// without looking at it.
func AutoValidate(opts ...FilterOption) endpoint.FilterFactory {
	o := newFilterOptions(opts)
	if !o.AutoValidated {
		return passThrough
	}
	return checkParameters(nil, modelDescriptors)
}

// WithValidation installs a single filter doing the work of
// [ValidateArguments] and [AutoValidate] on an endpoint or group. Marked
// parameters and Validated parameters are checked together in declaration
// order, so the first failing parameter of either kind decides the response.
func WithValidation(reg *Registry, opts ...FilterOption) endpoint.Option {
	o := newFilterOptions(opts)
	describe := argumentDescriptors
	if o.AutoValidated {
		describe = func(info endpoint.Info) []descriptor {
			return append(argumentDescriptors(info), modelDescriptors(info)...)
		}
	}
	return endpoint.WithFilter(checkParameters(reg, describe))
}

func newFilterOptions(opts []FilterOption) FilterOptions {
	o := DefaultFilterOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func passThrough(_ endpoint.Info, next endpoint.Next) endpoint.Next {
	return next
}

func logger(info endpoint.Info) *slog.Logger {
	if info.Logger != nil {
		return info.Logger
	}
	return slog.Default()
}
