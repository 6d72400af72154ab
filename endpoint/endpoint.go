package endpoint

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// Args are the bound handler arguments, in parameter declaration order.
// Absent optional arguments are nil.
type Args []any

// Arg returns args[i] as a T, or the zero T when it is absent or of another type.
func Arg[T any](args Args, i int) T {
	v, _ := args[i].(T)
	return v
}

// Handler is the endpoint body.
type Handler func(ctx context.Context, args Args) (Result, error)

// Invocation is one request flowing through the filter chain.
type Invocation struct {
	Request *http.Request
	Args    Args
}

// Next runs the rest of the pipeline.
type Next func(ctx context.Context, inv *Invocation) (Result, error)

// FilterFactory builds a filter around next. It is called once when the
// endpoint is constructed.
type FilterFactory func(info Info, next Next) Next

// Info describes a constructed endpoint.
type Info struct {
	Method     string
	Pattern    string
	Parameters []ParameterInfo
	Metadata   []any
	Logger     *slog.Logger
}

// Options are the configurable parts of an [Endpoint].
type Options struct {
	params     []Parameter
	filters    []FilterFactory
	metadata   []any
	log        *slog.Logger
	errHandler ErrorHandler
}

// Option sets a value on [Options].
type Option func(*Options)

// WithParameters appends handler parameters.
func WithParameters(params ...Parameter) Option {
	return func(o *Options) {
		o.params = append(o.params, params...)
	}
}

// WithFilter appends filters. The first filter registered runs first.
func WithFilter(filters ...FilterFactory) Option {
	return func(o *Options) {
		o.filters = append(o.filters, filters...)
	}
}

// WithMetadata appends endpoint metadata.
func WithMetadata(md ...any) Option {
	return func(o *Options) {
		o.metadata = append(o.metadata, md...)
	}
}

// WithLogger sets the logger used by the endpoint and passed to filters.
func WithLogger(log *slog.Logger) Option {
	return func(o *Options) {
		o.log = log
	}
}

// OnError sets the [ErrorHandler]. The default writes problem details.
func OnError(eh ErrorHandler) Option {
	return func(o *Options) {
		o.errHandler = eh
	}
}

// Endpoint is an [http.Handler] for one method and route pattern.
type Endpoint struct {
	info       Info
	params     []Parameter
	next       Next
	log        *slog.Logger
	errHandler ErrorHandler
}

// New constructs an endpoint. Parameter metadata is populated and every
// filter factory runs here, before the endpoint serves its first request.
func New(method, pattern string, h Handler, opts ...Option) *Endpoint {
	o := &Options{
		log: otelslog.NewLogger("github.com/Gobd/validated/endpoint"),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.errHandler == nil {
		o.errHandler = problemErrorHandler{log: o.log}
	}

	b := &Builder{
		Method:   method,
		Pattern:  pattern,
		Metadata: slices.Clone(o.metadata),
	}
	infos := make([]ParameterInfo, len(o.params))
	for i, p := range o.params {
		infos[i] = ParameterInfo{
			Index:    i,
			Name:     p.name,
			Type:     p.typ,
			Optional: p.optional,
			markers:  slices.Clone(p.markers),
		}
		for _, populate := range p.populate {
			populate(b, infos[i])
		}
	}

	info := Info{
		Method:     method,
		Pattern:    pattern,
		Parameters: infos,
		Metadata:   b.Metadata,
		Logger:     o.log,
	}

	next := Next(func(ctx context.Context, inv *Invocation) (Result, error) {
		return h(ctx, inv.Args)
	})
	for i := len(o.filters) - 1; i >= 0; i-- {
		next = o.filters[i](info, next)
	}

	return &Endpoint{
		info:       info,
		params:     slices.Clone(o.params),
		next:       next,
		log:        o.log,
		errHandler: o.errHandler,
	}
}

// Method returns the endpoint's HTTP method.
func (e *Endpoint) Method() string { return e.info.Method }

// Pattern returns the endpoint's route pattern.
func (e *Endpoint) Pattern() string { return e.info.Pattern }

// Info returns the endpoint description filters were built from.
func (e *Endpoint) Info() Info {
	info := e.info
	info.Parameters = slices.Clone(info.Parameters)
	info.Metadata = slices.Clone(info.Metadata)
	return info
}

// ServeHTTP implements [http.Handler].
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	args, err := e.bind(r)
	if err != nil {
		e.errHandler.OnError(ctx, w, r, err)
		return
	}

	res, err := e.next(ctx, &Invocation{Request: r, Args: args})
	if err != nil {
		e.errHandler.OnError(ctx, w, r, err)
		return
	}
	if res == nil {
		res = NoContent()
	}
	if err := res.WriteResponse(w, r); err != nil {
		e.log.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

func (e *Endpoint) bind(r *http.Request) (Args, error) {
	args := make(Args, len(e.params))
	for i, p := range e.params {
		v, ok, err := p.bind(r)
		if err != nil {
			return nil, fmt.Errorf("binding parameter %s: %w", p.name, err)
		}
		if !ok {
			if !p.optional {
				return nil, MissingParameterError{Name: p.name}
			}
			continue
		}
		args[i] = v
	}
	return args, nil
}
