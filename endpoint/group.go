package endpoint

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Group shares a route prefix and options between endpoints. Group options
// apply before each endpoint's own, so group filters run first.
type Group struct {
	prefix    string
	opts      []Option
	endpoints []*Endpoint
}

// NewGroup returns a group mounted under prefix.
func NewGroup(prefix string, opts ...Option) *Group {
	return &Group{
		prefix: strings.TrimSuffix(prefix, "/"),
		opts:   opts,
	}
}

// Handle constructs an endpoint in the group.
func (g *Group) Handle(method, pattern string, h Handler, opts ...Option) *Endpoint {
	all := append(slices.Clone(g.opts), opts...)
	ep := New(method, g.prefix+"/"+strings.TrimPrefix(pattern, "/"), h, all...)
	g.endpoints = append(g.endpoints, ep)
	return ep
}

// Get constructs a GET endpoint in the group.
func (g *Group) Get(pattern string, h Handler, opts ...Option) *Endpoint {
	return g.Handle(http.MethodGet, pattern, h, opts...)
}

// Post constructs a POST endpoint in the group.
func (g *Group) Post(pattern string, h Handler, opts ...Option) *Endpoint {
	return g.Handle(http.MethodPost, pattern, h, opts...)
}

// Put constructs a PUT endpoint in the group.
func (g *Group) Put(pattern string, h Handler, opts ...Option) *Endpoint {
	return g.Handle(http.MethodPut, pattern, h, opts...)
}

// Endpoints returns the group's endpoints in registration order.
func (g *Group) Endpoints() []*Endpoint {
	return slices.Clone(g.endpoints)
}

// Mount registers the group's endpoints on r.
func (g *Group) Mount(r chi.Router) {
	Mount(r, g.endpoints...)
}

// Mount registers endpoints on r by method and pattern.
func Mount(r chi.Router, endpoints ...*Endpoint) {
	for _, ep := range endpoints {
		r.Method(ep.Method(), ep.Pattern(), ep)
	}
}
