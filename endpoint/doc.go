// Package endpoint is a small request pipeline for JSON HTTP endpoints.
//
// An [Endpoint] declares its handler's parameters up front. Each request
// binds every parameter exactly once, in declaration order, then runs the
// argument list through the endpoint's filters before the handler:
//
//	ep := endpoint.New(http.MethodPost, "/orders", createOrder,
//	    endpoint.WithParameters(
//	        endpoint.JSON[Order]("order"),
//	        endpoint.URLParam("tenant"),
//	    ),
//	    endpoint.WithFilter(audit),
//	)
//	r.Method(ep.Method(), ep.Pattern(), ep)
//
// Filters are built by a [FilterFactory] once, when the endpoint is
// constructed, so per-parameter lookups can be computed from [Info] and
// reused by every request.
//
// Parameters can contribute metadata (see [Accepts] and [Produces]) which
// documentation tooling such as the openapi package reads back from
// [Info.Metadata].
package endpoint
