// Package kwargs is the parameter-resolution core: given a connection and a
// declared handler signature, it produces the exact keyword-argument mapping
// the handler needs, drawn from path parameters, query parameters, headers,
// cookies, the request body and a recursive provider graph.
//
// # Resolution pipeline
//
// The resolver walks a signature's field set in declaration order. Fields
// whose name matches a registered provider are resolved recursively through
// the provider graph; everything else goes through Build, which dispatches on
// the field name:
//
//   - reserved names (state, headers, cookies, query, request, socket, data)
//     map directly onto connection facets, with variant checks for request,
//     socket and data
//   - any other name goes through Param: path parameters, then query
//     parameters, then the declared query/header/cookie alias, then the
//     declared default
//
// Provider results take precedence over connection values on name collision,
// and reserved names shadow providers entirely.
//
// # Error semantics
//
// Server-authored mistakes (a data field on a GET route, a socket kwarg on an
// HTTP handler, a cyclic provider graph) wrap ErrImproperlyConfigured.
// Client-caused failures (missing required parameter, malformed body) are
// *ValidationError values carrying the offending parameter name. The core
// performs no logging and no response formatting; errors propagate to the
// invocation layer untouched.
//
// # Usage
//
//	model := signature.MustFor[ListPostsRequest]()
//	resolver := kwargs.NewResolver(registry)
//
//	kw, err := resolver.Resolve(r.Context(), model, connection.NewRequest(r))
//	if err != nil {
//		// classify and respond
//	}
//	req, err := model.Decode(kw)
package kwargs
