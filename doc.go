// Package resolvekit resolves handler parameters from HTTP requests and
// websocket sessions: path and query parameters, headers, cookies, body
// payloads and a recursive provider graph, declared as plain struct fields.
//
// Key features:
//
//   - Type-safe handlers using generics: the handler's struct type is its
//     signature, derived once at registration time
//   - Reserved field names (state, headers, cookies, query, request, socket,
//     data) map directly onto connection facets
//   - Pluggable providers (dependency factories) that may themselves depend
//     on other providers or connection data, with cycle detection
//   - Clean separation of server configuration faults from client validation
//     errors
//
// Basic usage:
//
//	type UpdatePostRequest struct {
//		PostID string      `param:"post_id"` // path or query parameter
//		Expand bool        `query:"expand"`  // query alias
//		Token  string      `header:"X-API-Token" required:"true"`
//		Data   PostPayload // reserved: parsed request body
//	}
//
//	handler := resolvekit.HandlerFunc[UpdatePostRequest](
//		func(ctx resolvekit.Context, req UpdatePostRequest) resolvekit.Response {
//			post := updatePost(req.PostID, req.Data)
//			return resolvekit.JSON(post)
//		},
//	)
//
//	r := chi.NewRouter()
//	r.Put("/posts/{post_id}", resolvekit.Wrap(handler))
//
// With providers:
//
//	registry := provide.NewRegistry()
//	registry.MustRegister("repo", provide.Func(newRepository))
//
//	type ListRequest struct {
//		Repo  *Repository `param:"repo"` // resolved by the provider
//		Limit int         `query:"limit" default:"25"`
//	}
//
//	r.Get("/posts", resolvekit.Wrap(listHandler,
//		resolvekit.WithProviders(registry),
//	))
package resolvekit
