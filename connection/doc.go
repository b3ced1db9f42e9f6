// Package connection abstracts the boundary between the transport layer and
// parameter resolution: one client HTTP request or one persistent websocket
// session.
//
// Two variants implement the Connection interface:
//
//   - Request wraps an *http.Request. It supports body reads and caches the
//     parsed body, JSON and form payloads so repeated access within one
//     request never re-reads or re-parses the stream.
//   - Socket wraps an upgraded gorilla/websocket connection together with its
//     handshake request. It exposes the handshake's path, query, header and
//     cookie parameters but has no body.
//
// Both variants carry a middleware-populated scope: an application State
// container handed out as copy-on-read snapshots, and explicit optional user
// and auth values. Reading user or auth before an auth middleware populated
// them fails with ErrUserNotSet or ErrAuthNotSet rather than silently
// returning nil, so missing middleware surfaces as a server configuration
// fault.
//
// Path parameters are lifted from the chi route context automatically:
//
//	r := chi.NewRouter()
//	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
//		conn := connection.NewRequest(r)
//		id := conn.PathParams()["id"]
//		...
//	})
//
// Other routers can supply parameters through WithPathParams.
package connection
