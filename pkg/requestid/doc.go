// Package requestid provides HTTP middleware and context helpers for request
// correlation identifiers.
//
// The invocation layer's error handler includes the request ID in its log
// records, so configuration faults and validation failures can be correlated
// with the exact request that triggered them:
//
//	mux := chi.NewRouter()
//	mux.Use(requestid.Middleware)
package requestid
