package kwargs

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/resolvekit/connection"
	"github.com/dmitrymomot/resolvekit/signature"
)

// paramSource tags the resolution source selected by a field's name. Computed
// once per field so dispatch is a switch over a variant instead of repeated
// string comparison.
type paramSource int

const (
	sourceNamed paramSource = iota
	sourceState
	sourceHeaders
	sourceCookies
	sourceQuery
	sourceRequest
	sourceSocket
	sourceData
)

// sourceForName maps reserved field names onto their source variant.
// Reserved names always take precedence over provider and connection
// parameter resolution.
func sourceForName(name string) paramSource {
	switch name {
	case "state":
		return sourceState
	case "headers":
		return sourceHeaders
	case "cookies":
		return sourceCookies
	case "query":
		return sourceQuery
	case "request":
		return sourceRequest
	case "socket":
		return sourceSocket
	case "data":
		return sourceData
	default:
		return sourceNamed
	}
}

// Build populates the kwargs mapping for a field set from the connection.
// Query and header snapshots are computed once per call, so every field in
// the set sees one consistent view of the request.
func Build(ctx context.Context, conn connection.Connection, fields signature.FieldSet) (map[string]any, error) {
	query := ParseQuery(conn.RawQuery())
	headers := conn.Headers()

	kw := make(map[string]any, fields.Len())
	for _, name := range fields.Names() {
		field, _ := fields.Get(name)
		switch sourceForName(name) {
		case sourceState:
			kw[name] = conn.State().Snapshot()
		case sourceHeaders:
			kw[name] = headers
		case sourceCookies:
			kw[name] = conn.Cookies()
		case sourceQuery:
			kw[name] = query
		case sourceRequest:
			req, ok := conn.(*connection.Request)
			if !ok {
				return nil, fmt.Errorf("%w: the %q kwarg is not supported with websocket handlers", ErrImproperlyConfigured, name)
			}
			kw[name] = req
		case sourceSocket:
			sock, ok := conn.(*connection.Socket)
			if !ok {
				return nil, fmt.Errorf("%w: the %q kwarg is not supported with http handlers", ErrImproperlyConfigured, name)
			}
			kw[name] = sock
		case sourceData:
			req, ok := conn.(*connection.Request)
			if !ok {
				return nil, fmt.Errorf("%w: the %q kwarg is not supported with websocket handlers", ErrImproperlyConfigured, name)
			}
			value, err := DecodeBody(ctx, req, field)
			if err != nil {
				return nil, err
			}
			kw[name] = value
		default:
			value, err := Param(conn, name, field, query, headers)
			if err != nil {
				return nil, err
			}
			kw[name] = value
		}
	}
	return kw, nil
}
