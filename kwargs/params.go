package kwargs

import (
	"net/http"

	"github.com/dmitrymomot/resolvekit/connection"
	"github.com/dmitrymomot/resolvekit/signature"
)

// Param extracts the value for one declared field from the connection's path,
// query, header and cookie sources. Read-only with respect to the connection.
//
// Precedence: path parameters win over query parameters for the same field
// name; declared extras are consulted only when neither matches, in the fixed
// order query, header, cookie, and only the first source with a non-empty
// alias is ever checked. An absent alias on a required field with no usable
// default is a validation error naming the alias; otherwise the declared
// default (or nil) stands in.
func Param(conn connection.Connection, name string, field signature.Field, query map[string]any, headers http.Header) (any, error) {
	if v, ok := conn.PathParams()[name]; ok {
		return v, nil
	}
	if v, ok := query[name]; ok {
		return v, nil
	}

	if alias := field.Extras.Query; alias != "" {
		if v, ok := query[alias]; ok {
			return v, nil
		}
		return missingOrDefault(field, alias)
	}
	if alias := field.Extras.Header; alias != "" {
		// Header lookup is case-insensitive by HTTP semantics.
		if values := headers.Values(alias); len(values) > 0 {
			return values[0], nil
		}
		return missingOrDefault(field, alias)
	}
	if alias := field.Extras.Cookie; alias != "" {
		if v, ok := conn.Cookies()[alias]; ok {
			return v, nil
		}
		return missingOrDefault(field, alias)
	}
	return field.DefaultValue(), nil
}

func missingOrDefault(field signature.Field, alias string) (any, error) {
	if field.Extras.Required && !field.UsableDefault() {
		return nil, newMissingParam(alias)
	}
	return field.DefaultValue(), nil
}
