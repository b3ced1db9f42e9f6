package kwargs

import (
	"net/url"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// ParseQuery parses and normalizes a raw query string into a mapping.
//
// The raw bytes are decoded as Latin-1 first, matching the wire contract for
// query strings handed over by the transport layer. Pairs are split on "&"
// keeping blank values; the literal values "true"/"True" and "false"/"False"
// coerce to booleans (exactly those case variants, nothing else). Repeated
// keys promote a single value to a list and append, preserving encounter
// order within the list.
//
// Malformed percent-encoding yields an empty mapping rather than an error:
// the surrounding system tolerates absent query parameters silently.
func ParseQuery(raw []byte) map[string]any {
	params := map[string]any{}
	if len(raw) == 0 {
		return params
	}
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return map[string]any{}
	}
	for _, pair := range strings.Split(string(text), "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return map[string]any{}
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return map[string]any{}
		}
		appendValue(params, key, coerceBool(value))
	}
	return params
}

// appendValue folds one pair into the mapping using the shared list-promotion
// rule: single value, then two-element list, then append.
func appendValue(values map[string]any, key string, value any) {
	existing, ok := values[key]
	if !ok {
		values[key] = value
		return
	}
	if list, ok := existing.([]any); ok {
		values[key] = append(list, value)
		return
	}
	values[key] = []any{existing, value}
}

func coerceBool(value string) any {
	switch value {
	case "true", "True":
		return true
	case "false", "False":
		return false
	}
	return value
}
