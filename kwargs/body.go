package kwargs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/dmitrymomot/resolvekit/connection"
	"github.com/dmitrymomot/resolvekit/signature"
)

var (
	uploadFileType    = reflect.TypeOf(connection.UploadFile{})
	uploadFilePtrType = reflect.TypeOf((*connection.UploadFile)(nil))
)

// DecodeBody extracts and shapes the request body for a data field.
//
// Declaring data on a GET route is a configuration error raised before any
// I/O. With no declared media type, or JSON, the body is read and parsed
// once; a parse failure is a client-facing validation error. Multipart and
// url-encoded bodies are folded into a mapping: uploaded files pass through
// as *connection.UploadFile, every other value gets a JSON-decode attempt
// with raw-string fallback, and repeated keys promote to lists.
//
// Multipart-only shape rules: a list-shaped field receives the mapping's
// values as a slice in first-seen key order; a singleton upload-file field
// receives just the first entry.
func DecodeBody(ctx context.Context, req *connection.Request, field signature.Field) (any, error) {
	if strings.EqualFold(req.Method(), http.MethodGet) {
		return nil, fmt.Errorf("%w: the %q kwarg is unsupported for GET requests", ErrImproperlyConfigured, field.Name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mediaType := field.Extras.MediaType
	if mediaType == "" || mediaType == signature.MediaTypeJSON {
		v, err := req.JSON()
		if err != nil {
			return nil, &ValidationError{Param: field.Name, Msg: "malformed JSON body", Err: err}
		}
		return v, nil
	}

	form, err := req.Form()
	if err != nil {
		return nil, &ValidationError{Param: field.Name, Msg: "malformed form body", Err: err}
	}
	return shapeFormData(mediaType, form, field), nil
}

// shapeFormData transforms ordered form entries into a value according to the
// declared media type and field shape.
func shapeFormData(mediaType signature.MediaType, form *connection.FormData, field signature.Field) any {
	values := make(map[string]any, form.Len())
	order := make([]string, 0, form.Len())
	for _, item := range form.Items() {
		value := item.Value
		// Clients may send JSON-encoded scalars or objects inside form
		// fields; a failed decode keeps the raw string.
		if s, ok := value.(string); ok {
			if decoded, err := decodeJSONValue(s); err == nil {
				value = decoded
			}
		}
		if _, seen := values[item.Key]; !seen {
			order = append(order, item.Key)
		}
		appendValue(values, item.Key, value)
	}

	if mediaType == signature.MediaTypeMultipart {
		if field.Shape == signature.ShapeList {
			out := make([]any, 0, len(order))
			for _, key := range order {
				out = append(out, values[key])
			}
			return out
		}
		if field.Shape == signature.ShapeSingleton && isUploadFileType(field.Type) && len(order) > 0 {
			return values[order[0]]
		}
	}
	return values
}

func decodeJSONValue(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func isUploadFileType(t reflect.Type) bool {
	return t == uploadFileType || t == uploadFilePtrType
}
