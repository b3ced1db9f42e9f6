package resolvekit

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/resolvekit/connection"
	"github.com/dmitrymomot/resolvekit/kwargs"
	"github.com/dmitrymomot/resolvekit/pkg/requestid"
	"github.com/dmitrymomot/resolvekit/signature"
)

// errorBody is the JSON payload rendered for failed requests.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

// Classify maps a resolution error onto an HTTPError.
//
// Client-caused failures (missing required parameters, malformed bodies,
// oversized payloads, coercion failures) map to 4xx codes; everything else,
// including configuration faults like a data field on a GET route or a
// cyclic provider graph, is a 500.
func Classify(err error) HTTPError {
	var httpErr HTTPError
	var validationErr *kwargs.ValidationError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, connection.ErrBodyTooLarge):
		return ErrRequestEntityTooLarge
	case errors.Is(err, connection.ErrUnsupportedMediaType),
		errors.Is(err, connection.ErrMissingContentType):
		return ErrUnsupportedMediaType
	case errors.As(err, &validationErr):
		return ErrBadRequest
	case errors.Is(err, signature.ErrValidation):
		return ErrUnprocessableEntity
	default:
		return ErrInternalServerError
	}
}

// DefaultErrorHandler renders classified errors as JSON and logs them with
// the request ID for correlation. Server faults log at error level with the
// full cause; client faults log at debug level and never expose internals
// beyond the offending parameter.
func DefaultErrorHandler(log *slog.Logger) ErrorHandler {
	return func(ctx Context, err error) {
		r := ctx.Request()
		httpErr := Classify(err)

		attrs := []any{
			slog.String("request_id", requestid.FromContext(r.Context())),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		}
		if httpErr.Code >= http.StatusInternalServerError {
			log.ErrorContext(r.Context(), "request resolution failed", attrs...)
		} else {
			log.DebugContext(r.Context(), "request rejected", attrs...)
		}

		detail := errorDetail{
			Code:    httpErr.Key,
			Message: http.StatusText(httpErr.Code),
		}
		var validationErr *kwargs.ValidationError
		if errors.As(err, &validationErr) {
			detail.Message = validationErr.Error()
			detail.Param = validationErr.Param
		}

		renderErr := JSONStatus(httpErr.Code, errorBody{Error: detail}).Render(ctx.ResponseWriter(), r)
		if renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", slog.Any("error", renderErr))
		}
	}
}
