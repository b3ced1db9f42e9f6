package connection

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
)

// DefaultMaxBodyBytes caps how much of a request body is read into memory.
const DefaultMaxBodyBytes int64 = 4 << 20 // 4 MiB

// Request is the HTTP connection variant. It supports body reads and caches
// the parsed body so repeated access within one request never re-reads the
// stream.
type Request struct {
	scope

	r            *http.Request
	pathParams   map[string]string
	maxBodyBytes int64

	// mu guards the lazily-cached body reads below. Each slot is written at
	// most once and only on success, so a cancelled read never leaves a
	// partially-written cache behind.
	mu         sync.Mutex
	body       []byte
	bodyRead   bool
	json       any
	jsonParsed bool
	form       *FormData
	formParsed bool
}

var _ Connection = (*Request)(nil)

// RequestOption configures a Request.
type RequestOption func(*Request)

// WithPathParams overrides the router-provided path parameters.
func WithPathParams(params map[string]string) RequestOption {
	return func(c *Request) {
		c.pathParams = make(map[string]string, len(params))
		for k, v := range params {
			c.pathParams[k] = v
		}
	}
}

// WithMaxBodyBytes caps the request body size read into memory.
func WithMaxBodyBytes(n int64) RequestOption {
	return func(c *Request) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// NewRequest wraps an *http.Request as a resolvable connection. Path
// parameters are lifted from the chi route context when the request was
// dispatched through a chi router; use WithPathParams with other routers.
func NewRequest(r *http.Request, opts ...RequestOption) *Request {
	c := &Request{
		r:            r,
		pathParams:   chiPathParams(r),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func chiPathParams(r *http.Request) map[string]string {
	params := map[string]string{}
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return params
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "*" {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}

// Context returns the request-scoped context.
func (c *Request) Context() context.Context {
	return c.r.Context()
}

// Unwrap returns the underlying *http.Request.
func (c *Request) Unwrap() *http.Request {
	return c.r
}

// Method returns the HTTP request method.
func (c *Request) Method() string {
	return c.r.Method
}

// PathParams returns the path parameters matched by the router.
func (c *Request) PathParams() map[string]string {
	return c.pathParams
}

// RawQuery returns the raw percent-encoded query string bytes.
func (c *Request) RawQuery() []byte {
	return []byte(c.r.URL.RawQuery)
}

// Headers returns the request headers.
func (c *Request) Headers() http.Header {
	return c.r.Header
}

// Cookies returns the request cookies as a name to value mapping.
func (c *Request) Cookies() map[string]string {
	cookies := c.r.Cookies()
	out := make(map[string]string, len(cookies))
	for _, cookie := range cookies {
		out[cookie.Name] = cookie.Value
	}
	return out
}

// Body reads the full request body once and caches it.
func (c *Request) Body() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readBody()
}

// readBody must be called with mu held.
func (c *Request) readBody() ([]byte, error) {
	if c.bodyRead {
		return c.body, nil
	}
	if c.r.Body == nil {
		c.body = []byte{}
		c.bodyRead = true
		return c.body, nil
	}
	body, err := io.ReadAll(io.LimitReader(c.r.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrBodyTooLarge, c.maxBodyBytes)
	}
	c.body = body
	c.bodyRead = true
	return c.body, nil
}

// JSON reads the body and parses it as JSON exactly once per request.
func (c *Request) JSON() (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.jsonParsed {
		return c.json, nil
	}
	body, err := c.readBody()
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	c.json = v
	c.jsonParsed = true
	return c.json, nil
}

// Form reads the body and parses it as a multi-valued form payload exactly
// once per request, preserving wire order of the entries. Supports
// multipart/form-data and application/x-www-form-urlencoded.
func (c *Request) Form() (*FormData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.formParsed {
		return c.form, nil
	}

	contentType := c.r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected a form encoding", ErrMissingContentType)
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}

	body, err := c.readBody()
	if err != nil {
		return nil, err
	}

	var form *FormData
	switch mediaType {
	case "multipart/form-data":
		form, err = parseMultipart(body, params["boundary"])
	case "application/x-www-form-urlencoded":
		form, err = parseURLEncoded(body)
	default:
		return nil, fmt.Errorf("%w: got %s, expected multipart/form-data or application/x-www-form-urlencoded", ErrUnsupportedMediaType, mediaType)
	}
	if err != nil {
		return nil, err
	}
	c.form = form
	c.formParsed = true
	return c.form, nil
}
