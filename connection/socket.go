package connection

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
)

// Socket is the persistent-session connection variant backed by a websocket.
// It exposes the upgrade handshake request's parameters but has no body to
// read: a handler declaring a data field on a socket route is improperly
// configured.
type Socket struct {
	scope

	conn       *websocket.Conn
	r          *http.Request
	pathParams map[string]string
}

var _ Connection = (*Socket)(nil)

// SocketOption configures a Socket.
type SocketOption func(*Socket)

// WithSocketPathParams overrides the router-provided path parameters.
func WithSocketPathParams(params map[string]string) SocketOption {
	return func(s *Socket) {
		s.pathParams = make(map[string]string, len(params))
		for k, v := range params {
			s.pathParams[k] = v
		}
	}
}

// NewSocket wraps an upgraded websocket connection together with its
// handshake request. Path parameters are lifted from the chi route context of
// the handshake request when present.
func NewSocket(conn *websocket.Conn, r *http.Request, opts ...SocketOption) *Socket {
	s := &Socket{
		conn:       conn,
		r:          r,
		pathParams: chiPathParams(r),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Context returns the handshake request's context.
func (s *Socket) Context() context.Context {
	return s.r.Context()
}

// Conn returns the underlying websocket connection.
func (s *Socket) Conn() *websocket.Conn {
	return s.conn
}

// PathParams returns the path parameters matched by the router.
func (s *Socket) PathParams() map[string]string {
	return s.pathParams
}

// RawQuery returns the handshake request's raw query string bytes.
func (s *Socket) RawQuery() []byte {
	return []byte(s.r.URL.RawQuery)
}

// Headers returns the handshake request headers.
func (s *Socket) Headers() http.Header {
	return s.r.Header
}

// Cookies returns the handshake request cookies.
func (s *Socket) Cookies() map[string]string {
	cookies := s.r.Cookies()
	out := make(map[string]string, len(cookies))
	for _, cookie := range cookies {
		out[cookie.Name] = cookie.Value
	}
	return out
}
