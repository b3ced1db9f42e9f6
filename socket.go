package resolvekit

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/resolvekit/connection"
	"github.com/dmitrymomot/resolvekit/kwargs"
	"github.com/dmitrymomot/resolvekit/signature"
)

// SocketHandlerFunc handles one websocket session with its resolved,
// typed handshake parameters. The session lasts until the handler returns.
type SocketHandlerFunc[R any] func(ctx context.Context, sock *connection.Socket, req R) error

const socketCloseTimeout = 5 * time.Second

// WrapSocket converts a typed SocketHandlerFunc to http.HandlerFunc that
// upgrades the connection and resolves the handler's signature against the
// handshake request. Handlers declaring a socket field receive the
// *connection.Socket; a data field on a socket route is a configuration
// error.
//
//	r.Get("/feed/{channel}", resolvekit.WrapSocket(feedHandler,
//		resolvekit.WithProviders(registry),
//	))
func WrapSocket[R any](h SocketHandlerFunc[R], opts ...Option) http.HandlerFunc {
	model := signature.MustFor[R]()
	cfg := newWrapConfig(opts...)
	if err := cfg.providers.Validate(); err != nil {
		panic(err)
	}
	resolver := kwargs.NewResolver(cfg.providers, kwargs.WithMaxDepth(cfg.limits.MaxProviderDepth))

	return func(w http.ResponseWriter, r *http.Request) {
		wsConn, err := cfg.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already wrote the handshake error response.
			cfg.logger.ErrorContext(r.Context(), "websocket upgrade failed", slog.Any("error", err))
			return
		}
		defer wsConn.Close()

		sock := connection.NewSocket(wsConn, r)
		if cfg.state != nil {
			sock.SetState(cfg.state)
		}
		if cfg.scope != nil {
			cfg.scope(r, sock)
		}

		kw, err := resolver.Resolve(r.Context(), model, sock)
		if err != nil {
			closeOnError(cfg, r, wsConn, err)
			return
		}
		req, err := model.Decode(kw)
		if err != nil {
			closeOnError(cfg, r, wsConn, err)
			return
		}

		if err := h(r.Context(), sock, req); err != nil {
			cfg.logger.ErrorContext(r.Context(), "websocket handler failed", slog.Any("error", err))
		}
	}
}

// closeOnError logs the resolution failure and closes the session with a
// close code matching the error class: client faults map to policy violation,
// server faults to internal error.
func closeOnError(cfg *wrapConfig, r *http.Request, wsConn *websocket.Conn, err error) {
	httpErr := Classify(err)
	closeCode := websocket.CloseInternalServerErr
	if httpErr.Code < http.StatusInternalServerError {
		closeCode = websocket.ClosePolicyViolation
	}
	if closeCode == websocket.CloseInternalServerErr {
		cfg.logger.ErrorContext(r.Context(), "websocket resolution failed", slog.Any("error", err))
	} else {
		cfg.logger.DebugContext(r.Context(), "websocket resolution rejected", slog.Any("error", err))
	}
	message := websocket.FormatCloseMessage(closeCode, httpErr.Key)
	_ = wsConn.WriteControl(websocket.CloseMessage, message, time.Now().Add(socketCloseTimeout))
}
