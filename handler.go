package resolvekit

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/resolvekit/connection"
	"github.com/dmitrymomot/resolvekit/kwargs"
	"github.com/dmitrymomot/resolvekit/pkg/config"
	"github.com/dmitrymomot/resolvekit/pkg/logger"
	"github.com/dmitrymomot/resolvekit/provide"
	"github.com/dmitrymomot/resolvekit/signature"
)

// HandlerFunc provides type-safe request handling: R is the handler's
// signature, a struct whose fields declare where each value comes from.
//
// Example:
//
//	handler := resolvekit.HandlerFunc[UpdatePostRequest](
//		func(ctx resolvekit.Context, req UpdatePostRequest) resolvekit.Response {
//			post := updatePost(req.PostID, req.Data)
//			return resolvekit.JSON(post)
//		},
//	)
type HandlerFunc[R any] func(ctx Context, req R) Response

// ErrorHandler handles errors from resolution, decoding or rendering.
type ErrorHandler func(ctx Context, err error)

// Limits bounds per-request resource usage. Loadable from the environment
// through WithEnvLimits.
type Limits struct {
	MaxBodyBytes     int64 `env:"RESOLVEKIT_MAX_BODY_BYTES" envDefault:"4194304"`
	MaxProviderDepth int   `env:"RESOLVEKIT_MAX_PROVIDER_DEPTH" envDefault:"32"`
}

func defaultLimits() Limits {
	return Limits{
		MaxBodyBytes:     connection.DefaultMaxBodyBytes,
		MaxProviderDepth: kwargs.DefaultMaxDepth,
	}
}

// wrapConfig holds configuration shared by Wrap and WrapSocket.
type wrapConfig struct {
	providers    *provide.Registry
	state        *connection.State
	scope        func(r *http.Request, s connection.Scope)
	errorHandler ErrorHandler
	logger       *slog.Logger
	limits       Limits
	requestOpts  []connection.RequestOption
	upgrader     *websocket.Upgrader
}

// Option configures Wrap and WrapSocket.
type Option func(*wrapConfig)

// WithProviders sets the provider registry visible to the handler.
func WithProviders(registry *provide.Registry) Option {
	return func(c *wrapConfig) {
		if registry != nil {
			c.providers = registry
		}
	}
}

// WithState sets the application-wide shared state container. Handlers
// declaring a state field receive a snapshot of it.
func WithState(state *connection.State) Option {
	return func(c *wrapConfig) {
		c.state = state
	}
}

// WithScopeFunc registers a hook that populates the connection scope (user,
// auth) before resolution runs. This is where auth middleware hands over its
// results.
//
// Example:
//
//	resolvekit.WithScopeFunc(func(r *http.Request, s connection.Scope) {
//		if user, ok := auth.UserFromContext(r.Context()); ok {
//			s.SetUser(user)
//		}
//	})
func WithScopeFunc(fn func(r *http.Request, s connection.Scope)) Option {
	return func(c *wrapConfig) {
		if fn != nil {
			c.scope = fn
		}
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *wrapConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithLogger sets the logger used by the default error handler.
func WithLogger(log *slog.Logger) Option {
	return func(c *wrapConfig) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithLimits sets explicit per-request limits.
func WithLimits(limits Limits) Option {
	return func(c *wrapConfig) {
		c.limits = limits
	}
}

// WithEnvLimits loads per-request limits from the environment
// (RESOLVEKIT_MAX_BODY_BYTES, RESOLVEKIT_MAX_PROVIDER_DEPTH). Panics when the
// environment cannot be parsed: limits are read at route-registration time
// and a broken environment should prevent startup.
func WithEnvLimits() Option {
	return func(c *wrapConfig) {
		config.MustLoad(&c.limits)
	}
}

// WithRequestOptions forwards options to connection.NewRequest, e.g.
// connection.WithPathParams for routers other than chi.
func WithRequestOptions(opts ...connection.RequestOption) Option {
	return func(c *wrapConfig) {
		c.requestOpts = append(c.requestOpts, opts...)
	}
}

// WithUpgrader sets the websocket upgrader used by WrapSocket.
func WithUpgrader(u *websocket.Upgrader) Option {
	return func(c *wrapConfig) {
		if u != nil {
			c.upgrader = u
		}
	}
}

func newWrapConfig(opts ...Option) *wrapConfig {
	cfg := &wrapConfig{
		providers: provide.NewRegistry(),
		limits:    defaultLimits(),
		upgrader:  &websocket.Upgrader{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.New()
	}
	if cfg.errorHandler == nil {
		cfg.errorHandler = DefaultErrorHandler(cfg.logger)
	}
	return cfg
}

// Wrap converts a typed HandlerFunc to http.HandlerFunc. The handler's
// signature is derived once here, and the provider graph is validated for
// cycles, so configuration mistakes fail at route registration instead of on
// the first request.
//
//	r := chi.NewRouter()
//	r.Put("/posts/{post_id}", resolvekit.Wrap(handler,
//		resolvekit.WithProviders(registry),
//		resolvekit.WithState(appState),
//	))
func Wrap[R any](h HandlerFunc[R], opts ...Option) http.HandlerFunc {
	model := signature.MustFor[R]()
	cfg := newWrapConfig(opts...)
	if err := cfg.providers.Validate(); err != nil {
		panic(err)
	}
	resolver := kwargs.NewResolver(cfg.providers, kwargs.WithMaxDepth(cfg.limits.MaxProviderDepth))
	requestOpts := append([]connection.RequestOption{
		connection.WithMaxBodyBytes(cfg.limits.MaxBodyBytes),
	}, cfg.requestOpts...)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)
		conn := connection.NewRequest(r, requestOpts...)
		if cfg.state != nil {
			conn.SetState(cfg.state)
		}
		if cfg.scope != nil {
			cfg.scope(r, conn)
		}

		kw, err := resolver.Resolve(r.Context(), model, conn)
		if err != nil {
			cfg.errorHandler(ctx, err)
			return
		}
		req, err := model.Decode(kw)
		if err != nil {
			cfg.errorHandler(ctx, err)
			return
		}

		response := h(ctx, req)
		if response == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := response.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}
