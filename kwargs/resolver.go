package kwargs

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/resolvekit/connection"
	"github.com/dmitrymomot/resolvekit/provide"
	"github.com/dmitrymomot/resolvekit/signature"
)

// DefaultMaxDepth caps provider recursion when no explicit limit is set.
const DefaultMaxDepth = 32

// Resolver resolves handler signatures against a connection and a provider
// registry, recursing through provider dependencies.
type Resolver struct {
	providers *provide.Registry
	maxDepth  int
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithMaxDepth caps provider recursion depth. The visiting-set cycle guard
// catches true cycles; the depth cap is a second stop for degenerate but
// acyclic graphs.
func WithMaxDepth(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// NewResolver creates a Resolver over the given provider registry. A nil
// registry resolves everything from the connection alone.
func NewResolver(providers *provide.Registry, opts ...ResolverOption) *Resolver {
	r := &Resolver{providers: providers, maxDepth: DefaultMaxDepth}
	if r.providers == nil {
		r.providers = provide.NewRegistry()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces the full kwargs mapping for the model's field set:
// provider-named fields are resolved recursively through the registry, the
// rest from the connection, with provider results taking precedence on name
// collisions. Provider calls run sequentially in field declaration order.
func (r *Resolver) Resolve(ctx context.Context, model signature.Model, conn connection.Connection) (map[string]any, error) {
	return r.resolve(ctx, model.Fields(), conn, make(map[string]struct{}))
}

func (r *Resolver) resolve(ctx context.Context, fields signature.FieldSet, conn connection.Connection, visiting map[string]struct{}) (map[string]any, error) {
	var depNames []string
	dependencies := make(map[string]any)
	for _, name := range fields.Names() {
		// Reserved names shadow providers: a provider registered as "data"
		// is never consulted.
		if sourceForName(name) != sourceNamed {
			continue
		}
		provider, ok := r.providers.Get(name)
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, busy := visiting[name]; busy {
			return nil, fmt.Errorf("%w: cyclic provider dependency at %q", ErrImproperlyConfigured, name)
		}
		if len(visiting) >= r.maxDepth {
			return nil, fmt.Errorf("%w: provider recursion exceeded %d levels at %q", ErrImproperlyConfigured, r.maxDepth, name)
		}

		visiting[name] = struct{}{}
		providerKwargs, err := r.resolve(ctx, provider.Fields(), conn, visiting)
		delete(visiting, name)
		if err != nil {
			return nil, err
		}

		validated, err := provider.Model().Construct(providerKwargs)
		if err != nil {
			return nil, err
		}
		value, err := provider.Call(ctx, validated)
		if err != nil {
			return nil, err
		}
		dependencies[name] = value
		depNames = append(depNames, name)
	}

	remaining := fields
	if len(depNames) > 0 {
		remaining = fields.Without(depNames...)
	}
	kw, err := Build(ctx, conn, remaining)
	if err != nil {
		return nil, err
	}
	for name, value := range dependencies {
		kw[name] = value
	}
	return kw, nil
}
