package provide

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/resolvekit/signature"
)

// Factory creates a dependency value from its validated keyword arguments.
// Factories may perform I/O; cancellation is observed through ctx.
type Factory func(ctx context.Context, kwargs map[string]any) (any, error)

// Provider is a named dependency factory with its own declared field set.
// A provider's field names may reference other providers, forming a graph the
// resolver walks recursively.
type Provider struct {
	model signature.Model
	call  Factory
}

// New builds a Provider from a signature model and a factory. Panics on nil
// arguments: providers are registered at application startup and a nil here
// is always a programming error.
func New(model signature.Model, fn Factory) *Provider {
	if model == nil {
		panic("provide: nil signature model")
	}
	if fn == nil {
		panic("provide: nil factory")
	}
	return &Provider{model: model, call: fn}
}

// Func builds a Provider from a typed dependency struct, deriving the field
// set from D's tags the same way handler signatures are derived.
//
// Example:
//
//	registry.MustRegister("repo", provide.Func(
//		func(ctx context.Context, deps struct {
//			Tenant string `header:"X-Tenant-ID" required:"true"`
//		}) (*Repository, error) {
//			return OpenRepository(ctx, deps.Tenant)
//		},
//	))
func Func[D any, T any](fn func(ctx context.Context, deps D) (T, error)) *Provider {
	model := signature.MustFor[D]()
	return New(model, func(ctx context.Context, kwargs map[string]any) (any, error) {
		deps, err := model.Decode(kwargs)
		if err != nil {
			return nil, err
		}
		return fn(ctx, deps)
	})
}

// Value builds a Provider that always yields v, with an empty field set.
func Value(v any) *Provider {
	return New(signature.MustFor[struct{}](), func(context.Context, map[string]any) (any, error) {
		return v, nil
	})
}

// Model returns the provider's signature model.
func (p *Provider) Model() signature.Model {
	return p.model
}

// Fields returns the provider's declared field set.
func (p *Provider) Fields() signature.FieldSet {
	return p.model.Fields()
}

// Call validates nothing by itself: the resolver passes kwargs through the
// provider's model first. It invokes the factory and returns its value.
func (p *Provider) Call(ctx context.Context, kwargs map[string]any) (any, error) {
	v, err := p.call(ctx, kwargs)
	if err != nil {
		return nil, fmt.Errorf("provider factory: %w", err)
	}
	return v, nil
}
