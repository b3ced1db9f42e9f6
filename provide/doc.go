// Package provide implements the dependency-injection registry consumed by
// the kwargs resolver: named factories with their own declared field sets.
//
// A provider's field names may reference other providers, never itself. The
// resolver walks this graph recursively, so a provider receives its own
// dependencies fully resolved and validated before its factory runs:
//
//	registry := provide.NewRegistry()
//	registry.MustRegister("tenant", provide.Func(
//		func(ctx context.Context, deps struct {
//			TenantID string `header:"X-Tenant-ID" required:"true"`
//		}) (*Tenant, error) {
//			return LookupTenant(ctx, deps.TenantID)
//		},
//	))
//	registry.MustRegister("repo", provide.Func(
//		func(ctx context.Context, deps struct {
//			Tenant *Tenant `param:"tenant"` // resolved by the provider above
//		}) (*Repository, error) {
//			return OpenRepository(ctx, deps.Tenant)
//		},
//	))
//
// Registry.Validate detects cyclic registrations at startup; the resolver
// additionally carries a visiting set at runtime, so even an unvalidated
// cycle fails fast with a configuration error instead of exhausting the
// stack.
package provide
