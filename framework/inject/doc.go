// Package inject provides typed dependency keys with environment-aware
// defaults and dynamically scoped overrides propagated through
// context.Context.
//
// # Overview
//
// Application code declares each dependency once, as a typed key that
// carries the value to use in production, under an automated test run,
// and in an interactive preview environment:
//
//	var Clock = inject.NewKey("clock", func() Clock { return systemClock{} },
//	    inject.WithTestingDefault(func() Clock { return frozenClock{} }),
//	)
//
// Reading the key resolves the value bound in the current scope; if
// nothing is bound yet, the default matching the environment
// classification is computed, cached, and returned:
//
//	now := Clock.Current(ctx).Now()
//
// # Scopes
//
// Overrides are dynamically scoped: they apply to one unit of work and
// everything it transitively calls or spawns, and to nothing else.
//
//	err := inject.With(ctx, func(ctx context.Context) error {
//	    // Clock.Current(ctx) yields frozenAt(t0) here and in every
//	    // function or goroutine this block hands ctx to.
//	    return runBackfill(ctx)
//	}, Clock.To(frozenAt(t0)))
//
// Entering a scope copies the active store, applies the overrides to
// the copy, and attaches the copy to the derived context. The parent's
// store is never touched, so sibling scopes and concurrent callers are
// fully isolated, and the prior scope is back in force the moment With
// returns — on the success path and the failure path alike.
//
// For scopes whose extent is not a single function call (an HTTP
// request, a message handler), Bind returns the derived context
// directly and the caller controls its lifetime:
//
//	ctx = inject.Bind(ctx, Tenant.To(tenantFromRequest(r)))
//
// # Stores
//
// A Store is one scope's mutable key → value mapping. Values may be
// bound eagerly with Set or lazily with SetFactory; a lazy binding is
// evaluated once, on its first read in whichever store copy holds it.
// All operations on a single store are safe for concurrent use, and
// Copy observes a consistent snapshot.
//
// # Environment classification
//
// Defaults are chosen by a Classification (production, testing, or
// preview) supplied by the store's classifier — by default the
// process-wide probe in framework/config, which reads APP_PREVIEW and
// APP_ENV with preview taking precedence over testing. Tests usually
// build a store with an explicit classifier instead of touching the
// environment.
//
// # Failure modes
//
// Resolution never fails: an unbound key always yields a computed
// default. The only fatal path is an erased store entry that no longer
// matches its key's declared type, which indicates memory corruption or
// unsafe store sharing and panics rather than returning a wrong value.
// Errors returned by the unit of work given to With are propagated to
// the caller unwrapped and unaltered.
package inject
