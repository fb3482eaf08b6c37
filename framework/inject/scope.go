package inject

import (
	"context"
	"sync"
)

// ── Active scope ──────────────────────────────────────────────────────────────

type scopeCtxKey struct{}

var (
	rootOnce sync.Once
	root     *Store
)

// Root returns the process-wide root store, the one active for any
// context that carries no scope.
func Root() *Store {
	rootOnce.Do(func() {
		root = NewStore(nil)
	})
	return root
}

// FromContext returns the store active for ctx: the innermost scope
// entered via Bind or With, or the root store when none is.
func FromContext(ctx context.Context) *Store {
	if ctx != nil {
		if s, ok := ctx.Value(scopeCtxKey{}).(*Store); ok {
			return s
		}
	}
	return Root()
}

// Attach returns a context whose active store is s itself, without
// copying. Use it to install a bootstrap store as the base of a
// context tree (a server's BaseContext, a worker's parent context);
// Bind and With still copy before mutating, so s is the scope's base,
// never its victim.
func Attach(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, scopeCtxKey{}, s)
}

// ── Bindings ──────────────────────────────────────────────────────────────────

// Binding is one override applied to a store copy on scope entry.
// Build bindings with Key.To, Key.ToFactory, or Mutator.
type Binding struct {
	apply func(*Store)
}

// Mutator folds an arbitrary store edit into a Binding, for overrides
// that touch several keys or need the store itself.
func Mutator(fn func(*Store)) Binding {
	return Binding{apply: fn}
}

// ── Scope entry ───────────────────────────────────────────────────────────────

// Bind enters a scope whose extent the caller controls: it copies ctx's
// active store, applies the bindings to the copy, and returns a context
// carrying the copy. The parent's store is untouched, so the override
// is visible exactly to code reached through the returned context and
// expires when that context goes out of use.
func Bind(ctx context.Context, bindings ...Binding) context.Context {
	next := FromContext(ctx).Copy()
	for _, b := range bindings {
		if b.apply == nil {
			continue
		}
		b.apply(next)
	}
	return Attach(ctx, next)
}

// With runs fn under a scope that applies the given bindings. The
// overrides are observed by everything fn calls or spawns with its
// context — including work that suspends and resumes on other
// goroutines — and by nothing outside fn. The prior scope is back in
// force once With returns, on success, error, and panic paths alike;
// fn's error is returned to the caller unwrapped and unaltered.
func With(ctx context.Context, fn func(context.Context) error, bindings ...Binding) error {
	return fn(Bind(ctx, bindings...))
}

// WithResult is With for units of work that produce a value.
func WithResult[T any](ctx context.Context, fn func(context.Context) (T, error), bindings ...Binding) (T, error) {
	return fn(Bind(ctx, bindings...))
}
