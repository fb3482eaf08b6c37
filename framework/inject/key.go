package inject

import (
	"context"
	"fmt"
	"reflect"

	"github.com/km-arc/go-inject/framework/config"
)

// ── Key ───────────────────────────────────────────────────────────────────────

// Key identifies one dependency of value type V and carries its
// environment defaults. Create keys with NewKey, once, at package
// level; the returned pointer is the key's identity, so two keys never
// collide even when they share a name or a value type.
type Key[V any] struct {
	name       string
	production func() V
	testing    func() V
	preview    func() V
}

// boundKey is the erased view of a key that stores operate on.
type boundKey interface {
	keyName() string
	defaultFor(env config.Classification) any
}

// KeyOption configures optional defaults on NewKey.
type KeyOption[V any] func(*Key[V])

// WithTestingDefault sets the value factory used when the environment
// classifies as an automated test run.
func WithTestingDefault[V any](factory func() V) KeyOption[V] {
	return func(k *Key[V]) {
		k.testing = factory
	}
}

// WithPreviewDefault sets the value factory used when the environment
// classifies as an interactive preview.
func WithPreviewDefault[V any](factory func() V) KeyOption[V] {
	return func(k *Key[V]) {
		k.preview = factory
	}
}

// NewKey defines a dependency. The production factory is required;
// testing and preview factories fall back to it when not supplied.
// Factories must return values that are safe to share across
// concurrent readers.
//
//	var DB = inject.NewKey("db", openLiveDB,
//	    inject.WithTestingDefault(openMemoryDB),
//	)
func NewKey[V any](name string, production func() V, opts ...KeyOption[V]) *Key[V] {
	if production == nil {
		panic(fmt.Sprintf("inject: key [%s] needs a production default", name))
	}
	if name == "" {
		name = typeName[V]()
	}
	k := &Key[V]{name: name, production: production}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(k)
	}
	if k.testing == nil {
		k.testing = k.production
	}
	if k.preview == nil {
		k.preview = k.production
	}
	return k
}

// Value adapts a fixed value to the factory form NewKey expects.
//
//	var Retries = inject.NewKey("retries", inject.Value(3))
func Value[V any](v V) func() V {
	return func() V { return v }
}

// Name returns the key's diagnostic name.
func (k *Key[V]) Name() string { return k.name }

func (k *Key[V]) keyName() string { return k.name }

func (k *Key[V]) defaultFor(env config.Classification) any {
	switch env {
	case config.Preview:
		return k.preview()
	case config.Testing:
		return k.testing()
	default:
		return k.production()
	}
}

// ── Reading ───────────────────────────────────────────────────────────────────

// Current returns the value bound to k in ctx's active scope, seeding
// the environment default on first read. It never fails; a mismatched
// store entry panics (see recover).
func (k *Key[V]) Current(ctx context.Context) V {
	return k.CurrentIn(FromContext(ctx))
}

// CurrentIn reads k from a specific store, resolving and caching the
// environment default if the key is unbound.
func (k *Key[V]) CurrentIn(s *Store) V {
	return k.recover(s.resolve(k))
}

// Peek returns the value cached for k in ctx's active scope without
// resolving a default. The second return reports whether k was bound.
func (k *Key[V]) Peek(ctx context.Context) (V, bool) {
	raw, ok := FromContext(ctx).get(k)
	if !ok {
		var zero V
		return zero, false
	}
	return k.recover(raw), true
}

// recover type-checks an erased store entry back to V. A mismatch means
// the entry was bound under some other key's identity — a bug, never a
// recoverable condition — so it fails loudly instead of returning a
// wrong value.
func (k *Key[V]) recover(raw any) V {
	if raw == nil {
		var zero V
		return zero
	}
	typed, ok := raw.(V)
	if !ok {
		panic(fmt.Sprintf("inject: key [%s] holds %T, want %s", k.name, raw, typeName[V]()))
	}
	return typed
}

// ── Binding ───────────────────────────────────────────────────────────────────

// Set binds value for k in s, replacing any cached value.
func (k *Key[V]) Set(s *Store, value V) {
	s.put(k, value)
}

// SetFactory binds a lazy value for k in s. The factory runs on the
// first read, in whichever store copy the binding lands, and its result
// is cached there.
func (k *Key[V]) SetFactory(s *Store, factory func() V) {
	if factory == nil {
		panic(fmt.Sprintf("inject: key [%s] bound to nil factory", k.name))
	}
	s.putFactory(k, func() any { return factory() })
}

// To returns a Binding that sets value for k on scope entry.
//
//	inject.With(ctx, fn, Clock.To(frozen), Logger.To(capture))
func (k *Key[V]) To(value V) Binding {
	return Binding{apply: func(s *Store) { k.Set(s, value) }}
}

// ToFactory returns a Binding that lazily binds k on scope entry.
func (k *Key[V]) ToFactory(factory func() V) Binding {
	return Binding{apply: func(s *Store) { k.SetFactory(s, factory) }}
}

// typeName reports V's type for diagnostics.
func typeName[V any]() string {
	return reflect.TypeOf((*V)(nil)).Elem().String()
}
