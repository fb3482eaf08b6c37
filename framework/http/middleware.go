// Package http connects dependency scopes to net/http: middleware that
// opens an override scope per request, compatible with chi and any
// stdlib-style middleware chain.
package http

import (
	"net/http"

	"github.com/km-arc/go-inject/framework/inject"
)

// Scope returns middleware that opens a dependency override scope for
// each request. The bindings apply to a copy of the store active on the
// request's context (the server's base store, typically), so handlers
// and everything they call observe the overrides while concurrent
// requests never share a store.
//
//	r.Use(injecthttp.Scope(keys.Clock.To(systemClock{})))
func Scope(bindings ...inject.Binding) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := inject.Bind(r.Context(), bindings...)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ScopeWith is Scope for overrides computed from the request itself
// (tenant, locale, feature flags). A nil or empty return still opens a
// scope, so handler-side writes stay request-local.
//
//	r.Use(injecthttp.ScopeWith(func(r *http.Request) []inject.Binding {
//	    return []inject.Binding{keys.Tenant.To(tenantFromHost(r.Host))}
//	}))
func ScopeWith(fn func(*http.Request) []inject.Binding) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := inject.Bind(r.Context(), fn(r)...)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
