package providers

import (
	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/inject"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider seeds dependency bindings into the root store during
// application bootstrap.
//
// Every provider must implement at minimum Register().
// Boot() is called after ALL providers have been registered, making it
// safe to read other dependencies inside Boot().
//
//	type AppServiceProvider struct{ providers.BaseProvider }
//
//	func (p *AppServiceProvider) Register(root *inject.Store) {
//	    keys.Mailer.SetFactory(root, func() Mailer {
//	        return mail.NewSMTP(providers.ConfigKey.CurrentIn(root).App)
//	    })
//	}
//
//	func (p *AppServiceProvider) Boot(root *inject.Store) {
//	    // safe to read any binding here
//	}
type ServiceProvider interface {
	// Register binds dependencies into the root store.
	// Do NOT read other bindings here — use Boot() for that.
	Register(root *inject.Store)

	// Boot is called after all providers are registered.
	// Safe to read and use any binding here.
	Boot(root *inject.Store)
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides a no-op Boot().
// Embed it in your provider and only override what you need.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *inject.Store) {}

// ── Registry ──────────────────────────────────────────────────────────────────

// Registry manages registration and booting of ServiceProviders against
// one root store.
type Registry struct {
	root       *inject.Store
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewRegistry creates a registry bound to root.
func NewRegistry(root *inject.Store) *Registry {
	return &Registry{
		root:       root,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method. Registering
// the same provider instance twice is a no-op.
func (r *Registry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	provider.Register(r.root)
	r.providers = append(r.providers, provider)

	// If already booted, boot this provider immediately
	if r.booted {
		provider.Boot(r.root)
	}
}

// Boot calls Boot() on all providers.
// Must be called after ALL providers have been registered.
func (r *Registry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.providers {
		provider.Boot(r.root)
	}
}

// Booted returns true if Boot() has been called.
func (r *Registry) Booted() bool { return r.booted }

// Providers returns all registered providers.
func (r *Registry) Providers() []ServiceProvider { return r.providers }

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigKey exposes the loaded application configuration as a
// dependency. Unseeded stores fall back to loading .env on first read.
var ConfigKey = inject.NewKey("config", func() *config.Config {
	return config.Load()
})

// ConfigServiceProvider binds the application configuration. When
// Config is pre-loaded (the kernel does this), it is bound as-is;
// otherwise .env is read lazily on first access.
type ConfigServiceProvider struct {
	BaseProvider
	Config   *config.Config
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(root *inject.Store) {
	if p.Config != nil {
		ConfigKey.Set(root, p.Config)
		return
	}
	envFiles := p.EnvFiles
	ConfigKey.SetFactory(root, func() *config.Config {
		return config.Load(envFiles...)
	})
}
