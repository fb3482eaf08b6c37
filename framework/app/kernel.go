package app

import (
	"context"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/inject"
	"github.com/km-arc/go-inject/framework/providers"
)

// Application is the top-level kernel. It owns the root dependency
// store and the provider registry, so user code can call app.Register()
// and app.Boot() directly during bootstrap.
type Application struct {
	Root      *inject.Store
	Providers *providers.Registry
}

// New creates and bootstraps the application: .env is loaded, the
// environment is classified once for the process lifetime, and the
// framework providers are registered.
func New(envFiles ...string) *Application {
	cfg := config.Load(envFiles...)
	root := inject.NewStore(cfg.Classification)

	app := &Application{
		Root:      root,
		Providers: providers.NewRegistry(root),
	}

	app.Providers.Register(&providers.ConfigServiceProvider{Config: cfg})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider providers.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Context returns ctx with the application's root store attached, for
// use as a server BaseContext or a worker's parent context. Scopes
// entered below it copy the root store, never mutate it.
func (a *Application) Context(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return inject.Attach(ctx, a.Root)
}

// Config reads the loaded configuration from the root store.
func (a *Application) Config() *config.Config {
	return providers.ConfigKey.CurrentIn(a.Root)
}

// Environment returns APP_ENV's classification for this process.
func (a *Application) Environment() config.Classification {
	return a.Config().Classification()
}

func (a *Application) IsProduction() bool { return a.Environment() == config.Production }
func (a *Application) IsTesting() bool    { return a.Environment() == config.Testing }
func (a *Application) IsPreview() bool    { return a.Environment() == config.Preview }
func (a *Application) IsDebug() bool      { return a.Config().App.Debug }
func (a *Application) Version() string    { return "0.1.0" }
