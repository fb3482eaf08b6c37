package app_test

import (
	"context"
	"testing"

	"github.com/km-arc/go-inject/framework/app"
	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/inject"
	"github.com/km-arc/go-inject/framework/providers"
)

func TestNew_ClassifiesFromEnvironment(t *testing.T) {
	t.Setenv("APP_PREVIEW", "")
	t.Setenv("APP_ENV", "testing")

	application := app.New()

	if !application.IsTesting() {
		t.Error("APP_ENV=testing: IsTesting() should be true")
	}
	if application.IsProduction() {
		t.Error("APP_ENV=testing: IsProduction() should be false")
	}
}

func TestNew_RootStoreUsesKernelClassification(t *testing.T) {
	t.Setenv("APP_PREVIEW", "")
	t.Setenv("APP_ENV", "testing")

	key := inject.NewKey("dsn", inject.Value("live-dsn"),
		inject.WithTestingDefault(inject.Value("memory-dsn")),
	)

	application := app.New()

	if got := key.CurrentIn(application.Root); got != "memory-dsn" {
		t.Errorf("root store default: got %q, want the testing default", got)
	}
}

func TestConfig_SeededIntoRootStore(t *testing.T) {
	t.Setenv("APP_NAME", "KernelTest")

	application := app.New()

	if got := application.Config().App.Name; got != "KernelTest" {
		t.Errorf("App.Name: got %q, want 'KernelTest'", got)
	}
}

func TestContext_AttachesRootStore(t *testing.T) {
	application := app.New()

	ctx := application.Context(context.Background())
	if inject.FromContext(ctx) != application.Root {
		t.Error("Context() should make the kernel's root store active")
	}
	if inject.FromContext(application.Context(nil)) != application.Root {
		t.Error("Context(nil) should fall back to a background context")
	}
}

func TestRegister_SeedsRootThroughProvider(t *testing.T) {
	key := inject.NewKey("cache", inject.Value("none"))

	application := app.New()
	application.Register(&providerFunc{fn: func(root *inject.Store) {
		key.Set(root, "redis")
	}})
	application.Boot()

	if got := key.CurrentIn(application.Root); got != "redis" {
		t.Errorf("cache: got %q, want 'redis'", got)
	}
}

func TestEnvironment_PreviewWins(t *testing.T) {
	t.Setenv("APP_ENV", "testing")
	t.Setenv("APP_PREVIEW", "1")

	application := app.New()

	if got := application.Environment(); got != config.Preview {
		t.Errorf("Environment(): got %s, want preview", got)
	}
	if !application.IsPreview() {
		t.Error("IsPreview() should be true")
	}
}

// providerFunc adapts a func to a ServiceProvider for tests. It is a
// struct rather than a func type so provider instances stay hashable
// for the registry's dedup map.
type providerFunc struct {
	fn func(root *inject.Store)
}

func (f *providerFunc) Register(root *inject.Store) { f.fn(root) }
func (f *providerFunc) Boot(_ *inject.Store)        {}

var _ providers.ServiceProvider = (*providerFunc)(nil)
