package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-inject/framework/app"
	injecthttp "github.com/km-arc/go-inject/framework/http"
	"github.com/km-arc/go-inject/framework/inject"
)

// ── Dependencies ─────────────────────────────────────────────────────────────

// Greeter is the demo's injectable service.
type Greeter interface {
	Greet(name string) string
}

type liveGreeter struct{}

func (liveGreeter) Greet(name string) string { return "Hello, " + name + "!" }

type previewGreeter struct{}

func (previewGreeter) Greet(name string) string { return "[preview] Hello, " + name + "!" }

var greeterKey = inject.NewKey("greeter", func() Greeter { return liveGreeter{} },
	inject.WithPreviewDefault(func() Greeter { return previewGreeter{} }),
)

func main() {
	application := app.New() // loads .env automatically
	application.Boot()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Per-request override scope: preview callers get the preview greeter
	// without affecting any concurrent request.
	r.Use(injecthttp.ScopeWith(func(req *http.Request) []inject.Binding {
		if req.Header.Get("X-Preview") != "" {
			return []inject.Binding{greeterKey.To(previewGreeter{})}
		}
		return nil
	}))

	r.Get("/greet/{name}", func(w http.ResponseWriter, req *http.Request) {
		greeter := greeterKey.Current(req.Context())
		fmt.Fprintln(w, greeter.Greet(chi.URLParam(req, "name")))
	})

	cfg := application.Config()
	addr := ":" + cfg.App.Port
	fmt.Printf("🚀  %s running on http://localhost%s  [%s]\n",
		cfg.App.Name, addr, application.Environment())

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(net.Listener) context.Context {
			return application.Context(context.Background())
		},
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
