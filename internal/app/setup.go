// Package app contains the application setup for the storefront service.
package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cihad/fakestore/internal/cart"
	"github.com/cihad/fakestore/internal/catalog"
	"github.com/cihad/fakestore/internal/config"
	"github.com/cihad/fakestore/internal/kv"
	"github.com/cihad/fakestore/internal/transport/rest"
	"github.com/cihad/fakestore/pkg/server"

	"github.com/go-chi/chi/v5"
)

type Dependencies struct {
	Cart       *cart.Store
	Catalog    catalog.Catalog
	Production bool
	Logger     *slog.Logger
}

// SetupDependencies wires the cart store to its persistence bridge and seeds
// it from storage before any request is served.
func SetupDependencies(ctx context.Context, storage kv.Store, cat catalog.Catalog, cfg *config.Config, logger *slog.Logger) *Dependencies {
	cartStore := cart.NewStore()
	bridge := cart.NewBridge(storage, cfg.Cart.Key, logger)
	bridge.Load(ctx, cartStore)
	bridge.Attach(cartStore)

	return &Dependencies{
		Cart:       cartStore,
		Catalog:    cat,
		Production: cfg.App.Production(),
		Logger:     logger,
	}
}

// SetupHttpHandler initializes the router and routes for the storefront application.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the storefront application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.Cart, deps.Catalog, deps.Production, deps.Logger)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the storefront application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
