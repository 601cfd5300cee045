// Package app wires the storefront: product API, locale redirects and about pages.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/storefront/internal/config"
	"github.com/abgdnv/storefront/internal/locale"
	"github.com/abgdnv/storefront/internal/pages"
	"github.com/abgdnv/storefront/internal/platform/web"
	"github.com/abgdnv/storefront/internal/product/handler"
	"github.com/abgdnv/storefront/internal/product/service"
	"github.com/abgdnv/storefront/internal/product/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Dependencies struct {
	ProductService service.ProductService
	Locale         *locale.Resolver
	LocaleOptions  locale.Options
	About          *pages.About
	// RateLimiter is nil when rate limiting is disabled.
	RateLimiter *web.RateLimiter
	Logger      *slog.Logger
}

// SetupDependencies builds the product store, services and locale components from cfg.
func SetupDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	var seed []store.Product
	if cfg.Catalog.Seed {
		seed = store.SampleCatalog()
	}
	pService := service.NewService(store.NewInMemoryStore(seed...), logger)

	resolver, err := locale.NewResolver(cfg.Locale.Supported, cfg.Locale.Default, cfg.Locale.Cookie.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create locale resolver: %w", err)
	}

	about, err := pages.NewAbout(cfg.Locale.Supported, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load about pages: %w", err)
	}

	var limiter *web.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = web.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	return &Dependencies{
		ProductService: pService,
		Locale:         resolver,
		LocaleOptions: locale.Options{
			Paths:        cfg.Locale.Paths,
			CookieMaxAge: cfg.Locale.Cookie.MaxAge,
		},
		About:       about,
		RateLimiter: limiter,
		Logger:      logger,
	}, nil
}

// SetupHttpHandler initializes the routes and middleware of the storefront.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {

	pApi := handler.NewAPI(deps.ProductService, deps.Logger)

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(web.RequestIDInjector)
	mux.Use(web.StructuredLogger(deps.Logger))
	mux.Use(web.Recoverer(deps.Logger))
	mux.Use(locale.Middleware(deps.Locale, deps.LocaleOptions, deps.Logger))

	mux.Route("/products", func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware(deps.Logger))
		}
		r.Get("/", pApi.List)
		r.Post("/", pApi.Create)
		r.Put("/", pApi.Update)
		r.Delete("/", pApi.DeleteByID)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", pApi.FindByID)
			r.Put("/", pApi.Update)
			r.Delete("/", pApi.DeleteByID)
		})
	})

	mux.Get("/{lang}/about", deps.About.ServeHTTP)
	mux.Get("/{lang}/about/", deps.About.ServeHTTP)

	mux.Get("/healthz", pApi.HealthCheck)

	return mux
}

// SetupHttpServer creates and configures an HTTP server for the storefront.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPServer.Port),
		Handler:           mux,
		ReadTimeout:       cfg.HTTPServer.Timeout.Read,
		WriteTimeout:      cfg.HTTPServer.Timeout.Write,
		IdleTimeout:       cfg.HTTPServer.Timeout.Idle,
		ReadHeaderTimeout: cfg.HTTPServer.Timeout.ReadHeader,
		MaxHeaderBytes:    cfg.HTTPServer.MaxHeaderBytes,
	}
	return server
}
