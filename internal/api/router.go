package api

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xylexgaming/xgi-website/internal/api/handlers"
	"github.com/xylexgaming/xgi-website/internal/api/middleware"
	"github.com/xylexgaming/xgi-website/internal/config"
	"github.com/xylexgaming/xgi-website/internal/repository"
	"github.com/xylexgaming/xgi-website/internal/service"
)

func NewRouter(services *service.Services, store repository.Store, assets fs.FS, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.FrontendURLs))
	r.Use(middleware.Session(services.Auth))

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(services.Catalog)
	playerHandler := handlers.NewPlayerHandler(services.Player)
	authHandler := handlers.NewAuthHandler(services.Auth, cfg.IsProduction())
	pageHandler := handlers.NewPageHandler(services.Catalog)
	healthHandler := handlers.NewHealthHandler(store)
	staticHandler := handlers.NewStaticHandler(assets)
	clientConfigHandler := handlers.NewClientConfigHandler(cfg.SearchDebounce)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Check)
		r.Get("/config", clientConfigHandler.Get)

		// Catalog routes (public, read-only)
		r.Get("/games", catalogHandler.Games)
		r.Get("/technology", catalogHandler.Technology)

		// Player / newsletter routes
		r.Post("/player", playerHandler.Register)
		r.Get("/players", playerHandler.List)
		r.Post("/newsletter", playerHandler.Subscribe)

		r.Get("/auth/providers", authHandler.Providers)

		r.NotFound(handlers.APINotFound)
	})

	// OAuth routes
	r.Route("/auth/{provider}", func(r chi.Router) {
		r.Get("/", authHandler.Begin)
		r.Get("/callback", authHandler.Callback)
	})
	r.Get("/profile", pageHandler.Profile)
	r.Get("/logout", authHandler.Logout)

	// Server-rendered game detail page
	r.Get("/games/{slug}", pageHandler.GameDetail)

	// Static assets and SPA fallback
	r.NotFound(staticHandler.ServeHTTP)
	r.MethodNotAllowed(staticHandler.ServeHTTP)

	return r
}
