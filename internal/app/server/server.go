package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"compeval/internal/domain/auth"
	"compeval/internal/domain/catalog"
	"compeval/internal/domain/evaluation"
	"compeval/internal/domain/history"
	"compeval/internal/domain/reports"
	"compeval/internal/platform/config"
	"compeval/internal/platform/db"
	authhandler "compeval/internal/transport/http/handlers/auth"
	cataloghandler "compeval/internal/transport/http/handlers/catalog"
	evaluationshandler "compeval/internal/transport/http/handlers/evaluations"
	reportshandler "compeval/internal/transport/http/handlers/reports"
	"compeval/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	ledger := history.NewStore(pool)
	evaluationService := evaluation.NewService(evaluation.NewStore(pool, ledger))
	catalogStore := catalog.NewStore(pool)
	authService := auth.NewService(auth.NewStore(pool), cfg.JWTSecret)
	reportsService := reports.NewService(reports.NewStore(pool))
	idemStore := middleware.NewIdempotencyStore(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(1 << 20))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authService)
		authHandler.RegisterRoutes(r)

		catalogHandler := cataloghandler.NewHandler(catalogStore)
		catalogHandler.RegisterRoutes(r)

		evaluationsHandler := evaluationshandler.NewHandler(evaluationService, idemStore)
		evaluationsHandler.RegisterRoutes(r)

		reportsHandler := reportshandler.NewHandler(reportsService)
		reportsHandler.RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	log.Printf("compeval server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
