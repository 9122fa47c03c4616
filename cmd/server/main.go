package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wellness-triage/internal/config"
	"wellness-triage/internal/logging"
	"wellness-triage/internal/platform/textgen"
	"wellness-triage/internal/report"
	"wellness-triage/internal/store/memory"
	"wellness-triage/internal/store/postgres"
	"wellness-triage/internal/store/sqlitekv"
	"wellness-triage/internal/triage"
)

func main() {
	_ = godotenv.Load()
	logging.Init()
	cfg := config.Load()

	// 1. Persistence collaborator
	var store triage.KVStore
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db := openPostgres(cfg)
		if db != nil {
			runMigrations(cfg)
			store = postgres.New(db)
		}
	case config.StoreSQLite:
		s, err := sqlitekv.Open(cfg.SQLitePath)
		if err != nil {
			slog.Error("failed to open sqlite store", "path", cfg.SQLitePath, "error", err)
		} else {
			store = s
		}
	}
	if store == nil {
		// The user always gets a response, even without durable storage.
		slog.Warn("falling back to in-memory store; state will not survive restarts")
		store = memory.New()
	}

	// 2. Engine
	lexicon := triage.DefaultLexicon()
	if cfg.LexiconPath != "" {
		if err := lexicon.LoadOverlay(cfg.LexiconPath); err != nil {
			slog.Error("failed to load lexicon overlay", "path", cfg.LexiconPath, "error", err)
			os.Exit(1)
		}
		slog.Info("lexicon overlay loaded", "path", cfg.LexiconPath)
	}
	engine, err := triage.NewEngine(lexicon)
	if err != nil {
		slog.Error("failed to build triage engine", "error", err)
		os.Exit(1)
	}

	// 3. Services
	var gen triage.TextGenerator
	if cfg.TextgenURL != "" {
		gen = textgen.NewClient(cfg.TextgenURL)
	}
	repo := triage.NewRepository(store)
	svc := triage.NewService(engine, repo, gen)
	handler := triage.NewHandler(svc, report.NewService())

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for the companion app frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		triage.RegisterRoutes(r, handler)
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Ping(r.Context()); err != nil {
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	slog.Info("server starting", "port", cfg.Port, "store", string(cfg.StoreBackend))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func openPostgres(cfg *config.Config) *sql.DB {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			err = db.PingContext(ctx)
			cancel()
		}
		if err == nil {
			slog.Info("connected to database")
			return db
		}
		slog.Info("waiting for database", "attempt", i+1)
		time.Sleep(time.Second)
	}
	slog.Warn("could not connect to database", "error", err)
	return nil
}

func runMigrations(cfg *config.Config) {
	m, err := migrate.New(cfg.MigrationsPath, cfg.DatabaseURL)
	if err != nil {
		slog.Warn("migration init failed", "error", err)
		return
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		slog.Warn("migration up failed", "error", err)
		return
	}
	slog.Info("migrations applied")
}
