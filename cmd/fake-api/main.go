// Package main запускает fake-api — read-only каталог сервисов с
// эндпоинтами /health и /status, сообщающими текущее окружение.
//
// Источник каталога читается один раз при старте, по приоритету:
//   - PostgreSQL (-db-url или CATALOG_DB_URL)
//   - YAML-файл (-catalog-file)
//   - встроенный seed
//
// Окружение берётся из APP_ENV (по умолчанию "dev"); перед чтением
// переменных загружается .env, если он есть.
//
// Запуск:
//
//	APP_ENV=staging go run ./cmd/fake-api -addr :8080
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/r2r72/fake-api/cmd/fake-api/handlers"
	"github.com/r2r72/fake-api/internal/config"
	"github.com/r2r72/fake-api/internal/repository/file"
	"github.com/r2r72/fake-api/internal/repository/pg"
	"github.com/r2r72/fake-api/internal/service/catalog"
)

// Config — параметры запуска сервиса.
type Config struct {
	Addr            string
	EnvFile         string
	CatalogFile     string
	DBURL           string
	ShutdownTimeout time.Duration
	Environment     string // APP_ENV, уже с дефолтом
}

// 🔑 Compile-time check: все источники каталога реализуют catalog.Source
var (
	_ catalog.Source = (*pg.CatalogSource)(nil)
	_ catalog.Source = (*file.CatalogFile)(nil)
	_ catalog.Source = catalog.SeedSource{}
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], logger); err != nil {
		logger.Error("❌ fake-api failed", "err", err)
		os.Exit(1)
	}
	logger.Info("✅ fake-api stopped")
}

func run(ctx context.Context, args []string, logger *slog.Logger) error {
	// === Конфигурация ===
	cfg, err := parseConfig(args, os.LookupEnv)
	if err != nil {
		return err
	}

	// === Каталог ===
	cat, err := openCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// === HTTP-сервер ===
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	srv := &http.Server{
		Handler: handlers.New(handlers.Deps{
			Catalog:     cat,
			Environment: cfg.Environment,
			Logger:      logger,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logger.Info("🚀 fake-api started", "addr", ln.Addr().String(), "environment", cfg.Environment, "services", cat.Len())
	return serve(ctx, srv, ln, cfg.ShutdownTimeout, logger)
}

// parseConfig: флаги → .env → переменные окружения.
// Явно заданный флаг важнее переменной окружения.
func parseConfig(args []string, lookup config.LookupFunc) (Config, error) {
	cfg := Config{}
	fs := flag.NewFlagSet("fake-api", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", ":8080", "HTTP listen address (PORT overrides the default)")
	fs.StringVar(&cfg.EnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	fs.StringVar(&cfg.CatalogFile, "catalog-file", "", "YAML catalog file")
	fs.StringVar(&cfg.DBURL, "db-url", "", "PostgreSQL DSN to read the catalog from (or CATALOG_DB_URL)")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", 30*time.Second, "graceful shutdown timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := config.LoadDotEnv(cfg.EnvFile); err != nil {
		return Config{}, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["addr"] {
		if port := config.Get(lookup, "PORT", ""); port != "" {
			cfg.Addr = ":" + port
		}
	}
	if !set["db-url"] {
		cfg.DBURL = config.Get(lookup, "CATALOG_DB_URL", "")
	}
	cfg.Environment = config.ResolveEnvironment(lookup)

	return cfg, nil
}

// openCatalog выбирает источник и читает каталог один раз.
// Подключение к БД закрывается внутри Load, до старта сервера.
func openCatalog(ctx context.Context, cfg Config, logger *slog.Logger) (*catalog.Catalog, error) {
	var src catalog.Source
	switch {
	case cfg.DBURL != "":
		src = pg.NewCatalogSource(cfg.DBURL)
		logger.Info("📚 loading catalog from postgres")
	case cfg.CatalogFile != "":
		src = file.NewCatalogFile(cfg.CatalogFile)
		logger.Info("📚 loading catalog from file", "path", cfg.CatalogFile)
	default:
		src = catalog.SeedSource{}
	}
	return catalog.Open(ctx, src)
}

// serve обслуживает ln, пока не отменён ctx, затем делает graceful shutdown.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	// === Graceful shutdown ===
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("⏳ shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
