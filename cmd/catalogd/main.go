// catalogd is a development backend for catalogedit. It serves the product
// API from a local SQLite database.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jask/catalogedit/internal/catalogd"
	"github.com/jask/catalogedit/internal/config"
	"github.com/jask/catalogedit/internal/database"
	"github.com/jask/catalogedit/internal/database/repository"
	"github.com/jask/catalogedit/internal/logging"
	"github.com/jask/catalogedit/internal/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var configPath, addr, dbPath, seedVendor, importPath, importVendor string
	var reset bool

	flagSet := pflag.NewFlagSet("catalogd", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to config.toml")
	flagSet.StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	flagSet.StringVar(&dbPath, "db", "", "SQLite database path (overrides server.database_path)")
	flagSet.StringVar(&seedVendor, "seed", "", "seed an empty database with sample products owned by this vendor")
	flagSet.StringVar(&importPath, "import", "", "import products from a CSV file before serving")
	flagSet.StringVar(&importVendor, "import-vendor", "", "vendor that owns imported products (defaults to --seed)")
	flagSet.BoolVar(&reset, "reset", false, "delete every product before seeding or importing")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if dbPath != "" {
		cfg.Server.DatabasePath = dbPath
	}

	logger, err := logging.Setup(cfg.Log, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := os.MkdirAll(filepath.Dir(cfg.Server.DatabasePath), 0o755); err != nil {
		return fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Server.DatabasePath); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Server.DatabasePath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if reset {
		if err := (&service.MaintenanceService{DB: db}).Reset(ctx); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		logger.Warn("database reset")
	}
	if seedVendor != "" {
		if err := database.SeedDefaults(ctx, db, seedVendor); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		logger.Info("seeded database", zap.String("vendor_id", seedVendor))
	}

	if importPath != "" {
		if importVendor == "" {
			importVendor = seedVendor
		}
		if err := importProducts(ctx, logger, db, importPath, importVendor); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           catalogd.New(db, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("http_listen", zap.String("addr", cfg.Server.Addr), zap.String("db", cfg.Server.DatabasePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sigc:
		logger.Info("shutdown_signal", zap.String("signal", s.String()))
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http_shutdown_error", zap.Error(err))
	}
	logger.Info("service_stopped")
	return nil
}

func importProducts(ctx context.Context, logger *zap.Logger, db *sql.DB, path, vendorID string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import: %w", err)
	}
	defer f.Close()
	ingest := &service.IngestService{Products: repository.NewProductRepo(db)}
	res, err := ingest.ImportCSV(ctx, f, vendorID)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	for _, e := range res.Errors {
		logger.Warn("import row skipped", zap.Error(e))
	}
	logger.Info("import complete",
		zap.String("path", path),
		zap.Int("imported", res.Imported),
		zap.Int("updated", res.Updated),
		zap.Int("errors", len(res.Errors)),
	)
	return nil
}
