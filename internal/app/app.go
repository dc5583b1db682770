package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/config"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/prefs"
	"github.com/five82/storefront/internal/state"
	"github.com/five82/storefront/internal/storage"
	"github.com/five82/storefront/internal/ui"
)

// Options configure the storefront application.
type Options struct {
	ConfigPath  string
	CatalogPath string // overrides the configured catalog
	PrefsPath   string // empty uses default ~/.config/storefront/prefs.toml
	Ephemeral   bool   // keep cart, wishlist and session in memory only
}

// Run boots the storefront TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	uiOpts := ui.Options{
		Context:       ctx,
		Store:         rt.store,
		Board:         rt.board,
		Catalog:       rt.catalog,
		Logger:        rt.logger,
		LogFile:       rt.cfg.LogFile,
		PrefsPath:     rt.prefsPath,
		ThemeName:     rt.prefs.Theme,
		Sort:          rt.prefs.Sort,
		CheckoutDelay: rt.cfg.CheckoutDelay,
	}
	err = ui.Run(uiOpts)
	rt.logger.Info("storefront stopped", "error", err)
	return err
}

// runtime is everything the UI needs, built before the terminal is taken over.
type runtime struct {
	cfg       config.Config
	logger    *slog.Logger
	catalog   *catalog.Catalog
	backend   storage.Backend
	board     *notify.Board
	store     *state.Store
	prefs     prefs.Prefs
	prefsPath string
	closers   []io.Closer
}

func setup(ctx context.Context, opts Options) (*runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.CatalogPath != "" {
		cfg.CatalogPath = opts.CatalogPath
	}
	if opts.Ephemeral {
		cfg.StorageDriver = storage.DriverMemory
	}

	rt := &runtime{cfg: cfg}

	logger, logCloser, err := newLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	rt.logger = logger
	if logCloser != nil {
		rt.closers = append(rt.closers, logCloser)
	}

	rt.catalog, err = catalog.Load(cfg.CatalogPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	rt.backend, err = storage.Open(ctx, storage.Options{
		Driver:      cfg.StorageDriver,
		Path:        cfg.StoragePath,
		RedisAddr:   cfg.RedisAddr,
		RedisPrefix: cfg.RedisPrefix,
	})
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	// Close the backend before the log so its errors are still recorded.
	rt.closers = append([]io.Closer{rt.backend}, rt.closers...)

	rt.board = notify.NewBoard(cfg.NoticeTTL)
	rt.store = state.New(storage.NewAdapter(rt.backend, logger), rt.board, logger)
	if err := rt.store.Hydrate(ctx); err != nil {
		rt.Close()
		return nil, fmt.Errorf("hydrate state: %w", err)
	}

	rt.prefsPath = opts.PrefsPath
	if rt.prefsPath == "" {
		rt.prefsPath = prefs.DefaultPath()
	}
	rt.prefs, err = prefs.Load(rt.prefsPath)
	if err != nil {
		logger.Warn("load preferences failed", "path", rt.prefsPath, "error", err)
	}

	snap := rt.store.Snapshot()
	logger.Info("storefront started",
		"storage", cfg.StorageDriver,
		"products", len(rt.catalog.Products()),
		"cart_lines", len(snap.Cart),
		"wishlist", len(snap.Wishlist),
		"logged_in", snap.LoggedIn())
	return rt, nil
}

// Close releases the storage backend and the log file.
func (rt *runtime) Close() error {
	var errs []error
	for _, c := range rt.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
