package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/storefront/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	catalogPath := flag.String("catalog", "", "load products from a JSON, YAML or TOML file (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	ephemeral := flag.Bool("ephemeral", false, "keep cart, wishlist and session in memory only")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:  *configPath,
		CatalogPath: *catalogPath,
		PrefsPath:   *prefsPath,
		Ephemeral:   *ephemeral,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		return 1
	}
	return 0
}
