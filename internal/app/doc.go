// Package app is the composition root for the storefront TUI.
//
// Run loads configuration, opens the log file, the product catalog and the
// storage backend, hydrates a state.Store from persisted keys and then hands
// everything to ui.Run, which blocks until the user quits or the context is
// cancelled.
//
// # Startup
//
//	config.Load()          file, then STOREFRONT_* environment overrides
//	newLogger()            slog text handler on the configured log file
//	catalog.Default/Load   bundled catalog unless a path is configured
//	storage.Open()         sqlite, redis or memory backend
//	state.New().Hydrate()  restore cart, wishlist and session
//	prefs.Load()           theme and sort order, a failure only warns
//	ui.Run()               blocks
//
// Failures up to and including hydration are returned from Run before the
// terminal is switched to the alternate screen, so they print normally.
//
// # Options
//
//   - ConfigPath: config file (default ~/.config/storefront/config.toml)
//   - CatalogPath: catalog file overriding the configured one
//   - PrefsPath: preferences file (default ~/.config/storefront/prefs.toml)
//   - Ephemeral: use the memory backend regardless of configuration
package app
