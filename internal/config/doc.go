// Package config loads the storefront's runtime settings.
//
// # Resolution
//
// Load builds a Config in three layers:
//
//  1. Built-in defaults (Default)
//  2. The TOML file, ~/.config/storefront/config.toml unless a path is given
//  3. STOREFRONT_* environment variables
//
// A missing file is not an error. Empty values in the file or environment
// keep the value from the layer below.
//
// # TOML Format
//
//	catalog = "~/shop/catalog.yaml"
//	log_file = "~/.local/share/storefront/storefront.log"
//	log_level = "info"
//	checkout_delay = "1.5s"
//	notice_ttl = "3s"
//
//	[storage]
//	driver = "sqlite"            # sqlite, redis or memory
//	path = "~/.local/share/storefront/storefront.db"
//	redis_addr = "127.0.0.1:6379"
//	redis_prefix = "storefront:"
//
// # Environment
//
//   - STOREFRONT_STORAGE_DRIVER, STOREFRONT_STORAGE_PATH
//   - STOREFRONT_REDIS_ADDR, STOREFRONT_REDIS_PREFIX
//   - STOREFRONT_CATALOG
//   - STOREFRONT_LOG_FILE, STOREFRONT_LOG_LEVEL
//   - STOREFRONT_CHECKOUT_DELAY, STOREFRONT_NOTICE_TTL (Go durations)
//
// Paths starting with ~ are expanded against the home directory and made
// absolute.
package config
