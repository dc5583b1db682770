// Package storage persists named blobs for the storefront.
//
// # Overview
//
// The storefront keeps three keys: "cart", "wishlist" and "currentUser". Each
// holds a JSON document. The Adapter owns serialization and error policy; the
// Backend only moves bytes.
//
// # Backends
//
//   - sqlite (default): a kv table in a local database file, opened in WAL mode
//   - redis: values under a key prefix ("storefront:" by default), no expiry
//   - memory: process-local map, used by tests and -ephemeral runs
//
// # Error Handling
//
// Open returns errors: a missing database path, an unreachable redis server or
// an unknown driver stop startup. After that nothing fails loudly. Load reports
// false for a missing key, a backend error or a value that does not decode, and
// Save and Clear log backend errors at warn level and return.
//
// # Usage Example
//
//	backend, err := storage.Open(ctx, storage.Options{Driver: "sqlite", Path: dbPath})
//	if err != nil {
//		return err
//	}
//	defer backend.Close()
//
//	store := storage.NewAdapter(backend, logger)
//	store.Save("cart", lines)
//
//	var restored []state.CartLine
//	if !store.Load("cart", &restored) {
//		restored = nil
//	}
package storage
