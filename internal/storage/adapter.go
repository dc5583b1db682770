package storage

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"time"
)

const opTimeout = 2 * time.Second

// Adapter serializes values to JSON and stores them in a Backend. It never
// returns errors: failed loads read as absent and failed writes are logged.
type Adapter struct {
	backend Backend
	logger  *slog.Logger
}

// NewAdapter wraps backend. A nil logger discards log output.
func NewAdapter(backend Backend, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Adapter{backend: backend, logger: logger}
}

// Save stores value under key.
func (a *Adapter) Save(key string, value any) {
	if a == nil || a.backend == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		a.logger.Warn("encode stored value failed", "key", key, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := a.backend.Set(ctx, key, data); err != nil {
		a.logger.Warn("save failed", "key", key, "error", err)
	}
}

// Load decodes the value under key into dest and reports whether it did.
// Callers should decode into a fresh value: a failed decode may leave dest
// partially written.
func (a *Adapter) Load(key string, dest any) bool {
	if a == nil || a.backend == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	data, ok, err := a.backend.Get(ctx, key)
	if err != nil {
		a.logger.Warn("load failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		a.logger.Warn("decode stored value failed", "key", key, "error", err)
		return false
	}
	return true
}

// Clear removes key.
func (a *Adapter) Clear(key string) {
	if a == nil || a.backend == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := a.backend.Delete(ctx, key); err != nil {
		a.logger.Warn("clear failed", "key", key, "error", err)
	}
}
