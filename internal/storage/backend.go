package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend is a string-keyed blob store.
type Backend interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Options select and configure a backend.
type Options struct {
	Driver      string
	Path        string // sqlite database file
	RedisAddr   string
	RedisPrefix string
}

// Open builds the backend named by opts.Driver. An empty driver means sqlite.
func Open(ctx context.Context, opts Options) (Backend, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	switch driver {
	case "", DriverSQLite:
		db, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case DriverRedis:
		r, err := OpenRedis(ctx, opts.RedisAddr, opts.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return r, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
