package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("storage: not found")

// KV is a byte-oriented key-value store. Get returns ErrNotFound for a
// missing key; Set replaces any previous value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

type Options struct {
	Backend     Backend
	SQLitePath  string
	RedisURL    string
	RedisPrefix string
	FilePath    string
}

// Open builds the KV selected by opts.Backend.
func Open(ctx context.Context, opts Options, logger log.FieldLogger) (KV, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	backend := Backend(strings.ToLower(strings.TrimSpace(string(opts.Backend))))
	logger.WithField("backend", backend).Debug("opening storage")
	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(ctx, opts.SQLitePath)
	case BackendRedis:
		return OpenRedis(ctx, opts.RedisURL, opts.RedisPrefix)
	case BackendFile:
		return NewFileKV(opts.FilePath)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}
