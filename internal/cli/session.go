package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/teamcal/internal/config"
	"github.com/sandeepkv93/teamcal/internal/storage"
	"github.com/sandeepkv93/teamcal/internal/store"
)

// session is everything one command invocation needs: resolved config, a
// logger and a hydrated store over the configured backend.
type session struct {
	Config *config.Config
	Logger *log.Logger
	Store  *store.Store

	kv      storage.KV
	logFile *os.File
}

// openSession resolves configuration as file, then TEAMCAL_* environment,
// then flags. A nil logOut sends logs to the configured log file, or
// discards them, which keeps the interactive screen clean.
func openSession(ctx context.Context, opts *RootOptions, logOut io.Writer) (*session, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg, err = config.FromEnv(cfg)
	if err != nil {
		return nil, err
	}
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	cfg.Normalize()

	sess := &session{Config: cfg, Logger: log.New()}
	sess.Logger.SetLevel(cfg.Level())
	switch {
	case logOut != nil:
		sess.Logger.SetOutput(logOut)
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		sess.logFile = f
		sess.Logger.SetOutput(f)
	default:
		sess.Logger.SetOutput(io.Discard)
	}

	kv, err := storage.Open(ctx, cfg.StorageOptions(), sess.Logger)
	if err != nil {
		sess.Close()
		return nil, err
	}
	sess.kv = kv
	sess.Store = store.Open(ctx, storage.NewAdapter(kv, sess.Logger),
		store.WithLogger(sess.Logger),
		store.WithViewMode(cfg.View()),
	)
	sess.Logger.WithFields(log.Fields{"config": path, "backend": cfg.Backend}).Debug("session opened")
	return sess, nil
}

func (s *session) Close() error {
	var errs []error
	if s.kv != nil {
		errs = append(errs, s.kv.Close())
	}
	if s.logFile != nil {
		errs = append(errs, s.logFile.Close())
	}
	return errors.Join(errs...)
}
