package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/teamcal/internal/model"
	"github.com/sandeepkv93/teamcal/internal/storage"
)

const envPrefix = "TEAMCAL_"

var ErrUnknownBackend = errors.New("config: unknown backend, must be one of sqlite, redis, file, memory")

type Config struct {
	// Backend is one of sqlite, redis, file or memory.
	Backend     string `yaml:"backend"`
	SQLitePath  string `yaml:"sqlite_path"`
	RedisURL    string `yaml:"redis_url"`
	RedisPrefix string `yaml:"redis_prefix"`
	FilePath    string `yaml:"file_path"`

	// WeekStart is "sunday" or "monday".
	WeekStart   string `yaml:"week_start"`
	DefaultView string `yaml:"default_view"`
	// MonthPreviewLimit is how many tasks a month cell shows before "+N more".
	MonthPreviewLimit int `yaml:"month_preview_limit"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

func Default() *Config {
	return &Config{
		Backend:           string(storage.BackendSQLite),
		SQLitePath:        ".teamcal.db",
		RedisPrefix:       "teamcal:",
		FilePath:          ".teamcal.json",
		WeekStart:         "sunday",
		DefaultView:       string(model.ViewMonth),
		MonthPreviewLimit: 2,
		LogLevel:          "info",
	}
}

// DefaultPath is config.yaml under the user's config directory, or in the
// working directory when that cannot be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "teamcal.yaml"
	}
	return filepath.Join(dir, "teamcal", "config.yaml")
}

// ParseBackend accepts a storage backend name in any case. An empty name
// selects sqlite.
func ParseBackend(name string) (storage.Backend, error) {
	b := storage.Backend(strings.ToLower(strings.TrimSpace(name)))
	switch b {
	case "":
		return storage.BackendSQLite, nil
	case storage.BackendSQLite, storage.BackendRedis, storage.BackendFile, storage.BackendMemory:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// Normalize replaces empty or unknown values with defaults. Callers that
// take a backend from user input check it with ParseBackend first.
func (c *Config) Normalize() {
	def := Default()
	if b, err := ParseBackend(c.Backend); err == nil {
		c.Backend = string(b)
	} else {
		c.Backend = def.Backend
	}
	if strings.TrimSpace(c.SQLitePath) == "" {
		c.SQLitePath = def.SQLitePath
	}
	if strings.TrimSpace(c.FilePath) == "" {
		c.FilePath = def.FilePath
	}
	c.WeekStart = strings.ToLower(strings.TrimSpace(c.WeekStart))
	if c.WeekStart != "monday" && c.WeekStart != "sunday" {
		c.WeekStart = def.WeekStart
	}
	if v, err := model.ParseViewMode(c.DefaultView); err == nil {
		c.DefaultView = string(v)
	} else {
		c.DefaultView = def.DefaultView
	}
	if c.MonthPreviewLimit <= 0 {
		c.MonthPreviewLimit = def.MonthPreviewLimit
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		c.LogLevel = def.LogLevel
	}
}

func (c *Config) WeekStartDay() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

func (c *Config) View() model.ViewMode {
	v, err := model.ParseViewMode(c.DefaultView)
	if err != nil {
		return model.ViewMonth
	}
	return v
}

func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:     storage.Backend(c.Backend),
		SQLitePath:  c.SQLitePath,
		RedisURL:    c.RedisURL,
		RedisPrefix: c.RedisPrefix,
		FilePath:    c.FilePath,
	}
}

// Load reads path as YAML. A missing file yields the defaults. An unknown
// backend is an error rather than a silent fallback.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if _, err := ParseBackend(cfg.Backend); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: nil config")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".teamcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func (c *Config) Save(path string) error {
	return Save(path, c)
}

// FromEnv overlays TEAMCAL_* environment variables onto base. Malformed
// values are ignored except TEAMCAL_BACKEND, which must name a backend.
func FromEnv(base *Config) (*Config, error) {
	cfg := *base
	if v, ok := getEnvString("BACKEND"); ok {
		if _, err := ParseBackend(v); err != nil {
			return nil, fmt.Errorf("config: %sBACKEND: %w", envPrefix, err)
		}
		cfg.Backend = v
	}
	if v, ok := getEnvString("SQLITE_PATH"); ok {
		cfg.SQLitePath = v
	}
	if v, ok := getEnvString("REDIS_URL"); ok {
		cfg.RedisURL = v
	}
	if v, ok := getEnvString("REDIS_PREFIX"); ok {
		cfg.RedisPrefix = v
	}
	if v, ok := getEnvString("FILE_PATH"); ok {
		cfg.FilePath = v
	}
	if v, ok := getEnvString("WEEK_START"); ok {
		cfg.WeekStart = v
	}
	if v, ok := getEnvString("DEFAULT_VIEW"); ok {
		cfg.DefaultView = v
	}
	if v, ok := getEnvInt("MONTH_PREVIEW_LIMIT"); ok && v > 0 {
		cfg.MonthPreviewLimit = v
	}
	if v, ok := getEnvString("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("LOG_FILE"); ok {
		cfg.LogFile = v
	}
	cfg.Normalize()
	return &cfg, nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(envPrefix + name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
