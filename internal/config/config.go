// Package config loads pixelxp settings from an optional YAML file and
// PIXELXP_ environment variables.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KirkDiggler/pixel-xp/internal/entities"
	"github.com/KirkDiggler/pixel-xp/internal/errors"
)

// EnvPrefix is prepended to every environment override, e.g. PIXELXP_MAX_XP
const EnvPrefix = "PIXELXP"

// Store backends
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Rival calculator modes
const (
	RivalModeLocal  = "local"
	RivalModeRemote = "remote"
)

// Quest id formats
const (
	QuestIDsTimestamp = "timestamp"
	QuestIDsUUID      = "uuid"
)

// Config is the fully resolved application configuration
type Config struct {
	MaxXP int

	// QuestIDs selects how new quest ids are minted
	QuestIDs string

	Log    LogConfig
	Rival  RivalConfig
	Store  StoreConfig
	Notify NotifyConfig
	Server ServerConfig
}

// LogConfig controls process logging
type LogConfig struct {
	Level string
}

// RivalConfig controls how and how often the rival is updated
type RivalConfig struct {
	Mode     string
	Address  string
	Interval time.Duration
	Timeout  time.Duration
}

// StoreConfig selects where battle state is persisted
type StoreConfig struct {
	Backend     string
	SQLitePath  string
	RedisAddr   string
	RedisURL    string
	RedisPrefix string
}

// NotifyConfig controls where notices go besides the log
type NotifyConfig struct {
	// RedisChannel enables publishing notices when non-empty
	RedisChannel string
}

// ServerConfig is the rival server's listen configuration
type ServerConfig struct {
	Port int
}

func setDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	v.SetDefault("max_xp", entities.DefaultMaxXP)
	v.SetDefault("quest_ids", QuestIDsTimestamp)
	v.SetDefault("log.level", "info")
	v.SetDefault("rival.mode", RivalModeLocal)
	v.SetDefault("rival.address", "localhost:50052")
	v.SetDefault("rival.interval", 10*time.Second)
	v.SetDefault("rival.timeout", 5*time.Second)
	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("store.sqlite_path", filepath.Join(home, ".pixelxp.db"))
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_url", "")
	v.SetDefault("store.redis_prefix", "pixelxp:")
	v.SetDefault("notify.redis_channel", "")
	v.SetDefault("server.port", 50052)
}

// Load resolves configuration. An explicit path must exist; with no path the
// file pixelxp.yaml is looked up in the working directory and
// $HOME/.config/pixelxp, and defaults apply when it is absent.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pixelxp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pixelxp"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); path != "" || !notFound {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read config").
				WithMeta("path", path)
		}
		slog.Debug("No config file found, using defaults")
	} else {
		slog.Debug("Loaded config file", "path", v.ConfigFileUsed())
	}

	cfg := &Config{
		MaxXP:    v.GetInt("max_xp"),
		QuestIDs: strings.ToLower(v.GetString("quest_ids")),
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
		Rival: RivalConfig{
			Mode:     strings.ToLower(v.GetString("rival.mode")),
			Address:  v.GetString("rival.address"),
			Interval: v.GetDuration("rival.interval"),
			Timeout:  v.GetDuration("rival.timeout"),
		},
		Store: StoreConfig{
			Backend:     strings.ToLower(v.GetString("store.backend")),
			SQLitePath:  v.GetString("store.sqlite_path"),
			RedisAddr:   v.GetString("store.redis_addr"),
			RedisURL:    v.GetString("store.redis_url"),
			RedisPrefix: v.GetString("store.redis_prefix"),
		},
		Notify: NotifyConfig{
			RedisChannel: v.GetString("notify.redis_channel"),
		},
		Server: ServerConfig{
			Port: v.GetInt("server.port"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the resolved values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidatePositive("max_xp", c.MaxXP, vb)

	if c.QuestIDs != QuestIDsTimestamp && c.QuestIDs != QuestIDsUUID {
		vb.Fieldf("quest_ids", "must be %s or %s", QuestIDsTimestamp, QuestIDsUUID)
	}

	if _, ok := c.SlogLevel(); !ok {
		vb.Fieldf("log.level", "unknown level %q", c.Log.Level)
	}

	switch c.Rival.Mode {
	case RivalModeLocal:
	case RivalModeRemote:
		if c.Rival.Address == "" {
			vb.Field("rival.address", "is required in remote mode")
		}
	default:
		vb.Fieldf("rival.mode", "must be %s or %s", RivalModeLocal, RivalModeRemote)
	}
	if c.Rival.Interval <= 0 {
		vb.Field("rival.interval", "must be positive")
	}
	if c.Rival.Timeout <= 0 {
		vb.Field("rival.timeout", "must be positive")
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			vb.RequiredField("store.sqlite_path")
		}
	case BackendRedis:
		if c.Store.RedisAddr == "" && c.Store.RedisURL == "" {
			vb.Field("store.redis_addr", "or store.redis_url is required for the redis backend")
		}
	default:
		vb.Fieldf("store.backend", "must be one of %s, %s, %s", BackendSQLite, BackendRedis, BackendMemory)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		vb.Fieldf("server.port", "must be between 1 and 65535, got %d", c.Server.Port)
	}

	return vb.Build()
}

// SlogLevel parses Log.Level
func (c *Config) SlogLevel() (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}
