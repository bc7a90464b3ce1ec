package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. COLOMBOMAP_SERVER_ADDR.
const EnvPrefix = "COLOMBOMAP"

// Config holds the full application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Data   DataConfig   `mapstructure:"data"`
	Log    LogConfig    `mapstructure:"log"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Mapbox MapboxConfig `mapstructure:"mapbox"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	AuthToken       string        `mapstructure:"auth_token"` // optional bearer token for /api
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig configures the SQLite listing store.
type StoreConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// DataConfig points at fixture files. An empty Dir uses the embedded ones.
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"` // text or json
	NoColor bool   `mapstructure:"no_color"`
}

// CORSConfig configures cross-origin access to the JSON API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MapboxConfig is handed to the browser map.
type MapboxConfig struct {
	Token string `mapstructure:"token"`
	Style string `mapstructure:"style"`
}

// Load reads .env files (the default .env is optional), then config.yaml
// from the working directory if present, then COLOMBOMAP_* environment
// variables.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, eris.Wrap(err, "config: load env file")
		}
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.auth_token", "")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("store.db_path", ":memory:")
	v.SetDefault("data.dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.no_color", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("mapbox.token", "")
	v.SetDefault("mapbox.style", "mapbox://styles/mapbox/streets-v12")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return eris.New("config: server.addr is required")
	}
	if c.Store.DBPath == "" {
		return eris.New("config: store.db_path is required")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return eris.Errorf("config: log.format must be text or json (got %q)", c.Log.Format)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, eris.Wrapf(err, "config: log.level %q", l.Level)
	}
	return level, nil
}
