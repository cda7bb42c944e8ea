package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Log      LogConfig
	LocalDB  LocalDBConfig
	RemoteDB RemoteDBConfig
	Auth     AuthConfig
	Sync     SyncConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// LocalDBConfig holds the durable local cache/queue settings
type LocalDBConfig struct {
	Path string // sqlite file path
}

// RemoteDBConfig holds the authoritative remote database settings
type RemoteDBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// AuthConfig holds session verification settings
type AuthConfig struct {
	Secret       string
	Issuer       string
	SessionToken string // the device's current session token
}

// SyncConfig holds background sync settings
type SyncConfig struct {
	Enabled  bool
	Interval time.Duration
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
//  1. Environment variables with OMNISHOP_ prefix (e.g. OMNISHOP_REMOTEDB_PASSWORD)
//  2. config.toml
//  3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("OMNISHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A boolean zero value is indistinguishable from "unset", so the
	// default has to live in viper itself
	v.SetDefault("sync.enabled", true)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		LocalDB: LocalDBConfig{
			Path: v.GetString("localdb.path"),
		},
		RemoteDB: RemoteDBConfig{
			Host:            v.GetString("remotedb.host"),
			Port:            v.GetInt("remotedb.port"),
			User:            v.GetString("remotedb.user"),
			Password:        v.GetString("remotedb.password"),
			DBName:          v.GetString("remotedb.dbname"),
			SSLMode:         v.GetString("remotedb.sslmode"),
			MaxOpenConns:    v.GetInt("remotedb.max_open_conns"),
			MaxIdleConns:    v.GetInt("remotedb.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("remotedb.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("remotedb.conn_max_idle_time"),
		},
		Auth: AuthConfig{
			Secret:       v.GetString("auth.secret"),
			Issuer:       v.GetString("auth.issuer"),
			SessionToken: v.GetString("auth.session_token"),
		},
		Sync: SyncConfig{
			Enabled:  v.GetBool("sync.enabled"),
			Interval: v.GetDuration("sync.interval"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills in built-in defaults for unset values
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "omnishop-manager"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.LocalDB.Path == "" {
		cfg.LocalDB.Path = "omnishop-local.db"
	}
	if cfg.RemoteDB.Host == "" {
		cfg.RemoteDB.Host = "localhost"
	}
	if cfg.RemoteDB.Port == 0 {
		cfg.RemoteDB.Port = 5432
	}
	if cfg.RemoteDB.User == "" {
		cfg.RemoteDB.User = "postgres"
	}
	if cfg.RemoteDB.DBName == "" {
		cfg.RemoteDB.DBName = "omnishop"
	}
	if cfg.RemoteDB.SSLMode == "" {
		cfg.RemoteDB.SSLMode = "disable"
	}
	if cfg.RemoteDB.MaxOpenConns == 0 {
		cfg.RemoteDB.MaxOpenConns = 10
	}
	if cfg.RemoteDB.MaxIdleConns == 0 {
		cfg.RemoteDB.MaxIdleConns = 2
	}
	if cfg.RemoteDB.ConnMaxLifetime == 0 {
		cfg.RemoteDB.ConnMaxLifetime = 60
	}
	if cfg.RemoteDB.ConnMaxIdleTime == 0 {
		cfg.RemoteDB.ConnMaxIdleTime = 30
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "omnishop-manager"
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = 5 * time.Minute
	}
}

// validate checks configuration consistency
func (c *Config) validate() error {
	if c.RemoteDB.MaxOpenConns <= 0 {
		return fmt.Errorf("remotedb.max_open_conns must be positive")
	}
	if c.RemoteDB.MaxIdleConns < 0 {
		return fmt.Errorf("remotedb.max_idle_conns cannot be negative")
	}
	if c.RemoteDB.MaxIdleConns > c.RemoteDB.MaxOpenConns {
		return fmt.Errorf("remotedb.max_idle_conns (%d) cannot exceed remotedb.max_open_conns (%d)",
			c.RemoteDB.MaxIdleConns, c.RemoteDB.MaxOpenConns)
	}
	if c.Sync.Interval < time.Second {
		return fmt.Errorf("sync.interval must be at least one second")
	}

	if c.App.Env == "production" {
		if c.Auth.Secret == "" {
			return fmt.Errorf("auth.secret is required in production")
		}
		if len(c.Auth.Secret) < 32 {
			return fmt.Errorf("auth.secret must be at least 32 characters in production")
		}
		if c.RemoteDB.Password == "" {
			return fmt.Errorf("remotedb.password is required in production")
		}
		if c.RemoteDB.SSLMode == "disable" {
			return fmt.Errorf("remotedb.sslmode cannot be 'disable' in production")
		}
	}

	return nil
}

// DSN returns the remote database connection string with escaped values
func (d *RemoteDBConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
