// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20 // 1048576 bytes

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultMySQLPort is the default MySQL server port.
	DefaultMySQLPort = 3306

	// DefaultSQLiteBusyTimeoutMS is how long SQLite writers wait for a lock.
	DefaultSQLiteBusyTimeoutMS = 5000

	// DefaultQuoteDepth expands Quote.author into the nested author object.
	DefaultQuoteDepth = 1
)

// Database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Auth      AuthConfig      `koanf:"auth"      validate:"required"`
	Database  DatabaseConfig  `koanf:"database"  validate:"required"`
	API       APIConfig       `koanf:"api"       validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"       validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"   validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"    validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
	Insecure     bool    `koanf:"insecure"`
}

// AuthConfig contains the login gate settings.
type AuthConfig struct {
	JWT       JWTConfig       `koanf:"jwt"       validate:"required"`
	Session   SessionConfig   `koanf:"session"   validate:"required"`
	Superuser SuperuserConfig `koanf:"superuser"`

	// SubjectHeader names the header an API gateway sets to the caller id.
	SubjectHeader string `koanf:"subject_header"`

	// TrustGatewayHeaders makes SubjectHeader alone authenticate a request.
	// Only enable behind a gateway that strips the header from clients.
	TrustGatewayHeaders bool `koanf:"trust_gateway_headers"`
}

// JWTConfig contains session token signing settings.
type JWTConfig struct {
	Secret string        `koanf:"secret" validate:"required,min=32"`
	Issuer string        `koanf:"issuer" validate:"required"`
	TTL    time.Duration `koanf:"ttl"    validate:"required,min=1m"`
}

// SessionConfig contains session cookie settings.
type SessionConfig struct {
	CookieName string `koanf:"cookie_name" validate:"required"`
	Secure     bool   `koanf:"secure"`
}

// SuperuserConfig is the single account allowed to log in. Login is disabled
// while PasswordHash is empty.
type SuperuserConfig struct {
	Username     string `koanf:"username"      validate:"required_with=PasswordHash"`
	PasswordHash string `koanf:"password_hash" validate:"omitempty,startswith=$2"`
}

// DatabaseConfig selects and configures the storage backend.
type DatabaseConfig struct {
	Driver string       `koanf:"driver" validate:"required,oneof=sqlite mysql"`
	SQLite SQLiteConfig `koanf:"sqlite" validate:"required_if=Driver sqlite"`
	MySQL  MySQLConfig  `koanf:"mysql"`
}

// SQLiteConfig contains SQLite settings.
type SQLiteConfig struct {
	Path          string `koanf:"path"            validate:"required"`
	BusyTimeoutMS int    `koanf:"busy_timeout_ms" validate:"min=0"`
}

// MySQLConfig contains MySQL settings.
type MySQLConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"              validate:"omitempty,min=1,max=65535"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	MaxOpenConns    int           `koanf:"max_open_conns"    validate:"min=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns"    validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	LogLevel        string        `koanf:"log_level"         validate:"omitempty,oneof=silent error warn info"`
}

// APIConfig contains resource API behavior settings.
type APIConfig struct {
	// QuoteDepth is the default expansion of Quote.author: 0 renders the
	// author id, 1 the nested author object.
	QuoteDepth int `koanf:"quote_depth" validate:"min=0,max=1"`

	// StrictNestedAuthor binds nested quote creation to the author in the path.
	StrictNestedAuthor bool `koanf:"strict_nested_author"`

	// RequestTimeout bounds each request including its storage calls.
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required,min=100ms"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quote-lab",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quote-lab",
		"telemetry.sampling_rate": 1.0,
		"telemetry.insecure":      true,

		"auth.jwt.secret":              "",
		"auth.jwt.issuer":              "quote-lab",
		"auth.jwt.ttl":                 "12h",
		"auth.session.cookie_name":     "quote_lab_session",
		"auth.session.secure":          false,
		"auth.superuser.username":      "admin",
		"auth.superuser.password_hash": "",
		"auth.subject_header":          "X-User-ID",
		"auth.trust_gateway_headers":   false,

		"database.driver":                 DriverSQLite,
		"database.sqlite.path":            "./data/quote-lab.db",
		"database.sqlite.busy_timeout_ms": DefaultSQLiteBusyTimeoutMS,
		"database.mysql.host":             "localhost",
		"database.mysql.port":             DefaultMySQLPort,
		"database.mysql.user":             "quote_lab",
		"database.mysql.password":         "",
		"database.mysql.name":             "quote_lab",
		"database.mysql.max_open_conns":   0,
		"database.mysql.max_idle_conns":   0,
		"database.mysql.log_level":        "silent",

		"api.quote_depth":          DefaultQuoteDepth,
		"api.strict_nested_author": false,
		"api.request_timeout":      "15s",
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix, see envKey)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with APP_ prefix
	err = k.Load(env.Provider("APP_", ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps APP_DATABASE_SQLITE_PATH to database.sqlite.path. A double
// underscore keeps a literal one, so APP_API_QUOTE__DEPTH is api.quote_depth.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "APP_"))

	parts := strings.Split(s, "__")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, "_", ".")
	}

	return strings.Join(parts, "_")
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil // File doesn't exist, that's fine
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
