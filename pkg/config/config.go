// Package config provides configuration management for GNdash.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Server: host, port, max_upload_mb, upload_rate_per_minute,
//     session_ttl, session_secret, allowed_origins
//   - Store: backend, sqlite_path, postgres connection settings
//   - Upload: fix_utf8
//   - Notify: mqtt_broker, mqtt_topic, mqtt_client_id
//   - Log: level, format, destination
//
// Runtime-only fields:
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNDASH_ prefix with underscores for nesting:
//
//	GNDASH_SERVER_PORT=8050
//	GNDASH_STORE_BACKEND=sqlite
//	GNDASH_STORE_POSTGRES_HOST=localhost
//	GNDASH_LOG_LEVEL=info
package config

import "time"

// Config represents the complete GNdash configuration.
type Config struct {
	// Server contains settings of the HTTP API.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Store determines where session datasets are kept.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Upload contains settings of file parsing.
	Upload UploadConfig `mapstructure:"upload" yaml:"upload"`

	// Notify contains settings of upload events.
	Notify NotifyConfig `mapstructure:"notify" yaml:"notify"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the interface the server listens on.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the port the server listens on.
	Port int `mapstructure:"port" yaml:"port"`

	// MaxUploadMB limits the size of uploaded files in megabytes.
	MaxUploadMB int `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`

	// UploadRatePerMinute limits uploads from one IP address.
	UploadRatePerMinute int `mapstructure:"upload_rate_per_minute" yaml:"upload_rate_per_minute"`

	// SessionTTL is how long an idle session keeps its dataset.
	SessionTTL time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`

	// SessionSecret signs session cookies. When empty a random secret is
	// generated on start, and sessions do not survive a restart.
	SessionSecret string `mapstructure:"session_secret" yaml:"session_secret"`

	// AllowedOrigins lists browser origins that may call the API with
	// session cookies. "*" allows any origin without cookies. Empty means
	// cross-origin requests get no CORS headers.
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// StoreConfig selects and configures the session store.
type StoreConfig struct {
	// Backend is one of "memory", "sqlite", "postgres".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// SQLitePath is the database file of the sqlite backend. Empty means
	// sessions.db in the cache directory.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`

	Postgres PostgresConfig `mapstructure:"postgres" yaml:"postgres"`
}

// PostgresConfig contains PostgreSQL connection parameters.
type PostgresConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// UploadConfig contains settings of upload parsing.
type UploadConfig struct {
	// FixUTF8 repairs invalid UTF-8 in CSV uploads instead of rejecting
	// them.
	FixUTF8 bool `mapstructure:"fix_utf8" yaml:"fix_utf8"`
}

// NotifyConfig contains MQTT settings of upload events.
type NotifyConfig struct {
	// MQTTBroker is the broker URL, for example "tcp://localhost:1883".
	// Empty value disables notifications.
	MQTTBroker string `mapstructure:"mqtt_broker" yaml:"mqtt_broker"`

	// MQTTTopic is the topic upload events are published to.
	MQTTTopic string `mapstructure:"mqtt_topic" yaml:"mqtt_topic"`

	// MQTTClientID identifies the publisher at the broker.
	MQTTClientID string `mapstructure:"mqtt_client_id" yaml:"mqtt_client_id"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Server: ServerConfig{
			Host:                "localhost",
			Port:                8050,
			MaxUploadMB:         20,
			UploadRatePerMinute: 30,
			SessionTTL:          24 * time.Hour,
		},
		Store: StoreConfig{
			Backend: "memory",
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "postgres",
				Password: "postgres",
				Database: "gndash",
				SSLMode:  "disable",
			},
		},
		Notify: NotifyConfig{
			MQTTTopic:    "gndash/uploads",
			MQTTClientID: "gndash",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
