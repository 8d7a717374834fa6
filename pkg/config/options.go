package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptServerHost sets the interface the HTTP server listens on.
func OptServerHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Server Host", s) {
			c.Server.Host = s
		}
	}
}

// OptServerPort sets the port of the HTTP server.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptServerMaxUploadMB sets the upload size limit in megabytes.
func OptServerMaxUploadMB(i int) Option {
	return func(c *Config) {
		if isValidInt("Max Upload MB", i) {
			c.Server.MaxUploadMB = i
		}
	}
}

// OptServerUploadRatePerMinute sets how many uploads per minute one IP
// address may send.
func OptServerUploadRatePerMinute(i int) Option {
	return func(c *Config) {
		if isValidInt("Upload Rate Per Minute", i) {
			c.Server.UploadRatePerMinute = i
		}
	}
}

// OptServerSessionTTL sets how long idle sessions are kept.
func OptServerSessionTTL(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Session TTL", d) {
			c.Server.SessionTTL = d
		}
	}
}

// OptServerSessionSecret sets the key that signs session cookies.
func OptServerSessionSecret(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Session Secret", s) {
			c.Server.SessionSecret = s
		}
	}
}

// OptServerAllowedOrigins sets origins allowed by CORS. Entries must be
// "*" or an http(s) scheme with a host, others are dropped with a
// warning.
func OptServerAllowedOrigins(ss []string) Option {
	var origins []string
	for _, s := range ss {
		s = strings.TrimRight(strings.TrimSpace(s), "/")
		if s == "" {
			continue
		}
		if isValidOrigin(s) {
			origins = append(origins, s)
		}
	}
	return func(c *Config) {
		c.Server.AllowedOrigins = origins
	}
}

// OptStoreBackend sets the session store.
// Valid values: "memory", "sqlite", "postgres".
func OptStoreBackend(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Store.Backend", s) {
			c.Store.Backend = s
		}
	}
}

// OptStoreSQLitePath sets the database file of the sqlite store.
func OptStoreSQLitePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("SQLite Path", s) {
			c.Store.SQLitePath = s
		}
	}
}

// OptStorePostgresHost sets the PostgreSQL server hostname or IP address.
func OptStorePostgresHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Postgres Host", s) {
			c.Store.Postgres.Host = s
		}
	}
}

// OptStorePostgresPort sets the PostgreSQL server port number.
func OptStorePostgresPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Postgres Port", i) {
			c.Store.Postgres.Port = i
		}
	}
}

// OptStorePostgresUser sets the PostgreSQL database username.
func OptStorePostgresUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Postgres User", s) {
			c.Store.Postgres.User = s
		}
	}
}

// OptStorePostgresPassword sets the PostgreSQL database password.
func OptStorePostgresPassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Postgres Password", s) {
			c.Store.Postgres.Password = s
		}
	}
}

// OptStorePostgresDatabase sets the PostgreSQL database name.
func OptStorePostgresDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Postgres Database", s) {
			c.Store.Postgres.Database = s
		}
	}
}

// OptStorePostgresSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptStorePostgresSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Store.Postgres.SSLMode", s) {
			c.Store.Postgres.SSLMode = s
		}
	}
}

// OptUploadFixUTF8 turns repair of invalid UTF-8 uploads on or off.
func OptUploadFixUTF8(b bool) Option {
	return func(c *Config) {
		c.Upload.FixUTF8 = b
	}
}

// OptNotifyMQTTBroker sets the MQTT broker of upload events.
func OptNotifyMQTTBroker(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("MQTT Broker", s) {
			c.Notify.MQTTBroker = s
		}
	}
}

// OptNotifyMQTTTopic sets the topic of upload events.
func OptNotifyMQTTTopic(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("MQTT Topic", s) {
			c.Notify.MQTTTopic = s
		}
	}
}

// OptNotifyMQTTClientID sets the MQTT client ID.
func OptNotifyMQTTClientID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("MQTT Client ID", s) {
			c.Notify.MQTTClientID = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

func isValidOrigin(s string) bool {
	if s == "*" {
		return true
	}
	u, err := url.Parse(s)
	res := err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != "" && (u.Path == "" || u.Path == "/")
	if !res {
		gn.Warn("<em>Allowed Origin</em> '%s' is not an origin, ignoring", s)
	}
	return res
}
