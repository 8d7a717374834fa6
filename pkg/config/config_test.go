package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/gndash/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gndash"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "gndash"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gndash", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gndash", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Server defaults
		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, 8050, cfg.Server.Port)
		assert.Equal(t, 20, cfg.Server.MaxUploadMB)
		assert.Equal(t, 30, cfg.Server.UploadRatePerMinute)
		assert.Equal(t, 24*time.Hour, cfg.Server.SessionTTL)
		assert.Empty(t, cfg.Server.SessionSecret)

		// Store defaults
		assert.Equal(t, "memory", cfg.Store.Backend)
		assert.Empty(t, cfg.Store.SQLitePath)
		assert.Equal(t, 5432, cfg.Store.Postgres.Port)
		assert.Equal(t, "gndash", cfg.Store.Postgres.Database)
		assert.Equal(t, "disable", cfg.Store.Postgres.SSLMode)

		assert.False(t, cfg.Upload.FixUTF8)
		assert.Empty(t, cfg.Notify.MQTTBroker)
		assert.Equal(t, "gndash/uploads", cfg.Notify.MQTTTopic)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)
	})
}

func TestOptionServerHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "0.0.0.0",
			expected: "0.0.0.0",
		},
		{
			name:     "trims whitespace",
			input:    "  dash.example.org  ",
			expected: "dash.example.org",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost", // Should keep default
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptServerHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Server.Host)
		})
	}
}

func TestOptionIntegers(t *testing.T) {
	tests := []struct {
		name     string
		opt      func(int) config.Option
		get      func(*config.Config) int
		input    int
		expected int
	}{
		{
			name:     "sets port",
			opt:      config.OptServerPort,
			get:      func(c *config.Config) int { return c.Server.Port },
			input:    9000,
			expected: 9000,
		},
		{
			name:     "ignores zero port",
			opt:      config.OptServerPort,
			get:      func(c *config.Config) int { return c.Server.Port },
			input:    0,
			expected: 8050,
		},
		{
			name:     "ignores negative upload size",
			opt:      config.OptServerMaxUploadMB,
			get:      func(c *config.Config) int { return c.Server.MaxUploadMB },
			input:    -1,
			expected: 20,
		},
		{
			name: "sets upload rate",
			opt:  config.OptServerUploadRatePerMinute,
			get: func(c *config.Config) int {
				return c.Server.UploadRatePerMinute
			},
			input:    5,
			expected: 5,
		},
		{
			name:     "sets postgres port",
			opt:      config.OptStorePostgresPort,
			get:      func(c *config.Config) int { return c.Store.Postgres.Port },
			input:    5433,
			expected: 5433,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt(tt.input)})
			assert.Equal(t, tt.expected, tt.get(cfg))
		})
	}
}

func TestOptionSessionTTL(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptServerSessionTTL(time.Hour)})
	assert.Equal(t, time.Hour, cfg.Server.SessionTTL)

	cfg.Update([]config.Option{config.OptServerSessionTTL(0)})
	assert.Equal(t, time.Hour, cfg.Server.SessionTTL)
}

func TestOptionEnums(t *testing.T) {
	tests := []struct {
		name     string
		opt      func(string) config.Option
		get      func(*config.Config) string
		input    string
		expected string
	}{
		{"sqlite backend", config.OptStoreBackend,
			func(c *config.Config) string { return c.Store.Backend },
			"sqlite", "sqlite"},
		{"backend case insensitive", config.OptStoreBackend,
			func(c *config.Config) string { return c.Store.Backend },
			" Postgres ", "postgres"},
		{"unknown backend", config.OptStoreBackend,
			func(c *config.Config) string { return c.Store.Backend },
			"redis", "memory"},
		{"ssl mode", config.OptStorePostgresSSLMode,
			func(c *config.Config) string { return c.Store.Postgres.SSLMode },
			"verify-full", "verify-full"},
		{"bad ssl mode", config.OptStorePostgresSSLMode,
			func(c *config.Config) string { return c.Store.Postgres.SSLMode },
			"maybe", "disable"},
		{"log level", config.OptLogLevel,
			func(c *config.Config) string { return c.Log.Level },
			"DEBUG", "debug"},
		{"bad log level", config.OptLogLevel,
			func(c *config.Config) string { return c.Log.Level },
			"verbose", "info"},
		{"log format", config.OptLogFormat,
			func(c *config.Config) string { return c.Log.Format },
			"tint", "tint"},
		{"log destination", config.OptLogDestination,
			func(c *config.Config) string { return c.Log.Destination },
			"stderr", "stderr"},
		{"bad log destination", config.OptLogDestination,
			func(c *config.Config) string { return c.Log.Destination },
			"stdin", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt(tt.input)})
			assert.Equal(t, tt.expected, tt.get(cfg))
		})
	}
}

func TestMultipleOptions(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptServerPort(9000),
		config.OptStoreBackend("sqlite"),
		config.OptStoreSQLitePath("/tmp/gndash.db"),
		config.OptUploadFixUTF8(true),
		config.OptNotifyMQTTBroker("tcp://localhost:1883"),
		config.OptHomeDir("/home/user"),
	})

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/tmp/gndash.db", cfg.SQLitePath())
	assert.True(t, cfg.Upload.FixUTF8)
	assert.Equal(t, "tcp://localhost:1883", cfg.Notify.MQTTBroker)
	assert.Equal(t, "/home/user", cfg.HomeDir)
	assert.Equal(t, "localhost:9000", cfg.Addr())
}

func TestAllowedOrigins(t *testing.T) {
	cfg := config.New()
	assert.Empty(t, cfg.Server.AllowedOrigins)

	cfg.Update([]config.Option{config.OptServerAllowedOrigins([]string{
		" http://localhost:3000/ ", "", "*", "ftp://files.example.org",
		"localhost:3000", "https://dash.example.org/app",
		"https://dash.example.org",
	})})
	assert.Equal(t,
		[]string{"http://localhost:3000", "*", "https://dash.example.org"},
		cfg.Server.AllowedOrigins)

	cfg.Update([]config.Option{config.OptServerAllowedOrigins(nil)})
	assert.Empty(t, cfg.Server.AllowedOrigins)
}

func TestSQLitePathDefault(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/user")})
	assert.Equal(t,
		filepath.Join("/home/user", ".cache", "gndash", "sessions.db"),
		cfg.SQLitePath())
}

func TestToOptions(t *testing.T) {
	t.Run("round trip keeps persistent fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptServerHost("0.0.0.0"),
			config.OptServerSessionSecret("s3cret"),
			config.OptServerSessionTTL(2 * time.Hour),
			config.OptServerAllowedOrigins([]string{"https://dash.example.org"}),
			config.OptStoreBackend("postgres"),
			config.OptStorePostgresUser("dash"),
			config.OptUploadFixUTF8(true),
			config.OptNotifyMQTTTopic("dash/events"),
			config.OptLogFormat("text"),
			config.OptHomeDir("/home/user"),
		})

		res := config.New()
		res.Update(cfg.ToOptions())

		assert.Equal(t, cfg.Server, res.Server)
		assert.Equal(t, cfg.Store, res.Store)
		assert.Equal(t, cfg.Upload, res.Upload)
		assert.Equal(t, cfg.Notify, res.Notify)
		assert.Equal(t, cfg.Log, res.Log)
		assert.Empty(t, res.HomeDir, "HomeDir is runtime-only")
	})

	t.Run("default config", func(t *testing.T) {
		cfg := config.New()
		res := config.New()
		res.Update(cfg.ToOptions())
		assert.Equal(t, cfg, res)
	})
}
