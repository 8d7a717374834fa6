package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes the runtime-only HomeDir.
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Server.Host
	if s != "" {
		res = append(res, OptServerHost(s))
	}
	i = c.Server.Port
	if i > 0 {
		res = append(res, OptServerPort(i))
	}
	i = c.Server.MaxUploadMB
	if i > 0 {
		res = append(res, OptServerMaxUploadMB(i))
	}
	i = c.Server.UploadRatePerMinute
	if i > 0 {
		res = append(res, OptServerUploadRatePerMinute(i))
	}
	if c.Server.SessionTTL > 0 {
		res = append(res, OptServerSessionTTL(c.Server.SessionTTL))
	}
	s = c.Server.SessionSecret
	if s != "" {
		res = append(res, OptServerSessionSecret(s))
	}
	if len(c.Server.AllowedOrigins) > 0 {
		res = append(res, OptServerAllowedOrigins(c.Server.AllowedOrigins))
	}

	s = c.Store.Backend
	if s != "" {
		res = append(res, OptStoreBackend(s))
	}
	s = c.Store.SQLitePath
	if s != "" {
		res = append(res, OptStoreSQLitePath(s))
	}
	pg := c.Store.Postgres
	if pg.Host != "" {
		res = append(res, OptStorePostgresHost(pg.Host))
	}
	if pg.Port > 0 {
		res = append(res, OptStorePostgresPort(pg.Port))
	}
	if pg.User != "" {
		res = append(res, OptStorePostgresUser(pg.User))
	}
	if pg.Password != "" {
		res = append(res, OptStorePostgresPassword(pg.Password))
	}
	if pg.Database != "" {
		res = append(res, OptStorePostgresDatabase(pg.Database))
	}
	if pg.SSLMode != "" {
		res = append(res, OptStorePostgresSSLMode(pg.SSLMode))
	}

	res = append(res, OptUploadFixUTF8(c.Upload.FixUTF8))

	s = c.Notify.MQTTBroker
	if s != "" {
		res = append(res, OptNotifyMQTTBroker(s))
	}
	s = c.Notify.MQTTTopic
	if s != "" {
		res = append(res, OptNotifyMQTTTopic(s))
	}
	s = c.Notify.MQTTClientID
	if s != "" {
		res = append(res, OptNotifyMQTTClientID(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidDuration(name string, d time.Duration) bool {
	res := d > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive duration, ignoring %s",
			name, d)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Store.Backend": {"memory": s, "sqlite": s, "postgres": s},
		"Store.Postgres.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
