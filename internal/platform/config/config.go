// Package config reads application configuration from environment
// variables through namespaced views
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"asolens/internal/platform/logger"
)

// Conf is a namespaced view over environment variables. A root Conf
// sees everything; Prefix("CORE_API_") scopes lookups to one module
type Conf struct{ prefix string }

// New creates a root Conf with no prefix
func New() Conf { return Conf{} }

// Prefix derives a child view, e.g. cfg.Prefix("SERVICE_PGSQL_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// lookup reads and trims the fully-qualified variable.
// ok is false when the value is missing or blank
func (c Conf) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.prefix + key))
	return v, v != ""
}

func (c Conf) missing(key string) {
	logger.Get().Panic().Str("key", c.prefix+key).Msg("missing required env")
}

func (c Conf) invalid(key, value, want string) {
	logger.Get().Panic().
		Str("key", c.prefix+key).
		Str("value", value).
		Str("want", want).
		Msg("invalid env value")
}

// MustString panics when key is missing or empty
func (c Conf) MustString(key string) string {
	v, ok := c.lookup(key)
	if !ok {
		c.missing(key)
	}
	return v
}

// MustInt panics when key is missing, empty, or not an integer
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		c.invalid(key, s, "integer")
	}
	return v
}

// MustURL panics unless key holds an absolute URL
func (c Conf) MustURL(key string) *url.URL {
	s := c.MustString(key)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		c.invalid(key, s, "absolute URL")
	}
	return u
}

// MustPort validates a TCP port and returns it as a listen addr (":4000")
func (c Conf) MustPort(key string) string {
	s := c.MustString(key)
	if p, err := strconv.Atoi(s); err != nil || p < 1 || p > 65535 {
		c.invalid(key, s, "TCP port 1..65535")
	}
	return ":" + s
}

// Require panics unless every key is present and non-empty
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if _, ok := c.lookup(k); !ok {
			c.missing(k)
		}
	}
}

// MayString returns def when key is missing or empty
func (c Conf) MayString(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// MayInt returns def when missing; warns and returns def on a bad value
func (c Conf) MayInt(key string, def int) int {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		c.warnDefault(key, s, "integer")
		return def
	}
	return v
}

// MayBool returns def when missing; warns and returns def on a bad value
func (c Conf) MayBool(key string, def bool) bool {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		c.warnDefault(key, s, "bool")
		return def
	}
	return v
}

// MayDuration returns def when missing; warns and returns def on a bad value
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		c.warnDefault(key, s, "duration like 250ms or 2s")
		return def
	}
	return d
}

// MayCSV splits a comma-separated value, dropping blanks. Returns def
// when the variable is missing or every element is blank
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns def when missing and panics on a value outside allowed
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	c.invalid(key, v, "one of "+strings.Join(allowed, "|"))
	return "" // unreachable
}

func (c Conf) warnDefault(key, value, want string) {
	logger.Get().Warn().
		Str("key", c.prefix+key).
		Str("value", value).
		Str("want", want).
		Msg("invalid env value, using default")
}
