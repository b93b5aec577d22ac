// Package config reads settings from the environment under a prefix.
//
// May* accessors warn and fall back to their default when a value does not
// parse. MayEnum panics on a value outside its allowed set
package config

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"muzzle/internal/platform/logger"

	"github.com/joho/godotenv"
)

// Conf is a namespaced view over environment variables, e.g. Prefix("MUZZLE_API_")
type Conf struct{ prefix string }

// New returns the root view
func New() Conf { return Conf{} }

// Prefix returns a child view with p appended to the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the full variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

// LoadDotenv loads KEY=VALUE files into the environment without overriding
// variables that are already set. Missing files are skipped; with no paths ".env" is tried
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		logger.Named("config").Debug().Str("file", p).Msg("dotenv loaded")
	}
	return nil
}

// parsed reads key through parse. Unset returns def; a bad value warns and returns def
func parsed[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().
			Str("key", c.Key(key)).
			Str("value", s).
			Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	return parsed(c, key, def, "string", func(s string) (string, error) { return s, nil })
}

// MayInt returns the value or def
func (c Conf) MayInt(key string, def int) int {
	return parsed(c, key, def, "int", strconv.Atoi)
}

// MayBool accepts strconv bools plus yes, no, on and off
func (c Conf) MayBool(key string, def bool) bool {
	return parsed(c, key, def, "bool", parseBool)
}

// MayDuration accepts Go durations like 250ms or 2s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return parsed(c, key, def, "duration", time.ParseDuration)
}

// MayCSV splits a comma separated value and drops blank items.
// A value with no items left returns def
func (c Conf) MayCSV(key string, def []string) []string {
	out := parsed(c, key, nil, "list", func(s string) ([]string, error) {
		var items []string
		for _, p := range strings.Split(s, ",") {
			if v := strings.TrimSpace(p); v != "" {
				items = append(items, v)
			}
		}
		return items, nil
	})
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the lowercased value when it is one of allowed and def when unset.
// Any other value panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := strings.ToLower(c.MayString(key, def))
	if v == "" || slices.ContainsFunc(allowed, func(a string) bool { return strings.EqualFold(a, v) }) {
		return v
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}
