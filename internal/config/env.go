package config

import (
	"errors"
	"math"
	"strings"

	"github.com/phyten/minigrep/internal/engine/opts"
)

// Legacy toggles are enabled by presence alone, whatever their value.
const (
	LegacyIgnoreCaseEnv  = "IGNORE_CASE"
	LegacyLineNumbersEnv = "SHOW_LINE_NUMBERS"
)

// FromEnv builds the environment layer. lookup has the signature of
// os.LookupEnv so that set-but-empty variables can be told apart from unset
// ones. MINIGREP_* variables win over the legacy toggles.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	var cfg Config
	var errs []error

	getenv := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}
	setPresence := func(target **bool, key string) {
		if _, ok := lookup(key); ok {
			value := true
			*target = &value
		}
	}
	setString := func(target **string, key string) {
		raw := getenv(key)
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setBool := func(target **bool, key string) {
		raw := getenv(key)
		if raw == "" {
			return
		}
		v, err := opts.ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string, min, max int) {
		raw := getenv(key)
		if raw == "" {
			return
		}
		v, err := opts.ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	setPresence(&cfg.Search.IgnoreCase, LegacyIgnoreCaseEnv)
	setPresence(&cfg.Search.LineNumbers, LegacyLineNumbersEnv)

	setBool(&cfg.Search.IgnoreCase, "MINIGREP_IGNORE_CASE")
	setBool(&cfg.Search.Highlight, "MINIGREP_HIGHLIGHT")
	setBool(&cfg.Search.LineNumbers, "MINIGREP_LINE_NUMBERS")
	setInt(&cfg.Search.MaxBytes, "MINIGREP_MAX_BYTES", 0, math.MaxInt)

	setString(&cfg.Display.Marker, "MINIGREP_MARKER")
	setString(&cfg.Display.Color, "MINIGREP_COLOR")
	setString(&cfg.Display.Output, "MINIGREP_OUTPUT")
	// Range checks beyond >= 0 are left to NormalizeAndValidate so every
	// input path reports the same message.
	setInt(&cfg.Display.MaxWidth, "MINIGREP_MAX_WIDTH", 0, math.MaxInt)

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
