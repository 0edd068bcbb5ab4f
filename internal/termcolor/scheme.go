package termcolor

import (
	"strconv"
	"strings"
)

// ThemeEnv pins the background scheme when terminal detection guesses wrong.
const ThemeEnv = "MINIGREP_THEME"

type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

func (s Scheme) String() string {
	switch s {
	case SchemeDark:
		return "dark"
	case SchemeLight:
		return "light"
	default:
		return "unknown"
	}
}

// DetectScheme guesses whether the terminal background is light or dark.
// MINIGREP_THEME wins, then the background slot of COLORFGBG, then a "light"
// hint in TERM. Anything else is treated as dark.
func DetectScheme(env map[string]string) Scheme {
	if env == nil {
		return SchemeDark
	}
	switch strings.ToLower(strings.TrimSpace(env[ThemeEnv])) {
	case "light":
		return SchemeLight
	case "dark":
		return SchemeDark
	}
	if bg, ok := colorfgbgBackground(env["COLORFGBG"]); ok {
		if bg >= 7 {
			return SchemeLight
		}
		return SchemeDark
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}

// colorfgbgBackground reads "fg;bg" or "fg;default;bg" and returns bg.
func colorfgbgBackground(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	parts := strings.Split(raw, ";")
	last := strings.TrimSpace(parts[len(parts)-1])
	if last == "" && len(parts) >= 2 {
		last = strings.TrimSpace(parts[len(parts)-2])
	}
	bg, err := strconv.Atoi(last)
	if err != nil || bg < 0 {
		return 0, false
	}
	return bg, true
}
