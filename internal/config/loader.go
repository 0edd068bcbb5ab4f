package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/phyten/minigrep/internal/engine/opts"
)

var searchKeyMap = map[string]string{
	"ignore_case":       "ignore_case",
	"case_insensitive":  "ignore_case",
	"highlight":         "highlight",
	"line_numbers":      "line_numbers",
	"show_line_numbers": "line_numbers",
	"max_bytes":         "max_bytes",
}

var displayKeyMap = map[string]string{
	"marker":    "marker",
	"color":     "color",
	"colour":    "color",
	"output":    "output",
	"max_width": "max_width",
	"width":     "max_width",
}

// Load decodes a YAML, TOML or JSON config file. Keys may sit inside the
// "search"/"display" sections or at the top level. An empty path yields an
// empty layer.
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var raw map[string]any
	switch ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	searchSection := make(map[string]any)
	displaySection := make(map[string]any)

	sections := []struct {
		name    string
		dst     map[string]any
		allowed map[string]string
	}{
		{"search", searchSection, searchKeyMap},
		{"display", displaySection, displayKeyMap},
	}
	for _, sec := range sections {
		block, ok := raw[sec.name]
		if !ok {
			continue
		}
		sub, err := toStringKeyMap(block)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", sec.name, err)
		}
		if err := fillSection(sec.dst, sub, sec.allowed, sec.name); err != nil {
			return cfg, err
		}
	}

	// Top-level keys override the sections.
	for key, value := range raw {
		norm := normalizeKey(key)
		switch norm {
		case "search", "display":
			continue
		default:
			if canonical, ok := searchKeyMap[norm]; ok {
				searchSection[canonical] = value
				continue
			}
			if canonical, ok := displayKeyMap[norm]; ok {
				displaySection[canonical] = value
				continue
			}
			return cfg, fmt.Errorf("unknown config key: %s", key)
		}
	}

	if err := assignSearch(searchSection, &cfg.Search); err != nil {
		return cfg, fmt.Errorf("search: %w", err)
	}
	if err := assignDisplay(displaySection, &cfg.Display); err != nil {
		return cfg, fmt.Errorf("display: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignSearch(section map[string]any, dst *SearchConfig) error {
	for key, value := range section {
		switch key {
		case "ignore_case", "highlight", "line_numbers":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			switch key {
			case "ignore_case":
				dst.IgnoreCase = &b
			case "highlight":
				dst.Highlight = &b
			default:
				dst.LineNumbers = &b
			}
		case "max_bytes":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.MaxBytes = &n
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func assignDisplay(section map[string]any, dst *DisplayConfig) error {
	for key, value := range section {
		switch key {
		case "marker", "color", "output":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			switch key {
			case "marker":
				dst.Marker = &trimmed
			case "color":
				dst.Color = &trimmed
			default:
				dst.Output = &trimmed
			}
		case "max_width":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.MaxWidth = &n
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return opts.ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		n, err := strconv.Atoi(trimmed)
		if trimmed == "" || err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
	}
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	norm = strings.ReplaceAll(norm, "-", "_")
	return norm
}
