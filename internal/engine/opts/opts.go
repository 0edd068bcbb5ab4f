package opts

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/phyten/minigrep/internal/engine"
)

const (
	// DefaultMaxBytes caps how much text a single search reads.
	DefaultMaxBytes = 64 << 20
	maxWidthLimit   = 4096
)

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}

	outputFormats = []string{"plain", "table", "json", "ndjson", "csv", "markdown", "html"}
	markerNames   = []string{"auto", "ansi", "bracket", "none"}
)

// Options carries everything the CLI and the HTTP API resolve before a
// search: the engine toggles plus presentation settings.
type Options struct {
	Query       string
	IgnoreCase  bool
	Highlight   bool
	LineNumbers bool
	Marker      string // auto|ansi|bracket|none
	Color       string // auto|always|never
	Output      string
	MaxWidth    int
	MaxBytes    int
}

// Defaults returns the shared baseline options for both CLI and Web inputs.
// Highlighting is on unless switched off.
func Defaults() Options {
	return Options{
		IgnoreCase:  false,
		Highlight:   true,
		LineNumbers: false,
		Marker:      "auto",
		Color:       "auto",
		Output:      "plain",
		MaxWidth:    0,
		MaxBytes:    DefaultMaxBytes,
	}
}

// EngineConfig builds the engine configuration with the given marker.
func (o Options) EngineConfig(marker engine.Marker) engine.Config {
	return engine.Config{
		Query:       o.Query,
		IgnoreCase:  o.IgnoreCase,
		Highlight:   o.Highlight,
		LineNumbers: o.LineNumbers,
		Marker:      marker,
	}
}

// ApplyWebQueryToOptions copies recognised values from the query string into the
// provided options. Validation happens separately via NormalizeAndValidate.
func ApplyWebQueryToOptions(def Options, q url.Values) (Options, error) {
	out := def

	// The query is literal text: no trimming, no comma splitting.
	if vals := q["query"]; len(vals) > 0 {
		out.Query = vals[len(vals)-1]
	}
	if raw, ok := lastLiteralValue(q["ignore_case"]); ok {
		v, err := ParseBool(raw, "ignore_case")
		if err != nil {
			return out, err
		}
		out.IgnoreCase = v
	}
	if raw, ok := lastLiteralValue(q["highlight"]); ok {
		v, err := ParseBool(raw, "highlight")
		if err != nil {
			return out, err
		}
		out.Highlight = v
	}
	if raw, ok := lastLiteralValue(q["line_numbers"]); ok {
		v, err := ParseBool(raw, "line_numbers")
		if err != nil {
			return out, err
		}
		out.LineNumbers = v
	}
	if raw, ok := lastLiteralValue(q["marker"]); ok {
		out.Marker = raw
	}
	if raw, ok := lastLiteralValue(q["max_width"]); ok {
		n, err := ParseIntInRange(raw, "max_width", 0, maxWidthLimit)
		if err != nil {
			return out, err
		}
		out.MaxWidth = n
	}

	return out, nil
}

// NormalizeAndValidate ensures the options are canonical and within the allowed ranges.
func NormalizeAndValidate(o *Options) error {
	marker, err := NormalizeMarker(o.Marker)
	if err != nil {
		return err
	}
	o.Marker = marker

	o.Color = strings.ToLower(strings.TrimSpace(o.Color))
	switch o.Color {
	case "", "auto":
		o.Color = "auto"
	case "always", "never":
	default:
		return fmt.Errorf("invalid --color: %s", o.Color)
	}

	output, err := NormalizeOutput(o.Output)
	if err != nil {
		return err
	}
	o.Output = output

	if o.MaxWidth < 0 || o.MaxWidth > maxWidthLimit {
		return fmt.Errorf("max_width must be between 0 and %d", maxWidthLimit)
	}
	if o.MaxBytes < 0 {
		return fmt.Errorf("max_bytes must be >= 0")
	}
	if o.MaxBytes == 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	return nil
}

// ParseBool converts a string literal into a boolean, accepting multiple synonyms.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within [min, max].
// If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	if n < min {
		if max >= min {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if max >= min && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// NormalizeOutput validates and lower-cases the CLI/Web output format value.
func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "plain", nil
	}
	if v == "md" {
		return "markdown", nil
	}
	for _, f := range outputFormats {
		if v == f {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid --output: %s (want one of %s)", value, strings.Join(outputFormats, "|"))
}

// NormalizeMarker validates the highlight marker name.
func NormalizeMarker(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "auto", nil
	}
	for _, m := range markerNames {
		if v == m {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid --marker: %s (want one of %s)", value, strings.Join(markerNames, "|"))
}

// SplitMulti turns repeated query parameters (and comma-separated values) into a flat slice.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			part := strings.TrimSpace(piece)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func parseInt(raw, key string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}

func lastLiteralValue(vals []string) (string, bool) {
	flat := SplitMulti(vals)
	if len(flat) == 0 {
		return "", false
	}
	return flat[len(flat)-1], true
}
