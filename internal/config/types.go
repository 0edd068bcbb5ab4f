package config

import (
	"fmt"

	"github.com/phyten/minigrep/internal/engine/opts"
)

// SearchConfig holds the matching toggles. Nil means "not set in this layer".
type SearchConfig struct {
	IgnoreCase  *bool `yaml:"ignore_case" toml:"ignore_case" json:"ignore_case"`
	Highlight   *bool `yaml:"highlight" toml:"highlight" json:"highlight"`
	LineNumbers *bool `yaml:"line_numbers" toml:"line_numbers" json:"line_numbers"`
	MaxBytes    *int  `yaml:"max_bytes" toml:"max_bytes" json:"max_bytes"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	Marker   *string `yaml:"marker" toml:"marker" json:"marker"`
	Color    *string `yaml:"color" toml:"color" json:"color"`
	Output   *string `yaml:"output" toml:"output" json:"output"`
	MaxWidth *int    `yaml:"max_width" toml:"max_width" json:"max_width"`
}

// Config is one configuration layer (file, env or flags).
type Config struct {
	Search  SearchConfig  `yaml:"search" toml:"search" json:"search"`
	Display DisplayConfig `yaml:"display" toml:"display" json:"display"`
}

// Settings is the merged, fully resolved configuration.
type Settings struct {
	IgnoreCase  bool
	Highlight   bool
	LineNumbers bool
	MaxBytes    int
	Marker      string
	Color       string
	Output      string
	MaxWidth    int
}

func SettingsFromOptions(o opts.Options) Settings {
	return Settings{
		IgnoreCase:  o.IgnoreCase,
		Highlight:   o.Highlight,
		LineNumbers: o.LineNumbers,
		MaxBytes:    o.MaxBytes,
		Marker:      o.Marker,
		Color:       o.Color,
		Output:      o.Output,
		MaxWidth:    o.MaxWidth,
	}
}

func (s Settings) ApplyToOptions(o *opts.Options) {
	if o == nil {
		return
	}
	o.IgnoreCase = s.IgnoreCase
	o.Highlight = s.Highlight
	o.LineNumbers = s.LineNumbers
	o.MaxBytes = s.MaxBytes
	o.Marker = s.Marker
	o.Color = s.Color
	o.Output = s.Output
	o.MaxWidth = s.MaxWidth
}

// ArgumentError reports missing positional arguments. It is raised before
// any search runs.
type ArgumentError struct {
	Expected int
	Received int
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("Insufficient arguments. Expected %d, received %d", e.Expected, e.Received)
}

// CheckArgs returns an *ArgumentError when fewer than want arguments are given.
func CheckArgs(args []string, want int) error {
	if len(args) < want {
		return &ArgumentError{Expected: want, Received: len(args)}
	}
	return nil
}
