package config

import (
	"github.com/phyten/minigrep/internal/engine/opts"
)

// Normalize validates merged settings through the same rules as CLI and
// web input.
func Normalize(values Settings) (Settings, error) {
	o := opts.Options{}
	values.ApplyToOptions(&o)
	if err := opts.NormalizeAndValidate(&o); err != nil {
		return values, err
	}
	return SettingsFromOptions(o), nil
}
