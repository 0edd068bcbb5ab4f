package config

import "strings"

// Merge applies layers over base in order; later layers win.
func Merge(base Settings, layers ...Config) Settings {
	out := base
	for _, layer := range layers {
		out.IgnoreCase = ResolveBool(out.IgnoreCase, layer.Search.IgnoreCase)
		out.Highlight = ResolveBool(out.Highlight, layer.Search.Highlight)
		out.LineNumbers = ResolveBool(out.LineNumbers, layer.Search.LineNumbers)
		out.MaxBytes = ResolveInt(out.MaxBytes, layer.Search.MaxBytes)
		out.Marker = ResolveAndTrim(out.Marker, layer.Display.Marker)
		out.Color = ResolveAndTrim(out.Color, layer.Display.Color)
		out.Output = ResolveAndTrim(out.Output, layer.Display.Output)
		out.MaxWidth = ResolveInt(out.MaxWidth, layer.Display.MaxWidth)
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "plain"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	if strings.TrimSpace(out.Marker) == "" {
		out.Marker = "auto"
	}
	return out
}
