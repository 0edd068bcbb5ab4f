package termcolor

import (
	"github.com/phyten/minigrep/internal/colorutil"
	"github.com/phyten/minigrep/internal/engine"
)

var (
	darkBackground  = colorutil.RGB{R: 30, G: 30, B: 30}
	lightBackground = colorutil.RGB{R: 249, G: 250, B: 251}

	matchGreenDark  = colorutil.RGB{R: 78, G: 201, B: 78}
	matchGreenLight = colorutil.RGB{R: 26, G: 127, B: 55}
)

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// LineNumberStyle dims the "N :" prefix in table output.
func LineNumberStyle() Style {
	return Style{Dim: true}
}

// HighlightStyle returns the style for matched text: green, tuned per
// profile and scheme so it stays readable on light backgrounds.
func HighlightStyle(scheme Scheme, profile Profile) Style {
	fg, bg := matchGreenDark, darkBackground
	if scheme == SchemeLight {
		fg, bg = matchGreenLight, lightBackground
	}
	fg = colorutil.EnsureContrast(fg, bg, 4.5)
	switch profile {
	case ProfileTrueColor:
		rgb := [3]uint8{fg.R, fg.G, fg.B}
		return Style{Bold: true, FGTrue: &rgb}
	case ProfileANSI256:
		idx := rgbToANSI256(fg.R, fg.G, fg.B)
		return Style{Bold: true, FG256: &idx}
	default:
		color := 2
		return Style{Bold: true, FGBasic: &color}
	}
}

// Marker returns an engine.Marker that paints matches with s. When enabled
// is false the marker leaves text untouched.
func Marker(s Style, enabled bool) engine.Marker {
	return engine.MarkerFunc(func(text string) string {
		return Apply(s, text, enabled)
	})
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}
