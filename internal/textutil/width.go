package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// ANSI escape sequences (covers common CSI and OSC forms).
var ansiRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

const sgrReset = "\x1b[0m"

// StripANSI removes escape sequences, leaving only printable text.
func StripANSI(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

// VisibleWidth returns terminal display width (wcwidth-based).
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	g := uniseg.NewGraphemes(StripANSI(s))
	width := 0
	for g.Next() {
		width += runewidth.StringWidth(g.Str())
	}
	return width
}

// TruncateByWidth cuts s to at most w columns without splitting graphemes.
// Escape sequences before the cut are kept; if a colour is still active at
// the cut, a reset is appended so styling does not leak. When truncation
// happens and the ellipsis fits, it is appended.
func TruncateByWidth(s string, w int, ellipsis string) string {
	if s == "" || w <= 0 {
		return ""
	}
	if VisibleWidth(s) <= w {
		return s
	}
	ellW := runewidth.StringWidth(ellipsis)
	budget := w - ellW
	if ellW > w {
		budget, ellipsis = w, ""
	}

	var b strings.Builder
	used := 0
	styled := false
	rest := s
	for rest != "" {
		loc := ansiRe.FindStringIndex(rest)
		text := rest
		if loc != nil {
			text = rest[:loc[0]]
		}
		if !takeGraphemes(&b, text, budget, &used) {
			break
		}
		if loc == nil {
			break
		}
		seq := rest[loc[0]:loc[1]]
		b.WriteString(seq)
		if strings.HasPrefix(seq, "\x1b[") && strings.HasSuffix(seq, "m") {
			styled = seq != sgrReset && seq != "\x1b[m"
		}
		rest = rest[loc[1]:]
	}
	b.WriteString(ellipsis)
	if styled {
		b.WriteString(sgrReset)
	}
	return b.String()
}

// takeGraphemes writes graphemes of text while they fit in budget and
// reports whether all of text was consumed.
func takeGraphemes(b *strings.Builder, text string, budget int, used *int) bool {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		seg := g.Str()
		segW := runewidth.StringWidth(seg)
		if *used+segW > budget {
			return false
		}
		b.WriteString(seg)
		*used += segW
	}
	return true
}

// PadRight pads s on the right with spaces so that the visible width equals w.
func PadRight(s string, w int) string {
	pad := w - VisibleWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

// PadLeft pads s on the left with spaces so that the visible width equals w.
func PadLeft(s string, w int) string {
	pad := w - VisibleWidth(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
