package engine

import (
	"strconv"
	"strings"
)

// Format renders a matching line for display. The steps run in a fixed
// order: trim (only when highlighting is off), highlight, line-number prefix.
func Format(line string, index int, cfg Config) string {
	return formatLine(newMatcher(cfg.Query, cfg.IgnoreCase), line, index, cfg)
}

func formatLine(m *matcher, line string, index int, cfg Config) string {
	out := line
	if cfg.Highlight {
		out = highlight(m, out, cfg.marker())
	} else {
		out = strings.TrimSpace(out)
	}
	if cfg.LineNumbers {
		out = strconv.Itoa(index) + " : " + out
	}
	return out
}

// highlight marks every copy of the first located substring. In
// case-insensitive mode only copies with the same casing as the first hit
// are marked.
func highlight(m *matcher, line string, mk Marker) string {
	span, ok := m.locate(line)
	if !ok || span.Len() == 0 {
		return line
	}
	found := line[span.Start:span.End]
	return strings.ReplaceAll(line, found, mk.Mark(found))
}
