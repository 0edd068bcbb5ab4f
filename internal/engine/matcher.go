package engine

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// matcher holds the per-search state for one query. It is not safe for
// concurrent use because cases.Caser keeps internal state.
type matcher struct {
	query      string
	folded     string
	ignoreCase bool
	caser      cases.Caser
}

func newMatcher(query string, ignoreCase bool) *matcher {
	m := &matcher{query: query, ignoreCase: ignoreCase}
	if ignoreCase {
		m.caser = cases.Lower(language.Und)
		m.folded, _ = m.lower(query, false)
	}
	return m
}

// Contains reports whether query occurs in line.
func Contains(query, line string, ignoreCase bool) bool {
	return newMatcher(query, ignoreCase).contains(line)
}

// Locate returns the byte span of the first occurrence of query in line.
// With ignoreCase the search runs on the lowercased forms and the span is
// mapped back onto the original bytes, so line[span.Start:span.End] keeps
// the source casing.
func Locate(query, line string, ignoreCase bool) (Span, bool) {
	return newMatcher(query, ignoreCase).locate(line)
}

func (m *matcher) contains(line string) bool {
	if !m.ignoreCase {
		return strings.Contains(line, m.query)
	}
	lowered, _ := m.lower(line, false)
	return strings.Contains(lowered, m.folded)
}

func (m *matcher) locate(line string) (Span, bool) {
	if !m.ignoreCase {
		idx := strings.Index(line, m.query)
		if idx < 0 {
			return Span{}, false
		}
		return Span{Start: idx, End: idx + len(m.query)}, true
	}
	lowered, offsets := m.lower(line, true)
	idx := strings.Index(lowered, m.folded)
	if idx < 0 {
		return Span{}, false
	}
	if offsets == nil {
		return Span{Start: idx, End: idx + len(m.folded)}, true
	}
	if len(m.folded) == 0 {
		start := len(line)
		if idx < len(offsets) {
			start = offsets[idx].start
		}
		return Span{Start: start, End: start}, true
	}
	return Span{Start: offsets[idx].start, End: offsets[idx+len(m.folded)-1].end}, true
}

// runeOrigin records which original rune a lowered byte came from.
type runeOrigin struct {
	start int
	end   int
}

// lower returns the lowercase form of s. When withOffsets is set and the
// lowered form is not byte-aligned with s, it also returns one runeOrigin
// per lowered byte. A nil table means offsets are the identity.
func (m *matcher) lower(s string, withOffsets bool) (string, []runeOrigin) {
	if isASCII(s) {
		return strings.ToLower(s), nil
	}
	var b strings.Builder
	b.Grow(len(s))
	var offsets []runeOrigin
	if withOffsets {
		offsets = make([]runeOrigin, 0, len(s))
	}
	aligned := true
	for pos, r := range s {
		width := utf8.RuneLen(r)
		piece := ""
		if r == utf8.RuneError {
			_, width = utf8.DecodeRuneInString(s[pos:])
			piece = s[pos : pos+width]
		} else {
			piece = m.caser.String(string(r))
		}
		if len(piece) != width {
			aligned = false
		}
		b.WriteString(piece)
		if withOffsets {
			for i := 0; i < len(piece); i++ {
				offsets = append(offsets, runeOrigin{start: pos, end: pos + width})
			}
		}
	}
	if aligned {
		return b.String(), nil
	}
	return b.String(), offsets
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
