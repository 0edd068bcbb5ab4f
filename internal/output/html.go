package output

import (
	"bufio"
	"html"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/phyten/minigrep/internal/engine"
)

// Private-use runes bracket matches until the line has been escaped.
const (
	markOpen  = "\uE000"
	markClose = "\uE001"
)

// HTMLMarker tags matches so RenderHTML can turn them into <mark> elements
// after escaping the rest of the line.
var HTMLMarker engine.Marker = engine.BracketMarker{Open: markOpen, Close: markClose}

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("ol", "li", "code", "mark")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("ol")
	p.AllowAttrs("value").Matching(regexp.MustCompile(`^[0-9]+$`)).OnElements("li")
	return p
}

// RenderHTML escapes a display line produced with HTMLMarker and wraps the
// marked ranges in <mark>. Unbalanced markers are dropped by the sanitizer.
func RenderHTML(display string) string {
	s := html.EscapeString(display)
	s = strings.ReplaceAll(s, markOpen, "<mark>")
	s = strings.ReplaceAll(s, markClose, "</mark>")
	return policy.Sanitize(s)
}

// WriteHTML renders matches as a sanitized <ol> fragment.
func WriteHTML(w io.Writer, matches []engine.Match) error {
	var b strings.Builder
	b.WriteString(`<ol class="minigrep-results">` + "\n")
	for _, m := range matches {
		b.WriteString(`<li value="` + strconv.Itoa(m.Index) + `"><code>`)
		b.WriteString(RenderHTML(m.Display))
		b.WriteString("</code></li>\n")
	}
	b.WriteString("</ol>\n")
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(policy.Sanitize(b.String())); err != nil {
		return err
	}
	return bw.Flush()
}
