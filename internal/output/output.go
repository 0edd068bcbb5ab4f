package output

import (
	"fmt"
	"io"

	"github.com/phyten/minigrep/internal/engine"
)

// Format names accepted by Write.
const (
	FormatPlain    = "plain"
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatNDJSON   = "ndjson"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Options tune how a Result is rendered.
type Options struct {
	Query    string
	MaxWidth int  // 0 disables truncation (plain and table only)
	Color    bool // style table headers and line numbers
}

// Write renders res in the given format.
func Write(w io.Writer, format string, res *engine.Result, opt Options) error {
	if res == nil {
		res = &engine.Result{Matches: []engine.Match{}}
	}
	switch format {
	case "", FormatPlain:
		return WritePlain(w, res, opt.MaxWidth)
	case FormatTable:
		return WriteTable(w, res, opt)
	case FormatJSON:
		return WriteJSON(w, NewReport(opt.Query, res))
	case FormatNDJSON:
		return WriteNDJSON(w, res.Matches)
	case FormatCSV:
		return WriteCSV(w, res.Matches)
	case FormatMarkdown:
		return WriteMarkdownTable(w, res.Matches)
	case FormatHTML:
		return WriteHTML(w, res.Matches)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// SelectMarker maps a marker name to the engine.Marker used for format.
// "auto" follows the format: <mark> for HTML, bold for Markdown, brackets
// for machine formats and the terminal marker (or nothing, when color is
// off) for plain and table output. terminal may be nil.
func SelectMarker(name, format string, terminal engine.Marker) engine.Marker {
	switch name {
	case "bracket":
		return engine.DefaultMarker
	case "none":
		return engine.PlainMarker
	case "ansi":
		if terminal != nil {
			return terminal
		}
		return engine.PlainMarker
	}
	switch format {
	case FormatHTML:
		return HTMLMarker
	case FormatMarkdown:
		return engine.BracketMarker{Open: "**", Close: "**"}
	case FormatJSON, FormatNDJSON, FormatCSV:
		return engine.DefaultMarker
	}
	if terminal != nil {
		return terminal
	}
	return engine.PlainMarker
}
