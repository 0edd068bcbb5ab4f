package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/minigrep/internal/engine"
)

// Report is the JSON document for one search.
type Report struct {
	ID      string      `json:"id,omitempty"`
	Query   string      `json:"query"`
	Lines   int         `json:"lines"`
	Total   int         `json:"total"`
	Matches []MatchView `json:"matches"`
}

// MatchView is a match as exposed to JSON clients.
type MatchView struct {
	Index   int         `json:"index"`
	Text    string      `json:"text"`
	Display string      `json:"display"`
	Span    engine.Span `json:"span"`
	HTML    string      `json:"html,omitempty"`
}

// NewReport converts res into a Report. Matches is never nil.
func NewReport(query string, res *engine.Result) Report {
	rep := Report{Query: query, Matches: []MatchView{}}
	if res == nil {
		return rep
	}
	rep.Lines = res.Lines
	rep.Total = res.Total
	for _, m := range res.Matches {
		rep.Matches = append(rep.Matches, MatchView{
			Index:   m.Index,
			Text:    m.Text,
			Display: m.Display,
			Span:    m.Span,
		})
	}
	return rep
}

// WithHTML fills MatchView.HTML from a second run of the same search made
// with HTMLMarker. Matches are paired by position.
func (r Report) WithHTML(marked *engine.Result) Report {
	if marked == nil {
		return r
	}
	for i := range r.Matches {
		if i >= len(marked.Matches) {
			break
		}
		r.Matches[i].HTML = RenderHTML(marked.Matches[i].Display)
	}
	return r
}

// WriteJSON writes rep as a single indented JSON document.
func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteNDJSON streams matches as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, matches []engine.Match) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, m := range matches {
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}
