package engine

// Span is a byte range [Start, End) within a source line.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Marker visually distinguishes a located substring.
type Marker interface {
	Mark(s string) string
}

// MarkerFunc adapts an ordinary function to the Marker interface.
type MarkerFunc func(string) string

// Mark calls f(s).
func (f MarkerFunc) Mark(s string) string {
	return f(s)
}

// BracketMarker wraps text between Open and Close.
type BracketMarker struct {
	Open  string
	Close string
}

// Mark returns s wrapped in the configured brackets.
func (b BracketMarker) Mark(s string) string {
	return b.Open + s + b.Close
}

// DefaultMarker is used when Config.Marker is nil.
var DefaultMarker Marker = BracketMarker{Open: "[", Close: "]"}

// PlainMarker leaves text unchanged. Highlighting stays "on" (so lines are
// not trimmed) but nothing is drawn around the match.
var PlainMarker Marker = MarkerFunc(func(s string) string { return s })

// Config is the resolved set of options consumed by Search and Run.
type Config struct {
	Query       string
	IgnoreCase  bool
	Highlight   bool
	LineNumbers bool
	Marker      Marker `json:"-"`
}

func (c Config) marker() Marker {
	if c.Marker == nil {
		return DefaultMarker
	}
	return c.Marker
}

// Match is one matching source line.
type Match struct {
	Index   int    `json:"index"`
	Text    string `json:"text"`
	Display string `json:"display"`
	Span    Span   `json:"span"`
}

// Result is the outcome of Run.
type Result struct {
	Matches []Match `json:"matches"`
	Lines   int     `json:"lines"`
	Total   int     `json:"total"`
}

// Displays returns the display strings of every match in order.
func (r *Result) Displays() []string {
	if r == nil {
		return []string{}
	}
	out := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Display
	}
	return out
}
