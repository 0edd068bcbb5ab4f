package engine

import (
	"bufio"
	"bytes"
	"strings"
)

// Search returns the display form of every line in text that contains
// cfg.Query, in source order. No match yields an empty, non-nil slice.
func Search(cfg Config, text string) []string {
	return Run(cfg, text).Displays()
}

// Run is Search with the raw line, index and match span kept for each hit.
func Run(cfg Config, text string) *Result {
	lines := SplitLines(text)
	res := &Result{Matches: []Match{}, Lines: len(lines)}
	if len(lines) == 0 {
		return res
	}
	m := newMatcher(cfg.Query, cfg.IgnoreCase)
	for idx, line := range lines {
		span, ok := m.locate(line)
		if !ok {
			continue
		}
		res.Matches = append(res.Matches, Match{
			Index:   idx,
			Text:    line,
			Display: formatLine(m, line, idx, cfg),
			Span:    span,
		})
	}
	res.Total = len(res.Matches)
	return res
}

// SplitLines splits text on \n, \r\n and lone \r. Terminators are not part
// of the lines and a trailing terminator does not add an empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	sc := bufio.NewScanner(strings.NewReader(text))
	// The buffer is sized to the whole input, so ErrTooLong cannot occur.
	sc.Buffer(make([]byte, 0, min(len(text)+1, bufio.MaxScanTokenSize)), len(text)+1)
	sc.Split(ScanUniversalLines)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

// ScanUniversalLines is a bufio.SplitFunc like bufio.ScanLines that also
// treats a lone carriage return as a line terminator.
func ScanUniversalLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			// need one more byte to tell \r from \r\n
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
