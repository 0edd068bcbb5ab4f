package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/phyten/minigrep/internal/engine"
)

var csvHeader = []string{"index", "text", "display", "start", "end"}

// WriteCSV renders matches as RFC 4180 compliant CSV (including CRLF endings).
func WriteCSV(w io.Writer, matches []engine.Match) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, m := range matches {
		row := []string{
			strconv.Itoa(m.Index),
			m.Text,
			m.Display,
			strconv.Itoa(m.Span.Start),
			strconv.Itoa(m.Span.End),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
