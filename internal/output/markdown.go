package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/minigrep/internal/engine"
)

// WriteMarkdownTable renders matches as a GitHub Flavored Markdown table.
func WriteMarkdownTable(w io.Writer, matches []engine.Match) error {
	if _, err := io.WriteString(w, "| Line | Text |\n| ---: | --- |\n"); err != nil {
		return err
	}
	for _, m := range matches {
		if _, err := fmt.Fprintf(w, "| %d | %s |\n", m.Index, escapeMarkdownCell(m.Display)); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdownCell(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return s
}
