package output

import (
	"bufio"
	"io"
	"strconv"

	"github.com/phyten/minigrep/internal/engine"
	"github.com/phyten/minigrep/internal/termcolor"
	"github.com/phyten/minigrep/internal/textutil"
)

const ellipsis = "…"

// WritePlain prints one display line per match.
func WritePlain(w io.Writer, res *engine.Result, maxWidth int) error {
	bw := bufio.NewWriter(w)
	for _, m := range res.Matches {
		line := m.Display
		if maxWidth > 0 {
			line = textutil.TruncateByWidth(line, maxWidth, ellipsis)
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTable prints a LINE/TEXT table with right-aligned line numbers.
func WriteTable(w io.Writer, res *engine.Result, opt Options) error {
	numW := len("LINE")
	for _, m := range res.Matches {
		if n := len(strconv.Itoa(m.Index)); n > numW {
			numW = n
		}
	}
	bw := bufio.NewWriter(w)
	header := textutil.PadLeft("LINE", numW) + "  TEXT"
	if _, err := bw.WriteString(termcolor.Apply(termcolor.HeaderStyle(), header, opt.Color) + "\n"); err != nil {
		return err
	}
	textW := 0
	if opt.MaxWidth > 0 {
		textW = max(opt.MaxWidth-numW-2, 1)
	}
	for _, m := range res.Matches {
		num := termcolor.Apply(termcolor.LineNumberStyle(), textutil.PadLeft(strconv.Itoa(m.Index), numW), opt.Color)
		text := m.Display
		if textW > 0 {
			text = textutil.TruncateByWidth(text, textW, ellipsis)
		}
		if _, err := bw.WriteString(num + "  " + text + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
