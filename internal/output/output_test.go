package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phyten/minigrep/internal/engine"
)

const samplePoem = "Rust:\nsafe, fast, productive.\nPick three.\nDuct tape.\nTrust me."

func sampleResult(t *testing.T) *engine.Result {
	t.Helper()
	res := engine.Run(engine.Config{Query: "duct", IgnoreCase: true, Highlight: true}, samplePoem)
	if res.Total != 2 {
		t.Fatalf("sample search should yield 2 matches, got %d", res.Total)
	}
	return res
}

func TestWritePlain(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlain(&buf, sampleResult(t), 0); err != nil {
		t.Fatalf("WritePlain failed: %v", err)
	}
	want := "safe, fast, pro[duct]ive.\n[Duct] tape.\n"
	if buf.String() != want {
		t.Fatalf("WritePlain = %q, want %q", buf.String(), want)
	}
}

func TestWritePlainTruncates(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlain(&buf, sampleResult(t), 8); err != nil {
		t.Fatalf("WritePlain failed: %v", err)
	}
	want := "safe, f…\n[Duct] …\n"
	if buf.String() != want {
		t.Fatalf("WritePlain = %q, want %q", buf.String(), want)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleResult(t), Options{}); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	assertGolden(t, "want-table.txt", buf.String())
}

func TestWriteTableColor(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleResult(t), Options{Color: true}); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "\x1b[1;4mLINE  TEXT\x1b[0m\n") {
		t.Fatalf("header should be styled, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "\x1b[2m   1\x1b[0m  safe") {
		t.Fatalf("line number should be dimmed, got %q", buf.String())
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleResult(t).Matches); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	assertGolden(t, "want-csv.csv", buf.String())
	if !strings.Contains(buf.String(), "\r\n") {
		t.Fatal("CSV output should use CRLF line endings")
	}
}

func TestWriteNDJSON(t *testing.T) {
	res := sampleResult(t)
	var buf bytes.Buffer
	if err := WriteNDJSON(&buf, res.Matches); err != nil {
		t.Fatalf("WriteNDJSON failed: %v", err)
	}
	output := buf.String()
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != len(res.Matches) {
		t.Fatalf("expected %d lines, got %d", len(res.Matches), len(lines))
	}
	for i, line := range lines {
		var m engine.Match
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("failed to decode line %d: %v", i, err)
		}
		if m != res.Matches[i] {
			t.Fatalf("line %d decoded to %+v, want %+v", i, m, res.Matches[i])
		}
	}
	assertGolden(t, "want-ndjson.ndjson", output)
}

func TestWriteNDJSONDoesNotEscapeHTML(t *testing.T) {
	var buf bytes.Buffer
	matches := []engine.Match{{Index: 0, Text: "<b>", Display: "<b>"}}
	if err := WriteNDJSON(&buf, matches); err != nil {
		t.Fatalf("WriteNDJSON failed: %v", err)
	}
	if strings.Contains(buf.String(), "\\u003c") {
		t.Fatal("HTML characters should not be escaped in NDJSON output")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewReport("duct", sampleResult(t))); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	assertGolden(t, "want-json.json", buf.String())
}

func TestNewReportEmpty(t *testing.T) {
	rep := NewReport("nothing", engine.Run(engine.Config{Query: "nothing"}, samplePoem))
	if rep.Matches == nil || len(rep.Matches) != 0 {
		t.Fatalf("expected empty non-nil matches, got %#v", rep.Matches)
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, rep); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"matches": []`) {
		t.Fatalf("empty matches should encode as [], got %s", buf.String())
	}
	if rep := NewReport("q", nil); rep.Matches == nil {
		t.Fatal("nil result should still give non-nil matches")
	}
}

func TestWriteMarkdownTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdownTable(&buf, sampleResult(t).Matches); err != nil {
		t.Fatalf("WriteMarkdownTable failed: %v", err)
	}
	assertGolden(t, "want-md.md", buf.String())
}

func TestWriteMarkdownEscapesCells(t *testing.T) {
	var buf bytes.Buffer
	matches := []engine.Match{{Index: 2, Display: `a | b <i> c\d`}}
	if err := WriteMarkdownTable(&buf, matches); err != nil {
		t.Fatalf("WriteMarkdownTable failed: %v", err)
	}
	if !strings.Contains(buf.String(), `| 2 | a \| b &lt;i> c\\d |`) {
		t.Fatalf("cell not escaped: %q", buf.String())
	}
}

func TestRenderHTML(t *testing.T) {
	display := HTMLMarker.Mark("<duct>") + " & tape"
	got := RenderHTML(display)
	want := "<mark>&lt;duct&gt;</mark> &amp; tape"
	if got != want {
		t.Fatalf("RenderHTML = %q, want %q", got, want)
	}
}

func TestRenderHTMLStripsInjectedMarkup(t *testing.T) {
	got := RenderHTML(`<script>alert(1)</script>`)
	if strings.Contains(got, "<script>") {
		t.Fatalf("script tag leaked: %q", got)
	}
}

func TestWriteHTML(t *testing.T) {
	res := engine.Run(engine.Config{Query: "duct", IgnoreCase: true, Highlight: true, Marker: HTMLMarker}, samplePoem)
	var buf bytes.Buffer
	if err := WriteHTML(&buf, res.Matches); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<ol class="minigrep-results">`,
		`<li value="1"><code>safe, fast, pro<mark>duct</mark>ive.</code></li>`,
		`<li value="3"><code><mark>Duct</mark> tape.</code></li>`,
		"</ol>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("WriteHTML output missing %q:\n%s", want, out)
		}
	}
}

func TestSelectMarker(t *testing.T) {
	star := engine.MarkerFunc(func(s string) string { return "*" + s + "*" })
	cases := []struct {
		name     string
		marker   string
		format   string
		terminal engine.Marker
		want     string
	}{
		{"auto plain with color", "auto", FormatPlain, star, "*x*"},
		{"auto plain without color", "auto", FormatPlain, nil, "x"},
		{"auto table", "auto", FormatTable, star, "*x*"},
		{"auto json", "auto", FormatJSON, star, "[x]"},
		{"auto csv", "auto", FormatCSV, nil, "[x]"},
		{"auto markdown", "auto", FormatMarkdown, star, "**x**"},
		{"auto html", "auto", FormatHTML, star, "\uE000x\uE001"},
		{"bracket", "bracket", FormatPlain, star, "[x]"},
		{"none", "none", FormatJSON, star, "x"},
		{"ansi", "ansi", FormatJSON, star, "*x*"},
		{"ansi without color", "ansi", FormatPlain, nil, "x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectMarker(tc.marker, tc.format, tc.terminal).Mark("x")
			if got != tc.want {
				t.Fatalf("SelectMarker(%q, %q).Mark = %q, want %q", tc.marker, tc.format, got, tc.want)
			}
		})
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, "yaml", nil, Options{}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWriteDispatch(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "", sampleResult(t), Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.String() != "safe, fast, pro[duct]ive.\n[Duct] tape.\n" {
		t.Fatalf("default format should be plain, got %q", buf.String())
	}
}

func assertGolden(t *testing.T, name, got string) {
	t.Helper()
	path := filepath.Join("testdata", name)
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v", name, err)
	}
	if diff := diffStrings(string(want), got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func diffStrings(want, got string) string {
	if want == got {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("want:\n")
	buf.WriteString(want)
	if !strings.HasSuffix(want, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("got:\n")
	buf.WriteString(got)
	return buf.String()
}

func TestReportWithHTML(t *testing.T) {
	cfg := engine.Config{Query: "duct", IgnoreCase: true, Highlight: true}
	rep := NewReport("duct", engine.Run(cfg, samplePoem))
	cfg.Marker = HTMLMarker
	rep = rep.WithHTML(engine.Run(cfg, samplePoem))
	if got := rep.Matches[0].HTML; got != "safe, fast, pro<mark>duct</mark>ive." {
		t.Fatalf("HTML[0] = %q", got)
	}
	if got := rep.Matches[0].Display; got != "safe, fast, pro[duct]ive." {
		t.Fatalf("Display should keep the bracket marker, got %q", got)
	}
	if got := rep.Matches[1].HTML; got != "<mark>Duct</mark> tape." {
		t.Fatalf("HTML[1] = %q", got)
	}
}
