package engine

import "testing"

func TestContains(t *testing.T) {
	cases := []struct {
		query, line string
		ignoreCase  bool
		want        bool
	}{
		{"duct", "safe, fast, productive.", false, true},
		{"Duct", "safe, fast, productive.", false, false},
		{"Duct", "safe, fast, productive.", true, true},
		{"rUsT", "Trust me.", true, true},
		{"rUsT", "Trust me.", false, false},
		{"", "anything", false, true},
		{"", "", true, true},
		{"ÄPFEL", "grüne äpfel", true, true},
		{"ÄPFEL", "grüne äpfel", false, false},
		{"ΣΟΦΙΑ", "σοφια", true, true},
	}
	for _, tc := range cases {
		if got := Contains(tc.query, tc.line, tc.ignoreCase); got != tc.want {
			t.Fatalf("Contains(%q, %q, %v) = %v, want %v", tc.query, tc.line, tc.ignoreCase, got, tc.want)
		}
	}
}

func TestLocateKeepsOriginalCasing(t *testing.T) {
	cases := []struct {
		name  string
		query string
		line  string
		want  string
	}{
		{name: "ASCII", query: "rust", line: "I TRUST you", want: "RUST"},
		{name: "Umlaut", query: "äpfel", line: "Grüne ÄPFEL", want: "ÄPFEL"},
		// U+0130 lowercases to two runes, so lowered offsets drift from the original.
		{name: "DottedCapitalI", query: "x", line: "\u0130\u0130x", want: "x"},
		{name: "KelvinSign", query: "k", line: "5 \u212a", want: "\u212a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			span, ok := Locate(tc.query, tc.line, true)
			if !ok {
				t.Fatalf("Locate(%q, %q) found nothing", tc.query, tc.line)
			}
			if got := tc.line[span.Start:span.End]; got != tc.want {
				t.Fatalf("Locate(%q, %q) = %q (%+v), want %q", tc.query, tc.line, got, span, tc.want)
			}
		})
	}
}

func TestLocateCaseSensitive(t *testing.T) {
	span, ok := Locate("duct", "productive duct", false)
	if !ok || span != (Span{Start: 3, End: 7}) {
		t.Fatalf("unexpected span %+v ok=%v", span, ok)
	}
	if _, ok := Locate("DUCT", "productive", false); ok {
		t.Fatal("case-sensitive Locate must not fold case")
	}
}

func TestLocateEmptyQuery(t *testing.T) {
	for _, ignoreCase := range []bool{false, true} {
		span, ok := Locate("", "\u0130abc", ignoreCase)
		if !ok || span.Len() != 0 || span.Start != 0 {
			t.Fatalf("ignoreCase=%v: unexpected span %+v ok=%v", ignoreCase, span, ok)
		}
	}
}

func TestLocateInvalidUTF8(t *testing.T) {
	line := "ab\xffCD"
	span, ok := Locate("cd", line, true)
	if !ok {
		t.Fatal("expected a match after an invalid byte")
	}
	if got := line[span.Start:span.End]; got != "CD" {
		t.Fatalf("got %q want %q", got, "CD")
	}
}
