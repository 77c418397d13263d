package token

import "testing"

func TestQuote(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", `""`},
		{"abc", `"abc"`},
		{`a"b`, `"a\"b"`},
		{`a\b`, `"a\\b"`},
		{"a\nb", `"a\nb"`},
		{"a\tb", `"a\tb"`},
		{"a\rb", `"a\rb"`},
		{"\b\f", `"\b\f"`},
		{"a\x00b", `"a\u0000b"`},
		{"a\x1fb", `"a\u001fb"`},
		{"héllo", `"héllo"`},
		{"日本", `"日本"`},
		{"🙂", "\"🙂\""},
	}
	for _, c := range cases {
		got := Quote(c.in)
		if got != c.want {
			t.Errorf("Quote(%q): got %s want %s", c.in, got, c.want)
		}
	}
}

func TestQuoteASCII(t *testing.T) {
	cases := []struct{ in, want string }{
		{"abc", `"abc"`},
		{`a"b`, `"a\"b"`},
		{"héllo", `"h\u00e9llo"`},
		{"日本", `"\u65e5\u672c"`},
		{"🙂", `"\ud83d\ude42"`},
		{"a\x1fb", `"a\u001fb"`},
	}
	for _, c := range cases {
		got := QuoteASCII(c.in)
		if got != c.want {
			t.Errorf("QuoteASCII(%q): got %s want %s", c.in, got, c.want)
		}
	}
}

func TestQuoteASCIIRoundTripsThroughQuote(t *testing.T) {
	// ASCII inputs must render identically in both modes.
	for _, s := range []string{"", "plain", `with "quotes"`, "tabs\tand\nnewlines"} {
		if Quote(s) != QuoteASCII(s) {
			t.Errorf("Quote and QuoteASCII disagree on %q: %s vs %s", s, Quote(s), QuoteASCII(s))
		}
	}
}
