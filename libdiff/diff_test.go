package libdiff

import "testing"

func TestUnifiedMarksChanges(t *testing.T) {
	output := Unified("a\nb\nc\n", "a\nx\nc\n")
	expected := " a\n-b\n+x\n c\n"
	if output != expected {
		t.Errorf("expected %q, got %q", expected, output)
	}
}

func TestUnifiedEqual(t *testing.T) {
	output := Unified("a\nb\n", "a\nb\n")
	expected := " a\n b\n"
	if output != expected {
		t.Errorf("expected %q, got %q", expected, output)
	}
}

func TestUnifiedNoTrailingNewline(t *testing.T) {
	output := Unified("x", "y")
	expected := "-x\n+y\n"
	if output != expected {
		t.Errorf("expected %q, got %q", expected, output)
	}
}
