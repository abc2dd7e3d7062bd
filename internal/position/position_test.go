package position

import "testing"

func TestPositionString(t *testing.T) {
	tests := []struct {
		pos      Position
		expected string
	}{
		{Position{Filename: "a.py", Line: 3, Column: 7, Offset: 20}, "a.py:3:7"},
		{Position{Line: 1, Column: 1, Offset: 0}, "1:1"},
		{Position{Filename: "/src/pkg/mod.py", Line: 9, Column: 2, Offset: 100}, "mod.py:9:2"},
	}

	for i, tt := range tests {
		if got := tt.pos.String(); got != tt.expected {
			t.Errorf("tests[%d] - String wrong. expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestSpanValidity(t *testing.T) {
	start := Position{Line: 1, Column: 1, Offset: 0}
	end := Position{Line: 1, Column: 5, Offset: 4}

	span := NewSpan(start, end)
	if !span.IsValid() {
		t.Fatalf("expected valid span, got invalid: %s", span)
	}

	backwards := NewSpan(end, start)
	if backwards.IsValid() {
		t.Fatalf("expected backwards span to be invalid")
	}
}

func TestSpanContains(t *testing.T) {
	span := NewSpan(
		Position{Line: 2, Column: 1, Offset: 10},
		Position{Line: 2, Column: 6, Offset: 15},
	)

	inside := Position{Line: 2, Column: 3, Offset: 12}
	if !span.Contains(inside) {
		t.Errorf("expected span to contain %s", inside)
	}

	atEnd := Position{Line: 2, Column: 6, Offset: 15}
	if span.Contains(atEnd) {
		t.Errorf("end position should be exclusive")
	}
}

func TestSpanUnion(t *testing.T) {
	a := NewSpan(Position{Line: 1, Column: 1, Offset: 0}, Position{Line: 1, Column: 4, Offset: 3})
	b := NewSpan(Position{Line: 2, Column: 1, Offset: 8}, Position{Line: 2, Column: 5, Offset: 12})

	u := a.Union(b)
	if u.Start.Offset != 0 || u.End.Offset != 12 {
		t.Fatalf("union wrong: got %d-%d", u.Start.Offset, u.End.Offset)
	}
	if u.Length() != 12 {
		t.Errorf("length wrong: expected 12, got %d", u.Length())
	}
}

func TestSourceFileLines(t *testing.T) {
	sf := NewSourceFile("t.py", "x = 1\ny = 2\nz = 3\n")

	if got := sf.Line(2); got != "y = 2" {
		t.Errorf("Line(2) wrong. expected=%q, got=%q", "y = 2", got)
	}
	if got := sf.Line(0); got != "" {
		t.Errorf("Line(0) should be empty, got %q", got)
	}
	if got := sf.Line(99); got != "" {
		t.Errorf("Line(99) should be empty, got %q", got)
	}
}

func TestSourceFileSpanText(t *testing.T) {
	sf := NewSourceFile("t.py", "value = 42\n")
	span := NewSpan(
		Position{Line: 1, Column: 9, Offset: 8},
		Position{Line: 1, Column: 11, Offset: 10},
	)
	if got := sf.SpanText(span); got != "42" {
		t.Errorf("SpanText wrong. expected=%q, got=%q", "42", got)
	}
}
