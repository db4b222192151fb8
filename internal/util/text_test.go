package util

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	if got := NormalizeWhitespace("  a \t b\n c  "); got != "a b c" {
		t.Fatalf("got %q", got)
	}
}

func TestContainsCaseInsensitive(t *testing.T) {
	if !ContainsCaseInsensitive("Downtown Toronto", "toronto") {
		t.Fatal("expected match")
	}
	if ContainsCaseInsensitive("Montreal", "Toronto") {
		t.Fatal("unexpected match")
	}
}

func TestIntersectionSize(t *testing.T) {
	a := ToSet([]string{"x", "y", "z"})
	b := ToSet([]string{"y", "z", "w"})
	if got := IntersectionSize(a, b); got != 2 {
		t.Fatalf("got %d", got)
	}
	if got := IntersectionSize(a, nil); got != 0 {
		t.Fatalf("nil set: got %d", got)
	}
}
