package tokenizer

import "testing"

func TestEncoding(t *testing.T) {
	if got := New("cl100k_base").Encoding(); got != "cl100k_base" {
		t.Fatalf("Encoding() = %q", got)
	}
}

func TestCount_UnknownEncoding(t *testing.T) {
	if _, err := New("no-such-encoding").Count("hello"); err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}

func TestCount(t *testing.T) {
	tok := New("cl100k_base")

	// The BPE ranks are fetched on first use; offline environments skip.
	n, err := tok.Count("hello world")
	if err != nil {
		t.Skipf("encoding unavailable: %v", err)
	}
	if n != 2 {
		t.Fatalf("Count(hello world) = %d; want 2", n)
	}

	if zero, err := tok.Count(""); err != nil || zero != 0 {
		t.Fatalf("Count(empty) = %d, %v; want 0, nil", zero, err)
	}

	// Counts grow with input.
	long, err := tok.Count("hello world hello world hello world")
	if err != nil {
		t.Fatalf("Count(long): %v", err)
	}
	if long <= n {
		t.Fatalf("longer text must cost more tokens: %d <= %d", long, n)
	}
}
