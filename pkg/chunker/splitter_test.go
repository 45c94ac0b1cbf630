package chunker

import (
	"strings"
	"testing"
)

func TestSplitShortText(t *testing.T) {
	s := New(100, 20)
	chunks := s.Split("short text")
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("Split(short) = %v, want single identical chunk", chunks)
	}
}

func TestSplitEmptyText(t *testing.T) {
	s := New(100, 20)
	if got := s.Split(""); got != nil {
		t.Errorf("Split(empty) = %v, want nil", got)
	}
	if got := s.Split("   \n\t "); got != nil {
		t.Errorf("Split(whitespace) = %v, want nil", got)
	}
}

func TestSplitOverlapAndBounds(t *testing.T) {
	s := New(10, 3)
	text := strings.Repeat("abcdefghij", 5) // 50 runes

	chunks := s.Split(text)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}

	for i, c := range chunks {
		if len([]rune(c)) > s.Size {
			t.Errorf("chunk %d has %d runes, exceeds size %d", i, len([]rune(c)), s.Size)
		}
	}

	// Consecutive chunks share exactly Overlap runes
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		curr := []rune(chunks[i])
		tail := string(prev[len(prev)-s.Overlap:])
		if !strings.HasPrefix(string(curr), tail) {
			t.Errorf("chunk %d does not start with previous chunk's %d-rune tail", i, s.Overlap)
		}
	}

	// Reassembly covers the full input
	step := s.Size - s.Overlap
	var rebuilt []rune
	for i, c := range chunks {
		r := []rune(c)
		if i == 0 {
			rebuilt = append(rebuilt, r...)
		} else if len(r) > s.Overlap {
			_ = step
			rebuilt = append(rebuilt, r[s.Overlap:]...)
		}
	}
	if string(rebuilt) != text {
		t.Errorf("chunks do not reassemble to input: got %d runes, want %d", len(rebuilt), len([]rune(text)))
	}
}

func TestSplitDeterminism(t *testing.T) {
	s := New(17, 5)
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 20)

	first := s.Split(text)
	second := s.Split(text)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitOverlapLargerThanSize(t *testing.T) {
	s := New(10, 15)
	text := strings.Repeat("x", 35)

	chunks := s.Split(text)
	// Degenerate overlap falls back to non-overlapping steps, must terminate
	if len(chunks) != 4 {
		t.Errorf("got %d chunks, want 4", len(chunks))
	}
}
