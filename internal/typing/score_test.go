package typing

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestCountCorrectWords(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		want  int
	}{
		{name: "empty", typed: "", want: 0},
		{name: "prefix", typed: "the quick brown", want: 3},
		{name: "partial last word", typed: "the quick br", want: 2},
		{name: "mismatch halts", typed: "the slow brown fox", want: 1},
		{name: "first word wrong", typed: "a quick brown fox", want: 0},
		{name: "extra spaces", typed: "  the   quick ", want: 2},
		{name: "longer than passage", typed: "the quick brown fox jumps", want: 4},
		{name: "case sensitive", typed: "The quick", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountCorrectWords("the quick brown fox", tt.typed); got != tt.want {
				t.Fatalf("CountCorrectWords(%q) = %d, want %d", tt.typed, got, tt.want)
			}
		})
	}
}

func TestWordsPerMinute(t *testing.T) {
	if got := WordsPerMinute(3, time.Minute); got != 3.00 {
		t.Fatalf("expected 3.00, got %v", got)
	}
	if got := WordsPerMinute(10, 45*time.Second); got != 13.33 {
		t.Fatalf("expected 13.33, got %v", got)
	}
	if got := WordsPerMinute(2, 7*time.Second); got != 17.14 {
		t.Fatalf("expected 17.14, got %v", got)
	}
	if got := WordsPerMinute(0, 15*time.Second); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestWordsPerMinuteUnboundedOnZeroElapsed(t *testing.T) {
	if got := WordsPerMinute(4, 0); !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf, got %v", got)
	}
	if got := WordsPerMinute(0, 500*time.Microsecond); !math.IsNaN(got) {
		t.Fatalf("expected NaN, got %v", got)
	}
}

func TestClassify(t *testing.T) {
	got := Classify("abcd", "abx")
	want := []CharClass{Correct, Correct, Incorrect, Untyped}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Classify mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyIgnoresOverflowAndUsesRunes(t *testing.T) {
	got := Classify("héllo", "hello world")
	want := []CharClass{Correct, Incorrect, Correct, Correct, Correct}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Classify mismatch (-want +got):\n%s", diff)
	}
	if got := Classify("", "abc"); len(got) != 0 {
		t.Fatalf("expected no classes for empty passage, got %v", got)
	}
}

func TestCharClassString(t *testing.T) {
	if Correct.String() != "correct" || Incorrect.String() != "incorrect" || Untyped.String() != "untyped" {
		t.Fatalf("unexpected class names")
	}
}
