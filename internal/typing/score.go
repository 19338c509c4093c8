package typing

import (
	"math"
	"strings"
	"time"
)

// CountCorrectWords returns how many leading whitespace-separated words of
// typed match the passage word for word. Counting stops at the first
// mismatch, so later words that happen to match are not counted.
func CountCorrectWords(passage, typed string) int {
	want := strings.Fields(passage)
	got := strings.Fields(typed)
	count := 0
	for i, word := range got {
		if i >= len(want) || word != want[i] {
			break
		}
		count++
	}
	return count
}

// WordsPerMinute divides correct words by elapsed minutes at millisecond
// resolution and rounds to two decimals. There is no lower bound on
// elapsed: zero elapsed yields +Inf, or NaN when no words were correct.
func WordsPerMinute(correctWords int, elapsed time.Duration) float64 {
	minutes := float64(elapsed.Milliseconds()) / 60000.0
	return roundWPM(float64(correctWords) / minutes)
}

func roundWPM(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return math.Round(v*100) / 100
}
