// Package report renders plain-text summaries for the CLI.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wpmtest/internal/model"
	"github.com/verte-zerg/wpmtest/internal/passage"
)

const previewWidth = 48

// RenderResult prints the outcome of a finished test.
func RenderResult(w io.Writer, res model.Result) error {
	lines := []string{
		"Result",
		fmt.Sprintf("WPM: %.2f", res.WPM),
		fmt.Sprintf("Correct words: %d", res.CorrectWords),
		fmt.Sprintf("Elapsed: %.1fs of %s", res.Elapsed.Seconds(), res.Duration),
		fmt.Sprintf("Finished: %s", res.Reason),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderPassages prints catalog entries as an aligned table.
func RenderPassages(w io.Writer, entries []passage.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No passages found.")
		return err
	}
	headers := []string{"#", "Words", "Chars", "Preview"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Index+1),
			fmt.Sprintf("%d", len(strings.Fields(e.Text))),
			fmt.Sprintf("%d", len([]rune(e.Text))),
			runewidth.Truncate(e.Text, previewWidth, "..."),
		})
	}
	rightAlign := map[int]bool{0: true, 1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
