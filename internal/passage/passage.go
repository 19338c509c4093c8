// Package passage provides the built-in catalog of reference passages.
package passage

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"
)

//go:embed passages.txt
var builtin string

// Default returns a copy of the built-in catalog.
func Default() []string {
	passages, err := Load(strings.NewReader(builtin))
	if err != nil {
		panic(fmt.Sprintf("built-in passage catalog: %v", err))
	}
	return passages
}

// Load reads one passage per line. Blank lines are skipped.
func Load(r io.Reader) ([]string, error) {
	var passages []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		passages = append(passages, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(passages) == 0 {
		return nil, fmt.Errorf("passage catalog is empty")
	}
	return passages, nil
}
