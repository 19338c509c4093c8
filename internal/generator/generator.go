// Package generator picks reference passages for typing tests.
package generator

import (
	"math/rand"
	"time"
)

// Generator selects passages uniformly at random.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, for reproducible runs.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick returns one passage from catalog. An empty catalog yields "".
func (g *Generator) Pick(catalog []string) string {
	if len(catalog) == 0 {
		return ""
	}
	return catalog[g.rnd.Intn(len(catalog))]
}
