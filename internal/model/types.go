// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// Config defines typing test settings.
type Config struct {
	Duration Duration
	Seed     int64
}

// State is the lifecycle phase of a typing test.
type State int

const (
	// StateIdle means no test has started, or the last one was abandoned.
	StateIdle State = iota
	// StateRunning means the countdown is active and input is enabled.
	StateRunning
	// StateFinished means the passage was matched or the countdown reached zero.
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Duration is a test length in whole seconds. Zero means none selected.
type Duration int

// AllowedDurations lists the selectable test lengths in display order.
var AllowedDurations = []Duration{15, 30, 60}

// Valid reports whether d is one of AllowedDurations.
func (d Duration) Valid() bool {
	for _, allowed := range AllowedDurations {
		if d == allowed {
			return true
		}
	}
	return false
}

// TimeDuration returns d as a time.Duration.
func (d Duration) TimeDuration() time.Duration {
	return time.Duration(d) * time.Second
}

func (d Duration) String() string {
	return fmt.Sprintf("%ds", int(d))
}

// NextDuration returns the allowed duration after d, wrapping around.
// An unselected duration yields the first allowed value.
func NextDuration(d Duration) Duration {
	for i, allowed := range AllowedDurations {
		if d == allowed {
			return AllowedDurations[(i+1)%len(AllowedDurations)]
		}
	}
	return AllowedDurations[0]
}

// FinishReason records why a test left the running state.
type FinishReason string

const (
	// FinishCompleted means the typed text matched the passage exactly.
	FinishCompleted FinishReason = "completed"
	// FinishTimeout means the countdown reached zero.
	FinishTimeout FinishReason = "timeout"
)

// Result captures a finished typing test.
type Result struct {
	RunID        string
	Duration     Duration
	Passage      string
	Typed        string
	CorrectWords int
	StartedAt    time.Time
	EndedAt      time.Time
	Elapsed      time.Duration
	WPM          float64
	Reason       FinishReason
}
