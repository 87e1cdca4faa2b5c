// Package stopwatch tracks a search's wall-clock budget.
//
// A Stopwatch is consulted at every recursion entry of the search engine; once
// the elapsed time exceeds its bound, Check returns ErrTimeBudgetExceeded and
// every open recursion frame unwinds without further matrix mutation.
package stopwatch

import (
	"errors"
	"time"
)

// ErrTimeBudgetExceeded is returned by Check once the configured bound has
// elapsed. It is a sentinel, not a fatal error: callers unwind and report it.
var ErrTimeBudgetExceeded = errors.New("stopwatch: time budget exceeded")

// DefaultBudget is the default search time budget (1200s, matching the
// original DXD driver's TIME_LIMIT_SECONDS).
const DefaultBudget = 1200 * time.Second

// Stopwatch measures elapsed wall-clock time against a fixed bound.
// Safe for concurrent use: Check only reads the immutable start time.
type Stopwatch struct {
	start time.Time
	bound time.Duration
}

// New starts a stopwatch with the given time bound.
func New(bound time.Duration) *Stopwatch {
	return &Stopwatch{start: time.Now(), bound: bound}
}

// Elapsed returns the time elapsed since the stopwatch started.
func (s *Stopwatch) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Check returns ErrTimeBudgetExceeded once Elapsed() has passed the bound.
func (s *Stopwatch) Check() error {
	if s.bound > 0 && s.Elapsed() > s.bound {
		return ErrTimeBudgetExceeded
	}
	return nil
}

// Remaining returns the time left before the bound is hit, or zero once
// exhausted. A non-positive bound means "no limit", reported as the maximum
// duration.
func (s *Stopwatch) Remaining() time.Duration {
	if s.bound <= 0 {
		return time.Duration(1<<63 - 1)
	}
	left := s.bound - s.Elapsed()
	if left < 0 {
		return 0
	}
	return left
}
