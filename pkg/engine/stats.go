package engine

import "sync/atomic"

// Stats accumulates the run-wide counters a RunRecord reports: how deep the
// concurrent decomposition fan-out ever got, and whether the stopwatch cut
// the search short. Shared across every forked sub-engine of one run.
type Stats struct {
	curBlocks  int64
	peakBlocks int64
	timedOut   atomic.Bool
}

func (s *Stats) enterBlock() {
	cur := atomic.AddInt64(&s.curBlocks, 1)
	for {
		peak := atomic.LoadInt64(&s.peakBlocks)
		if cur <= peak {
			return
		}
		if atomic.CompareAndSwapInt64(&s.peakBlocks, peak, cur) {
			return
		}
	}
}

func (s *Stats) exitBlock() {
	atomic.AddInt64(&s.curBlocks, -1)
}

func (s *Stats) markTimedOut() {
	s.timedOut.Store(true)
}

// PeakBlocks reports the highest number of concurrently in-flight recursion
// frames observed during the run.
func (s *Stats) PeakBlocks() int64 { return atomic.LoadInt64(&s.peakBlocks) }

// TimedOut reports whether the stopwatch bound was ever hit.
func (s *Stats) TimedOut() bool { return s.timedOut.Load() }
