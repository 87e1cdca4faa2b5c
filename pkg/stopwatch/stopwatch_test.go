package stopwatch

import (
	"testing"
	"time"
)

func TestCheckWithinBudget(t *testing.T) {
	sw := New(time.Hour)
	if err := sw.Check(); err != nil {
		t.Errorf("expected no error within budget, got %v", err)
	}
}

func TestCheckExceedsBudget(t *testing.T) {
	sw := New(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	if err := sw.Check(); err != ErrTimeBudgetExceeded {
		t.Errorf("expected ErrTimeBudgetExceeded, got %v", err)
	}
}

func TestZeroBoundNeverExpires(t *testing.T) {
	sw := New(0)
	time.Sleep(2 * time.Millisecond)
	if err := sw.Check(); err != nil {
		t.Errorf("zero bound should never expire, got %v", err)
	}
}
