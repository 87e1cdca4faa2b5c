package store

import (
	"context"
	"testing"
)

func TestNullStoreDiscardsRuns(t *testing.T) {
	s := NewNullStore()
	ctx := context.Background()

	if err := s.SaveRun(ctx, RunRecord{ID: "r1"}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	runs, err := s.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("RecentRuns = %v, want empty", runs)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

// MongoStore needs a live MongoDB instance and has no test here; there is
// no in-process fake for the mongo-driver wire protocol worth maintaining
// here.
