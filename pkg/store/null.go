package store

import "context"

// NullStore discards every run; serve mode uses it by default (--store
// none), so no job history is kept.
type NullStore struct{}

// NewNullStore returns a Store that persists nothing.
func NewNullStore() *NullStore { return &NullStore{} }

func (NullStore) SaveRun(context.Context, RunRecord) error { return nil }

func (NullStore) RecentRuns(context.Context, int) ([]RunRecord, error) { return nil, nil }

func (NullStore) Close(context.Context) error { return nil }
