package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dxdlab/dxd/pkg/config"
	"github.com/dxdlab/dxd/pkg/parse"
)

func writeFormat3(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunSolveIdentityMatrix(t *testing.T) {
	path := writeFormat3(t, "3 3\n1 1\n1 2\n1 3\n")

	outcome, err := runSolve(context.Background(), solveRequest{
		InputPath:          path,
		Format:             parse.Format3,
		Detector:           config.DetectorUnionFind,
		Threads:            1,
		TimeBudget:         time.Second,
		Decompose:          true,
		DecomposeThreshold: 2,
		BuildDAG:           true,
		Cfg:                config.Default(),
	})
	if err != nil {
		t.Fatalf("runSolve: %v", err)
	}
	got, exact := outcome.Count.Exact64()
	if !exact || got != 1 {
		t.Fatalf("Count = %v, want 1", outcome.Count.String())
	}
	if outcome.TimedOut {
		t.Error("did not expect a timeout")
	}
}

func TestRunSolveNonIdentityMatrixHasUniqueCover(t *testing.T) {
	// 4x4 / rows [{1,2},{3},{4},{1,3}]: the only exact cover is the first
	// three rows; the fourth shares a column with two of them and can never
	// extend to a full disjoint cover. Unlike the identity fixture above,
	// this exercises Cover/Uncover on rows with more than one column.
	path := writeFormat3(t, "4 4\n2 1 2\n1 3\n1 4\n2 1 3\n")

	outcome, err := runSolve(context.Background(), solveRequest{
		InputPath:          path,
		Format:             parse.Format3,
		Detector:           config.DetectorUnionFind,
		Threads:            1,
		TimeBudget:         time.Second,
		Decompose:          true,
		DecomposeThreshold: 2,
		BuildDAG:           true,
		Cfg:                config.Default(),
	})
	if err != nil {
		t.Fatalf("runSolve: %v", err)
	}
	got, exact := outcome.Count.Exact64()
	if !exact || got != 1 {
		t.Fatalf("Count = %v, want 1", outcome.Count.String())
	}
	if outcome.TimedOut {
		t.Error("did not expect a timeout")
	}
}

func TestRunSolveReportsTimeout(t *testing.T) {
	path := writeFormat3(t, "3 3\n1 1\n1 2\n1 3\n")

	outcome, err := runSolve(context.Background(), solveRequest{
		InputPath:  path,
		Format:     parse.Format3,
		Detector:   config.DetectorUnionFind,
		Threads:    1,
		TimeBudget: time.Nanosecond,
		Cfg:        config.Default(),
	})
	if err != nil {
		t.Fatalf("runSolve: %v", err)
	}
	if !outcome.TimedOut {
		t.Error("expected a timeout with a nanosecond budget")
	}
}
