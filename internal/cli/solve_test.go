package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/dxdlab/dxd/pkg/count"
	"github.com/dxdlab/dxd/pkg/dagnode"
)

func TestFormatRunReportIncludesCoreFields(t *testing.T) {
	o := &solveOutcome{
		Rows:       3,
		Cols:       3,
		Count:      count.One,
		Node:       dagnode.True,
		DAG:        dagnode.New(),
		Elapsed:    250 * time.Millisecond,
		PeakBlocks: 4,
		TimedOut:   false,
	}
	report := formatRunReport(o)

	for _, want := range []string{"status: complete", "rows: 3", "cols: 3", "count: 1", "peak_blocks: 4"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestFormatRunReportReportsTimeout(t *testing.T) {
	o := &solveOutcome{DAG: dagnode.New(), Count: count.Zero, TimedOut: true}
	report := formatRunReport(o)
	if !strings.Contains(report, "status: timed out") {
		t.Errorf("report should note the timeout:\n%s", report)
	}
}
