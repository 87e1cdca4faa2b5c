package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dxdlab/dxd/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// =============================================================================
// progressModel - live solve progress
// =============================================================================

// progressModel is the bubbletea model driving `dxd solve --tui`: it
// subscribes to pkg/observability's solve hooks and renders a live count of
// blocks entered/finished, decompositions taken, and the deepest recursion
// reached, while the search runs on a background goroutine.
type progressModel struct {
	started    int64
	completed  int64
	decomposed int64
	maxDepth   int64
	lastRows   int
	lastCols   int
	timedOut   bool
	start      time.Time
	frame      int
	done       bool
	quitting   bool
	outcome    *solveOutcome
	err        error
}

func newProgressModel() progressModel {
	return progressModel{start: time.Now()}
}

type (
	blockStartMsg struct {
		depth      int64
		rows, cols int
	}
	blockCompleteMsg struct {
		depth int64
		dur   time.Duration
		err   error
	}
	decomposeMsg struct {
		depth    int64
		children int
	}
	timeoutMsg struct{ elapsed time.Duration }
	solveDoneMsg struct {
		outcome *solveOutcome
		err     error
	}
	tickMsg time.Time
)

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m progressModel) Init() tea.Cmd {
	return tickCmd()
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case tickMsg:
		m.frame++
		if m.done {
			return m, nil
		}
		return m, tickCmd()
	case blockStartMsg:
		m.started++
		if msg.depth > m.maxDepth {
			m.maxDepth = msg.depth
		}
		m.lastRows, m.lastCols = msg.rows, msg.cols
	case blockCompleteMsg:
		m.completed++
	case decomposeMsg:
		m.decomposed++
	case timeoutMsg:
		m.timedOut = true
	case solveDoneMsg:
		m.done = true
		m.outcome = msg.outcome
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.quitting {
		return StyleDim.Render("interrupted") + "\n"
	}

	var b strings.Builder
	spin := spinnerFrames[m.frame%len(spinnerFrames)]
	if m.done {
		spin = iconSuccess
	}

	b.WriteString(styleIconSpinner.Render(spin))
	b.WriteString(" ")
	b.WriteString(StyleTitle.Render("dxd solve"))
	b.WriteString("\n\n")

	rows := [][2]string{
		{"blocks", fmt.Sprintf("%d started, %d done", m.started, m.completed)},
		{"decomposed", StyleNumber.Render(fmt.Sprintf("%d", m.decomposed))},
		{"max depth", StyleNumber.Render(fmt.Sprintf("%d", m.maxDepth))},
		{"last block", fmt.Sprintf("%d rows x %d cols", m.lastRows, m.lastCols)},
		{"elapsed", StyleValue.Render(time.Since(m.start).Round(time.Millisecond).String())},
	}
	if m.timedOut {
		rows = append(rows, [2]string{"status", StyleWarning.Render("time budget exceeded")})
	}

	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(11)
	for _, r := range rows {
		b.WriteString(keyStyle.Render(r[0]))
		b.WriteString(" ")
		b.WriteString(r[1])
		b.WriteString("\n")
	}

	if !m.done {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("q to cancel"))
	}

	return b.String()
}

// =============================================================================
// tuiHooks - forwards observability.SolveHooks events into a tea.Program
// =============================================================================

// tuiHooks bridges pkg/observability's engine-side callbacks to the
// progressModel's message-passing update loop; tea.Program.Send is safe
// for concurrent use, so this is the only synchronization the parallel
// engine's many worker goroutines need.
type tuiHooks struct {
	prog *tea.Program
}

func (h *tuiHooks) OnBlockStart(_ context.Context, blockID int64, numRows, numCols int) {
	h.prog.Send(blockStartMsg{depth: blockID, rows: numRows, cols: numCols})
}

func (h *tuiHooks) OnBlockComplete(_ context.Context, blockID int64, duration time.Duration, err error) {
	h.prog.Send(blockCompleteMsg{depth: blockID, dur: duration, err: err})
}

func (h *tuiHooks) OnDecompose(_ context.Context, parentBlockID int64, childCount int) {
	h.prog.Send(decomposeMsg{depth: parentBlockID, children: childCount})
}

func (h *tuiHooks) OnTimeout(_ context.Context, elapsed time.Duration) {
	h.prog.Send(timeoutMsg{elapsed: elapsed})
}

// runSolveWithTUI runs req through runSolve on a background goroutine while
// a tea.Program renders live progress on the foreground, and returns once
// the solve (and the program) has finished.
func runSolveWithTUI(ctx context.Context, req solveRequest) (*solveOutcome, error) {
	p := tea.NewProgram(newProgressModel())

	observability.SetSolveHooks(&tuiHooks{prog: p})
	defer observability.Reset()

	go func() {
		outcome, err := runSolve(ctx, req)
		p.Send(solveDoneMsg{outcome: outcome, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running progress display: %w", err)
	}

	fm, ok := final.(progressModel)
	if !ok {
		return nil, errors.New("unexpected progress model type")
	}
	if fm.quitting {
		return nil, errors.New("solve cancelled")
	}
	if fm.err != nil {
		return nil, fm.err
	}
	if fm.outcome == nil {
		return nil, errors.New("solve did not report an outcome")
	}
	return fm.outcome, nil
}
