package watch

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simforge/tictactoe-sim/internal/entity"
	"github.com/simforge/tictactoe-sim/internal/simulator"
)

const (
	speedStep   = 50 * time.Millisecond
	historyRows = 8
)

var (
	xStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#007e50", Dark: "#6afd76"}).Render
	oStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0003ad", Dark: "#5f61fc"}).Render
	winStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#bb0000", Dark: "#f18787"}).Bold(true).Render
	frameStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#414141", Dark: "#8f8f8f"}).Render
	statsStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8a880f", Dark: "#ddda1d"}).Render
	historyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#138a0f", Dark: "#1ddd37"}).Render
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render
	helpStyle    = lipgloss.NewStyle().Faint(true).Render
)

type (
	snapshotMsg struct {
		snapshot simulator.Snapshot
		ok       bool
	}
)

type Model struct {
	feed     *Feed
	spinner  spinner.Model
	snapshot simulator.Snapshot
	synced   bool
	closed   bool
}

func NewModel(feed *Feed) *Model {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		feed:    feed,
		spinner: s,
	}
}

func (that *Model) Init() tea.Cmd {
	return tea.Batch(that.spinner.Tick, waitForSnapshot(that.feed.Snapshots))
}

func waitForSnapshot(snapshots chan simulator.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-snapshots
		return snapshotMsg{snapshot: snapshot, ok: ok}
	}
}

func (that *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return that.handleKey(msg)
	case snapshotMsg:
		if !msg.ok {
			that.closed = true
			return that, tea.Quit
		}

		that.snapshot = msg.snapshot
		that.synced = true

		return that, waitForSnapshot(that.feed.Snapshots)
	case spinner.TickMsg:
		var cmd tea.Cmd
		that.spinner, cmd = that.spinner.Update(msg)
		return that, cmd
	}

	return that, nil
}

func (that *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		_ = that.feed.Close()
		return that, tea.Quit
	case "p":
		_ = that.feed.TogglePause()
	case "+", "=":
		_ = that.feed.SetSpeed(that.interval() - speedStep)
	case "-":
		_ = that.feed.SetSpeed(that.interval() + speedStep)
	case "r":
		_ = that.feed.RefreshHistory()
	}

	return that, nil
}

func (that *Model) interval() time.Duration {
	return time.Duration(that.snapshot.IntervalMS) * time.Millisecond
}

func (that *Model) View() string {
	if that.closed {
		return "feed closed\n"
	}

	if !that.synced {
		return fmt.Sprintf("\n %s connecting to simulation...\n", that.spinner.View())
	}

	var b strings.Builder

	b.WriteString(that.renderBoard())
	b.WriteString("\n")
	b.WriteString(that.renderStatus())
	b.WriteString("\n")
	b.WriteString(that.renderHistory())
	b.WriteString(helpStyle("\n p pause · +/- speed · r refresh · q quit\n"))

	return b.String()
}

func (that *Model) renderBoard() string {
	var b strings.Builder

	b.WriteString("\n")
	for row := 0; row < 3; row++ {
		b.WriteString("  ")
		for col := 0; col < 3; col++ {
			cell := row*3 + col
			b.WriteString(frameStyle("["))
			b.WriteString(that.renderCell(cell))
			b.WriteString(frameStyle("]"))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (that *Model) renderCell(cell int) string {
	mark := that.snapshot.Board[cell]
	if mark == entity.EmptyCell {
		return " "
	}

	if line := that.snapshot.WinningLine; line != nil {
		for _, i := range line {
			if i == cell {
				return winStyle(mark)
			}
		}
	}

	if mark == entity.MarkX {
		return xStyle(mark)
	}
	return oStyle(mark)
}

func (that *Model) renderStatus() string {
	stats := that.snapshot.Stats
	line := statsStyle(fmt.Sprintf(" X %d · O %d · draws %d · batch %d buffered", stats.WinsX, stats.WinsO, stats.Draws, that.snapshot.Buffered))

	line += fmt.Sprintf(" · %dms", that.snapshot.IntervalMS)

	if that.snapshot.Paused {
		line += pausedStyle(" · paused")
	}

	return line + "\n"
}

func (that *Model) renderHistory() string {
	if len(that.snapshot.History) == 0 {
		return fmt.Sprintf("\n %s loading history...\n", that.spinner.View())
	}

	var b strings.Builder
	b.WriteString("\n recent games:\n")

	rows := len(that.snapshot.History)
	if rows > historyRows {
		rows = historyRows
	}

	for _, record := range that.snapshot.History[:rows] {
		label := record.Outcome
		if label == entity.MarkTie {
			label = "draw"
		} else {
			label += " won"
		}

		b.WriteString(historyStyle(fmt.Sprintf("  %-5s %2d moves  %s\n",
			label, record.MoveCount, record.CompletedAt.Format("15:04:05"))))
	}

	return b.String()
}
