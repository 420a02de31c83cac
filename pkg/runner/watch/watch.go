// Package watch is a live terminal view of the daemon.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/progress"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/pomobar/pkg/client"
	"tableflip.dev/pomobar/pkg/daemon"
	"tableflip.dev/pomobar/pkg/timer"
	"tableflip.dev/pomobar/pkg/timeutil"
)

// ErrNotTerminal is returned when stdout cannot host the UI.
var ErrNotTerminal = errors.New("watch needs an interactive terminal")

const (
	defaultBarWidth = 40
	maxBarWidth     = 80
)

var labels = map[string]string{
	timer.NameIdle:       "Idle",
	timer.NameWork:       "Focus",
	timer.NamePaused:     "Paused",
	timer.NameShortBreak: "Short break",
	timer.NameLongBreak:  "Long break",
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	clockStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	stateStyles = map[string]lipgloss.Style{
		timer.NameIdle:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		timer.NameWork:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		timer.NamePaused:     lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		timer.NameShortBreak: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		timer.NameLongBreak:  lipgloss.NewStyle().Foreground(lipgloss.Color("80")).Bold(true),
	}
)

// Watch runs the UI until the user quits.
type Watch struct {
	Client  *client.Client
	Refresh time.Duration
}

func (w *Watch) Do(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return ErrNotTerminal
	}
	p := tea.NewProgram(New(ctx, w.Client, w.Refresh), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type stateMsg struct {
	state timer.State
	err   error
}

type tickMsg time.Time

// Model polls the daemon and renders the current state.
type Model struct {
	ctx     context.Context
	client  *client.Client
	refresh time.Duration
	now     func() time.Time

	state timer.State
	err   error
	bar   progress.Model
	width int
}

// New returns a model polling c every refresh.
func New(ctx context.Context, c *client.Client, refresh time.Duration) Model {
	if refresh <= 0 {
		refresh = time.Second
	}
	return Model{
		ctx:     ctx,
		client:  c,
		refresh: refresh,
		now:     time.Now,
		bar:     newBar(defaultBarWidth),
	}
}

func newBar(width int) progress.Model {
	return progress.New(progress.WithDefaultGradient(), progress.WithWidth(width))
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		s, err := m.client.Status(m.ctx)
		return stateMsg{state: s, err: err}
	}
}

// send issues cmd and then reads the state it produced.
func (m Model) send(cmd daemon.Command) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.client.Send(m.ctx, cmd); err != nil {
			return stateMsg{err: err}
		}
		return m.fetch()()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 4
		if w > maxBarWidth {
			w = maxBarWidth
		}
		if w < 10 {
			w = 10
		}
		m.bar = newBar(w)
	case tickMsg:
		return m, tea.Batch(m.fetch(), m.tick())
	case stateMsg:
		m.err = msg.err
		if msg.err == nil {
			m.state = msg.state
		}
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "space", " ", "t":
			return m, m.send(daemon.CommandToggle)
		case "r":
			return m, m.send(daemon.CommandReset)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("pomobar"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		msg := m.err.Error()
		if m.width > 0 {
			msg = wordwrap.String(msg, m.width-2)
		}
		b.WriteString(errStyle.Render(msg))
	case m.state == nil:
		b.WriteString(hintStyle.Render("connecting..."))
	default:
		now := m.now()
		name := m.state.Name()
		style, ok := stateStyles[name]
		if !ok {
			style = lipgloss.NewStyle()
		}
		line := style.Render(labels[name]) + "  " + clockStyle.Render(timeutil.FormatClock(m.state.Remaining(now)))
		if end, ok := timer.Deadline(m.state); ok {
			line += hintStyle.Render(fmt.Sprintf("  until %s", end.Local().Format("15:04")))
		}
		b.WriteString(line)
		b.WriteString("\n\n")
		b.WriteString(m.bar.ViewAs(timer.Progress(m.state, now)))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Completed %d pomodoros.", m.state.CycleCount()))
	}

	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("space toggle · r reset · q quit · refresh %s", timeutil.FormatSpan(m.refresh))))
	return b.String()
}
