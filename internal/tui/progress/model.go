// Package progress renders generation progress from the event bus, either as
// a live bubbletea view or as plain log lines when output is not a terminal.
package progress

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Iron-Ham/oxdebate/internal/debate"
	"github.com/Iron-Ham/oxdebate/internal/event"
	"github.com/Iron-Ham/oxdebate/internal/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// EventMsg carries a bus event into the bubbletea update loop.
type EventMsg struct {
	Event event.Event
}

type row struct {
	seg    debate.Segment
	state  string
	detail string
}

// Model is the live progress view: one row per segment plus a summary.
type Model struct {
	spinner spinner.Model
	rows    []row
	width   int

	motion   string
	model    string
	provider string

	completed *event.DebateCompletedEvent
	canceling bool
	onCancel  func()
}

// New creates a progress model. onCancel, when non-nil, runs on ctrl+c;
// the view keeps running until the debate.completed event arrives.
func New(onCancel func()) Model {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Secondary),
	)

	rows := make([]row, 0, debate.SegmentCount)
	for _, seg := range debate.Segments() {
		rows = append(rows, row{seg: seg, state: styles.StatePending})
	}

	return Model{
		spinner:  s,
		rows:     rows,
		onCancel: onCancel,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && !m.canceling {
			m.canceling = true
			if m.onCancel != nil {
				m.onCancel()
			}
		}
		return m, nil

	case EventMsg:
		m.apply(msg.Event)
		if m.completed != nil {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) apply(e event.Event) {
	switch ev := e.(type) {
	case event.DebateStartedEvent:
		m.motion = ev.Motion
		m.model = ev.Model
		m.provider = ev.Provider

	case event.SegmentStartedEvent:
		state := styles.StateDrafting
		if ev.Phase == event.PhaseVoicing {
			state = styles.StateVoicing
		}
		m.setRow(ev.Segment, state, "")

	case event.SegmentDraftedEvent:
		m.setRow(ev.Segment, styles.StateDrafted, fmt.Sprintf("%d chars", ev.Chars))

	case event.SegmentVoicedEvent:
		m.setRow(ev.Segment, styles.StateVoiced, filepath.Base(ev.Path))

	case event.DebateCompletedEvent:
		m.completed = &ev
		if ev.Err != nil {
			for i := range m.rows {
				if m.rows[i].state == styles.StateDrafting || m.rows[i].state == styles.StateVoicing {
					m.rows[i].state = styles.StateFailed
				}
			}
		}
	}
}

func (m *Model) setRow(seg debate.Segment, state, detail string) {
	for i := range m.rows {
		if m.rows[i].seg.Order == seg.Order {
			m.rows[i].state = state
			m.rows[i].detail = detail
			return
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("oxdebate"))
	b.WriteString("\n")
	if m.motion != "" {
		motion := m.motion
		if m.width > 12 {
			motion = styles.Truncate(motion, m.width-10)
		}
		b.WriteString("Motion: " + motion + "\n")
	}
	if m.model != "" {
		meta := "model " + m.model
		if m.provider != "" {
			meta += " · voices " + m.provider
		}
		b.WriteString(styles.Subtitle.Render(meta))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, r := range m.rows {
		b.WriteString(m.renderRow(r))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.completed != nil && m.completed.Success():
		b.WriteString(styles.SuccessMsg.Render(fmt.Sprintf("Done in %s: %d files in %s",
			round(m.completed.Duration), len(m.completed.Files), m.completed.OutputDir)))
	case m.completed != nil:
		b.WriteString(styles.ErrorMsg.Render("Failed: " + m.completed.Err.Error()))
	case m.canceling:
		b.WriteString(styles.WarningMsg.Render("Canceling..."))
	default:
		b.WriteString(styles.Muted.Render("ctrl+c to cancel"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderRow(r row) string {
	icon := styles.Muted.Foreground(styles.StatusColor(r.state)).Render(styles.StatusIcon(r.state))
	if (r.state == styles.StateDrafting || r.state == styles.StateVoicing) && m.completed == nil {
		icon = m.spinner.View()
	}

	label := fmt.Sprintf("%d. %-22s", r.seg.Order, r.seg.String())
	label = styles.SideLabel(string(r.seg.Side)).Render(label)

	status := styles.Muted.Foreground(styles.StatusColor(r.state)).Render(fmt.Sprintf("%-9s", r.state))
	line := fmt.Sprintf("  %s %s %s", icon, label, status)
	if r.detail != "" {
		line += " " + styles.Muted.Render(r.detail)
	}
	return line
}

func round(d time.Duration) time.Duration {
	return d.Round(100 * time.Millisecond)
}
