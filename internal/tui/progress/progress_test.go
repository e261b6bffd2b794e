package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/oxdebate/internal/debate"
	"github.com/Iron-Ham/oxdebate/internal/event"
	"github.com/Iron-Ham/oxdebate/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
)

func send(m Model, e event.Event) (Model, tea.Cmd) {
	next, cmd := m.Update(EventMsg{Event: e})
	return next.(Model), cmd
}

func TestModel_TracksSegmentStates(t *testing.T) {
	segs := debate.Segments()
	m := New(nil)

	m, _ = send(m, event.NewDebateStartedEvent("r", "This house would ban cars", "gpt-4o", "openai"))
	m, _ = send(m, event.NewSegmentStartedEvent("r", segs[0], event.PhaseDrafting))
	if m.rows[0].state != styles.StateDrafting {
		t.Errorf("row 0 = %q, want drafting", m.rows[0].state)
	}

	m, _ = send(m, event.NewSegmentDraftedEvent("r", segs[0], 1200, time.Second))
	if m.rows[0].state != styles.StateDrafted || m.rows[0].detail != "1200 chars" {
		t.Errorf("row 0 = %+v", m.rows[0])
	}

	m, _ = send(m, event.NewSegmentStartedEvent("r", segs[0], event.PhaseVoicing))
	m, cmd := send(m, event.NewSegmentVoicedEvent("r", segs[0], "output/01_proposition_opening.mp3", 100, time.Second))
	if cmd != nil {
		t.Error("no command expected before completion")
	}
	if m.rows[0].state != styles.StateVoiced || m.rows[0].detail != "01_proposition_opening.mp3" {
		t.Errorf("row 0 = %+v", m.rows[0])
	}
	for _, r := range m.rows[1:] {
		if r.state != styles.StatePending {
			t.Errorf("row %d = %q, want pending", r.seg.Order, r.state)
		}
	}

	view := m.View()
	for _, want := range []string{"This house would ban cars", "gpt-4o", "Proposition opening", "ctrl+c to cancel"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_QuitsOnCompletion(t *testing.T) {
	m := New(nil)
	m, cmd := send(m, event.NewDebateCompletedEvent("r", "output", []string{"a", "b"}, nil, 2*time.Second))
	if cmd == nil {
		t.Fatal("completion should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("command should produce tea.QuitMsg")
	}
	if !strings.Contains(m.View(), "2 files in output") {
		t.Errorf("view = %s", m.View())
	}
}

func TestModel_FailureMarksActiveRow(t *testing.T) {
	seg := debate.Segments()[3]
	m := New(nil)
	m, _ = send(m, event.NewSegmentStartedEvent("r", seg, event.PhaseDrafting))
	m, _ = send(m, event.NewDebateCompletedEvent("r", "", nil, errors.New("rate limited"), time.Second))

	if m.rows[3].state != styles.StateFailed {
		t.Errorf("row 3 = %q, want failed", m.rows[3].state)
	}
	if !strings.Contains(m.View(), "Failed: rate limited") {
		t.Errorf("view = %s", m.View())
	}
}

func TestModel_CtrlCCancelsOnce(t *testing.T) {
	calls := 0
	m := New(func() { calls++ })

	for i := 0; i < 2; i++ {
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		m = next.(Model)
		if cmd != nil {
			t.Error("ctrl+c should wait for completion rather than quit")
		}
	}
	if calls != 1 {
		t.Errorf("onCancel called %d times, want 1", calls)
	}
	if !strings.Contains(m.View(), "Canceling") {
		t.Errorf("view = %s", m.View())
	}
}

func TestDescribe(t *testing.T) {
	seg := debate.Segments()[2]
	tests := []struct {
		name string
		ev   event.Event
		want string
	}{
		{"started", event.NewDebateStartedEvent("r", "m", "gpt-4o", "openai"), "Motion: m (model gpt-4o)"},
		{"drafting", event.NewSegmentStartedEvent("r", seg, event.PhaseDrafting), "[3/6] Drafting Proposition rebuttal..."},
		{"voicing", event.NewSegmentStartedEvent("r", seg, event.PhaseVoicing), "[3/6] Voicing Proposition rebuttal..."},
		{"drafted", event.NewSegmentDraftedEvent("r", seg, 42, 1500*time.Millisecond), "[3/6] Drafted Proposition rebuttal (42 chars, 1.5s)"},
		{"voiced", event.NewSegmentVoicedEvent("r", seg, "out/03.mp3", 1, 0), "[3/6] Saved out/03.mp3"},
		{"failed", event.NewDebateCompletedEvent("r", "", nil, errors.New("boom"), 0), "Failed: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Describe(tt.ev)
			if !ok || got != tt.want {
				t.Errorf("Describe() = %q, %v, want %q", got, ok, tt.want)
			}
		})
	}
}

func TestDisplay_PlainLines(t *testing.T) {
	bus := event.NewBus()
	var buf bytes.Buffer

	d := Start(bus, &buf, false, nil)
	bus.Publish(event.NewDebateDraftedEvent("r", 3*time.Second))
	bus.Publish(event.NewDebateCompletedEvent("r", "output", make([]string, 6), nil, 4*time.Second))
	if err := d.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	want := "All speeches drafted in 3s\nDone in 4s: 6 files in output\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
	if bus.SubscriptionCount() != 0 {
		t.Error("Stop should unsubscribe")
	}
}
