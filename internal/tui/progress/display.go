package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Iron-Ham/oxdebate/internal/debate"
	"github.com/Iron-Ham/oxdebate/internal/event"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// IsInteractive reports whether f is a terminal that can host the live view.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Display forwards bus events to either the live view or plain lines.
type Display struct {
	bus   *event.Bus
	subID string

	program *tea.Program
	done    chan struct{}
	runErr  error

	mu  sync.Mutex
	out io.Writer
}

// Start subscribes to bus and begins rendering to out. When interactive is
// false every event becomes one line of text. onCancel runs when the user
// presses ctrl+c in the live view.
func Start(bus *event.Bus, out io.Writer, interactive bool, onCancel func()) *Display {
	d := &Display{
		bus:  bus,
		out:  out,
		done: make(chan struct{}),
	}

	if !interactive {
		close(d.done)
		d.subID = bus.SubscribeAll(d.printLine)
		return d
	}

	d.program = tea.NewProgram(New(onCancel), tea.WithOutput(out))
	go func() {
		defer close(d.done)
		_, d.runErr = d.program.Run()
	}()
	d.subID = bus.SubscribeAll(func(e event.Event) {
		d.program.Send(EventMsg{Event: e})
	})
	return d
}

// Stop unsubscribes from the bus and waits for the live view to exit.
func (d *Display) Stop() error {
	d.bus.Unsubscribe(d.subID)
	if d.program != nil {
		d.program.Quit()
	}
	<-d.done
	return d.runErr
}

func (d *Display) printLine(e event.Event) {
	line, ok := Describe(e)
	if !ok {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.out, line)
}

// Describe renders an event as a single progress line. It returns false for
// events that have no plain-text form.
func Describe(e event.Event) (string, bool) {
	switch ev := e.(type) {
	case event.DebateStartedEvent:
		return fmt.Sprintf("Motion: %s (model %s)", ev.Motion, ev.Model), true

	case event.SegmentStartedEvent:
		verb := "Drafting"
		if ev.Phase == event.PhaseVoicing {
			verb = "Voicing"
		}
		return fmt.Sprintf("%s %s %s...", counter(ev.Segment), verb, ev.Segment), true

	case event.SegmentDraftedEvent:
		return fmt.Sprintf("%s Drafted %s (%d chars, %s)", counter(ev.Segment), ev.Segment, ev.Chars, round(ev.Duration)), true

	case event.DebateDraftedEvent:
		return fmt.Sprintf("All speeches drafted in %s", round(ev.Duration)), true

	case event.SegmentVoicedEvent:
		return fmt.Sprintf("%s Saved %s", counter(ev.Segment), ev.Path), true

	case event.DebateCompletedEvent:
		if ev.Err != nil {
			return "Failed: " + ev.Err.Error(), true
		}
		return fmt.Sprintf("Done in %s: %d files in %s", round(ev.Duration), len(ev.Files), ev.OutputDir), true
	}
	return "", false
}

func counter(seg debate.Segment) string {
	return fmt.Sprintf("[%d/%d]", seg.Order, debate.SegmentCount)
}
