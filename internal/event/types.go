package event

import (
	"time"

	"github.com/Iron-Ham/oxdebate/internal/debate"
)

// Event type identifiers.
const (
	TypeDebateStarted   = "debate.started"
	TypeSegmentStarted  = "segment.started"
	TypeSegmentDrafted  = "segment.drafted"
	TypeDebateDrafted   = "debate.drafted"
	TypeSegmentVoiced   = "segment.voiced"
	TypeDebateCompleted = "debate.completed"
)

// Phase names the pipeline stage a segment is in.
type Phase string

// Pipeline phases.
const (
	PhaseDrafting Phase = "drafting"
	PhaseVoicing  Phase = "voicing"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "segment.drafted")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
	RunID     string
}

func (e baseEvent) EventType() string {
	return e.eventType
}

func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

func newBaseEvent(eventType, runID string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
		RunID:     runID,
	}
}

// DebateStartedEvent is emitted once, before the first speech is drafted.
type DebateStartedEvent struct {
	baseEvent
	Motion   string
	Model    string
	Provider string // TTS provider name
}

// NewDebateStartedEvent creates a DebateStartedEvent.
func NewDebateStartedEvent(runID, motion, model, provider string) DebateStartedEvent {
	return DebateStartedEvent{
		baseEvent: newBaseEvent(TypeDebateStarted, runID),
		Motion:    motion,
		Model:     model,
		Provider:  provider,
	}
}

// SegmentStartedEvent is emitted when a segment enters a phase.
type SegmentStartedEvent struct {
	baseEvent
	Segment debate.Segment
	Phase   Phase
}

// NewSegmentStartedEvent creates a SegmentStartedEvent.
func NewSegmentStartedEvent(runID string, seg debate.Segment, phase Phase) SegmentStartedEvent {
	return SegmentStartedEvent{
		baseEvent: newBaseEvent(TypeSegmentStarted, runID),
		Segment:   seg,
		Phase:     phase,
	}
}

// SegmentDraftedEvent is emitted when the language model returns a speech.
type SegmentDraftedEvent struct {
	baseEvent
	Segment  debate.Segment
	Chars    int
	Duration time.Duration
}

// NewSegmentDraftedEvent creates a SegmentDraftedEvent.
func NewSegmentDraftedEvent(runID string, seg debate.Segment, chars int, d time.Duration) SegmentDraftedEvent {
	return SegmentDraftedEvent{
		baseEvent: newBaseEvent(TypeSegmentDrafted, runID),
		Segment:   seg,
		Chars:     chars,
		Duration:  d,
	}
}

// DebateDraftedEvent is emitted when all six speeches exist.
type DebateDraftedEvent struct {
	baseEvent
	Duration time.Duration
}

// NewDebateDraftedEvent creates a DebateDraftedEvent.
func NewDebateDraftedEvent(runID string, d time.Duration) DebateDraftedEvent {
	return DebateDraftedEvent{
		baseEvent: newBaseEvent(TypeDebateDrafted, runID),
		Duration:  d,
	}
}

// SegmentVoicedEvent is emitted after a segment's MP3 is on disk.
type SegmentVoicedEvent struct {
	baseEvent
	Segment  debate.Segment
	Path     string
	Bytes    int
	Duration time.Duration
}

// NewSegmentVoicedEvent creates a SegmentVoicedEvent.
func NewSegmentVoicedEvent(runID string, seg debate.Segment, path string, size int, d time.Duration) SegmentVoicedEvent {
	return SegmentVoicedEvent{
		baseEvent: newBaseEvent(TypeSegmentVoiced, runID),
		Segment:   seg,
		Path:      path,
		Bytes:     size,
		Duration:  d,
	}
}

// DebateCompletedEvent is emitted when a run ends, successfully or not.
// Err is nil on success.
type DebateCompletedEvent struct {
	baseEvent
	OutputDir string
	Files     []string
	Err       error
	Duration  time.Duration
}

// NewDebateCompletedEvent creates a DebateCompletedEvent.
func NewDebateCompletedEvent(runID, outputDir string, files []string, err error, d time.Duration) DebateCompletedEvent {
	return DebateCompletedEvent{
		baseEvent: newBaseEvent(TypeDebateCompleted, runID),
		OutputDir: outputDir,
		Files:     files,
		Err:       err,
		Duration:  d,
	}
}

// Success reports whether the run produced all files.
func (e DebateCompletedEvent) Success() bool {
	return e.Err == nil
}
