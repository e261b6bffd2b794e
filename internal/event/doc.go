// Package event provides a synchronous pub-sub bus that decouples the debate
// pipeline from whatever is watching it (the progress display, the run log).
//
// # Event Types
//
//   - [DebateStartedEvent] ("debate.started"): motion, model and TTS provider
//   - [SegmentStartedEvent] ("segment.started"): a segment entered drafting or voicing
//   - [SegmentDraftedEvent] ("segment.drafted"): the model returned a speech
//   - [DebateDraftedEvent] ("debate.drafted"): all six speeches exist
//   - [SegmentVoicedEvent] ("segment.voiced"): an MP3 was written
//   - [DebateCompletedEvent] ("debate.completed"): the run ended, with Err set on failure
//
// Every event carries the RunID of the generation that produced it.
//
// # Usage
//
//	bus := event.NewBus()
//	bus.Subscribe(event.TypeSegmentVoiced, func(e event.Event) {
//	    voiced := e.(event.SegmentVoicedEvent)
//	    fmt.Println("wrote", voiced.Path)
//	})
//
// Handlers run on the publishing goroutine. A handler that needs to do
// slow work should hand the event off (for example via tea.Program.Send).
package event
