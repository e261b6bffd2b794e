package debate

import (
	"sync"

	"github.com/Iron-Ham/oxdebate/internal/errors"
)

// Transcript holds the generated text for each segment of one debate.
// It lives only for the duration of a run. Transcript is safe for
// concurrent use.
type Transcript struct {
	mu     sync.RWMutex
	motion string
	texts  [SegmentCount]string
}

// NewTranscript creates an empty transcript for a motion.
func NewTranscript(motion string) *Transcript {
	return &Transcript{motion: motion}
}

// Motion returns the motion under debate.
func (t *Transcript) Motion() string {
	return t.motion
}

// Set records the text for a segment, replacing any previous value.
func (t *Transcript) Set(seg Segment, text string) {
	if seg.Order < 1 || seg.Order > SegmentCount {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.texts[seg.Order-1] = text
}

// Text returns the text for a segment, or "" if none has been recorded.
func (t *Transcript) Text(seg Segment) string {
	if seg.Order < 1 || seg.Order > SegmentCount {
		return ""
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.texts[seg.Order-1]
}

// Len returns how many segments have text.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, text := range t.texts {
		if text != "" {
			n++
		}
	}
	return n
}

// Complete reports whether all six segments have text.
func (t *Transcript) Complete() bool {
	return t.Len() == SegmentCount
}

// Validate returns ErrIncompleteTranscript naming the first missing segment.
func (t *Transcript) Validate() error {
	for _, seg := range Segments() {
		if t.Text(seg) == "" {
			return errors.Wrapf(errors.ErrIncompleteTranscript, "missing %s", seg.Key())
		}
	}
	return nil
}

// Each calls fn for every segment in running order, stopping at the
// first error.
func (t *Transcript) Each(fn func(seg Segment, text string) error) error {
	for _, seg := range Segments() {
		if err := fn(seg, t.Text(seg)); err != nil {
			return err
		}
	}
	return nil
}

// ContextFor returns the texts s depends on, keyed by segment key.
func (t *Transcript) ContextFor(s Segment) map[string]string {
	deps := s.Context()
	out := make(map[string]string, len(deps))
	for _, dep := range deps {
		out[dep.Key()] = t.Text(dep)
	}
	return out
}
