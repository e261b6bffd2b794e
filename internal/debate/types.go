package debate

import (
	"fmt"
	"strings"
)

// Side is one of the two teams in an Oxford-style debate.
type Side string

const (
	// Proposition argues for the motion.
	Proposition Side = "proposition"
	// Opposition argues against the motion.
	Opposition Side = "opposition"
)

// Stage is one of the three speaking rounds.
type Stage string

const (
	StageOpening  Stage = "opening"
	StageRebuttal Stage = "rebuttal"
	StageClosing  Stage = "closing"
)

// Segment is one speaking turn. Order is 1-based and fixes both the
// generation sequence and the output filename prefix.
type Segment struct {
	Order int
	Side  Side
	Stage Stage
}

// segments is the fixed running order of a debate.
var segments = [...]Segment{
	{Order: 1, Side: Proposition, Stage: StageOpening},
	{Order: 2, Side: Opposition, Stage: StageOpening},
	{Order: 3, Side: Proposition, Stage: StageRebuttal},
	{Order: 4, Side: Opposition, Stage: StageRebuttal},
	{Order: 5, Side: Proposition, Stage: StageClosing},
	{Order: 6, Side: Opposition, Stage: StageClosing},
}

// SegmentCount is the number of segments in every debate.
const SegmentCount = len(segments)

// Segments returns the six segments in running order.
// The returned slice is a copy and may be modified by the caller.
func Segments() []Segment {
	out := make([]Segment, len(segments))
	copy(out, segments[:])
	return out
}

// SegmentByKey looks up a segment by its "<side>_<stage>" key.
func SegmentByKey(key string) (Segment, bool) {
	for _, s := range segments {
		if s.Key() == key {
			return s, true
		}
	}
	return Segment{}, false
}

// Key returns the "<side>_<stage>" identifier, e.g. "proposition_rebuttal".
func (s Segment) Key() string {
	return string(s.Side) + "_" + string(s.Stage)
}

// Filename returns the audio file name, e.g. "03_proposition_rebuttal.mp3".
func (s Segment) Filename() string {
	return s.stem() + ".mp3"
}

// TranscriptFilename returns the text file name written alongside the audio.
func (s Segment) TranscriptFilename() string {
	return s.stem() + ".txt"
}

func (s Segment) stem() string {
	return fmt.Sprintf("%02d_%s", s.Order, s.Key())
}

// String returns a human-readable label such as "Proposition rebuttal".
func (s Segment) String() string {
	side := string(s.Side)
	if side != "" {
		side = strings.ToUpper(side[:1]) + side[1:]
	}
	return side + " " + string(s.Stage)
}

// Context returns the segments whose text must be supplied when prompting
// for s. Rebuttals answer the opposing opening; closings sum up the first
// four speeches. Every dependency precedes s in running order.
func (s Segment) Context() []Segment {
	switch s.Stage {
	case StageRebuttal:
		opp, _ := SegmentByKey(string(s.Side.Opponent()) + "_" + string(StageOpening))
		return []Segment{opp}
	case StageClosing:
		return Segments()[:4]
	default:
		return nil
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Proposition {
		return Opposition
	}
	return Proposition
}
