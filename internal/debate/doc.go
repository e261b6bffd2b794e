// Package debate defines the shape of an Oxford-style debate: the two sides,
// the three stages, and the six segments that make up a full debate.
//
// # Running Order
//
// Every debate has exactly six segments, always produced in this order:
//
//  1. proposition opening
//  2. opposition opening
//  3. proposition rebuttal
//  4. opposition rebuttal
//  5. proposition closing
//  6. opposition closing
//
// The order is significant: a rebuttal answers the opposing opening, and a
// closing sums up all four earlier speeches. [Segment.Context] reports those
// dependencies and [Transcript.ContextFor] resolves them to text.
//
// # Output Names
//
// Each segment maps to a fixed audio file name with a two-digit prefix,
// e.g. "01_proposition_opening.mp3". Sorting the output directory by name
// therefore reproduces the running order.
//
// # Usage
//
//	tr := debate.NewTranscript(motion)
//	for _, seg := range debate.Segments() {
//	    ctx := tr.ContextFor(seg)
//	    tr.Set(seg, speak(seg, ctx))
//	}
package debate
