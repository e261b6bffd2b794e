// Package audio turns a finished transcript into one MP3 per segment.
package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Iron-Ham/oxdebate/internal/config"
	"github.com/Iron-Ham/oxdebate/internal/debate"
	"github.com/Iron-Ham/oxdebate/internal/errors"
	"github.com/Iron-Ham/oxdebate/internal/event"
	"github.com/Iron-Ham/oxdebate/internal/logging"
	"github.com/Iron-Ham/oxdebate/internal/tts"
)

// Options controls where and how audio is written.
type Options struct {
	OutputDir         string
	IncludeTranscript bool
	Proposition       tts.Voice
	Opposition        tts.Voice
}

// OptionsFromConfig builds Options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		OutputDir:         cfg.Output.Dir,
		IncludeTranscript: cfg.Output.IncludeTranscript,
		Proposition: tts.Voice{
			ID:    cfg.Voices.Proposition.VoiceID,
			Speed: cfg.Voices.Proposition.Speed,
		},
		Opposition: tts.Voice{
			ID:    cfg.Voices.Opposition.VoiceID,
			Speed: cfg.Voices.Opposition.Speed,
		},
	}
}

// VoiceFor returns the voice for a side.
func (o Options) VoiceFor(side debate.Side) tts.Voice {
	if side == debate.Opposition {
		return o.Opposition
	}
	return o.Proposition
}

// Generator voices transcripts segment by segment.
type Generator struct {
	synth  tts.Synthesizer
	opts   Options
	bus    *event.Bus
	logger *logging.Logger
}

// NewGenerator creates a Generator. bus and logger may be nil.
func NewGenerator(synth tts.Synthesizer, opts Options, bus *event.Bus, logger *logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Generator{
		synth:  synth,
		opts:   opts,
		bus:    bus,
		logger: logger.With("provider", synth.Name()),
	}
}

// Generate synthesizes every segment of tr in running order and returns the
// MP3 paths. An incomplete transcript fails before any API call. A
// debate.completed event is published on return, carrying any error.
func (g *Generator) Generate(ctx context.Context, runID string, tr *debate.Transcript) ([]string, error) {
	start := time.Now()
	files, err := g.generate(ctx, runID, tr)
	g.publish(event.NewDebateCompletedEvent(runID, g.opts.OutputDir, files, err, time.Since(start)))
	return files, err
}

func (g *Generator) generate(ctx context.Context, runID string, tr *debate.Transcript) ([]string, error) {
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(g.opts.OutputDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create output directory %s", g.opts.OutputDir)
	}

	files := make([]string, 0, debate.SegmentCount)
	err := tr.Each(func(seg debate.Segment, text string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := g.voice(ctx, runID, tr.Motion(), seg, text)
		if err != nil {
			return err
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return files, err
	}

	g.logger.WithRun(runID).Info("debate voiced", "files", len(files), "output_dir", g.opts.OutputDir)
	return files, nil
}

func (g *Generator) voice(ctx context.Context, runID, motion string, seg debate.Segment, text string) (string, error) {
	log := g.logger.WithRun(runID).WithSegment(seg.Key())
	g.publish(event.NewSegmentStartedEvent(runID, seg, event.PhaseVoicing))

	start := time.Now()
	data, err := g.synth.Synthesize(ctx, text, g.opts.VoiceFor(seg.Side))
	if err != nil {
		log.Error("synthesis failed", "error", err.Error())
		var synthErr *errors.SynthesisError
		if errors.As(err, &synthErr) {
			synthErr.WithSegment(seg.Key())
			return "", synthErr
		}
		return "", errors.NewSynthesisError("synthesis failed", err).
			WithSegment(seg.Key()).
			WithProvider(g.synth.Name())
	}

	path := filepath.Join(g.opts.OutputDir, seg.Filename())
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}

	if g.opts.IncludeTranscript {
		tpath := filepath.Join(g.opts.OutputDir, seg.TranscriptFilename())
		if err := writeFileAtomic(tpath, []byte(FormatTranscript(seg, motion, text)), 0644); err != nil {
			return "", errors.Wrapf(err, "write %s", tpath)
		}
	}

	elapsed := time.Since(start)
	log.Info("segment voiced", "path", path, "bytes", len(data), "duration_ms", elapsed.Milliseconds())
	g.publish(event.NewSegmentVoicedEvent(runID, seg, path, len(data), elapsed))
	return path, nil
}

func (g *Generator) publish(ev event.Event) {
	if g.bus != nil {
		g.bus.Publish(ev)
	}
}

// FormatTranscript renders the text file written next to a segment's MP3.
func FormatTranscript(seg debate.Segment, motion, text string) string {
	return fmt.Sprintf("# %s - %s\n\nMotion: %s\n\n%s\n",
		strings.ToUpper(string(seg.Side)),
		strings.ToUpper(string(seg.Stage)),
		motion,
		strings.TrimSpace(text))
}
