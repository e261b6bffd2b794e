// Package orchestrator runs a debate end to end: six ordered language model
// calls that build the transcript, then speech synthesis of each segment.
package orchestrator

import (
	"context"
	"time"

	"github.com/Iron-Ham/oxdebate/internal/audio"
	"github.com/Iron-Ham/oxdebate/internal/debate"
	"github.com/Iron-Ham/oxdebate/internal/errors"
	"github.com/Iron-Ham/oxdebate/internal/event"
	"github.com/Iron-Ham/oxdebate/internal/llm"
	"github.com/Iron-Ham/oxdebate/internal/logging"
	"github.com/Iron-Ham/oxdebate/internal/prompt"
	"github.com/google/uuid"
)

// Orchestrator drafts and voices debates. It is not safe for concurrent
// runs; create one per generation.
type Orchestrator struct {
	client  llm.Client
	prompts *prompt.Set
	audio   *audio.Generator
	bus     *event.Bus
	logger  *logging.Logger

	// provider is reported in debate.started; empty when no audio is wired.
	provider string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithEventBus publishes progress events to bus.
func WithEventBus(bus *event.Bus) Option {
	return func(o *Orchestrator) {
		o.bus = bus
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *logging.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAudio voices the transcript with gen after drafting. provider names
// the speech API for events and logs.
func WithAudio(gen *audio.Generator, provider string) Option {
	return func(o *Orchestrator) {
		o.audio = gen
		o.provider = provider
	}
}

// New creates an Orchestrator that drafts speeches with client using the
// templates in prompts.
func New(client llm.Client, prompts *prompt.Set, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:  client,
		prompts: prompts,
		logger:  logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewRunID returns a fresh identifier for one generation.
func NewRunID() string {
	return uuid.NewString()
}

// Result is the outcome of a full run.
type Result struct {
	RunID      string
	Motion     string
	Transcript *debate.Transcript
	// Files holds the MP3 paths in running order. Empty when no audio
	// generator is configured.
	Files    []string
	Duration time.Duration
}

// Run drafts the debate and, when audio is configured, voices it. The first
// failure ends the run.
func (o *Orchestrator) Run(ctx context.Context, runID, motion string) (*Result, error) {
	if runID == "" {
		runID = NewRunID()
	}
	start := time.Now()

	tr, err := o.Generate(ctx, runID, motion)
	if err != nil {
		o.publish(event.NewDebateCompletedEvent(runID, "", nil, err, time.Since(start)))
		return nil, err
	}

	result := &Result{
		RunID:      runID,
		Motion:     tr.Motion(),
		Transcript: tr,
	}

	if o.audio != nil {
		files, err := o.audio.Generate(ctx, runID, tr)
		if err != nil {
			return nil, err
		}
		result.Files = files
	}

	result.Duration = time.Since(start)
	o.logger.WithRun(runID).Info("debate complete",
		"files", len(result.Files),
		"duration_ms", result.Duration.Milliseconds())
	return result, nil
}

// Generate drafts all six speeches in running order. Each call sees the
// motion plus the speeches its segment depends on: rebuttals get the
// opponent's opening and closings get all four earlier speeches.
func (o *Orchestrator) Generate(ctx context.Context, runID, motion string) (*debate.Transcript, error) {
	motion, err := debate.NormalizeMotion(motion)
	if err != nil {
		return nil, err
	}

	log := o.logger.WithRun(runID)
	log.Info("debate started", "motion", motion, "model", o.client.Model(), "provider", o.provider)
	o.publish(event.NewDebateStartedEvent(runID, motion, o.client.Model(), o.provider))

	start := time.Now()
	tr := debate.NewTranscript(motion)
	for _, seg := range debate.Segments() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := o.draft(ctx, runID, tr, seg)
		if err != nil {
			return nil, err
		}
		tr.Set(seg, text)
	}

	elapsed := time.Since(start)
	log.Info("debate drafted", "duration_ms", elapsed.Milliseconds())
	o.publish(event.NewDebateDraftedEvent(runID, elapsed))
	return tr, nil
}

func (o *Orchestrator) draft(ctx context.Context, runID string, tr *debate.Transcript, seg debate.Segment) (string, error) {
	log := o.logger.WithRun(runID).WithSegment(seg.Key())
	o.publish(event.NewSegmentStartedEvent(runID, seg, event.PhaseDrafting))

	userPrompt, err := o.prompts.Render(seg, tr.Motion(), tr.ContextFor(seg))
	if err != nil {
		return "", errors.NewGenerationError("cannot render prompt", err).WithSegment(seg.Key())
	}

	start := time.Now()
	text, err := o.client.Complete(ctx, []llm.Message{
		llm.System(o.prompts.Persona()),
		llm.User(userPrompt),
	})
	elapsed := time.Since(start)
	if err != nil {
		log.Error("speech generation failed", "error", err.Error(), "duration_ms", elapsed.Milliseconds())
		var genErr *errors.GenerationError
		if errors.As(err, &genErr) {
			return "", genErr.WithSegment(seg.Key())
		}
		return "", errors.NewGenerationError("speech generation failed", err).
			WithSegment(seg.Key()).
			WithModel(o.client.Model())
	}

	log.Info("speech drafted", "chars", len(text), "duration_ms", elapsed.Milliseconds())
	o.publish(event.NewSegmentDraftedEvent(runID, seg, len(text), elapsed))
	return text, nil
}

func (o *Orchestrator) publish(ev event.Event) {
	if o.bus != nil {
		o.bus.Publish(ev)
	}
}
