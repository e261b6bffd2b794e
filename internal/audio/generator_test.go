package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Iron-Ham/oxdebate/internal/config"
	"github.com/Iron-Ham/oxdebate/internal/debate"
	oxerrors "github.com/Iron-Ham/oxdebate/internal/errors"
	"github.com/Iron-Ham/oxdebate/internal/event"
	"github.com/Iron-Ham/oxdebate/internal/tts"
)

type call struct {
	text  string
	voice tts.Voice
}

type fakeSynth struct {
	mu     sync.Mutex
	calls  []call
	failAt int // 1-based call number that fails; 0 never fails
	err    error
}

func (f *fakeSynth) Synthesize(_ context.Context, text string, voice tts.Voice) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{text: text, voice: voice})
	if f.failAt == len(f.calls) {
		return nil, f.err
	}
	return []byte("MP3:" + text), nil
}

func (f *fakeSynth) Name() string {
	return "fake"
}

func fullTranscript() *debate.Transcript {
	tr := debate.NewTranscript("This house would ban homework")
	for _, seg := range debate.Segments() {
		tr.Set(seg, "speech "+seg.Key())
	}
	return tr
}

func testOptions(dir string) Options {
	return Options{
		OutputDir:   dir,
		Proposition: tts.Voice{ID: "onyx", Speed: 1},
		Opposition:  tts.Voice{ID: "nova", Speed: 1.1},
	}
}

func TestGenerate_WritesSixFilesInOrder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	synth := &fakeSynth{}
	gen := NewGenerator(synth, testOptions(dir), nil, nil)

	files, err := gen.Generate(context.Background(), "run-1", fullTranscript())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(files) != debate.SegmentCount {
		t.Fatalf("files = %v", files)
	}
	for i, seg := range debate.Segments() {
		want := filepath.Join(dir, seg.Filename())
		if files[i] != want {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want)
		}
		data, err := os.ReadFile(want)
		if err != nil {
			t.Fatalf("read %s: %v", want, err)
		}
		if string(data) != "MP3:speech "+seg.Key() {
			t.Errorf("%s content = %q", seg.Filename(), data)
		}
		if _, err := os.Stat(filepath.Join(dir, seg.TranscriptFilename())); !os.IsNotExist(err) {
			t.Errorf("transcript %s should not exist by default", seg.TranscriptFilename())
		}

		// Alternating voices
		wantVoice := "onyx"
		if seg.Side == debate.Opposition {
			wantVoice = "nova"
		}
		if synth.calls[i].voice.ID != wantVoice {
			t.Errorf("call %d voice = %q, want %q", i, synth.calls[i].voice.ID, wantVoice)
		}
	}

	// No temp files left behind
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestGenerate_IncludeTranscript(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(dir)
	opts.IncludeTranscript = true

	gen := NewGenerator(&fakeSynth{}, opts, nil, nil)
	if _, err := gen.Generate(context.Background(), "r", fullTranscript()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "04_opposition_rebuttal.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := "# OPPOSITION - REBUTTAL\n\nMotion: This house would ban homework\n\nspeech opposition_rebuttal\n"
	if string(data) != want {
		t.Errorf("transcript = %q, want %q", data, want)
	}
}

func TestGenerate_IncompleteTranscript(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	synth := &fakeSynth{}
	tr := debate.NewTranscript("m")
	tr.Set(debate.Segments()[0], "only one")

	_, err := NewGenerator(synth, testOptions(dir), nil, nil).Generate(context.Background(), "r", tr)
	if !errors.Is(err, oxerrors.ErrIncompleteTranscript) {
		t.Fatalf("error = %v, want ErrIncompleteTranscript", err)
	}
	if len(synth.calls) != 0 {
		t.Errorf("synthesizer called %d times, want 0", len(synth.calls))
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("output directory should not be created")
	}
}

func TestGenerate_FailureStopsAndNamesSegment(t *testing.T) {
	dir := t.TempDir()
	synth := &fakeSynth{
		failAt: 3,
		err:    oxerrors.NewSynthesisError("boom", oxerrors.ErrRateLimited).WithProvider("fake").WithStatusCode(429),
	}

	files, err := NewGenerator(synth, testOptions(dir), nil, nil).Generate(context.Background(), "r", fullTranscript())

	var synthErr *oxerrors.SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("error = %v, want *SynthesisError", err)
	}
	if synthErr.Segment != "proposition_rebuttal" {
		t.Errorf("Segment = %q, want proposition_rebuttal", synthErr.Segment)
	}
	if !errors.Is(err, oxerrors.ErrRateLimited) {
		t.Error("cause should be preserved")
	}
	if len(files) != 2 || len(synth.calls) != 3 {
		t.Errorf("files = %v, calls = %d", files, len(synth.calls))
	}
	if _, err := os.Stat(filepath.Join(dir, "03_proposition_rebuttal.mp3")); !os.IsNotExist(err) {
		t.Error("failed segment should not leave a file")
	}
}

func TestGenerate_WrapsPlainErrors(t *testing.T) {
	synth := &fakeSynth{failAt: 1, err: errors.New("socket closed")}

	_, err := NewGenerator(synth, testOptions(t.TempDir()), nil, nil).Generate(context.Background(), "r", fullTranscript())

	var synthErr *oxerrors.SynthesisError
	if !errors.As(err, &synthErr) || synthErr.Segment != "proposition_opening" || synthErr.Provider != "fake" {
		t.Errorf("error = %v, want SynthesisError for proposition_opening", err)
	}
}

func TestGenerate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	synth := &fakeSynth{}
	_, err := NewGenerator(synth, testOptions(t.TempDir()), nil, nil).Generate(ctx, "r", fullTranscript())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(synth.calls) != 0 {
		t.Errorf("calls = %d, want 0", len(synth.calls))
	}
}

func TestGenerate_PublishesEvents(t *testing.T) {
	bus := event.NewBus()

	var voiced []string
	var completed *event.DebateCompletedEvent
	bus.Subscribe(event.TypeSegmentVoiced, func(e event.Event) {
		voiced = append(voiced, e.(event.SegmentVoicedEvent).Segment.Key())
	})
	bus.Subscribe(event.TypeDebateCompleted, func(e event.Event) {
		c := e.(event.DebateCompletedEvent)
		completed = &c
	})

	dir := t.TempDir()
	if _, err := NewGenerator(&fakeSynth{}, testOptions(dir), bus, nil).Generate(context.Background(), "run-9", fullTranscript()); err != nil {
		t.Fatal(err)
	}

	if len(voiced) != debate.SegmentCount || voiced[0] != "proposition_opening" {
		t.Errorf("voiced = %v", voiced)
	}
	if completed == nil || !completed.Success() || completed.RunID != "run-9" || len(completed.Files) != 6 {
		t.Errorf("completed = %+v", completed)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Output.IncludeTranscript = true
	cfg.Voices.Opposition.Speed = 1.5

	opts := OptionsFromConfig(cfg)
	if opts.OutputDir != "output" || !opts.IncludeTranscript {
		t.Errorf("opts = %+v", opts)
	}
	if opts.VoiceFor(debate.Proposition).ID != "onyx" {
		t.Errorf("proposition voice = %+v", opts.VoiceFor(debate.Proposition))
	}
	if v := opts.VoiceFor(debate.Opposition); v.ID != "nova" || v.Speed != 1.5 {
		t.Errorf("opposition voice = %+v", v)
	}
}
