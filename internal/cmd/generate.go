package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/oxdebate/internal/audio"
	"github.com/Iron-Ham/oxdebate/internal/config"
	"github.com/Iron-Ham/oxdebate/internal/debate"
	"github.com/Iron-Ham/oxdebate/internal/errors"
	"github.com/Iron-Ham/oxdebate/internal/event"
	"github.com/Iron-Ham/oxdebate/internal/llm"
	"github.com/Iron-Ham/oxdebate/internal/logging"
	"github.com/Iron-Ham/oxdebate/internal/orchestrator"
	"github.com/Iron-Ham/oxdebate/internal/prompt"
	"github.com/Iron-Ham/oxdebate/internal/report"
	"github.com/Iron-Ham/oxdebate/internal/tts"
	"github.com/Iron-Ham/oxdebate/internal/tui/progress"
	"github.com/spf13/cobra"
)

// MotionEnv is the environment variable consulted when --motion is unset.
const MotionEnv = "DEFAULT_MOTION"

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"generate-debate"},
	Short:   "Generate a debate and voice it as six MP3 files",
	Long: `Generate a six-speech Oxford-style debate and write one MP3 per speech.

The motion comes from --motion, then the DEFAULT_MOTION environment
variable, then debate.default_motion in the config file, then the
built-in default. Files are written to the output directory as
01_proposition_opening.mp3 through 06_opposition_closing.mp3.`,
	Example: `  oxdebate generate
  oxdebate generate -m "This house would ban homework"
  oxdebate generate -m "This house would abolish the monarchy" -o debates/monarchy --transcript`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGenerateFlags(generateCmd)
}

func addGenerateFlags(c *cobra.Command) {
	c.Flags().StringP("motion", "m", "", "debate motion (default: DEFAULT_MOTION, config, then built-in)")
	c.Flags().StringP("output", "o", "", "output directory (overrides output.dir)")
	c.Flags().String("secrets", "", "path to the API secrets JSON file (overrides secrets.path)")
	c.Flags().Bool("transcript", false, "also write a .txt transcript next to each MP3")
}

// applyGenerateFlags copies explicitly set flags over the loaded config.
func applyGenerateFlags(c *cobra.Command, cfg *config.Config) {
	flags := c.Flags()
	if flags.Changed("output") {
		cfg.Output.Dir, _ = flags.GetString("output")
	}
	if flags.Changed("secrets") {
		cfg.Secrets.Path, _ = flags.GetString("secrets")
	}
	if flags.Changed("transcript") {
		cfg.Output.IncludeTranscript, _ = flags.GetBool("transcript")
	}
}

// resolveMotion applies motion precedence. An explicit --motion is used as
// given, so a blank one is an error rather than a silent fallback.
func resolveMotion(c *cobra.Command, cfg *config.Config) (string, error) {
	if c.Flags().Changed("motion") {
		m, _ := c.Flags().GetString("motion")
		return debate.NormalizeMotion(m)
	}
	return debate.ResolveMotion(os.Getenv(MotionEnv), cfg.Debate.DefaultMotion), nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyGenerateFlags(cmd, cfg)
	if errs := cfg.Validate(); len(errs) > 0 {
		return config.ValidationErrors(errs)
	}

	motion, err := resolveMotion(cmd, cfg)
	if err != nil {
		return err
	}

	// Credentials are checked before anything touches the network or disk
	secrets, err := config.LoadSecrets(cfg.Secrets.Path)
	if err != nil {
		return err
	}
	synth, err := tts.NewFromConfig(cfg, secrets)
	if err != nil {
		return err
	}
	prompts, err := prompt.Load(cfg.Prompts.File)
	if err != nil {
		return err
	}

	if err := prepareOutputDir(cfg.Output.Dir); err != nil {
		return err
	}

	client := llm.NewOpenAIClient(secrets.OpenAIAPIKey,
		llm.WithBaseURL(secrets.OpenAIAPIBase),
		llm.WithModel(cfg.LLM.Model),
		llm.WithTemperature(cfg.LLM.Temperature),
		llm.WithMaxTokens(cfg.LLM.MaxTokens),
		llm.WithTimeout(cfg.LLM.LLMTimeout()),
	)

	logger, err := newRunLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	errOut := cmd.ErrOrStderr()
	reporter, err := report.New(cfg.Reporting, Version)
	if err != nil {
		printWarning(errOut, "crash reporting disabled: "+err.Error())
		reporter = &report.Reporter{}
	}

	runID := orchestrator.NewRunID()
	bus := event.NewBus()
	bus.OnPanic(func(ev event.Event, recovered any, stack []byte) {
		logger.WithRun(runID).Error("event handler panicked",
			"event", ev.EventType(),
			"panic", fmt.Sprint(recovered),
			"stack", string(stack))
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gen := audio.NewGenerator(synth, audio.OptionsFromConfig(cfg), bus, logger)
	orch := orchestrator.New(client, prompts,
		orchestrator.WithEventBus(bus),
		orchestrator.WithLogger(logger),
		orchestrator.WithAudio(gen, synth.Name()),
	)

	out := cmd.OutOrStdout()
	display := progress.Start(bus, out, isTerminal(out), cancel)
	result, runErr := orch.Run(ctx, runID, motion)
	if err := display.Stop(); err != nil {
		logger.WithRun(runID).Warn("progress display failed", "error", err.Error())
	}

	if runErr != nil {
		if reporter.Capture(runErr, runID, motion) {
			reporter.Flush()
		}
		if ctx.Err() != nil {
			return fmt.Errorf("interrupted: %w", runErr)
		}
		return runErr
	}

	printSummary(out, result, cfg.Output.Dir)
	return nil
}

// prepareOutputDir creates the output directory before the first API call.
func prepareOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewConfigError("cannot create output directory", err).
			WithPath(dir).
			WithHint("pass a writable directory with --output or set output.dir")
	}
	return nil
}

// newRunLogger opens debate.log in the output directory, or a no-op logger
// when logging is disabled.
func newRunLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	return logging.NewLogger(cfg.Output.Dir, cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && progress.IsInteractive(f)
}
