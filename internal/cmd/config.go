package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/Iron-Ham/oxdebate/internal/config"
	tuiconfig "github.com/Iron-Ham/oxdebate/internal/tui/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify oxdebate configuration",
	Long: `View or modify oxdebate configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the active config file, or in the
user config file when none is loaded.

Keys use dot notation, e.g.:
  oxdebate config set llm.model gpt-4o-mini
  oxdebate config set tts.provider elevenlabs
  oxdebate config set voices.opposition.speed 1.1

Run 'oxdebate config show' to list every key.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a commented default config file at ~/.config/oxdebate/config.yaml.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tuiconfig.Run(viper.ConfigFileUsed())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	settings := viper.AllSettings()
	if reporting, ok := settings["reporting"].(map[string]any); ok {
		if dsn, _ := reporting["sentry_dsn"].(string); dsn != "" {
			reporting["sentry_dsn"] = "********"
		}
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	fmt.Fprint(out, string(data))

	if _, err := config.Load(); err != nil {
		fmt.Fprintln(out)
		printWarning(out, err.Error())
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])
	value := args[1]

	if !slices.Contains(viper.AllKeys(), key) {
		return fmt.Errorf("unknown configuration key: %s\nRun 'oxdebate config show' to see valid keys", key)
	}

	previous := viper.Get(key)
	var typedValue any
	switch previous.(type) {
	case bool:
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = value == "true"
	case int, float64:
		// Struct decoding rejects a fraction for an integer field
		if intVal, err := strconv.Atoi(value); err == nil {
			typedValue = intVal
		} else if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			typedValue = floatVal
		} else {
			return fmt.Errorf("invalid value for %s: expected a number", key)
		}
	default:
		typedValue = value
	}

	viper.Set(key, typedValue)
	if _, err := config.Load(); err != nil {
		viper.Set(key, previous)
		return err
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = config.ConfigFile()
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'oxdebate config set' to modify values", configFile)
	}

	if err := writeDefaultConfig(configFile); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize oxdebate's behavior.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	for i, p := range config.SearchPaths() {
		fmt.Fprintf(out, "  %d. %s\n", i+1, filepath.Join(p, "config.yaml"))
	}
	fmt.Fprintln(out, "\nEnvironment variables: OXDEBATE_* (e.g., OXDEBATE_LLM_MODEL)")
	return nil
}

// writeDefaultConfig writes the commented default settings file, creating
// its directory.
func writeDefaultConfig(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func defaultConfigYAML() string {
	d := config.Default()
	return fmt.Sprintf(`# oxdebate configuration

debate:
  # Motion used when --motion and DEFAULT_MOTION are unset (empty = built-in)
  default_motion: %q

# Language model that writes the six speeches
llm:
  model: %s
  # Sampling temperature, 0 to 2
  temperature: %.1f
  # Completion cap per speech (0 = provider default)
  max_tokens: %d
  timeout_seconds: %d

# Text-to-speech
tts:
  # Options: %s
  provider: %s
  model: %s
  elevenlabs_model: %s
  timeout_seconds: %d

# Voice per side; speed is 0.25 to 4.0 and applies to OpenAI only
voices:
  proposition:
    voice_id: %s
    speed: %.1f
  opposition:
    voice_id: %s
    speed: %.1f

output:
  dir: %s
  # Write NN_side_stage.txt next to each MP3
  include_transcript: %t

prompts:
  # Optional YAML file overriding the built-in speech prompts
  file: ""

secrets:
  # JSON file holding OPENAI_API_KEY (and optionally OPENAI_API_BASE,
  # ELEVENLABS_API_KEY)
  path: %s

logging:
  enabled: %t
  # Options: %s
  level: %s
  max_size_mb: %d
  max_backups: %d

reporting:
  # Sentry DSN for crash reports (empty = disabled)
  sentry_dsn: ""
  environment: %s
`,
		d.Debate.DefaultMotion,
		d.LLM.Model, d.LLM.Temperature, d.LLM.MaxTokens, d.LLM.TimeoutSeconds,
		strings.Join(config.ValidTTSProviders(), ", "),
		d.TTS.Provider, d.TTS.Model, d.TTS.ElevenLabsModel, d.TTS.TimeoutSeconds,
		d.Voices.Proposition.VoiceID, d.Voices.Proposition.Speed,
		d.Voices.Opposition.VoiceID, d.Voices.Opposition.Speed,
		d.Output.Dir, d.Output.IncludeTranscript,
		d.Secrets.Path,
		d.Logging.Enabled, strings.Join(config.ValidLogLevels(), ", "), d.Logging.Level,
		d.Logging.MaxSizeMB, d.Logging.MaxBackups,
		d.Reporting.Environment,
	)
}
