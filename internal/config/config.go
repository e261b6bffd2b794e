package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// AppName is used for the config directory and environment prefix.
const AppName = "oxdebate"

// Config represents the complete oxdebate configuration
type Config struct {
	Debate    DebateConfig    `mapstructure:"debate"`
	LLM       LLMConfig       `mapstructure:"llm"`
	TTS       TTSConfig       `mapstructure:"tts"`
	Voices    VoicesConfig    `mapstructure:"voices"`
	Output    OutputConfig    `mapstructure:"output"`
	Prompts   PromptsConfig   `mapstructure:"prompts"`
	Secrets   SecretsConfig   `mapstructure:"secrets"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Reporting ReportingConfig `mapstructure:"reporting"`
}

// DebateConfig controls the debate itself
type DebateConfig struct {
	// DefaultMotion is used when --motion and DEFAULT_MOTION are both unset.
	// Empty means the built-in default motion.
	DefaultMotion string `mapstructure:"default_motion"`
}

// LLMConfig controls the language model that writes the speeches
type LLMConfig struct {
	// Model is the chat completion model (default: "gpt-4o")
	Model string `mapstructure:"model"`
	// Temperature is the sampling temperature, 0 to 2 (default: 0.7)
	Temperature float64 `mapstructure:"temperature"`
	// MaxTokens caps each speech; 0 leaves it to the provider (default: 800)
	MaxTokens int `mapstructure:"max_tokens"`
	// TimeoutSeconds bounds each request (default: 120)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// TTSConfig controls speech synthesis
type TTSConfig struct {
	// Provider selects the speech API: "openai" or "elevenlabs" (default: "openai")
	Provider string `mapstructure:"provider"`
	// Model is the OpenAI speech model (default: "tts-1-hd")
	Model string `mapstructure:"model"`
	// ElevenLabsModel is the ElevenLabs model ID (default: "eleven_monolingual_v1")
	ElevenLabsModel string `mapstructure:"elevenlabs_model"`
	// TimeoutSeconds bounds each request (default: 120)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// VoiceConfig selects the voice for one side
type VoiceConfig struct {
	// VoiceID is a provider voice name (OpenAI) or voice ID (ElevenLabs)
	VoiceID string `mapstructure:"voice_id"`
	// Speed is the playback speed, 0.25 to 4.0 (default: 1.0). OpenAI only.
	Speed float64 `mapstructure:"speed"`
}

// VoicesConfig maps each side of the debate to a voice
type VoicesConfig struct {
	Proposition VoiceConfig `mapstructure:"proposition"`
	Opposition  VoiceConfig `mapstructure:"opposition"`
}

// OutputConfig controls where results are written
type OutputConfig struct {
	// Dir is the output directory for audio files (default: "output")
	Dir string `mapstructure:"dir"`
	// IncludeTranscript writes a .txt transcript next to each MP3 (default: false)
	IncludeTranscript bool `mapstructure:"include_transcript"`
}

// PromptsConfig controls prompt templates
type PromptsConfig struct {
	// File is an optional YAML file overriding the built-in templates
	File string `mapstructure:"file"`
}

// SecretsConfig locates the API credentials
type SecretsConfig struct {
	// Path is the JSON secrets file (default: "config/secrets/config.json")
	Path string `mapstructure:"path"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled writes a JSON debate.log into the output directory (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// ReportingConfig controls crash reporting
type ReportingConfig struct {
	// SentryDSN enables Sentry error reporting when set
	SentryDSN string `mapstructure:"sentry_dsn"`
	// Environment is reported to Sentry (default: "development")
	Environment string `mapstructure:"environment"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Debate: DebateConfig{
			DefaultMotion: "",
		},
		LLM: LLMConfig{
			Model:          "gpt-4o",
			Temperature:    0.7,
			MaxTokens:      800,
			TimeoutSeconds: 120,
		},
		TTS: TTSConfig{
			Provider:        ProviderOpenAI,
			Model:           "tts-1-hd",
			ElevenLabsModel: "eleven_monolingual_v1",
			TimeoutSeconds:  120,
		},
		Voices: VoicesConfig{
			Proposition: VoiceConfig{VoiceID: "onyx", Speed: 1.0},
			Opposition:  VoiceConfig{VoiceID: "nova", Speed: 1.0},
		},
		Output: OutputConfig{
			Dir:               "output",
			IncludeTranscript: false,
		},
		Secrets: SecretsConfig{
			Path: DefaultSecretsPath,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Reporting: ReportingConfig{
			Environment: "development",
		},
	}
}

// LLMTimeout returns the per-request timeout for the language model
func (c *LLMConfig) LLMTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TTSTimeout returns the per-request timeout for speech synthesis
func (c *TTSConfig) TTSTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("debate.default_motion", defaults.Debate.DefaultMotion)

	viper.SetDefault("llm.model", defaults.LLM.Model)
	viper.SetDefault("llm.temperature", defaults.LLM.Temperature)
	viper.SetDefault("llm.max_tokens", defaults.LLM.MaxTokens)
	viper.SetDefault("llm.timeout_seconds", defaults.LLM.TimeoutSeconds)

	viper.SetDefault("tts.provider", defaults.TTS.Provider)
	viper.SetDefault("tts.model", defaults.TTS.Model)
	viper.SetDefault("tts.elevenlabs_model", defaults.TTS.ElevenLabsModel)
	viper.SetDefault("tts.timeout_seconds", defaults.TTS.TimeoutSeconds)

	viper.SetDefault("voices.proposition.voice_id", defaults.Voices.Proposition.VoiceID)
	viper.SetDefault("voices.proposition.speed", defaults.Voices.Proposition.Speed)
	viper.SetDefault("voices.opposition.voice_id", defaults.Voices.Opposition.VoiceID)
	viper.SetDefault("voices.opposition.speed", defaults.Voices.Opposition.Speed)

	viper.SetDefault("output.dir", defaults.Output.Dir)
	viper.SetDefault("output.include_transcript", defaults.Output.IncludeTranscript)

	viper.SetDefault("prompts.file", defaults.Prompts.File)
	viper.SetDefault("secrets.path", defaults.Secrets.Path)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	viper.SetDefault("reporting.sentry_dsn", defaults.Reporting.SentryDSN)
	viper.SetDefault("reporting.environment", defaults.Reporting.Environment)

	// Unprefixed variables kept for compatibility with existing setups.
	_ = viper.BindEnv("tts.provider", "OXDEBATE_TTS_PROVIDER", "TTS_PROVIDER")
	_ = viper.BindEnv("reporting.sentry_dsn", "OXDEBATE_REPORTING_SENTRY_DSN", "SENTRY_DSN")
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ProjectConfigFile is the settings file written by `oxdebate setup`,
// relative to the working directory.
const ProjectConfigFile = "config/config.yaml"

// ConfigFile returns the path to the user-level config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// SearchPaths returns the directories viper searches for config.yaml, in order.
func SearchPaths() []string {
	return []string{ConfigDir(), filepath.Join("$HOME", ".config", AppName), "config", "."}
}
