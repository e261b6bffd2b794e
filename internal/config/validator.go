package config

import (
	"fmt"
	"slices"
	"strings"
)

// TTS provider names accepted by tts.provider.
const (
	ProviderOpenAI     = "openai"
	ProviderElevenLabs = "elevenlabs"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "voices.proposition.speed")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidTTSProviders returns the list of supported speech providers
func ValidTTSProviders() []string {
	return []string{ProviderOpenAI, ProviderElevenLabs}
}

// OpenAIVoices returns the built-in OpenAI speech voices
func OpenAIVoices() []string {
	return []string{"alloy", "ash", "ballad", "coral", "echo", "fable", "nova", "onyx", "sage", "shimmer", "verse"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateLLM()...)
	errors = append(errors, c.validateTTS()...)
	errors = append(errors, c.validateVoices()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateLLM validates the LLMConfig
func (c *Config) validateLLM() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.LLM.Model) == "" {
		errors = append(errors, ValidationError{
			Field:   "llm.model",
			Value:   c.LLM.Model,
			Message: "must not be empty",
		})
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "llm.temperature",
			Value:   c.LLM.Temperature,
			Message: "must be between 0 and 2",
		})
	}

	// Zero leaves the limit to the provider
	if c.LLM.MaxTokens < 0 {
		errors = append(errors, ValidationError{
			Field:   "llm.max_tokens",
			Value:   c.LLM.MaxTokens,
			Message: "must be non-negative",
		})
	}

	if c.LLM.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "llm.timeout_seconds",
			Value:   c.LLM.TimeoutSeconds,
			Message: "must be positive",
		})
	}

	return errors
}

// validateTTS validates the TTSConfig
func (c *Config) validateTTS() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidTTSProviders(), c.TTS.Provider) {
		errors = append(errors, ValidationError{
			Field:   "tts.provider",
			Value:   c.TTS.Provider,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidTTSProviders(), ", ")),
		})
	}

	switch c.TTS.Provider {
	case ProviderOpenAI:
		if strings.TrimSpace(c.TTS.Model) == "" {
			errors = append(errors, ValidationError{
				Field:   "tts.model",
				Value:   c.TTS.Model,
				Message: "must not be empty",
			})
		}
	case ProviderElevenLabs:
		if strings.TrimSpace(c.TTS.ElevenLabsModel) == "" {
			errors = append(errors, ValidationError{
				Field:   "tts.elevenlabs_model",
				Value:   c.TTS.ElevenLabsModel,
				Message: "must not be empty",
			})
		}
	}

	if c.TTS.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "tts.timeout_seconds",
			Value:   c.TTS.TimeoutSeconds,
			Message: "must be positive",
		})
	}

	return errors
}

// validateVoices validates both sides' voice settings
func (c *Config) validateVoices() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.validateVoice("voices.proposition", c.Voices.Proposition)...)
	errors = append(errors, c.validateVoice("voices.opposition", c.Voices.Opposition)...)
	return errors
}

func (c *Config) validateVoice(field string, v VoiceConfig) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(v.VoiceID) == "" {
		errors = append(errors, ValidationError{
			Field:   field + ".voice_id",
			Value:   v.VoiceID,
			Message: "must not be empty",
		})
	} else if c.TTS.Provider == ProviderOpenAI && !slices.Contains(OpenAIVoices(), v.VoiceID) {
		// ElevenLabs voice IDs are account specific and cannot be checked offline
		errors = append(errors, ValidationError{
			Field:   field + ".voice_id",
			Value:   v.VoiceID,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(OpenAIVoices(), ", ")),
		})
	}

	if v.Speed < 0.25 || v.Speed > 4.0 {
		errors = append(errors, ValidationError{
			Field:   field + ".speed",
			Value:   v.Speed,
			Message: "must be between 0.25 and 4.0",
		})
	}

	return errors
}

// validateOutput validates the OutputConfig
func (c *Config) validateOutput() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Output.Dir) == "" {
		errors = append(errors, ValidationError{
			Field:   "output.dir",
			Value:   c.Output.Dir,
			Message: "must not be empty",
		})
	} else if strings.ContainsRune(c.Output.Dir, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "output.dir",
			Value:   c.Output.Dir,
			Message: "path contains invalid null character",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
