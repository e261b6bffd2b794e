package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	errs := cfg.Validate()
	if len(errs) != 0 {
		t.Errorf("Default config should be valid, got errors: %v", errs)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"empty model", func(c *Config) { c.LLM.Model = " " }, "llm.model"},
		{"temperature too low", func(c *Config) { c.LLM.Temperature = -0.1 }, "llm.temperature"},
		{"temperature too high", func(c *Config) { c.LLM.Temperature = 2.1 }, "llm.temperature"},
		{"negative max tokens", func(c *Config) { c.LLM.MaxTokens = -1 }, "llm.max_tokens"},
		{"zero llm timeout", func(c *Config) { c.LLM.TimeoutSeconds = 0 }, "llm.timeout_seconds"},
		{"unknown provider", func(c *Config) { c.TTS.Provider = "polly" }, "tts.provider"},
		{"empty tts model", func(c *Config) { c.TTS.Model = "" }, "tts.model"},
		{"empty elevenlabs model", func(c *Config) {
			c.TTS.Provider = ProviderElevenLabs
			c.TTS.ElevenLabsModel = ""
		}, "tts.elevenlabs_model"},
		{"zero tts timeout", func(c *Config) { c.TTS.TimeoutSeconds = 0 }, "tts.timeout_seconds"},
		{"empty voice", func(c *Config) { c.Voices.Proposition.VoiceID = "" }, "voices.proposition.voice_id"},
		{"unknown openai voice", func(c *Config) { c.Voices.Opposition.VoiceID = "gandalf" }, "voices.opposition.voice_id"},
		{"speed too slow", func(c *Config) { c.Voices.Proposition.Speed = 0.1 }, "voices.proposition.speed"},
		{"speed too fast", func(c *Config) { c.Voices.Opposition.Speed = 4.5 }, "voices.opposition.speed"},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }, "output.dir"},
		{"null in output dir", func(c *Config) { c.Output.Dir = "out\x00put" }, "output.dir"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"zero log size", func(c *Config) { c.Logging.MaxSizeMB = 0 }, "logging.max_size_mb"},
		{"huge log size", func(c *Config) { c.Logging.MaxSizeMB = 5000 }, "logging.max_size_mb"},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.max_backups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			errs := cfg.Validate()
			found := false
			for _, e := range errs {
				if e.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want an error for %s", errs, tt.wantField)
			}
		})
	}
}

func TestConfig_Validate_ElevenLabsAcceptsAnyVoiceID(t *testing.T) {
	cfg := Default()
	cfg.TTS.Provider = ProviderElevenLabs
	cfg.Voices.Proposition.VoiceID = "21m00Tcm4TlvDq8ikWAM"
	cfg.Voices.Opposition.VoiceID = "AZnzlk1XvdvUeBnXmlld"

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}

func TestConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.LLM.Temperature = 9
	cfg.Voices.Proposition.Speed = 0
	cfg.Logging.Level = "loud"

	if errs := cfg.Validate(); len(errs) != 3 {
		t.Errorf("Validate() returned %d errors, want 3: %v", len(errs), errs)
	}
}
