package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("LLM.Model = %q, want %q", cfg.LLM.Model, "gpt-4o")
	}
	if cfg.LLM.Temperature != 0.7 {
		t.Errorf("LLM.Temperature = %v, want 0.7", cfg.LLM.Temperature)
	}
	if cfg.TTS.Provider != ProviderOpenAI {
		t.Errorf("TTS.Provider = %q, want %q", cfg.TTS.Provider, ProviderOpenAI)
	}
	if cfg.TTS.Model != "tts-1-hd" {
		t.Errorf("TTS.Model = %q, want %q", cfg.TTS.Model, "tts-1-hd")
	}
	if cfg.Voices.Proposition.VoiceID != "onyx" || cfg.Voices.Opposition.VoiceID != "nova" {
		t.Errorf("Voices = %+v, want onyx/nova", cfg.Voices)
	}
	if cfg.Output.Dir != "output" {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, "output")
	}
	if cfg.Output.IncludeTranscript {
		t.Error("Output.IncludeTranscript should default to false")
	}
	if cfg.Secrets.Path != DefaultSecretsPath {
		t.Errorf("Secrets.Path = %q, want %q", cfg.Secrets.Path, DefaultSecretsPath)
	}
	if !cfg.Logging.Enabled || cfg.Logging.Level != "info" {
		t.Errorf("Logging = %+v, want enabled at info", cfg.Logging)
	}
}

func TestTimeouts(t *testing.T) {
	cfg := Default()
	if cfg.LLM.LLMTimeout() != 120*time.Second {
		t.Errorf("LLMTimeout() = %v, want 2m", cfg.LLM.LLMTimeout())
	}
	cfg.TTS.TimeoutSeconds = 5
	if cfg.TTS.TTSTimeout() != 5*time.Second {
		t.Errorf("TTSTimeout() = %v, want 5s", cfg.TTS.TTSTimeout())
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		result := ConfigDir()
		expected := "/custom/config/oxdebate"
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		result := ConfigDir()

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "oxdebate")
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	result := ConfigFile()
	expected := "/custom/config/oxdebate/config.yaml"
	if result != expected {
		t.Errorf("ConfigFile() = %q, want %q", result, expected)
	}
}

func TestGet(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg := Get()
	if cfg == nil {
		t.Fatal("Get() returned nil")
	}
	if cfg.Voices.Opposition.VoiceID != "nova" {
		t.Errorf("Get().Voices.Opposition.VoiceID = %q, want %q", cfg.Voices.Opposition.VoiceID, "nova")
	}
}

func TestLoad_FromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `llm:
  model: gpt-4o-mini
voices:
  opposition:
    voice_id: shimmer
    speed: 1.25
output:
  include_transcript: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.Voices.Opposition.VoiceID != "shimmer" || cfg.Voices.Opposition.Speed != 1.25 {
		t.Errorf("Voices.Opposition = %+v", cfg.Voices.Opposition)
	}
	// Unset keys keep their defaults
	if cfg.Voices.Proposition.VoiceID != "onyx" {
		t.Errorf("Voices.Proposition.VoiceID = %q, want default", cfg.Voices.Proposition.VoiceID)
	}
	if !cfg.Output.IncludeTranscript {
		t.Error("Output.IncludeTranscript should be true")
	}
}

func TestLoad_InvalidReturnsValidationErrors(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("llm.temperature", 3.5)
	viper.Set("tts.provider", "polly")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail")
	}
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Load() error = %T, want ValidationErrors", err)
	}
	if len(verrs) < 2 {
		t.Errorf("Load() should report every problem, got %v", verrs)
	}
}

func TestSetDefaults_TTSProviderEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("TTS_PROVIDER", "elevenlabs")
	SetDefaults()

	if got := viper.GetString("tts.provider"); got != ProviderElevenLabs {
		t.Errorf("tts.provider = %q, want %q from TTS_PROVIDER", got, ProviderElevenLabs)
	}
}
