package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	oxerrors "github.com/Iron-Ham/oxdebate/internal/errors"
)

func writeSecrets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSecrets(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "")

	tests := []struct {
		name     string
		content  string
		wantKey  string
		wantBase string
	}{
		{"canonical", `{"OPENAI_API_KEY": "sk-1"}`, "sk-1", DefaultOpenAIBase},
		{"lower case alias", `{"openai_api_key": "sk-2"}`, "sk-2", DefaultOpenAIBase},
		{"generic alias", `{"API_KEY": "sk-3"}`, "sk-3", DefaultOpenAIBase},
		{"canonical wins", `{"API_KEY": "sk-3", "OPENAI_API_KEY": "sk-1"}`, "sk-1", DefaultOpenAIBase},
		{"blank canonical falls through", `{"OPENAI_API_KEY": " ", "openai_api_key": "sk-2"}`, "sk-2", DefaultOpenAIBase},
		{"custom base", `{"OPENAI_API_KEY": "sk", "OPENAI_API_BASE": "http://proxy/v1/"}`, "sk", "http://proxy/v1"},
		{"base alias", `{"OPENAI_API_KEY": "sk", "openai_api_base": "http://alt/v1"}`, "sk", "http://alt/v1"},
		{"extra keys ignored", `{"OPENAI_API_KEY": "sk", "organization": 42}`, "sk", DefaultOpenAIBase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadSecrets(writeSecrets(t, tt.content))
			if err != nil {
				t.Fatalf("LoadSecrets() error = %v", err)
			}
			if s.OpenAIAPIKey != tt.wantKey {
				t.Errorf("OpenAIAPIKey = %q, want %q", s.OpenAIAPIKey, tt.wantKey)
			}
			if s.OpenAIAPIBase != tt.wantBase {
				t.Errorf("OpenAIAPIBase = %q, want %q", s.OpenAIAPIBase, tt.wantBase)
			}
		})
	}
}

func TestLoadSecrets_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	_, err := LoadSecrets(path)

	if !errors.Is(err, oxerrors.ErrSecretsNotFound) {
		t.Fatalf("LoadSecrets() error = %v, want ErrSecretsNotFound", err)
	}
	var cfgErr *oxerrors.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Path != path {
		t.Errorf("error should be a ConfigError with path %q, got %v", path, err)
	}
	if oxerrors.HintFor(err) == "" {
		t.Error("missing secrets error should carry a hint")
	}
}

func TestLoadSecrets_MissingKey(t *testing.T) {
	_, err := LoadSecrets(writeSecrets(t, `{"OPENAI_API_BASE": "http://x"}`))
	if !errors.Is(err, oxerrors.ErrMissingAPIKey) {
		t.Errorf("LoadSecrets() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestLoadSecrets_Malformed(t *testing.T) {
	_, err := LoadSecrets(writeSecrets(t, `{"OPENAI_API_KEY": `))
	var cfgErr *oxerrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("LoadSecrets() error = %v, want ConfigError", err)
	}
	if errors.Is(err, oxerrors.ErrSecretsNotFound) {
		t.Error("malformed file should not report ErrSecretsNotFound")
	}
}

func TestLoadSecrets_ElevenLabs(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		t.Setenv("ELEVENLABS_API_KEY", "env-key")
		s, err := LoadSecrets(writeSecrets(t, `{"OPENAI_API_KEY": "sk", "ELEVENLABS_API_KEY": "file-key"}`))
		if err != nil {
			t.Fatal(err)
		}
		if s.ElevenLabsAPIKey != "file-key" {
			t.Errorf("ElevenLabsAPIKey = %q, want file-key", s.ElevenLabsAPIKey)
		}
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("ELEVENLABS_API_KEY", "env-key")
		s, err := LoadSecrets(writeSecrets(t, `{"OPENAI_API_KEY": "sk"}`))
		if err != nil {
			t.Fatal(err)
		}
		if s.ElevenLabsAPIKey != "env-key" {
			t.Errorf("ElevenLabsAPIKey = %q, want env-key", s.ElevenLabsAPIKey)
		}
	})
}

func TestSecrets_RequireProvider(t *testing.T) {
	s := &Secrets{OpenAIAPIKey: "sk"}

	if err := s.RequireProvider(ProviderOpenAI); err != nil {
		t.Errorf("RequireProvider(openai) = %v", err)
	}
	if err := s.RequireProvider(ProviderElevenLabs); !errors.Is(err, oxerrors.ErrMissingAPIKey) {
		t.Errorf("RequireProvider(elevenlabs) = %v, want ErrMissingAPIKey", err)
	}

	s.ElevenLabsAPIKey = "xi"
	if err := s.RequireProvider(ProviderElevenLabs); err != nil {
		t.Errorf("RequireProvider(elevenlabs) with key = %v", err)
	}
}
