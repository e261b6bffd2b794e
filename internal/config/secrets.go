package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/Iron-Ham/oxdebate/internal/errors"
)

// DefaultSecretsPath is where the API credentials live, relative to the
// working directory.
const DefaultSecretsPath = "config/secrets/config.json"

// DefaultOpenAIBase is used when the secrets file names no API base.
const DefaultOpenAIBase = "https://api.openai.com/v1"

// Key names accepted in the secrets file, in lookup order.
var (
	openAIKeyNames  = []string{"OPENAI_API_KEY", "openai_api_key", "API_KEY"}
	openAIBaseNames = []string{"OPENAI_API_BASE", "openai_api_base"}
	elevenLabsNames = []string{"ELEVENLABS_API_KEY", "elevenlabs_api_key"}
)

// Secrets holds the API credentials read from the secrets file.
type Secrets struct {
	OpenAIAPIKey     string
	OpenAIAPIBase    string
	ElevenLabsAPIKey string
}

// LoadSecrets reads the JSON secrets file at path. A missing file wraps
// ErrSecretsNotFound and a file without an OpenAI key wraps ErrMissingAPIKey.
// ELEVENLABS_API_KEY falls back to the environment variable of the same name.
func LoadSecrets(path string) (*Secrets, error) {
	if path == "" {
		path = DefaultSecretsPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("API key configuration not found", errors.ErrSecretsNotFound).
				WithPath(path).
				WithHint("copy your OpenAI config.json to " + path)
		}
		return nil, errors.NewConfigError("cannot read secrets file", err).WithPath(path)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewConfigError("invalid secrets file", err).WithPath(path)
	}

	s := &Secrets{
		OpenAIAPIKey:     lookup(raw, openAIKeyNames),
		OpenAIAPIBase:    lookup(raw, openAIBaseNames),
		ElevenLabsAPIKey: lookup(raw, elevenLabsNames),
	}
	if s.OpenAIAPIKey == "" {
		return nil, errors.NewConfigError("no OpenAI API key found", errors.ErrMissingAPIKey).
			WithPath(path).
			WithHint("set OPENAI_API_KEY in " + path)
	}
	if s.OpenAIAPIBase == "" {
		s.OpenAIAPIBase = DefaultOpenAIBase
	}
	s.OpenAIAPIBase = strings.TrimRight(s.OpenAIAPIBase, "/")
	if s.ElevenLabsAPIKey == "" {
		s.ElevenLabsAPIKey = strings.TrimSpace(os.Getenv("ELEVENLABS_API_KEY"))
	}

	return s, nil
}

// RequireProvider checks that the credentials needed by the given TTS
// provider are present.
func (s *Secrets) RequireProvider(provider string) error {
	if provider == ProviderElevenLabs && s.ElevenLabsAPIKey == "" {
		return errors.NewConfigError("no ElevenLabs API key found", errors.ErrMissingAPIKey).
			WithHint("set ELEVENLABS_API_KEY in the secrets file or environment")
	}
	return nil
}

// lookup returns the first non-blank string value among names.
func lookup(raw map[string]any, names []string) string {
	for _, name := range names {
		if v, ok := raw[name].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
