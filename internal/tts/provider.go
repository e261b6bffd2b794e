package tts

import (
	"net/http"
	"slices"

	"github.com/Iron-Ham/oxdebate/internal/config"
	"github.com/Iron-Ham/oxdebate/internal/errors"
)

// NewFromConfig builds the synthesizer selected by cfg.TTS.Provider.
// OpenAI speech uses the same API base as the language model.
func NewFromConfig(cfg *config.Config, secrets *config.Secrets) (Synthesizer, error) {
	if err := secrets.RequireProvider(cfg.TTS.Provider); err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: cfg.TTS.TTSTimeout()}

	switch cfg.TTS.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(secrets.OpenAIAPIKey,
			WithOpenAIBaseURL(secrets.OpenAIAPIBase),
			WithOpenAIClient(client),
			WithOpenAIModel(cfg.TTS.Model),
		), nil
	case config.ProviderElevenLabs:
		if err := checkElevenLabsVoices(cfg.Voices); err != nil {
			return nil, err
		}
		return NewElevenLabs(secrets.ElevenLabsAPIKey,
			WithElevenLabsClient(client),
			WithElevenLabsModel(cfg.TTS.ElevenLabsModel),
		), nil
	default:
		return nil, errors.NewValidationError("unsupported TTS provider").
			WithField("tts.provider").
			WithValue(cfg.TTS.Provider).
			WithCause(errors.ErrUnknownProvider)
	}
}

// checkElevenLabsVoices rejects OpenAI voice names, which ElevenLabs would
// only refuse after every speech has been drafted.
func checkElevenLabsVoices(voices config.VoicesConfig) error {
	for _, v := range []struct{ field, id string }{
		{"voices.proposition.voice_id", voices.Proposition.VoiceID},
		{"voices.opposition.voice_id", voices.Opposition.VoiceID},
	} {
		if slices.Contains(config.OpenAIVoices(), v.id) {
			return errors.NewConfigError(v.field+" is the OpenAI voice "+v.id, errors.ErrVoiceMismatch).
				WithHint("set voices.proposition.voice_id and voices.opposition.voice_id to ElevenLabs voice IDs")
		}
	}
	return nil
}
