package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Iron-Ham/oxdebate/internal/errors"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io/v1"

	// ElevenLabsModelEnglish is the English monolingual v1 model.
	ElevenLabsModelEnglish = "eleven_monolingual_v1"

	defaultElevenLabsTimeout = 120 * time.Second
	elevenLabsFormatMP3      = "mp3_44100_128"

	elevenLabsDefaultStability       = 0.5
	elevenLabsDefaultSimilarityBoost = 0.75
)

// ElevenLabsSynthesizer implements Synthesizer using ElevenLabs' API.
type ElevenLabsSynthesizer struct {
	apiKey  string
	baseURL string
	client  *http.Client
	model   string
}

// ElevenLabsOption configures the ElevenLabs synthesizer.
type ElevenLabsOption func(*ElevenLabsSynthesizer)

// WithElevenLabsBaseURL sets a custom base URL.
func WithElevenLabsBaseURL(url string) ElevenLabsOption {
	return func(s *ElevenLabsSynthesizer) {
		if url != "" {
			s.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithElevenLabsClient sets a custom HTTP client.
func WithElevenLabsClient(client *http.Client) ElevenLabsOption {
	return func(s *ElevenLabsSynthesizer) {
		s.client = client
	}
}

// WithElevenLabsModel sets the TTS model.
func WithElevenLabsModel(model string) ElevenLabsOption {
	return func(s *ElevenLabsSynthesizer) {
		if model != "" {
			s.model = model
		}
	}
}

// NewElevenLabs creates an ElevenLabs synthesizer.
func NewElevenLabs(apiKey string, opts ...ElevenLabsOption) *ElevenLabsSynthesizer {
	s := &ElevenLabsSynthesizer{
		apiKey:  apiKey,
		baseURL: elevenLabsBaseURL,
		client:  &http.Client{Timeout: defaultElevenLabsTimeout},
		model:   ElevenLabsModelEnglish,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the provider identifier.
func (s *ElevenLabsSynthesizer) Name() string {
	return "elevenlabs"
}

type elevenLabsRequest struct {
	Text          string                  `json:"text"`
	ModelID       string                  `json:"model_id"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// ElevenLabs reports errors either as {"detail": {"message": ...}} or as
// {"detail": "..."}.
type elevenLabsErrorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

func (r *elevenLabsErrorResponse) message() string {
	var text string
	if json.Unmarshal(r.Detail, &text) == nil {
		return text
	}
	var obj struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(r.Detail, &obj) == nil {
		return obj.Message
	}
	return ""
}

// Synthesize converts text to MP3 audio. voice.Speed is ignored.
func (s *ElevenLabsSynthesizer) Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.ErrEmptyText
	}

	body, err := json.Marshal(elevenLabsRequest{
		Text:    text,
		ModelID: s.model,
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       elevenLabsDefaultStability,
			SimilarityBoost: elevenLabsDefaultSimilarityBoost,
		},
	})
	if err != nil {
		return nil, marshalError(err)
	}

	endpoint := fmt.Sprintf("%s/text-to-speech/%s?output_format=%s",
		s.baseURL, url.PathEscape(voice.ID), elevenLabsFormatMP3)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, requestError(ctx, s.Name(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, handleError(s.Name(), resp, func(raw []byte) string {
			return decodeMessage(raw, (*elevenLabsErrorResponse).message)
		})
	}

	return readAudio(s.Name(), resp)
}
