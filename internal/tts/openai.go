package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Iron-Ham/oxdebate/internal/errors"
)

const (
	openAIBaseURL     = "https://api.openai.com/v1"
	openAITTSEndpoint = "/audio/speech"

	// ModelTTS1 is the OpenAI TTS model optimized for speed.
	ModelTTS1 = "tts-1"
	// ModelTTS1HD is the OpenAI TTS model optimized for quality.
	ModelTTS1HD = "tts-1-hd"

	defaultOpenAITimeout = 120 * time.Second
	openAIFormatMP3      = "mp3"
)

// OpenAISynthesizer implements Synthesizer using OpenAI's speech API.
type OpenAISynthesizer struct {
	apiKey  string
	baseURL string
	client  *http.Client
	model   string
}

// OpenAIOption configures the OpenAI synthesizer.
type OpenAIOption func(*OpenAISynthesizer)

// WithOpenAIBaseURL sets a custom base URL (for testing or proxies).
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(s *OpenAISynthesizer) {
		if url != "" {
			s.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithOpenAIClient sets a custom HTTP client.
func WithOpenAIClient(client *http.Client) OpenAIOption {
	return func(s *OpenAISynthesizer) {
		s.client = client
	}
}

// WithOpenAIModel sets the TTS model to use.
func WithOpenAIModel(model string) OpenAIOption {
	return func(s *OpenAISynthesizer) {
		if model != "" {
			s.model = model
		}
	}
}

// NewOpenAI creates an OpenAI synthesizer.
func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAISynthesizer {
	s := &OpenAISynthesizer{
		apiKey:  apiKey,
		baseURL: openAIBaseURL,
		client:  &http.Client{Timeout: defaultOpenAITimeout},
		model:   ModelTTS1HD,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the provider identifier.
func (s *OpenAISynthesizer) Name() string {
	return "openai"
}

type openAIRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed"`
}

type openAIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Synthesize converts text to MP3 audio.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.ErrEmptyText
	}

	speed := voice.Speed
	if speed == 0 {
		speed = 1.0
	}

	body, err := json.Marshal(openAIRequest{
		Model:          s.model,
		Input:          text,
		Voice:          voice.ID,
		ResponseFormat: openAIFormatMP3,
		Speed:          speed,
	})
	if err != nil {
		return nil, marshalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+openAITTSEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, requestError(ctx, s.Name(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, handleError(s.Name(), resp, func(raw []byte) string {
			return decodeMessage(raw, func(r *openAIErrorResponse) string { return r.Error.Message })
		})
	}

	return readAudio(s.Name(), resp)
}
