// Package tts converts speech text into MP3 audio through a hosted
// text-to-speech API.
package tts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Iron-Ham/oxdebate/internal/errors"
)

// maxErrorBody bounds how much of a failed response is read.
const maxErrorBody = 64 * 1024

// Voice selects how a speech sounds.
type Voice struct {
	// ID is the provider's voice name or identifier.
	ID string
	// Speed is the playback speed multiplier. Zero means 1.0. Providers
	// without speed control ignore it.
	Speed float64
}

// Synthesizer defines the interface for text-to-speech providers.
type Synthesizer interface {
	// Synthesize converts text to speech and returns MP3 bytes.
	Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error)

	// Name returns the provider identifier.
	Name() string
}

// readAudio reads a successful response body, rejecting an empty one.
func readAudio(provider string, resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewSynthesisError("failed to read audio", err).
			WithProvider(provider).
			WithRetryable(true)
	}
	if len(data) == 0 {
		return nil, errors.NewSynthesisError("empty response", errors.ErrEmptyAudio).WithProvider(provider)
	}
	return data, nil
}

// handleError turns a non-200 response into a SynthesisError. extract pulls
// the provider's message out of a JSON error body.
func handleError(provider string, resp *http.Response, extract func([]byte) string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := resp.Status
	if msg := extract(raw); msg != "" {
		message = msg
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		message = resp.Status + ": " + text
	}

	return errors.NewSynthesisError(message, statusCause(resp.StatusCode)).
		WithProvider(provider).
		WithStatusCode(resp.StatusCode)
}

// statusCause maps an HTTP status to a sentinel error, or nil.
func statusCause(code int) error {
	switch {
	case code == http.StatusTooManyRequests:
		return errors.ErrRateLimited
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.ErrUnauthorized
	case code >= http.StatusInternalServerError:
		return errors.ErrUpstream
	default:
		return nil
	}
}

// requestError wraps a transport failure. Cancellation is not retryable.
func requestError(ctx context.Context, provider string, err error) error {
	return errors.NewSynthesisError("request failed", err).
		WithProvider(provider).
		WithRetryable(ctx.Err() == nil)
}

// decodeMessage unmarshals raw into v and returns pick(v), or "" when raw
// is not JSON.
func decodeMessage[T any](raw []byte, pick func(*T) string) string {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return strings.TrimSpace(pick(&v))
}

func marshalError(err error) error {
	return fmt.Errorf("failed to marshal request: %w", err)
}
