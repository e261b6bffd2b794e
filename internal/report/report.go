// Package report forwards failed runs to Sentry when a DSN is configured.
// A Reporter built without a DSN is inert, so callers never need to check
// whether reporting is enabled.
package report

import (
	"context"
	"strconv"
	"time"

	"github.com/Iron-Ham/oxdebate/internal/config"
	"github.com/Iron-Ham/oxdebate/internal/errors"
	"github.com/getsentry/sentry-go"
)

// FlushTimeout bounds how long Flush waits for queued events.
const FlushTimeout = 2 * time.Second

// Reporter captures errors with debate context attached.
type Reporter struct {
	hub *sentry.Hub
}

// New creates a Reporter from the reporting settings. An empty DSN yields a
// disabled Reporter and no error.
func New(cfg config.ReportingConfig, release string) (*Reporter, error) {
	if cfg.SentryDSN == "" {
		return &Reporter{}, nil
	}
	return newReporter(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Release:     release,
	})
}

func newReporter(opts sentry.ClientOptions) (*Reporter, error) {
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, errors.NewConfigError("sentry init failed", err)
	}
	return &Reporter{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// Enabled reports whether errors are sent anywhere.
func (r *Reporter) Enabled() bool {
	return r != nil && r.hub != nil
}

// Capture sends err to Sentry tagged with the run and, when err carries
// them, the failing segment, provider and HTTP status. Cancellations and
// configuration mistakes are not reported. It returns true when an event
// was queued.
func (r *Reporter) Capture(err error, runID, motion string) bool {
	if !r.Enabled() || err == nil || !reportable(err) {
		return false
	}

	var id *sentry.EventID
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level(errors.GetSeverity(err)))
		scope.SetTag("run_id", runID)
		scope.SetExtra("motion", motion)
		for k, v := range tags(err) {
			scope.SetTag(k, v)
		}
		id = r.hub.CaptureException(err)
	})
	return id != nil
}

// Flush waits up to FlushTimeout for queued events to be delivered.
func (r *Reporter) Flush() bool {
	if !r.Enabled() {
		return true
	}
	return r.hub.Flush(FlushTimeout)
}

func reportable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var cfgErr *errors.ConfigError
	var valErr *errors.ValidationError
	return !errors.As(err, &cfgErr) && !errors.As(err, &valErr)
}

func tags(err error) map[string]string {
	out := map[string]string{}

	var genErr *errors.GenerationError
	if errors.As(err, &genErr) {
		out["stage"] = "drafting"
		out["segment"] = genErr.Segment
		if genErr.Model != "" {
			out["model"] = genErr.Model
		}
		if genErr.StatusCode != 0 {
			out["status_code"] = strconv.Itoa(genErr.StatusCode)
		}
	}

	var synthErr *errors.SynthesisError
	if errors.As(err, &synthErr) {
		out["stage"] = "voicing"
		out["segment"] = synthErr.Segment
		if synthErr.Provider != "" {
			out["provider"] = synthErr.Provider
		}
		if synthErr.StatusCode != 0 {
			out["status_code"] = strconv.Itoa(synthErr.StatusCode)
		}
	}

	return out
}

func level(s errors.Severity) sentry.Level {
	switch s {
	case errors.SeverityDebug:
		return sentry.LevelDebug
	case errors.SeverityInfo:
		return sentry.LevelInfo
	case errors.SeverityWarning:
		return sentry.LevelWarning
	case errors.SeverityCritical:
		return sentry.LevelFatal
	default:
		return sentry.LevelError
	}
}
