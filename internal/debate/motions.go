package debate

import (
	"strings"

	"github.com/Iron-Ham/oxdebate/internal/errors"
)

// DefaultMotion is used when no motion is supplied on the command line,
// in the environment, or in the config file.
const DefaultMotion = "This house believes that artificial intelligence will do more good than harm"

var exampleMotions = []string{
	DefaultMotion,
	"This house believes that social media does more harm than good",
	"This house would ban autonomous weapons systems",
	"This house believes that privacy is dead in the digital age",
	"This house would prioritize economic growth over environmental protection",
	"This house believes that universal basic income is necessary",
	"This house would ban genetic engineering of humans",
	"This house believes that space exploration is a waste of resources",
}

// ExampleMotions returns a copy of the built-in example motions.
func ExampleMotions() []string {
	out := make([]string, len(exampleMotions))
	copy(out, exampleMotions)
	return out
}

// NormalizeMotion trims the motion and rejects blank input.
func NormalizeMotion(motion string) (string, error) {
	m := strings.TrimSpace(motion)
	if m == "" {
		return "", errors.NewValidationError("a debate motion is required").
			WithField("motion").
			WithCause(errors.ErrEmptyMotion)
	}
	return m, nil
}

// ResolveMotion picks the first non-blank candidate, falling back to
// DefaultMotion. Candidates are given highest-precedence first
// (flag, environment, config).
func ResolveMotion(candidates ...string) string {
	for _, c := range candidates {
		if m := strings.TrimSpace(c); m != "" {
			return m
		}
	}
	return DefaultMotion
}
