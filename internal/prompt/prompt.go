// Package prompt renders the per-segment prompts sent to the language model.
//
// Templates use Go text/template syntax. The data passed to a template is a
// map holding "motion" plus one entry per context speech, keyed by segment
// key (for example {{.opposition_opening}}). Referencing a speech that the
// segment does not receive is a render error.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/Iron-Ham/oxdebate/internal/debate"
	"github.com/Iron-Ham/oxdebate/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// MotionKey is the template field holding the motion.
const MotionKey = "motion"

// File is the on-disk shape of a prompts YAML file.
type File struct {
	Persona       string            `yaml:"persona"`
	SystemPrompts map[string]string `yaml:"system_prompts"`
}

// Set is a parsed collection of segment templates plus the persona used as
// the system message. A Set is immutable after construction.
type Set struct {
	persona   string
	templates map[string]*template.Template
}

// Default returns the built-in prompt set.
func Default() (*Set, error) {
	f, err := parseFile(defaultPrompts)
	if err != nil {
		return nil, fmt.Errorf("built-in prompts: %w", err)
	}
	return build(f)
}

// Load returns the built-in prompt set overlaid with the templates in path.
// An empty path returns the defaults unchanged.
func Load(path string) (*Set, error) {
	base, err := parseFile(defaultPrompts)
	if err != nil {
		return nil, fmt.Errorf("built-in prompts: %w", err)
	}
	if path == "" {
		return build(base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("cannot read prompts file", err).WithPath(path)
	}
	override, err := parseFile(data)
	if err != nil {
		return nil, errors.NewConfigError("invalid prompts file", err).WithPath(path)
	}

	if strings.TrimSpace(override.Persona) != "" {
		base.Persona = override.Persona
	}
	for key, tmpl := range override.SystemPrompts {
		base.SystemPrompts[key] = tmpl
	}

	set, err := build(base)
	if err != nil {
		return nil, errors.NewConfigError("invalid prompts file", err).WithPath(path)
	}
	return set, nil
}

func parseFile(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	if f.SystemPrompts == nil {
		f.SystemPrompts = make(map[string]string)
	}
	return &f, nil
}

func build(f *File) (*Set, error) {
	var unknown []string
	for key := range f.SystemPrompts {
		if _, ok := debate.SegmentByKey(key); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown segment keys: %s", strings.Join(unknown, ", "))
	}

	set := &Set{
		persona:   strings.TrimSpace(f.Persona),
		templates: make(map[string]*template.Template, debate.SegmentCount),
	}
	for _, seg := range debate.Segments() {
		text, ok := f.SystemPrompts[seg.Key()]
		if !ok || strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("missing template for %s", seg.Key())
		}
		tmpl, err := template.New(seg.Key()).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", seg.Key(), err)
		}
		set.templates[seg.Key()] = tmpl
	}
	return set, nil
}

// Persona returns the system message shared by all segments.
func (s *Set) Persona() string {
	return s.persona
}

// Render produces the user prompt for seg. context holds the texts of the
// segments seg depends on, keyed by segment key.
func (s *Set) Render(seg debate.Segment, motion string, context map[string]string) (string, error) {
	tmpl, ok := s.templates[seg.Key()]
	if !ok {
		return "", fmt.Errorf("no template for segment %q", seg.Key())
	}

	data := make(map[string]string, len(context)+1)
	for k, v := range context {
		data[k] = v
	}
	data[MotionKey] = motion

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", seg.Key(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}
