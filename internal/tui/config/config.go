package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Iron-Ham/oxdebate/internal/config"
	"github.com/Iron-Ham/oxdebate/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// ConfigItem represents a single configuration item
type ConfigItem struct {
	Key         string
	Label       string
	Description string
	Type        string   // "string", "bool", "int", "float", "select"
	Options     []string // For select type
}

// Category represents a group of config items
type Category struct {
	Name  string
	Items []ConfigItem
}

// Model is the Bubbletea model for the interactive config UI
type Model struct {
	categories     []Category
	categoryIndex  int
	itemIndex      int
	width          int
	height         int
	scrollOffset   int
	editing        bool
	textInput      textinput.Model
	selectIndex    int // For select-type options
	errorMsg       string
	infoMsg        string
	quitting       bool
	configModified bool

	// path is where changes are written.
	path string
}

// New creates a config model that saves to path. An empty path saves to
// the file viper loaded, or the project config file when none was loaded.
func New(path string) Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 40

	if path == "" {
		path = viper.ConfigFileUsed()
	}
	if path == "" {
		path = config.ProjectConfigFile
	}

	return Model{
		categories: categories(),
		textInput:  ti,
		path:       path,
	}
}

func categories() []Category {
	return []Category{
		{
			Name: "Debate",
			Items: []ConfigItem{
				{
					Key:         "debate.default_motion",
					Label:       "Default Motion",
					Description: "Motion used when --motion and DEFAULT_MOTION are unset",
					Type:        "string",
				},
			},
		},
		{
			Name: "Language Model",
			Items: []ConfigItem{
				{
					Key:         "llm.model",
					Label:       "Model",
					Description: "Chat completion model that writes the speeches",
					Type:        "string",
				},
				{
					Key:         "llm.temperature",
					Label:       "Temperature",
					Description: "Sampling temperature between 0 and 2",
					Type:        "float",
				},
				{
					Key:         "llm.max_tokens",
					Label:       "Max Tokens",
					Description: "Completion token cap per speech (0 = provider default)",
					Type:        "int",
				},
				{
					Key:         "llm.timeout_seconds",
					Label:       "Timeout (s)",
					Description: "Per-request timeout for speech drafting",
					Type:        "int",
				},
			},
		},
		{
			Name: "Speech",
			Items: []ConfigItem{
				{
					Key:         "tts.provider",
					Label:       "Provider",
					Description: "Text-to-speech API used to voice the debate",
					Type:        "select",
					Options:     config.ValidTTSProviders(),
				},
				{
					Key:         "tts.model",
					Label:       "OpenAI Model",
					Description: "OpenAI speech model (tts-1 or tts-1-hd)",
					Type:        "string",
				},
				{
					Key:         "tts.elevenlabs_model",
					Label:       "ElevenLabs Model",
					Description: "ElevenLabs model identifier",
					Type:        "string",
				},
				{
					Key:         "tts.timeout_seconds",
					Label:       "Timeout (s)",
					Description: "Per-request timeout for synthesis",
					Type:        "int",
				},
			},
		},
		{
			Name: "Voices",
			Items: []ConfigItem{
				{
					Key:         "voices.proposition.voice_id",
					Label:       "Proposition Voice",
					Description: "Voice for the proposition speeches",
					Type:        "string",
				},
				{
					Key:         "voices.proposition.speed",
					Label:       "Proposition Speed",
					Description: "Speaking rate between 0.25 and 4.0 (OpenAI only)",
					Type:        "float",
				},
				{
					Key:         "voices.opposition.voice_id",
					Label:       "Opposition Voice",
					Description: "Voice for the opposition speeches",
					Type:        "string",
				},
				{
					Key:         "voices.opposition.speed",
					Label:       "Opposition Speed",
					Description: "Speaking rate between 0.25 and 4.0 (OpenAI only)",
					Type:        "float",
				},
			},
		},
		{
			Name: "Output",
			Items: []ConfigItem{
				{
					Key:         "output.dir",
					Label:       "Output Directory",
					Description: "Directory that receives the six MP3 files",
					Type:        "string",
				},
				{
					Key:         "output.include_transcript",
					Label:       "Write Transcripts",
					Description: "Write a .txt transcript next to each MP3",
					Type:        "bool",
				},
			},
		},
		{
			Name: "Logging",
			Items: []ConfigItem{
				{
					Key:         "logging.enabled",
					Label:       "Enabled",
					Description: "Write structured logs to debate.log in the output directory",
					Type:        "bool",
				},
				{
					Key:         "logging.level",
					Label:       "Level",
					Description: "Minimum level written to the log file",
					Type:        "select",
					Options:     config.ValidLogLevels(),
				},
			},
		},
		{
			Name: "Reporting",
			Items: []ConfigItem{
				{
					Key:         "reporting.sentry_dsn",
					Label:       "Sentry DSN",
					Description: "Report failed runs to Sentry (leave empty to disable)",
					Type:        "string",
				},
				{
					Key:         "reporting.environment",
					Label:       "Environment",
					Description: "Environment tag attached to reported errors",
					Type:        "string",
				},
			},
		},
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureSelectionVisible(m.availableLines())
		return m, nil

	case tea.KeyMsg:
		// Clear messages on any key
		m.errorMsg = ""
		m.infoMsg = ""

		if m.editing {
			return m.handleEditingKeypress(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.configModified {
				m.infoMsg = "Changes saved!"
			}
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			m.moveUp()

		case "down", "j":
			m.moveDown()

		case "tab":
			m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
			m.itemIndex = 0

		case "shift+tab":
			m.categoryIndex--
			if m.categoryIndex < 0 {
				m.categoryIndex = len(m.categories) - 1
			}
			m.itemIndex = 0

		case "g":
			m.categoryIndex, m.itemIndex = 0, 0

		case "G":
			m.categoryIndex = len(m.categories) - 1
			m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1

		case "enter", " ":
			item := m.currentItem()
			switch item.Type {
			case "bool":
				viper.Set(item.Key, !viper.GetBool(item.Key))
				m.saveConfig()
			case "select":
				m.editing = true
				m.selectIndex = m.getCurrentSelectIndex()
			default:
				m.editing = true
				m.textInput.SetValue(m.getCurrentValue())
				m.textInput.Focus()
			}

		case "r":
			m.resetCurrentToDefault()
		}
		m.ensureSelectionVisible(m.availableLines())
	}

	return m, nil
}

func (m *Model) moveUp() {
	m.itemIndex--
	if m.itemIndex < 0 {
		m.categoryIndex--
		if m.categoryIndex < 0 {
			m.categoryIndex = len(m.categories) - 1
		}
		m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1
	}
}

func (m *Model) moveDown() {
	m.itemIndex++
	if m.itemIndex >= len(m.categories[m.categoryIndex].Items) {
		m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
		m.itemIndex = 0
	}
}

func (m *Model) handleEditingKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.currentItem()

	switch msg.String() {
	case "esc":
		m.editing = false
		m.textInput.SetValue("")
		return *m, nil

	case "enter":
		if item.Type == "select" {
			viper.Set(item.Key, item.Options[m.selectIndex])
			m.saveConfig()
			m.editing = false
			return *m, nil
		}
		if err := m.validateAndSet(item, m.textInput.Value()); err != nil {
			m.errorMsg = err.Error()
			return *m, nil
		}
		m.saveConfig()
		m.editing = false
		m.textInput.SetValue("")
		return *m, nil

	case "up", "k":
		if item.Type == "select" {
			m.selectIndex--
			if m.selectIndex < 0 {
				m.selectIndex = len(item.Options) - 1
			}
			return *m, nil
		}

	case "down", "j":
		if item.Type == "select" {
			m.selectIndex = (m.selectIndex + 1) % len(item.Options)
			return *m, nil
		}
	}

	if item.Type != "select" {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return *m, cmd
	}

	return *m, nil
}

// totalLines counts rendered list lines: a header, the items, and a blank
// line per category.
func (m Model) totalLines() int {
	n := 0
	for _, cat := range m.categories {
		n += len(cat.Items) + 2
	}
	return n
}

// currentSelectionLine returns the list line of the selected item.
func (m Model) currentSelectionLine() int {
	line := 0
	for ci := 0; ci < m.categoryIndex; ci++ {
		line += len(m.categories[ci].Items) + 2
	}
	return line + 1 + m.itemIndex
}

// availableLines is the list height left after header, description and help.
func (m Model) availableLines() int {
	lines := m.height - 12
	if lines < 5 {
		lines = 5
	}
	return lines
}

func (m *Model) ensureSelectionVisible(available int) {
	line := m.currentSelectionLine()
	if line < m.scrollOffset {
		m.scrollOffset = line
	}
	if line >= m.scrollOffset+available {
		m.scrollOffset = line - available + 1
	}
	if maxOffset := m.totalLines() - available; m.scrollOffset > maxOffset {
		m.scrollOffset = max(maxOffset, 0)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render("oxdebate configuration"))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Config file: " + m.path))
	b.WriteString("\n\n")

	var lines []string
	for ci, cat := range m.categories {
		isActiveCategory := ci == m.categoryIndex

		catStyle := styles.Muted.Bold(true)
		if isActiveCategory {
			catStyle = styles.Primary.Bold(true)
		}
		lines = append(lines, catStyle.Render(fmt.Sprintf("[ %s ]", cat.Name)))
		for ii, item := range cat.Items {
			lines = append(lines, m.renderItem(item, isActiveCategory && ii == m.itemIndex))
		}
		lines = append(lines, "")
	}

	available := m.availableLines()
	end := min(m.scrollOffset+available, len(lines))
	if m.scrollOffset > 0 {
		b.WriteString(styles.Muted.Render("  ▲ more"))
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(lines[m.scrollOffset:end], "\n"))
	b.WriteString("\n")
	if end < len(lines) {
		b.WriteString(styles.Muted.Render("  ▼ more"))
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString(m.renderEditOverlay())
	} else {
		b.WriteString(styles.Muted.Render(m.currentItem().Description))
		b.WriteString("\n")
	}

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorMsg.Render("Error: " + m.errorMsg))
	}
	if m.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.SuccessMsg.Render(m.infoMsg))
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderItem(item ConfigItem, selected bool) string {
	value := m.getDisplayValue(item)

	label := item.Label
	if len(label) > 25 {
		label = label[:22] + "..."
	}
	paddedLabel := fmt.Sprintf("%-25s", label)

	if selected {
		cursor := styles.Secondary.Render(">")
		return fmt.Sprintf("  %s %s  %s", cursor, lipgloss.NewStyle().Bold(true).Render(paddedLabel), styles.Primary.Render(value))
	}
	return fmt.Sprintf("    %s  %s", styles.Muted.Render(paddedLabel), value)
}

func (m Model) renderEditOverlay() string {
	item := m.currentItem()

	var content string
	if item.Type == "select" {
		content = fmt.Sprintf("Select %s:\n\n", item.Label)
		for i, opt := range item.Options {
			if i == m.selectIndex {
				content += styles.Primary.Bold(true).Render(fmt.Sprintf(" > %s ", opt)) + "\n"
			} else {
				content += fmt.Sprintf("   %s \n", opt)
			}
		}
		content += "\n" + styles.Muted.Render("j/k or arrows to select, enter to confirm, esc to cancel")
	} else {
		content = fmt.Sprintf("Edit %s:\n\n", item.Label)
		content += m.textInput.View()
		content += "\n\n" + styles.Muted.Render("enter to save, esc to cancel")
	}

	return "\n" + styles.ContentBox.BorderForeground(styles.PrimaryColor).Width(50).Render(content)
}

func (m Model) renderHelp() string {
	keyStyle := styles.HelpKey

	if m.editing {
		return styles.Muted.Render(
			keyStyle.Render("enter") + " save  " +
				keyStyle.Render("esc") + " cancel",
		)
	}

	return styles.Muted.Render(
		keyStyle.Render("j/k") + " navigate  " +
			keyStyle.Render("tab") + " next category  " +
			keyStyle.Render("enter/space") + " edit  " +
			keyStyle.Render("r") + " reset  " +
			keyStyle.Render("q") + " quit",
	)
}

func (m Model) currentItem() ConfigItem {
	return m.categories[m.categoryIndex].Items[m.itemIndex]
}

func (m Model) getCurrentValue() string {
	return m.getDisplayValue(m.currentItem())
}

func (m Model) getDisplayValue(item ConfigItem) string {
	switch item.Type {
	case "bool":
		return strconv.FormatBool(viper.GetBool(item.Key))
	case "int":
		return strconv.Itoa(viper.GetInt(item.Key))
	case "float":
		return strconv.FormatFloat(viper.GetFloat64(item.Key), 'f', 2, 64)
	default:
		return viper.GetString(item.Key)
	}
}

func (m Model) getCurrentSelectIndex() int {
	item := m.currentItem()
	current := viper.GetString(item.Key)
	for i, opt := range item.Options {
		if opt == current {
			return i
		}
	}
	return 0
}

// validateAndSet parses value for item, sets it in viper, and checks the
// resulting configuration. An invalid value is rolled back.
func (m *Model) validateAndSet(item ConfigItem, value string) error {
	var parsed any
	switch item.Type {
	case "int":
		intVal, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("expected integer value")
		}
		parsed = intVal
	case "float":
		floatVal, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("expected decimal value")
		}
		parsed = floatVal
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("expected true or false")
		}
		parsed = value == "true"
	default:
		parsed = value
	}

	previous := viper.Get(item.Key)
	viper.Set(item.Key, parsed)
	if _, err := config.Load(); err != nil {
		viper.Set(item.Key, previous)
		return err
	}
	return nil
}

func (m *Model) saveConfig() {
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			m.errorMsg = fmt.Sprintf("Failed to create config directory: %v", err)
			return
		}
	}

	if err := viper.WriteConfigAs(m.path); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to save config: %v", err)
		return
	}

	m.infoMsg = "Saved!"
	m.configModified = true
}

func (m *Model) resetCurrentToDefault() {
	item := m.currentItem()
	d := config.Default()

	defaultValues := map[string]any{
		"debate.default_motion":       d.Debate.DefaultMotion,
		"llm.model":                   d.LLM.Model,
		"llm.temperature":             d.LLM.Temperature,
		"llm.max_tokens":              d.LLM.MaxTokens,
		"llm.timeout_seconds":         d.LLM.TimeoutSeconds,
		"tts.provider":                d.TTS.Provider,
		"tts.model":                   d.TTS.Model,
		"tts.elevenlabs_model":        d.TTS.ElevenLabsModel,
		"tts.timeout_seconds":         d.TTS.TimeoutSeconds,
		"voices.proposition.voice_id": d.Voices.Proposition.VoiceID,
		"voices.proposition.speed":    d.Voices.Proposition.Speed,
		"voices.opposition.voice_id":  d.Voices.Opposition.VoiceID,
		"voices.opposition.speed":     d.Voices.Opposition.Speed,
		"output.dir":                  d.Output.Dir,
		"output.include_transcript":   d.Output.IncludeTranscript,
		"logging.enabled":             d.Logging.Enabled,
		"logging.level":               d.Logging.Level,
		"reporting.sentry_dsn":        d.Reporting.SentryDSN,
		"reporting.environment":       d.Reporting.Environment,
	}

	if defaultVal, ok := defaultValues[item.Key]; ok {
		viper.Set(item.Key, defaultVal)
		m.saveConfig()
		m.infoMsg = fmt.Sprintf("Reset %s to default", item.Label)
	}
}

// Run starts the interactive config UI, saving changes to path.
func Run(path string) error {
	p := tea.NewProgram(New(path), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
