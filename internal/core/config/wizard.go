package config

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/iambhvsh/ytdl/internal/core/i18n"
)

// ErrWizardCancelled is returned when the user leaves the wizard without saving.
var ErrWizardCancelled = errors.New("configuration cancelled")

const wizardLogo = `
 ██╗   ██╗████████╗██████╗ ██╗
 ╚██╗ ██╔╝╚══██╔══╝██╔══██╗██║
  ╚████╔╝    ██║   ██║  ██║██║
   ╚██╔╝     ██║   ██║  ██║██║
    ██║      ██║   ██████╔╝███████╗
    ╚═╝      ╚═╝   ╚═════╝ ╚══════╝
`

var (
	logoStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	stepStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	unselectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	inputStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	inputCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("248")).Width(14)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	containerStyle   = lipgloss.NewStyle().Padding(2, 4)
)

type option struct {
	label, value string
}

type wizardStep int

const (
	stepLanguage wizardStep = iota
	stepOutputDir
	stepQuality
	stepAudioFormat
	stepConfirm
	stepCount
)

type wizardModel struct {
	step        wizardStep
	cursor      int
	config      *Config
	confirmed   bool
	cancelled   bool
	inputBuffer string
	width       int
	height      int
}

func newWizardModel(cfg *Config) wizardModel {
	m := wizardModel{config: cfg}
	m.loadStep()
	return m
}

func (m *wizardModel) t() *i18n.Translations {
	return i18n.T(m.config.Language)
}

func (m *wizardModel) title() (string, string) {
	t := m.t()
	switch m.step {
	case stepLanguage:
		return t.Config.Language, t.Config.LanguageDesc
	case stepOutputDir:
		return t.Config.OutputDir, t.Config.OutputDirDesc
	case stepQuality:
		return t.Config.Quality, t.Config.QualityDesc
	case stepAudioFormat:
		return t.Config.AudioFormat, t.Config.AudioFormatDesc
	case stepConfirm:
		return t.Config.Confirm, t.Config.ConfirmDesc
	}
	return "", ""
}

func (m *wizardModel) options() []option {
	t := m.t()
	switch m.step {
	case stepLanguage:
		opts := make([]option, len(i18n.SupportedLanguages))
		for i, lang := range i18n.SupportedLanguages {
			opts[i] = option{lang.Name, lang.Code}
		}
		return opts
	case stepQuality:
		return []option{
			{t.Session.BestQuality + " " + t.Config.Recommended, "best"},
			{t.Session.MediumQuality + " (720p)", "medium"},
			{t.Session.LowQuality + " (480p)", "low"},
			{t.Session.AudioOnly, "audio"},
		}
	case stepAudioFormat:
		return []option{
			{"MP3 " + t.Config.Recommended, "mp3"},
			{"M4A", "m4a"},
			{"Opus", "opus"},
			{"FLAC", "flac"},
		}
	case stepConfirm:
		return []option{
			{t.Config.YesSave, "yes"},
			{t.Config.NoCancel, "no"},
		}
	}
	return nil
}

// current returns the config value edited by the current step.
func (m *wizardModel) current() *string {
	switch m.step {
	case stepLanguage:
		return &m.config.Language
	case stepOutputDir:
		return &m.config.OutputDir
	case stepQuality:
		return &m.config.Quality
	case stepAudioFormat:
		return &m.config.AudioFormat
	}
	return nil
}

// loadStep positions the cursor (or fills the input) from the config.
func (m *wizardModel) loadStep() {
	m.cursor = 0
	field := m.current()
	if field == nil {
		return
	}
	if m.step == stepOutputDir {
		m.inputBuffer = *field
		if m.inputBuffer == "" {
			m.inputBuffer = DefaultDownloadDir()
		}
		return
	}
	for i, opt := range m.options() {
		if opt.value == *field {
			m.cursor = i
			break
		}
	}
}

func (m *wizardModel) storeStep() {
	field := m.current()
	if field == nil {
		return
	}
	if m.step == stepOutputDir {
		*field = expandPath(strings.TrimSpace(m.inputBuffer))
		return
	}
	if opts := m.options(); m.cursor < len(opts) {
		*field = opts[m.cursor].value
	}
}

func (m wizardModel) Init() tea.Cmd {
	return nil
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		isInput := m.step == stepOutputDir
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "left":
			if m.step > stepLanguage {
				m.storeStep()
				m.step--
				m.loadStep()
			}
			return m, nil

		case "right", "enter":
			m.storeStep()
			if m.step == stepConfirm {
				m.confirmed = m.cursor == 0
				m.cancelled = !m.confirmed
				return m, tea.Quit
			}
			m.step++
			m.loadStep()
			return m, nil

		case "up", "k":
			if !isInput {
				n := len(m.options())
				m.cursor = (m.cursor - 1 + n) % n
				return m, nil
			}

		case "down", "j":
			if !isInput {
				m.cursor = (m.cursor + 1) % len(m.options())
				return m, nil
			}

		case "backspace":
			if isInput && len(m.inputBuffer) > 0 {
				r := []rune(m.inputBuffer)
				m.inputBuffer = string(r[:len(r)-1])
			}
			return m, nil
		}

		if isInput && msg.Type == tea.KeyRunes {
			m.inputBuffer += string(msg.Runes)
		}
	}

	return m, nil
}

func (m wizardModel) View() string {
	var b strings.Builder
	t := m.t()

	b.WriteString(logoStyle.Render(wizardLogo))
	b.WriteString("\n\n")

	b.WriteString(stepStyle.Render(fmt.Sprintf(t.Config.StepOf, int(m.step)+1, int(stepCount))))
	b.WriteString("\n\n")

	title, desc := m.title()
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(stepStyle.Render(desc))
	b.WriteString("\n\n")

	if m.step == stepConfirm {
		b.WriteString(m.renderReview())
		b.WriteString("\n")
	}

	if m.step == stepOutputDir {
		b.WriteString(inputCursorStyle.Render("> "))
		b.WriteString(inputStyle.Render(m.inputBuffer))
		b.WriteString(inputCursorStyle.Render("█"))
		b.WriteString("\n")
	} else {
		for i, opt := range m.options() {
			cursor := "  "
			style := unselectedStyle
			if i == m.cursor {
				cursor = cursorStyle.Render("> ")
				style = selectedStyle
			}
			b.WriteString(cursor)
			b.WriteString(style.Render(opt.label))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	help := fmt.Sprintf("← %s • → %s • ↑↓ %s • enter %s • esc %s",
		t.Help.Back, t.Help.Next, t.Help.Select, t.Help.Confirm, t.Help.Quit)
	b.WriteString(helpStyle.Render(help))

	content := containerStyle.Render(b.String())
	if m.width > 0 && m.height > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
	}
	return content
}

func (m wizardModel) renderReview() string {
	var b strings.Builder
	t := m.t()

	outputDir := m.config.OutputDir
	if outputDir == "" {
		outputDir = DefaultDownloadDir()
	}

	lines := []option{
		{t.ConfigReview.Language, i18n.LanguageName(m.config.Language)},
		{t.ConfigReview.OutputDir, outputDir},
		{t.ConfigReview.Quality, m.config.Quality},
		{t.ConfigReview.AudioFormat, m.config.AudioFormat},
	}
	for _, line := range lines {
		b.WriteString(labelStyle.Render(line.label + ":"))
		b.WriteString(valueStyle.Render(line.value))
		b.WriteString("\n")
	}
	return b.String()
}

// RunInitWizard runs an interactive TUI wizard to configure ytdl. The
// returned config is not saved.
func RunInitWizard() (*Config, error) {
	cfg := LoadOrDefault()

	p := tea.NewProgram(newWizardModel(cfg), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	result := finalModel.(wizardModel)
	if !result.confirmed {
		return nil, ErrWizardCancelled
	}

	result.config.applyDefaults()
	return result.config, nil
}
