package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/healthsurvey/cmd/healthsurvey/wizard/components"
	"github.com/mrsinham/healthsurvey/internal/survey"
)

// SelectPlaceholder is the empty choice shown first in every select.
const SelectPlaceholder = "-- Select --"

// Groups lists the questions of each page, in display order.
var Groups = []struct {
	Title  string
	Fields []string
}{
	{"About you", []string{"gender", "age", "height", "weight"}},
	{"Eating habits", []string{"family_history", "calories", "vegetables", "meals", "snacks"}},
	{"Lifestyle", []string{"smoke", "water", "monitor", "activity"}},
	{"Daily routine", []string{"screen_time", "alcohol", "transport"}},
}

var (
	progressBarStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("63"))

	progressBarEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	progressPercentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("63")).
				Bold(true)
)

// SurveyScreen collects the answers of the questionnaire. Every edit is
// recorded in the survey form so progress follows the input.
type SurveyScreen struct {
	form      *huh.Form
	answers   *survey.Form
	values    map[string]*string
	helpPanel *components.HelpPanel
	banner    string
	width     int
	done      bool
	cancelled bool
}

// NewSurveyScreen builds the questionnaire prefilled with the stored answers.
// banner is shown above the form when not empty.
func NewSurveyScreen(answers *survey.Form, banner string) *SurveyScreen {
	s := &SurveyScreen{
		answers:   answers,
		values:    make(map[string]*string, survey.FieldCount()),
		helpPanel: components.NewHelpPanel(),
		banner:    banner,
	}

	var groups []*huh.Group
	for _, g := range Groups {
		var fields []huh.Field
		for _, name := range g.Fields {
			spec, ok := survey.Lookup(name)
			if !ok {
				continue
			}
			v := answers.Raw(name)
			s.values[name] = &v
			fields = append(fields, newField(spec, &v))
		}
		groups = append(groups, huh.NewGroup(fields...).Title(g.Title))
	}

	s.form = huh.NewForm(groups...).WithShowHelp(false).WithShowErrors(true)
	return s
}

func newField(spec survey.FieldSpec, value *string) huh.Field {
	if spec.Kind == survey.KindChoice {
		opts := []huh.Option[string]{huh.NewOption(SelectPlaceholder, "")}
		for _, o := range spec.Options {
			opts = append(opts, huh.NewOption(o.Text, o.Value))
		}
		return huh.NewSelect[string]().
			Key(spec.Name).
			Title(spec.Label).
			Options(opts...).
			Value(value).
			Validate(validateRequired)
	}

	input := huh.NewInput().
		Key(spec.Name).
		Title(spec.Label).
		Value(value)
	if spec.Numeric() {
		return input.Validate(validateNumber)
	}
	return input.Validate(validateRequired)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("this question is required")
	}
	return nil
}

func validateNumber(s string) error {
	if err := validateRequired(s); err != nil {
		return err
	}
	_, err := survey.ParseNumber(s)
	return err
}

// Init implements tea.Model
func (s *SurveyScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SurveyScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.helpPanel.SetWidth(msg.Width / 2)
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}
	s.sync()

	if focused := s.form.GetFocusedField(); focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// sync records the bound values in the survey form. A value that cannot be
// stored clears the answer, so the form never holds a value the screen no
// longer shows.
func (s *SurveyScreen) sync() {
	for name, v := range s.values {
		if err := s.answers.Set(name, *v); err != nil {
			_ = s.answers.Set(name, "")
		}
	}
}

// View implements tea.Model
func (s *SurveyScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("HEALTH SURVEY - Questionnaire")

	barWidth := 40
	if s.width > 80 {
		barWidth = 60
	}
	progress := fmt.Sprintf("%s %s  %s",
		renderProgressBar(s.answers.Progress(), barWidth),
		progressPercentStyle.Render(fmt.Sprintf("%d%%", s.answers.Progress())),
		components.SubtitleStyle.Render(fmt.Sprintf("%d/%d answered", s.answers.Answered(), survey.FieldCount())),
	)

	parts := []string{title, progress, ""}
	if s.banner != "" {
		parts = append(parts, components.ErrorBannerStyle.Render(s.banner), "")
	}
	parts = append(parts,
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		components.HintStyle.Render("Tab: Next question | Enter: Next page / Submit | Esc: Quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderProgressBar draws a bar for a 0-100 percentage
func renderProgressBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := progressBarStyle.Render("[" + strings.Repeat("█", filled))
	bar += progressBarEmptyStyle.Render(strings.Repeat("░", width-filled) + "]")
	return bar
}

// Done returns true once every page was submitted
func (s *SurveyScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user quit
func (s *SurveyScreen) Cancelled() bool {
	return s.cancelled
}

// Banner returns the message shown above the form
func (s *SurveyScreen) Banner() string {
	return s.banner
}

// Value returns the text currently bound to a question
func (s *SurveyScreen) Value(name string) string {
	if v, ok := s.values[name]; ok {
		return *v
	}
	return ""
}
