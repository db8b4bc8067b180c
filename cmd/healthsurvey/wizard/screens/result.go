package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/healthsurvey/cmd/healthsurvey/wizard/components"
	"github.com/mrsinham/healthsurvey/internal/plan"
	"github.com/mrsinham/healthsurvey/internal/present"
)

// ResultAction represents the action selected on the result screen
type ResultAction int

const (
	ResultActionNone ResultAction = iota
	// ResultActionGeneratePlan requests a health plan for the stored report
	ResultActionGeneratePlan
	// ResultActionExport saves the report as a document
	ResultActionExport
	// ResultActionShare copies the result link
	ResultActionShare
	// ResultActionBack returns to the questionnaire
	ResultActionBack
	// ResultActionQuit exits the wizard
	ResultActionQuit
)

var (
	resultPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(1, 2)

	resultSectionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("63")).
				Bold(true)

	resultLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	keyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
)

// ResultScreen shows the medical report and the health plan
type ResultScreen struct {
	view        present.View
	planState   plan.State
	planMessage string

	status    string
	statusErr bool

	spinner spinner.Model
	action  ResultAction
	width   int
}

func NewResultScreen(view present.View) *ResultScreen {
	return &ResultScreen{
		view:    view,
		spinner: newSpinner(),
	}
}

// Init implements tea.Model
func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

// SetView replaces the rendered report and plan
func (s *ResultScreen) SetView(view present.View) {
	s.view = view
}

// SetPlanState updates the plan indicator. Entering the loading state
// starts the spinner.
func (s *ResultScreen) SetPlanState(state plan.State, message string) tea.Cmd {
	wasLoading := s.planState == plan.StateLoading
	s.planState = state
	s.planMessage = message
	if state == plan.StateLoading && !wasLoading {
		return s.spinner.Tick
	}
	return nil
}

// SetStatus shows the outcome of the last export or share
func (s *ResultScreen) SetStatus(text string, isErr bool) {
	s.status = text
	s.statusErr = isErr
}

// TakeAction returns the pending action and clears it
func (s *ResultScreen) TakeAction() ResultAction {
	a := s.action
	s.action = ResultActionNone
	return a
}

// Update implements tea.Model
func (s *ResultScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			s.action = ResultActionQuit
		case "g":
			if s.view.HasReport && s.planState != plan.StateLoading {
				s.action = ResultActionGeneratePlan
			}
		case "e":
			s.action = ResultActionExport
		case "c":
			s.action = ResultActionShare
		case "b":
			s.action = ResultActionBack
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
	case spinner.TickMsg:
		if s.planState != plan.StateLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

// View implements tea.Model
func (s *ResultScreen) View() string {
	var body strings.Builder
	for i, sec := range s.view.Sections {
		if i > 0 {
			body.WriteString("\n\n")
		}
		if sec.Title != "" {
			body.WriteString(resultSectionStyle.Render(sec.Title))
			body.WriteString("\n")
		}
		for j, line := range sec.Lines {
			if j > 0 {
				body.WriteString("\n")
			}
			body.WriteString(resultLineStyle.Render(line))
		}
	}

	panel := resultPanelStyle
	if s.width > 10 {
		panel = panel.Width(s.width - 4)
	}

	parts := []string{
		components.TitleStyle.Render(s.view.Title),
		panel.Render(body.String()),
		"",
	}

	switch s.planState {
	case plan.StateLoading:
		parts = append(parts, s.spinner.View()+" Generating your health plan...")
	case plan.StateFailed:
		parts = append(parts, components.ErrorBannerStyle.Render(s.planMessage))
	}

	if s.status != "" {
		if s.statusErr {
			parts = append(parts, components.ErrorBannerStyle.Render(s.status))
		} else {
			parts = append(parts, statusOKStyle.Render(s.status))
		}
	}

	parts = append(parts, "", s.keys())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *ResultScreen) keys() string {
	var hints []string
	if s.view.HasReport && s.planState != plan.StateLoading {
		label := "Generate plan"
		if s.view.HasPlan {
			label = "Regenerate plan"
		}
		hints = append(hints, keyStyle.Render("g")+" "+label)
	}
	hints = append(hints,
		keyStyle.Render("e")+" Save report",
		keyStyle.Render("c")+" Copy share link",
		keyStyle.Render("b")+" Back to questionnaire",
		keyStyle.Render("q")+" Quit",
	)
	return strings.Join(hints, "  ")
}

// PlanState returns the plan indicator currently shown
func (s *ResultScreen) PlanState() plan.State {
	return s.planState
}
