package screens

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/healthsurvey/cmd/healthsurvey/wizard/components"
	"github.com/mrsinham/healthsurvey/internal/report"
)

// PredictionMsg is sent when the prediction request succeeded and the
// report was stored.
type PredictionMsg struct {
	Report report.MedicalReport
}

// PredictionFailedMsg is sent when the prediction request failed.
type PredictionFailedMsg struct {
	Err error
}

// PlanSettledMsg is sent when a plan request finished, successfully or not.
type PlanSettledMsg struct {
	Err error
}

// StatusMsg carries the outcome of an export or share action.
type StatusMsg struct {
	Text string
	Err  error
}

var (
	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	progressElapsedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
)

func newSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(spinnerStyle),
	)
}

// SubmittingScreen is shown while the answers are sent for prediction
type SubmittingScreen struct {
	spinner   spinner.Model
	startTime time.Time
	cancelled bool
}

func NewSubmittingScreen() *SubmittingScreen {
	return &SubmittingScreen{
		spinner:   newSpinner(),
		startTime: time.Now(),
	}
}

// Init implements tea.Model
func (s *SubmittingScreen) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update implements tea.Model
func (s *SubmittingScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			s.cancelled = true
			return s, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

// View implements tea.Model
func (s *SubmittingScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	var sb strings.Builder
	sb.WriteString(components.TitleStyle.Render("Analyzing your answers..."))
	sb.WriteString("\n\n")
	sb.WriteString(s.spinner.View())
	sb.WriteString(" Waiting for the prediction service")
	sb.WriteString("\n\n")
	sb.WriteString(progressElapsedStyle.Render(fmt.Sprintf("Elapsed: %.1fs", time.Since(s.startTime).Seconds())))
	sb.WriteString("\n\n")
	sb.WriteString(components.HintStyle.Render("Press Ctrl+C to quit"))
	return sb.String()
}

// Cancelled returns true if the user quit
func (s *SubmittingScreen) Cancelled() bool {
	return s.cancelled
}

// ErrorScreen displays an unrecoverable error
type ErrorScreen struct {
	err  error
	done bool
}

var (
	errorTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))
)

func NewErrorScreen(err error) *ErrorScreen {
	return &ErrorScreen{err: err}
}

// Init implements tea.Model
func (s *ErrorScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *ErrorScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc", "enter", "q":
			s.done = true
			return s, tea.Quit
		}
	}
	return s, nil
}

// View implements tea.Model
func (s *ErrorScreen) View() string {
	var sb strings.Builder
	sb.WriteString(errorTitleStyle.Render("✗ Something went wrong"))
	sb.WriteString("\n\n")
	sb.WriteString(components.TitleStyle.Render("Error:"))
	sb.WriteString("\n  ")
	sb.WriteString(errorMessageStyle.Render(s.err.Error()))
	sb.WriteString("\n\n")
	sb.WriteString(components.HintStyle.Render("Press Enter or q to exit"))
	return sb.String()
}

// Done returns true if the user is finished
func (s *ErrorScreen) Done() bool {
	return s.done
}

// Error returns the error
func (s *ErrorScreen) Error() error {
	return s.err
}
