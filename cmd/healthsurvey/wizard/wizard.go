package wizard

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrsinham/healthsurvey/cmd/healthsurvey/wizard/screens"
	"github.com/mrsinham/healthsurvey/internal/export"
	"github.com/mrsinham/healthsurvey/internal/plan"
	"github.com/mrsinham/healthsurvey/internal/present"
	"github.com/mrsinham/healthsurvey/internal/report"
	"github.com/mrsinham/healthsurvey/internal/share"
	"github.com/mrsinham/healthsurvey/internal/survey"
)

// Phase represents the current phase/screen of the wizard.
type Phase int

const (
	PhaseSurvey Phase = iota
	PhaseSubmitting
	PhaseResult
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseSurvey:
		return "survey"
	case PhaseSubmitting:
		return "submitting"
	case PhaseResult:
		return "result"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Wizard is the main orchestrator for the survey interface.
type Wizard struct {
	opts Options
	form *survey.Form

	phase Phase

	surveyScreen     *screens.SurveyScreen
	submittingScreen *screens.SubmittingScreen
	resultScreen     *screens.ResultScreen
	errorScreen      *screens.ErrorScreen

	width  int
	height int

	cancelled bool
	err       error
}

// NewWizard creates a wizard on the questionnaire.
func NewWizard(opts Options) *Wizard {
	form := opts.Answers
	if form == nil {
		form = survey.NewForm()
	}
	if opts.ExportName == "" {
		opts.ExportName = export.DefaultFilename
	}

	w := &Wizard{
		opts:  opts,
		form:  form,
		phase: PhaseSurvey,
	}
	w.surveyScreen = screens.NewSurveyScreen(form, "")
	return w
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.surveyScreen.Init()
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = wsm.Width
		w.height = wsm.Height
	}

	switch w.phase {
	case PhaseSurvey:
		return w.updateSurvey(msg)
	case PhaseSubmitting:
		return w.updateSubmitting(msg)
	case PhaseResult:
		return w.updateResult(msg)
	case PhaseError:
		return w.updateError(msg)
	}

	return w, nil
}

// View implements tea.Model.
func (w *Wizard) View() string {
	switch w.phase {
	case PhaseSurvey:
		return w.surveyScreen.View()
	case PhaseSubmitting:
		return w.submittingScreen.View()
	case PhaseResult:
		return w.resultScreen.View()
	case PhaseError:
		return w.errorScreen.View()
	}

	return ""
}

// Phase returns the current phase.
func (w *Wizard) Phase() Phase {
	return w.phase
}

// Form returns the answers collected so far.
func (w *Wizard) Form() *survey.Form {
	return w.form
}

func (w *Wizard) updateSurvey(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.surveyScreen.Update(msg)
	if ss, ok := model.(*screens.SurveyScreen); ok {
		w.surveyScreen = ss
	}

	if w.surveyScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.surveyScreen.Done() {
		return w.submit()
	}

	return w, cmd
}

// submit sends the answers for prediction. Incomplete answers return to the
// questionnaire without a request.
func (w *Wizard) submit() (tea.Model, tea.Cmd) {
	if err := w.form.Validate(); err != nil {
		return w.transitionToSurvey(err.Error())
	}

	w.phase = PhaseSubmitting
	w.submittingScreen = screens.NewSubmittingScreen()

	form, predictor, reports := w.form, w.opts.Predictor, w.opts.Reports
	return w, tea.Batch(w.submittingScreen.Init(), func() tea.Msg {
		rep, err := form.Submit(context.Background(), predictor, reports)
		if err != nil {
			return screens.PredictionFailedMsg{Err: err}
		}
		return screens.PredictionMsg{Report: rep}
	})
}

func (w *Wizard) transitionToSurvey(banner string) (tea.Model, tea.Cmd) {
	w.phase = PhaseSurvey
	w.surveyScreen = screens.NewSurveyScreen(w.form, banner)
	w.resize(w.surveyScreen)
	return w, w.surveyScreen.Init()
}

func (w *Wizard) updateSubmitting(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screens.PredictionMsg:
		if w.opts.Planner != nil {
			w.opts.Planner.Reset()
		}
		return w.transitionToResult()
	case screens.PredictionFailedMsg:
		var valErr *survey.ValidationError
		if errors.As(msg.Err, &valErr) {
			return w.transitionToSurvey(valErr.Error())
		}
		return w.transitionToSurvey(survey.FailureMessage)
	}

	model, cmd := w.submittingScreen.Update(msg)
	if ss, ok := model.(*screens.SubmittingScreen); ok {
		w.submittingScreen = ss
	}
	if w.submittingScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	return w, cmd
}

// transitionToResult shows the report read back from the session store.
func (w *Wizard) transitionToResult() (tea.Model, tea.Cmd) {
	view, err := w.currentView()
	if err != nil {
		return w.fail(err)
	}

	w.phase = PhaseResult
	w.resultScreen = screens.NewResultScreen(view)
	w.resize(w.resultScreen)
	if w.opts.Planner != nil {
		w.resultScreen.SetPlanState(w.opts.Planner.State(), w.opts.Planner.Message())
	}
	return w, w.resultScreen.Init()
}

func (w *Wizard) currentView() (present.View, error) {
	rep, err := w.opts.Reports.Load()
	if err != nil {
		return present.View{}, fmt.Errorf("loading report: %w", err)
	}
	var hp *report.HealthPlan
	if w.opts.Planner != nil {
		hp = w.opts.Planner.Plan()
	}
	return present.Build(rep, hp), nil
}

func (w *Wizard) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screens.PlanSettledMsg:
		return w.planSettled(msg)
	case screens.StatusMsg:
		if msg.Err != nil {
			w.resultScreen.SetStatus(msg.Err.Error(), true)
		} else {
			w.resultScreen.SetStatus(msg.Text, false)
		}
		return w, nil
	}

	model, cmd := w.resultScreen.Update(msg)
	if rs, ok := model.(*screens.ResultScreen); ok {
		w.resultScreen = rs
	}

	switch w.resultScreen.TakeAction() {
	case screens.ResultActionGeneratePlan:
		return w.generatePlan()
	case screens.ResultActionExport:
		return w, w.exportCmd()
	case screens.ResultActionShare:
		return w, w.shareCmd()
	case screens.ResultActionBack:
		return w.transitionToSurvey("")
	case screens.ResultActionQuit:
		return w, tea.Quit
	}

	return w, cmd
}

// generatePlan requests a plan for the stored report. The controller
// rejects a second request while one is loading.
func (w *Wizard) generatePlan() (tea.Model, tea.Cmd) {
	planner := w.opts.Planner
	if planner == nil || planner.State() == plan.StateLoading {
		return w, nil
	}

	rep, err := w.opts.Reports.Load()
	if err != nil {
		return w.fail(fmt.Errorf("loading report: %w", err))
	}

	params := w.opts.PlanParams
	spin := w.resultScreen.SetPlanState(plan.StateLoading, "")
	return w, tea.Batch(spin, func() tea.Msg {
		return screens.PlanSettledMsg{Err: planner.Generate(context.Background(), rep, params)}
	})
}

func (w *Wizard) planSettled(msg screens.PlanSettledMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.Err, plan.ErrInFlight) {
		return w, nil
	}

	view, err := w.currentView()
	if err != nil {
		return w.fail(err)
	}
	w.resultScreen.SetView(view)

	w.resultScreen.SetPlanState(w.opts.Planner.State(), w.opts.Planner.Message())
	return w, nil
}

func (w *Wizard) exportCmd() tea.Cmd {
	exporter, name := w.opts.Exporter, w.opts.ExportName
	if exporter == nil {
		return func() tea.Msg {
			return screens.StatusMsg{Err: errors.New("export is not configured")}
		}
	}
	view, err := w.currentView()
	if err != nil {
		return func() tea.Msg { return screens.StatusMsg{Err: err} }
	}
	return func() tea.Msg {
		path, err := exporter.Export(view, name)
		if err != nil {
			return screens.StatusMsg{Err: fmt.Errorf("saving report: %w", err)}
		}
		return screens.StatusMsg{Text: "Saved " + export.Describe(path)}
	}
}

func (w *Wizard) shareCmd() tea.Cmd {
	sharer, link := w.opts.Sharer, w.opts.ShareURL
	return func() tea.Msg {
		if sharer == nil {
			return screens.StatusMsg{Err: errors.New("sharing is not configured")}
		}
		if err := sharer.Share(link); err != nil {
			return screens.StatusMsg{Err: err}
		}
		return screens.StatusMsg{Text: share.CopiedMessage}
	}
}

func (w *Wizard) fail(err error) (tea.Model, tea.Cmd) {
	w.err = err
	w.phase = PhaseError
	w.errorScreen = screens.NewErrorScreen(err)
	return w, nil
}

func (w *Wizard) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.errorScreen.Update(msg)
	if es, ok := model.(*screens.ErrorScreen); ok {
		w.errorScreen = es
	}
	return w, cmd
}

// resize forwards the last known window size to a new screen.
func (w *Wizard) resize(m tea.Model) {
	if w.width > 0 {
		m.Update(tea.WindowSizeMsg{Width: w.width, Height: w.height})
	}
}

// Run starts the interactive wizard.
func Run(opts Options) error {
	w := NewWizard(opts)
	p := tea.NewProgram(w, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}

	if fw, ok := finalModel.(*Wizard); ok {
		if fw.cancelled {
			return nil
		}
		if fw.err != nil {
			return fw.err
		}
	}
	return nil
}
