package wizard

import (
	"github.com/mrsinham/healthsurvey/internal/export"
	"github.com/mrsinham/healthsurvey/internal/plan"
	"github.com/mrsinham/healthsurvey/internal/session"
	"github.com/mrsinham/healthsurvey/internal/share"
	"github.com/mrsinham/healthsurvey/internal/survey"
)

// Options holds the collaborators the wizard drives.
type Options struct {
	// Answers prefills the questionnaire. A new form is used when nil.
	Answers *survey.Form

	Predictor  survey.Predictor
	Reports    *session.ReportStore
	Planner    *plan.Controller
	PlanParams plan.Params

	Exporter   export.Exporter
	ExportName string

	Sharer   share.Sharer
	ShareURL string
}
