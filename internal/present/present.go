// Package present turns a medical report and an optional health plan into
// display lines. It holds no state and performs no I/O, so the terminal
// screens, the submit command and the exporters all render the same text.
package present

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mrsinham/healthsurvey/internal/report"
)

const (
	Title     = "Your Health Report"
	NoResults = "No result data available."
)

// Section is a titled block of lines.
type Section struct {
	Title string
	Lines []string
}

// View is the rendered result screen.
type View struct {
	Title    string
	Sections []Section
	// HasReport is false when no report was stored.
	HasReport bool
	HasPlan   bool
}

// Confidence formats a 0..1 confidence as a percentage with one decimal.
func Confidence(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func Obesity(p report.ObesityPrediction) string {
	return fmt.Sprintf("%s (%s confidence)", p.ObesityLevel, Confidence(p.Confidence))
}

func Diabetes(p report.DiabetesPrediction) string {
	label := "Negative"
	if p.Diabetes {
		label = "Positive"
	}
	return fmt.Sprintf("%s (%s confidence)", label, Confidence(p.Confidence))
}

// Build renders the report and the plan independently. A nil plan is
// omitted; a nil report renders the no-data notice.
func Build(rep *report.MedicalReport, hp *report.HealthPlan) View {
	v := View{Title: Title}

	if rep == nil {
		v.Sections = append(v.Sections, Section{Lines: []string{NoResults}})
	} else {
		v.HasReport = true
		v.Sections = append(v.Sections, Section{
			Title: "Assessment",
			Lines: []string{
				"Obesity Level: " + Obesity(rep.ObesityPrediction),
				"Diabetes Risk: " + Diabetes(rep.DiabetesPrediction),
			},
		})
	}

	if hp != nil {
		v.HasPlan = true
		v.Sections = append(v.Sections, planSections(*hp)...)
	}
	return v
}

func planSections(hp report.HealthPlan) []Section {
	var sections []Section

	summary := Section{Title: "Health Plan"}
	if s := strings.TrimSpace(hp.Suggestion); s != "" {
		summary.Lines = append(summary.Lines, s)
	}
	if len(hp.WeeklyPlan) == 0 {
		summary.Lines = append(summary.Lines, "No weekly plan was returned.")
	}
	sections = append(sections, summary)

	for _, w := range hp.WeeklyPlan {
		sec := Section{Title: fmt.Sprintf("Week %d", w.Week)}
		if w.Focus != "" {
			sec.Lines = append(sec.Lines, "Focus: "+w.Focus)
		}
		if w.TargetCaloriesPerDay > 0 {
			sec.Lines = append(sec.Lines,
				fmt.Sprintf("Target: %s kcal/day", humanize.Comma(int64(w.TargetCaloriesPerDay+0.5))))
		}
		for _, wo := range w.Workouts {
			sec.Lines = append(sec.Lines, "- "+wo)
		}
		if w.MealNotes != "" {
			sec.Lines = append(sec.Lines, "Meals: "+w.MealNotes)
		}
		for _, r := range w.Reminders {
			sec.Lines = append(sec.Lines, "Reminder: "+r)
		}
		sections = append(sections, sec)
	}
	return sections
}

// Lines flattens the view, one blank line between sections.
func (v View) Lines() []string {
	lines := []string{v.Title}
	for _, s := range v.Sections {
		lines = append(lines, "")
		if s.Title != "" {
			lines = append(lines, s.Title)
		}
		lines = append(lines, s.Lines...)
	}
	return lines
}

// Text is the plain-text rendering used by the submit command.
func (v View) Text() string {
	return strings.Join(v.Lines(), "\n") + "\n"
}
