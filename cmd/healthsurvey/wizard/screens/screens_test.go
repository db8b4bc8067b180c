package screens

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrsinham/healthsurvey/cmd/healthsurvey/wizard/help"
	"github.com/mrsinham/healthsurvey/internal/plan"
	"github.com/mrsinham/healthsurvey/internal/present"
	"github.com/mrsinham/healthsurvey/internal/report"
	"github.com/mrsinham/healthsurvey/internal/survey"
)

func TestGroups_CoverEveryFieldOnce(t *testing.T) {
	seen := make(map[string]int)
	for _, g := range Groups {
		for _, name := range g.Fields {
			seen[name]++
		}
	}

	for _, spec := range survey.Fields() {
		if seen[spec.Name] != 1 {
			t.Errorf("Expected %s exactly once in the pages, got %d", spec.Name, seen[spec.Name])
		}
		if _, ok := help.Texts[spec.Name]; !ok {
			t.Errorf("Missing help text for %s", spec.Name)
		}
	}
	if len(seen) != survey.FieldCount() {
		t.Errorf("Expected %d questions, got %d", survey.FieldCount(), len(seen))
	}
}

func TestNewSurveyScreen_PrefillsAnswers(t *testing.T) {
	form := survey.NewForm()
	form.Set("height", "172.5")
	form.Set("monitor", "yes")

	s := NewSurveyScreen(form, "banner")

	if s.Value("height") != "172.5" {
		t.Errorf("Expected height 172.5, got %q", s.Value("height"))
	}
	if s.Value("monitor") != "yes" {
		t.Errorf("Expected monitor yes, got %q", s.Value("monitor"))
	}
	if s.Value("age") != "" {
		t.Errorf("Expected empty age, got %q", s.Value("age"))
	}
	if s.Banner() != "banner" {
		t.Errorf("Expected banner, got %q", s.Banner())
	}
}

func TestSurveyScreen_SyncFollowsScreen(t *testing.T) {
	form := survey.NewForm()
	s := NewSurveyScreen(form, "")

	*s.values["age"] = "41"
	*s.values["gender"] = "2"
	s.sync()
	if form.Answered() != 2 || form.Progress() != 13 {
		t.Errorf("Expected 2 answers at 13%%, got %d at %d%%", form.Answered(), form.Progress())
	}

	*s.values["age"] = "41x"
	s.sync()
	if v, ok := form.Value("age"); ok {
		t.Errorf("Expected invalid edit to clear the answer, got %v", v)
	}

	*s.values["gender"] = ""
	s.sync()
	if form.Answered() != 0 {
		t.Errorf("Expected no answers left, got %d", form.Answered())
	}
}

func TestSurveyScreen_NonFiniteNumberNotSubmitted(t *testing.T) {
	for _, raw := range []string{"Inf", "-inf", "Infinity", "NaN"} {
		form := survey.NewForm()
		form.Set("age", "30")
		s := NewSurveyScreen(form, "")

		if validateNumber(raw) == nil {
			t.Errorf("Expected %q to be rejected by the input", raw)
		}

		*s.values["age"] = raw
		s.sync()
		if v, ok := form.Value("age"); ok {
			t.Errorf("%s: expected age to be cleared, form still stores %v", raw, v)
		}
		if s.Value("age") != raw {
			t.Errorf("Expected screen to keep %q, got %q", raw, s.Value("age"))
		}
	}
}

func TestValidators(t *testing.T) {
	if validateRequired("  ") == nil {
		t.Error("Expected blank to be rejected")
	}
	if validateNumber("abc") == nil {
		t.Error("Expected text to be rejected for numbers")
	}
	if validateNumber("NaN") == nil {
		t.Error("Expected NaN to be rejected for numbers")
	}
	if err := validateNumber(" 1.5 "); err != nil {
		t.Errorf("Expected 1.5 to be accepted, got %v", err)
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		percent int
		filled  int
	}{
		{0, 0},
		{50, 10},
		{100, 20},
		{150, 20},
	}
	for _, tt := range tests {
		bar := renderProgressBar(tt.percent, 20)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("percent %d: expected %d filled cells, got %d", tt.percent, tt.filled, got)
		}
		if got := strings.Count(bar, "░"); got != 20-tt.filled {
			t.Errorf("percent %d: expected %d empty cells, got %d", tt.percent, 20-tt.filled, got)
		}
	}
}

func runeKey(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestResultScreen_Actions(t *testing.T) {
	rep := report.MedicalReport{ObesityPrediction: report.ObesityPrediction{ObesityLevel: "Normal_Weight", Confidence: 0.9}}
	s := NewResultScreen(present.Build(&rep, nil))

	tests := []struct {
		key  string
		want ResultAction
	}{
		{"g", ResultActionGeneratePlan},
		{"e", ResultActionExport},
		{"c", ResultActionShare},
		{"b", ResultActionBack},
		{"q", ResultActionQuit},
		{"x", ResultActionNone},
	}
	for _, tt := range tests {
		s.Update(runeKey(tt.key))
		if got := s.TakeAction(); got != tt.want {
			t.Errorf("key %s: expected action %d, got %d", tt.key, tt.want, got)
		}
		if s.TakeAction() != ResultActionNone {
			t.Errorf("key %s: expected action to be cleared", tt.key)
		}
	}
}

func TestResultScreen_GenerateNeedsReportAndIdle(t *testing.T) {
	empty := NewResultScreen(present.Build(nil, nil))
	empty.Update(runeKey("g"))
	if empty.TakeAction() != ResultActionNone {
		t.Error("Expected generate to be unavailable without a report")
	}
	if strings.Contains(empty.View(), "Generate plan") {
		t.Error("Expected no generate hint without a report")
	}
	if !strings.Contains(empty.View(), present.NoResults) {
		t.Error("Expected no-data notice")
	}

	rep := report.MedicalReport{}
	s := NewResultScreen(present.Build(&rep, nil))
	if cmd := s.SetPlanState(plan.StateLoading, ""); cmd == nil {
		t.Error("Expected spinner to start when loading")
	}
	if cmd := s.SetPlanState(plan.StateLoading, ""); cmd != nil {
		t.Error("Expected spinner not to restart while loading")
	}
	s.Update(runeKey("g"))
	if s.TakeAction() != ResultActionNone {
		t.Error("Expected generate to be ignored while loading")
	}
	if !strings.Contains(s.View(), "Generating your health plan") {
		t.Error("Expected loading indicator")
	}

	s.SetPlanState(plan.StateFailed, "model overloaded")
	if !strings.Contains(s.View(), "model overloaded") {
		t.Error("Expected failure message")
	}
}
