// Package report holds the records exchanged with the prediction and plan
// endpoints.
package report

// ObesityPrediction is the obesity half of a medical report.
type ObesityPrediction struct {
	ObesityLevel string  `json:"obesity_level" yaml:"obesity_level"`
	Confidence   float64 `json:"confidence" yaml:"confidence"` // 0..1
}

// DiabetesPrediction is the diabetes half of a medical report.
type DiabetesPrediction struct {
	Diabetes   bool    `json:"diabetes" yaml:"diabetes"`
	Confidence float64 `json:"confidence" yaml:"confidence"` // 0..1
}

// MedicalReport is the assessment returned by the prediction endpoint,
// already unwrapped from its response envelope.
type MedicalReport struct {
	ObesityPrediction  ObesityPrediction  `json:"obesity_prediction" yaml:"obesity_prediction"`
	DiabetesPrediction DiabetesPrediction `json:"diabetes_prediction" yaml:"diabetes_prediction"`
}

// Envelope is the raw body of a successful prediction response.
type Envelope struct {
	MedicalReport *MedicalReport `json:"medical_report"`
}

// PlanRequest is the body sent to the plan endpoint.
type PlanRequest struct {
	MedicalReport MedicalReport `json:"medical_report"`
	NResults      int           `json:"n_results"`
	MaxTokens     int           `json:"max_tokens"`
	Temperature   float64       `json:"temperature"`
}

// WeekEntry is one week of a generated health plan.
type WeekEntry struct {
	Week                 int      `json:"week"`
	TargetCaloriesPerDay float64  `json:"target_calories_per_day"`
	Focus                string   `json:"focus"`
	Workouts             []string `json:"workouts"`
	MealNotes            string   `json:"meal_notes"`
	Reminders            []string `json:"reminders"`
}

// HealthPlan is a multi-week plan derived from a medical report.
type HealthPlan struct {
	Suggestion string      `json:"suggestion"`
	WeeklyPlan []WeekEntry `json:"weekly_plan"`
}
