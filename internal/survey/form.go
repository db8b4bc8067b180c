package survey

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidationError reports answers that are missing or cannot be stored.
type ValidationError struct {
	Field   string   // offending field, empty when Missing is set
	Missing []string // unanswered fields, in display order
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing answers: %s", strings.Join(e.Missing, ", "))
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return e.Reason
}

// Form holds the in-progress answers of one questionnaire.
type Form struct {
	answers  map[string]any
	progress int
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{answers: make(map[string]any)}
}

// Set records the raw input for a field. The value is coerced according to
// the field's value type; an empty value clears the answer. On error the
// answers are left unchanged.
func (f *Form) Set(name, raw string) error {
	spec, ok := Lookup(name)
	if !ok {
		return &ValidationError{Field: name, Reason: "unknown field"}
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		delete(f.answers, name)
		f.recompute()
		return nil
	}

	if spec.Kind == KindChoice && !spec.HasOption(raw) {
		return &ValidationError{Field: name, Reason: fmt.Sprintf("%q is not a valid option", raw)}
	}

	if spec.Numeric() {
		n, err := ParseNumber(raw)
		if err != nil {
			return &ValidationError{Field: name, Reason: err.Error()}
		}
		f.answers[name] = n
	} else {
		f.answers[name] = raw
	}

	f.recompute()
	return nil
}

// ParseNumber parses a numeric answer. NaN and infinities are rejected.
func ParseNumber(raw string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errors.New("must be a number")
	}
	return n, nil
}

func (f *Form) recompute() {
	f.progress = int(math.Round(100 * float64(len(f.answers)) / float64(FieldCount())))
}

// Progress returns the completion percentage over the full question list.
func (f *Form) Progress() int {
	return f.progress
}

// Answered returns the number of answered fields.
func (f *Form) Answered() int {
	return len(f.answers)
}

// Value returns the stored answer for a field.
func (f *Form) Value(name string) (any, bool) {
	v, ok := f.answers[name]
	return v, ok
}

// Raw returns the stored answer formatted back as input text, or "" when the
// field is unanswered.
func (f *Form) Raw(name string) string {
	switch v := f.answers[name].(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return ""
	}
}

// Missing lists the unanswered fields in display order.
func (f *Form) Missing() []string {
	var missing []string
	for _, spec := range fields {
		if _, ok := f.answers[spec.Name]; !ok {
			missing = append(missing, spec.Name)
		}
	}
	return missing
}

// Validate fails with a ValidationError unless every field is answered.
func (f *Form) Validate() error {
	if missing := f.Missing(); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Reset clears all answers.
func (f *Form) Reset() {
	f.answers = make(map[string]any)
	f.progress = 0
}
