package survey

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadAnswers reads a YAML mapping of field name to answer and applies it to
// a new form. Partially answered files are accepted; submission validates
// completeness.
func LoadAnswers(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing answers: %w", err)
	}

	form := NewForm()
	// Apply in schema order so errors are reported deterministically
	for _, spec := range fields {
		v, ok := raw[spec.Name]
		delete(raw, spec.Name)
		if !ok || v == nil {
			continue
		}
		if err := form.Set(spec.Name, fmt.Sprint(v)); err != nil {
			return nil, err
		}
	}
	for name := range raw {
		return nil, &ValidationError{Field: name, Reason: "unknown field"}
	}

	return form, nil
}

// SaveAnswers writes the answered fields to a YAML file.
func SaveAnswers(form *Form, path string) error {
	out := make(map[string]any, form.Answered())
	for _, spec := range fields {
		if v, ok := form.Value(spec.Name); ok {
			out[spec.Name] = v
		}
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling answers: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing answers: %w", err)
	}
	return nil
}
