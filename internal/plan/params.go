package plan

import (
	"fmt"

	"github.com/mrsinham/healthsurvey/internal/survey"
)

// Bounds accepted by the plan endpoint.
const (
	MinResults     = 1
	MaxResults     = 10
	MinMaxTokens   = 256
	MaxMaxTokens   = 4096
	MinTemperature = 0.0
	MaxTemperature = 1.0
)

// Params tune the plan generation request.
type Params struct {
	NResults    int     `yaml:"n_results"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		NResults:    4,
		MaxTokens:   1200,
		Temperature: 0.2,
	}
}

// Validate checks every parameter against the endpoint bounds.
func (p Params) Validate() error {
	if p.NResults < MinResults || p.NResults > MaxResults {
		return &survey.ValidationError{
			Field:  "n_results",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinResults, MaxResults, p.NResults),
		}
	}
	if p.MaxTokens < MinMaxTokens || p.MaxTokens > MaxMaxTokens {
		return &survey.ValidationError{
			Field:  "max_tokens",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinMaxTokens, MaxMaxTokens, p.MaxTokens),
		}
	}
	if p.Temperature < MinTemperature || p.Temperature > MaxTemperature {
		return &survey.ValidationError{
			Field:  "temperature",
			Reason: fmt.Sprintf("must be between %.1f and %.1f, got %g", MinTemperature, MaxTemperature, p.Temperature),
		}
	}
	return nil
}
