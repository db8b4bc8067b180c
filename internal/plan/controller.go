// Package plan drives the health plan request made from the result screen.
package plan

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/mrsinham/healthsurvey/internal/api"
	"github.com/mrsinham/healthsurvey/internal/report"
	"github.com/mrsinham/healthsurvey/internal/survey"
)

// GenericFailure is shown when a failure carries no server message.
const GenericFailure = "Plan generation failed. Please try again."

// ErrInFlight is returned when Generate is called while a request is pending.
var ErrInFlight = errors.New("plan generation already in progress")

// PreconditionError reports a Generate call without a stored report.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "cannot generate plan: " + e.Reason
}

// State of the plan request.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Requester sends the plan request.
type Requester interface {
	GeneratePlan(ctx context.Context, req report.PlanRequest) (report.HealthPlan, error)
}

// Controller runs at most one plan request at a time. The medical report is
// owned by the caller and is never modified.
type Controller struct {
	requester Requester

	mu      sync.Mutex
	state   State
	plan    *report.HealthPlan
	message string
}

func NewController(requester Requester) *Controller {
	return &Controller{requester: requester}
}

// Generate requests a plan for rep. It blocks until the request settles.
// A call while another is loading returns ErrInFlight without a request.
// A missing report or invalid params fail without a request.
func (c *Controller) Generate(ctx context.Context, rep *report.MedicalReport, params Params) error {
	var rejected error
	if rep == nil {
		rejected = &PreconditionError{Reason: "no medical report available"}
	} else if err := params.Validate(); err != nil {
		rejected = err
	}

	c.mu.Lock()
	if c.state == StateLoading {
		c.mu.Unlock()
		if rejected != nil {
			return rejected
		}
		return ErrInFlight
	}
	if rejected != nil {
		c.state = StateFailed
		c.message = Message(rejected)
		c.mu.Unlock()
		log.Printf("plan: rejected: %v", rejected)
		return rejected
	}
	c.state = StateLoading
	c.message = ""
	c.mu.Unlock()

	log.Printf("plan: requesting %d results (max_tokens=%d, temperature=%.2f)",
		params.NResults, params.MaxTokens, params.Temperature)

	hp, err := c.requester.GeneratePlan(ctx, report.PlanRequest{
		MedicalReport: *rep,
		NResults:      params.NResults,
		MaxTokens:     params.MaxTokens,
		Temperature:   params.Temperature,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateFailed
		c.message = Message(err)
		log.Printf("plan: failed: %v", err)
		return err
	}
	c.state = StateSuccess
	c.plan = &hp
	log.Printf("plan: received %d weeks", len(hp.WeeklyPlan))
	return nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Plan returns the last successful plan, or nil. A failed retry keeps the
// previous plan.
func (c *Controller) Plan() *report.HealthPlan {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plan
}

// Message is the user-visible failure message of the last request.
func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Reset drops the plan and returns to idle. It is a no-op while loading.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateLoading {
		return
	}
	c.state = StateIdle
	c.plan = nil
	c.message = ""
}

// Message converts a Generate error into the text shown to the user.
func Message(err error) string {
	var (
		pre    *PreconditionError
		apiErr *api.APIError
		valErr *survey.ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &pre):
		return "No result data available. Complete the survey first."
	case errors.Is(err, ErrInFlight):
		return "A plan is already being generated."
	case errors.As(err, &valErr):
		return "Invalid plan settings: " + valErr.Error()
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	default:
		return GenericFailure
	}
}
