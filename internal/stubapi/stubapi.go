// Package stubapi serves canned responses on the prediction and plan
// endpoints so the client can run without the real backend.
package stubapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/mrsinham/healthsurvey/internal/api"
	"github.com/mrsinham/healthsurvey/internal/plan"
	"github.com/mrsinham/healthsurvey/internal/report"
	"github.com/mrsinham/healthsurvey/internal/survey"
)

// Scenario describes the responses of the stub.
type Scenario struct {
	Report report.MedicalReport
	Plan   report.HealthPlan

	// A non-zero status makes the endpoint fail with that status.
	PredictStatus int
	PlanStatus    int
	// OmitWeeklyPlan drops weekly_plan from a successful plan response.
	OmitWeeklyPlan bool
}

// DefaultScenario returns an overweight, non-diabetic assessment with a
// four week plan.
func DefaultScenario() Scenario {
	return Scenario{
		Report: report.MedicalReport{
			ObesityPrediction:  report.ObesityPrediction{ObesityLevel: "Overweight", Confidence: 0.82},
			DiabetesPrediction: report.DiabetesPrediction{Diabetes: false, Confidence: 0.65},
		},
		Plan: report.HealthPlan{
			Suggestion: "Aim for a steady calorie deficit and daily movement.",
			WeeklyPlan: []report.WeekEntry{
				{Week: 1, TargetCaloriesPerDay: 2200, Focus: "Build habits", Workouts: []string{"30 min brisk walk x5"}, MealNotes: "Swap sugary drinks for water", Reminders: []string{"Log meals daily"}},
				{Week: 2, TargetCaloriesPerDay: 2150, Focus: "Add strength", Workouts: []string{"Bodyweight circuit x2", "Walk x4"}, MealNotes: "Protein at every meal", Reminders: []string{"Sleep 7h"}},
				{Week: 3, TargetCaloriesPerDay: 2100, Focus: "Consistency", Workouts: []string{"Cycling 40 min x3"}, MealNotes: "Vegetables at lunch and dinner", Reminders: []string{"Weigh in weekly"}},
				{Week: 4, TargetCaloriesPerDay: 2100, Focus: "Review", Workouts: []string{"Mixed cardio x4"}, MealNotes: "Plan snacks ahead", Reminders: []string{"Check progress"}},
			},
		},
	}
}

// Server counts the requests it answers.
type Server struct {
	mu           sync.RWMutex
	scenario     Scenario
	predictCalls atomic.Int64
	planCalls    atomic.Int64
}

func NewServer(s Scenario) *Server {
	return &Server{scenario: s}
}

// Configure changes the scenario of a running server.
func (s *Server) Configure(fn func(*Scenario)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.scenario)
}

func (s *Server) current() Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scenario
}

func (s *Server) PredictCalls() int64 { return s.predictCalls.Load() }
func (s *Server) PlanCalls() int64    { return s.planCalls.Load() }

// Handler returns the routed handler with CORS and request logging.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc(api.PredictPath, s.predict).Methods(http.MethodPost)
	r.HandleFunc(api.PlanPath, s.plan).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(loggingMiddleware(r))
}

func (s *Server) predict(w http.ResponseWriter, r *http.Request) {
	s.predictCalls.Add(1)
	sc := s.current()
	if sc.PredictStatus != 0 {
		writeDetail(w, sc.PredictStatus, "prediction service unavailable")
		return
	}

	var payload survey.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid payload: %v", err))
		return
	}
	if payload.Height <= 0 || payload.Height > 3 {
		writeDetail(w, http.StatusUnprocessableEntity, "Height must be given in meters")
		return
	}

	writeJSON(w, http.StatusOK, report.Envelope{MedicalReport: &sc.Report})
}

func (s *Server) plan(w http.ResponseWriter, r *http.Request) {
	s.planCalls.Add(1)
	sc := s.current()
	if sc.PlanStatus != 0 {
		writeDetail(w, sc.PlanStatus, "plan generation is unavailable")
		return
	}

	var req report.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid request: %v", err))
		return
	}
	params := plan.Params{NResults: req.NResults, MaxTokens: req.MaxTokens, Temperature: req.Temperature}
	if err := params.Validate(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if sc.OmitWeeklyPlan {
		writeJSON(w, http.StatusOK, map[string]string{"suggestion": sc.Plan.Suggestion})
		return
	}
	writeJSON(w, http.StatusOK, sc.Plan)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("stub: encoding response: %v", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		log.Printf("stub: %d %s %s %v", wrapper.statusCode, r.Method, r.URL.Path, time.Since(start))
	})
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
