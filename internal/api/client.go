// Package api is the HTTP client for the prediction and plan endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mrsinham/healthsurvey/internal/report"
	"github.com/mrsinham/healthsurvey/internal/survey"
)

const (
	PredictPath = "/api/medical-report/retrieve"
	PlanPath    = "/api/medical-report/plan"
)

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration // 0 leaves the transport default
}

// Client talks to the prediction backend. Each call makes exactly one
// request; nothing is retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient validates the base URL and creates a client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api base url is required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.New("api base url must be absolute, got " + cfg.BaseURL)
	}

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Predict submits a survey payload and returns the medical report unwrapped
// from the response envelope.
func (c *Client) Predict(ctx context.Context, payload survey.Payload) (report.MedicalReport, error) {
	body, err := c.post(ctx, PredictPath, payload)
	if err != nil {
		return report.MedicalReport{}, err
	}

	var env report.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return report.MedicalReport{}, &MalformedResponseError{Endpoint: PredictPath, Err: err}
	}
	if env.MedicalReport == nil {
		return report.MedicalReport{}, &MalformedResponseError{Endpoint: PredictPath, Field: "medical_report"}
	}
	return *env.MedicalReport, nil
}

// GeneratePlan requests a health plan for a report. A success status without
// a weekly_plan field is treated as a failure.
func (c *Client) GeneratePlan(ctx context.Context, req report.PlanRequest) (report.HealthPlan, error) {
	body, err := c.post(ctx, PlanPath, req)
	if err != nil {
		return report.HealthPlan{}, err
	}

	if wp := gjson.GetBytes(body, "weekly_plan"); !wp.Exists() || wp.Type == gjson.Null {
		return report.HealthPlan{}, &MalformedResponseError{Endpoint: PlanPath, Field: "weekly_plan"}
	}

	var plan report.HealthPlan
	if err := json.Unmarshal(body, &plan); err != nil {
		return report.HealthPlan{}, &MalformedResponseError{Endpoint: PlanPath, Err: err}
	}
	return plan, nil
}

// post sends a JSON body and returns the response body of a 2xx reply.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Endpoint: path, Err: err}
	}
	log.Printf("POST %s -> %d (%s)", path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Endpoint: path, Status: resp.StatusCode, Message: serverMessage(respBody)}
	}
	return respBody, nil
}

// serverMessage extracts an explanation from an error body: the "error"
// field, or the "detail" string FastAPI puts in HTTP exceptions.
func serverMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"error", "detail"} {
		if r := gjson.GetBytes(body, path); r.Type == gjson.String {
			if msg := strings.TrimSpace(r.String()); msg != "" {
				return msg
			}
		}
	}
	return ""
}
