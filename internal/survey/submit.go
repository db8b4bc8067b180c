package survey

import (
	"context"
	"fmt"
	"log"

	"github.com/mrsinham/healthsurvey/internal/report"
)

// FailureMessage is what the user sees when a submission fails, whatever
// the cause.
const FailureMessage = "Prediction failed. Please try again later."

// Predictor sends a payload to the prediction service.
type Predictor interface {
	Predict(ctx context.Context, payload Payload) (report.MedicalReport, error)
}

// ReportSaver persists the most recent report for the result screen.
type ReportSaver interface {
	Save(rep report.MedicalReport) error
}

// Submit validates the answers, requests a prediction and stores the
// returned report. The answers are never modified, so a failed submission
// can be retried as is. Exactly one prediction request is made per call.
func (f *Form) Submit(ctx context.Context, predictor Predictor, saver ReportSaver) (report.MedicalReport, error) {
	payload, err := f.Payload()
	if err != nil {
		return report.MedicalReport{}, err
	}

	rep, err := predictor.Predict(ctx, payload)
	if err != nil {
		log.Printf("prediction failed: %v", err)
		return report.MedicalReport{}, err
	}

	if err := saver.Save(rep); err != nil {
		return report.MedicalReport{}, fmt.Errorf("saving report: %w", err)
	}

	log.Printf("prediction stored: obesity=%s diabetes=%t",
		rep.ObesityPrediction.ObesityLevel, rep.DiabetesPrediction.Diabetes)
	return rep, nil
}
