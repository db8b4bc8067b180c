package session

import (
	"encoding/json"
	"fmt"

	"github.com/mrsinham/healthsurvey/internal/report"
)

// ReportKey is the well-known key of the medical report slot.
const ReportKey = "medical_report"

// ReportStore is the single slot holding the most recent medical report.
// Each save overwrites the previous report.
type ReportStore struct {
	store Store
}

func NewReportStore(store Store) *ReportStore {
	return &ReportStore{store: store}
}

// Save overwrites the slot with rep.
func (r *ReportStore) Save(rep report.MedicalReport) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return r.store.Set(ReportKey, string(data))
}

// Load returns the stored report, or nil when the slot is empty.
func (r *ReportStore) Load() (*report.MedicalReport, error) {
	data, ok, err := r.store.Get(ReportKey)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var rep report.MedicalReport
	if err := json.Unmarshal([]byte(data), &rep); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &rep, nil
}

// Reset empties the slot.
func (r *ReportStore) Reset() error {
	return r.store.Delete(ReportKey)
}
