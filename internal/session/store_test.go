package session

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/mrsinham/healthsurvey/internal/report"
)

func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "session", "slots.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]Store{
		EngineMemory: NewMemoryStore(),
		EngineSQLite: sqliteStore,
	}
}

func TestStore_SetGetDelete(t *testing.T) {
	for name, st := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := st.Get("missing"); err != nil || ok {
				t.Fatalf("Expected absent key, got ok=%t err=%v", ok, err)
			}

			if err := st.Set("k", "v1"); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := st.Set("k", "v2"); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			v, ok, err := st.Get("k")
			if err != nil || !ok || v != "v2" {
				t.Fatalf("Expected v2, got %q ok=%t err=%v", v, ok, err)
			}

			if err := st.Delete("k"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, ok, _ := st.Get("k"); ok {
				t.Error("Expected key to be deleted")
			}
		})
	}
}

func TestStore_Clear(t *testing.T) {
	for name, st := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			st.Set("a", "1")
			st.Set("b", "2")
			if err := st.Clear(); err != nil {
				t.Fatalf("Clear() error = %v", err)
			}
			for _, k := range []string{"a", "b"} {
				if _, ok, _ := st.Get(k); ok {
					t.Errorf("Expected %s to be cleared", k)
				}
			}
		})
	}
}

func TestSQLiteStore_SessionsAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.db")

	first, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer first.Close()
	second, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer second.Close()

	first.Set(ReportKey, "first")
	if _, ok, _ := second.Get(ReportKey); ok {
		t.Error("Expected second session not to see first session's slot")
	}

	second.Set(ReportKey, "second")
	if err := second.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if v, ok, _ := first.Get(ReportKey); !ok || v != "first" {
		t.Errorf("Expected first session untouched by second Clear, got %q ok=%t", v, ok)
	}
}

func TestSQLiteStore_ReopenSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.db")

	st, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	st.Set(ReportKey, "kept")
	id := st.SessionID()
	st.Close()

	reopened, err := OpenSQLiteSession(path, id)
	if err != nil {
		t.Fatalf("OpenSQLiteSession() error = %v", err)
	}
	defer reopened.Close()

	if v, ok, _ := reopened.Get(ReportKey); !ok || v != "kept" {
		t.Errorf("Expected slot to survive reopen, got %q ok=%t", v, ok)
	}
}

func TestOpenSQLiteSession_InvalidID(t *testing.T) {
	if _, err := OpenSQLiteSession(filepath.Join(t.TempDir(), "x.db"), "not-a-uuid"); err == nil {
		t.Error("Expected error for invalid session id")
	}
}

func TestNewByEngine(t *testing.T) {
	st, err := NewByEngine("", "", "")
	if err != nil {
		t.Fatalf("NewByEngine(\"\") error = %v", err)
	}
	if _, ok := st.(*MemoryStore); !ok {
		t.Errorf("Expected memory store by default, got %T", st)
	}

	st, err = NewByEngine("SQLite", filepath.Join(t.TempDir(), "s.db"), "")
	if err != nil {
		t.Fatalf("NewByEngine(sqlite) error = %v", err)
	}
	defer st.Close()
	if _, ok := st.(*SQLiteStore); !ok {
		t.Errorf("Expected sqlite store, got %T", st)
	}

	if _, err := NewByEngine("redis", "", ""); err == nil {
		t.Error("Expected error for unsupported engine")
	}
	if _, err := NewByEngine(EngineMemory, "", uuid.NewString()); err == nil {
		t.Error("Expected error for a session id on the memory engine")
	}
}

func TestNewByEngine_ResumesSQLiteSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.db")
	id := uuid.NewString()

	first, err := NewByEngine(EngineSQLite, path, id)
	if err != nil {
		t.Fatalf("NewByEngine() error = %v", err)
	}
	rep := report.MedicalReport{ObesityPrediction: report.ObesityPrediction{ObesityLevel: "Obesity_Type_I", Confidence: 0.6}}
	if err := NewReportStore(first).Save(rep); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	first.Close()

	resumed, err := NewByEngine(EngineSQLite, path, id)
	if err != nil {
		t.Fatalf("NewByEngine() error = %v", err)
	}
	defer resumed.Close()
	got, err := NewReportStore(resumed).Load()
	if err != nil || got == nil || *got != rep {
		t.Errorf("Expected report from resumed session, got %+v err=%v", got, err)
	}

	fresh, err := NewByEngine(EngineSQLite, path, "")
	if err != nil {
		t.Fatalf("NewByEngine() error = %v", err)
	}
	defer fresh.Close()
	if got, _ := NewReportStore(fresh).Load(); got != nil {
		t.Errorf("Expected a new session to start empty, got %+v", got)
	}
}

func TestReportStore_SaveLoadReset(t *testing.T) {
	for name, st := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			reports := NewReportStore(st)

			rep, err := reports.Load()
			if err != nil || rep != nil {
				t.Fatalf("Expected empty slot, got %+v err=%v", rep, err)
			}

			first := report.MedicalReport{
				ObesityPrediction:  report.ObesityPrediction{ObesityLevel: "Normal_Weight", Confidence: 0.7},
				DiabetesPrediction: report.DiabetesPrediction{Diabetes: true, Confidence: 0.55},
			}
			second := report.MedicalReport{
				ObesityPrediction:  report.ObesityPrediction{ObesityLevel: "Overweight", Confidence: 0.82},
				DiabetesPrediction: report.DiabetesPrediction{Diabetes: false, Confidence: 0.65},
			}

			if err := reports.Save(first); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if err := reports.Save(second); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			rep, err = reports.Load()
			if err != nil || rep == nil {
				t.Fatalf("Load() = %v, %v", rep, err)
			}
			if *rep != second {
				t.Errorf("Expected latest report %+v, got %+v", second, *rep)
			}

			if err := reports.Reset(); err != nil {
				t.Fatalf("Reset() error = %v", err)
			}
			if rep, _ := reports.Load(); rep != nil {
				t.Errorf("Expected empty slot after reset, got %+v", rep)
			}
		})
	}
}

func TestReportStore_CorruptSlot(t *testing.T) {
	st := NewMemoryStore()
	st.Set(ReportKey, "{not json")

	if _, err := NewReportStore(st).Load(); err == nil {
		t.Error("Expected error decoding corrupt slot")
	}
}
