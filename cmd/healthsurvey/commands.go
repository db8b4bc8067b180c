package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/mrsinham/healthsurvey/cmd/healthsurvey/wizard"
	"github.com/mrsinham/healthsurvey/internal/config"
	"github.com/mrsinham/healthsurvey/internal/export"
	"github.com/mrsinham/healthsurvey/internal/plan"
	"github.com/mrsinham/healthsurvey/internal/present"
	"github.com/mrsinham/healthsurvey/internal/share"
	"github.com/mrsinham/healthsurvey/internal/stubapi"
	"github.com/mrsinham/healthsurvey/internal/survey"
)

func runWizard(args []string) error {
	var common commonFlags
	fs := pflag.NewFlagSet("wizard", pflag.ContinueOnError)
	common.register(fs)
	answersFile := fs.String("answers", "", "Prefill the questionnaire from a YAML answers file")
	saveAnswers := fs.String("save-answers", "", "Save the answers to a YAML file when the wizard exits")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}

	// The terminal belongs to the wizard; logs go to a file.
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "healthsurvey")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	answers := survey.NewForm()
	if *answersFile != "" {
		if answers, err = survey.LoadAnswers(*answersFile); err != nil {
			return err
		}
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	runErr := wizard.Run(wizard.Options{
		Answers:    answers,
		Predictor:  a.client,
		Reports:    a.reports,
		Planner:    a.planner,
		PlanParams: cfg.Plan,
		Exporter:   a.exporter,
		ExportName: cfg.Export.Filename,
		Sharer:     share.NewClipboardSharer(),
		ShareURL:   cfg.Share.URL,
	})

	if err := persistAnswers(answers, *saveAnswers, os.Stdout); err != nil {
		return err
	}
	return runErr
}

// persistAnswers writes the answers to path, if one was given.
func persistAnswers(answers *survey.Form, path string, out io.Writer) error {
	if path == "" {
		return nil
	}
	if err := survey.SaveAnswers(answers, path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Answers saved to: %s\n", path)
	return nil
}

// reportFlags control what the non-interactive commands do with a report.
type reportFlags struct {
	withPlan bool
	doExport bool
	format   string
	outDir   string
}

func (r *reportFlags) register(fs *pflag.FlagSet, planFlag bool) {
	if planFlag {
		fs.BoolVar(&r.withPlan, "plan", false, "Also generate a health plan")
	}
	fs.BoolVar(&r.doExport, "export", false, "Save the report as a document")
	fs.StringVar(&r.format, "format", "", "Export format: png or dcm (default from config)")
	fs.StringVar(&r.outDir, "out", "", "Export directory (default from config)")
}

func (r *reportFlags) apply(cfg *config.Config) {
	if r.format != "" {
		cfg.Export.Format = r.format
	}
	if r.outDir != "" {
		cfg.Export.Dir = r.outDir
	}
}

// runSubmit submits an answers file and prints the report. With --plan the
// health plan is requested for the stored report.
func runSubmit(args []string, out io.Writer) error {
	var common commonFlags
	var rf reportFlags
	fs := pflag.NewFlagSet("submit", pflag.ContinueOnError)
	common.register(fs)
	rf.register(fs, true)
	answersFile := fs.String("answers", "", "YAML answers file (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *answersFile == "" {
		return errors.New("--answers is required")
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	log.SetOutput(os.Stderr)
	rf.apply(cfg)

	form, err := survey.LoadAnswers(*answersFile)
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := form.Submit(context.Background(), a.client, a.reports); err != nil {
		var valErr *survey.ValidationError
		if errors.As(err, &valErr) {
			return err
		}
		log.Printf("submit: %v", err)
		return errors.New(survey.FailureMessage)
	}

	return printReport(out, a, cfg, rf)
}

// runPlan generates a health plan for the report stored in a resumed
// session.
func runPlan(args []string, out io.Writer) error {
	var common commonFlags
	var rf reportFlags
	fs := pflag.NewFlagSet("plan", pflag.ContinueOnError)
	common.register(fs)
	rf.register(fs, false)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	log.SetOutput(os.Stderr)
	rf.apply(cfg)
	rf.withPlan = true

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	return printReport(out, a, cfg, rf)
}

// runReset empties the report slot of a resumed session.
func runReset(args []string, out io.Writer) error {
	var common commonFlags
	fs := pflag.NewFlagSet("reset", pflag.ContinueOnError)
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if cfg.Session.ID == "" {
		return errors.New("--session-id is required")
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.reports.Reset(); err != nil {
		return fmt.Errorf("resetting session: %w", err)
	}
	fmt.Fprintf(out, "Session %s reset\n", cfg.Session.ID)
	return nil
}

// printReport prints the stored report, generating and exporting as asked.
// A plan failure still prints the report before it is returned.
func printReport(out io.Writer, a *app, cfg *config.Config, rf reportFlags) error {
	rep, err := a.reports.Load()
	if err != nil {
		return err
	}

	var planErr error
	if rf.withPlan {
		if planErr = a.planner.Generate(context.Background(), rep, cfg.Plan); planErr != nil {
			log.Printf("plan: %v", planErr)
		}
	}

	var precondition *plan.PreconditionError
	if errors.As(planErr, &precondition) {
		return errors.New(plan.Message(planErr))
	}

	view := present.Build(rep, a.planner.Plan())
	fmt.Fprint(out, view.Text())

	if rf.doExport {
		path, err := a.exporter.Export(view, cfg.Export.Filename)
		if err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
		fmt.Fprintf(out, "\nSaved %s\n", export.Describe(path))
	}

	if planErr != nil {
		return errors.New(plan.Message(planErr))
	}
	return nil
}

// runStub serves canned responses until interrupted.
func runStub(args []string) error {
	fs := pflag.NewFlagSet("stub", pflag.ContinueOnError)
	addr := fs.String("addr", ":8080", "Listen address")
	failPredict := fs.Int("fail-predict", 0, "Answer the prediction endpoint with this status")
	failPlan := fs.Int("fail-plan", 0, "Answer the plan endpoint with this status")
	omitWeekly := fs.Bool("omit-weekly-plan", false, "Drop weekly_plan from plan responses")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sc := stubapi.DefaultScenario()
	sc.PredictStatus = *failPredict
	sc.PlanStatus = *failPlan
	sc.OmitWeeklyPlan = *omitWeekly

	srv := &http.Server{
		Addr:              *addr,
		Handler:           stubapi.NewServer(sc).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("stub listening on %s", *addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
