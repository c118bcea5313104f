package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kakunje/prakriti/internal/assessment"
	"github.com/kakunje/prakriti/internal/intake"
	"github.com/kakunje/prakriti/internal/render"
	"github.com/kakunje/prakriti/internal/scoring"
	"github.com/kakunje/prakriti/internal/spinner"
	"github.com/kakunje/prakriti/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const reportDirLayout = "20060102-150405"

type evaluateOptions struct {
	outDir    string
	formats   string
	strict    bool
	save      bool
	patientID string
}

func newEvaluateCommand(a *app) *cobra.Command {
	var opts evaluateOptions

	cmd := &cobra.Command{
		Use:   "evaluate <sheet.yaml>",
		Short: "Score an answer sheet and write the report bundle",
		Long: `Score an answer sheet (YAML or JSON) and write the report bundle.

The bundle holds the full Markdown report, an HTML copy, a one-page action
plan, a follow-up calendar entry, a dosha bar chart and the report as JSON.
Missing answers fall back to neutral values unless --strict is given.

Exit codes:
  0  report written
  1  the answer sheet failed validation
  2  configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("strict") {
				opts.strict = a.settings.Strict
			}
			return runEvaluate(cmd, a, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Output directory (default: <data_dir>/reports/<timestamp>)")
	cmd.Flags().StringVar(&opts.formats, "format", "", "Comma-separated formats: md, html, plan, ics, png, json, text (default: all but text)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Reject sheets with missing or out-of-range answers (default from strict setting)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Store the patient and report in the local database")
	cmd.Flags().StringVar(&opts.patientID, "patient-id", "", "Attach the saved report to an existing patient (implies --save)")

	return cmd
}

func runEvaluate(cmd *cobra.Command, a *app, sheetPath string, opts evaluateOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	formats, err := render.ParseFormats(opts.formats)
	if err != nil {
		return err
	}

	sheet, err := intake.Load(sheetPath)
	if err != nil {
		var invalid *intake.InvalidSheetError
		if errors.As(err, &invalid) {
			return &ValidationFailureError{Message: sheetPath, Err: err}
		}
		return err
	}

	engine, err := a.engine()
	if err != nil {
		return err
	}
	report, err := engine.Evaluate(ctx, sheet, assessment.Options{Strict: opts.strict, Now: time.Now()})
	if err != nil {
		var verr *scoring.ValidationError
		if errors.As(err, &verr) {
			return &ValidationFailureError{Message: "strict validation failed", Err: err}
		}
		return err
	}
	report.ID = uuid.NewString()

	dir := opts.outDir
	if dir == "" {
		dir = filepath.Join(a.settings.ReportsDir(), report.CreatedAt.Local().Format(reportDirLayout))
	}
	stop := spinner.Start(cmd.ErrOrStderr(), "Rendering report")
	paths, err := render.WriteBundle(ctx, dir, report, formats, render.Options{FollowupDays: a.settings.FollowupDays})
	stop()
	if err != nil {
		return err
	}

	// Only a report that rendered is stored.
	if opts.save || opts.patientID != "" {
		if err := a.saveReport(ctx, sheet, report, opts.patientID); err != nil {
			return err
		}
	}

	if err := render.Table(out, report); err != nil {
		return err
	}
	if report.Fallbacks.Any() {
		fmt.Fprintf(out, "\nFallbacks applied: %v\n", report.Fallbacks.Kinds())
	}
	fmt.Fprintf(out, "\nWrote %d file(s):\n", len(paths))
	for _, p := range paths {
		fmt.Fprintf(out, "  %s\n", p)
	}
	if opts.save || opts.patientID != "" {
		fmt.Fprintf(out, "\nSaved assessment %s for patient %s\n", report.ID, report.PatientID)
	}
	return nil
}

// saveReport stores the report under patientID, or under a new patient
// built from the sheet when patientID is empty.
func (a *app) saveReport(ctx context.Context, sheet *intake.Sheet, report *assessment.Report, patientID string) error {
	repo, err := a.openStore()
	if err != nil {
		return err
	}
	defer repo.Close() //nolint:errcheck

	var patient *store.Patient
	if patientID != "" {
		patient, err = repo.GetPatient(ctx, patientID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("patient %s: %w", patientID, err)
			}
			return err
		}
	} else {
		patient = &store.Patient{
			Name:    sheet.Patient.Name,
			Age:     sheet.Patient.Age,
			Gender:  sheet.Patient.Gender,
			Contact: sheet.Patient.Contact,
		}
		if err := repo.CreatePatient(ctx, patient); err != nil {
			return err
		}
	}
	report.PatientID = patient.ID

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := repo.SaveAssessment(ctx, &store.Assessment{
		ID:           report.ID,
		PatientID:    patient.ID,
		Assessor:     report.Assessor,
		Constitution: report.DominantConstitution,
		State:        report.DominantState,
		CreatedAt:    report.CreatedAt,
		Report:       payload,
	}); err != nil {
		return err
	}
	a.logger.Info("assessment saved", zap.String("id", report.ID), zap.String("patient_id", patient.ID))
	return nil
}
