package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kakunje/prakriti/internal/assessment"
	"github.com/kakunje/prakriti/internal/render"
	"github.com/kakunje/prakriti/internal/store"
	"github.com/spf13/cobra"
)

func newShowCommand(a *app) *cobra.Command {
	var format string
	var outFile string

	cmd := &cobra.Command{
		Use:   "show <assessment-id>",
		Short: "Print a saved assessment",
		Long: `Print a saved assessment in any report format. Binary formats such as png
need --out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			if f == render.FormatPNG && outFile == "" {
				return fmt.Errorf("format %s needs --out", f)
			}

			repo, err := a.openStore()
			if err != nil {
				return err
			}
			defer repo.Close() //nolint:errcheck

			report, err := loadReport(cmd, repo, args[0])
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outFile != "" {
				file, err := os.Create(outFile)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer file.Close() //nolint:errcheck
				w = file
			}
			return render.Render(w, f, report, render.Options{FollowupDays: a.settings.FollowupDays})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatText), "Output format: text, md, html, plan, ics, png, json")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}

func loadReport(cmd *cobra.Command, repo store.Repository, id string) (*assessment.Report, error) {
	stored, err := repo.GetAssessment(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("assessment %s: %w", id, err)
		}
		return nil, err
	}
	var report assessment.Report
	if err := json.Unmarshal(stored.Report, &report); err != nil {
		return nil, fmt.Errorf("decoding assessment %s: %w", id, err)
	}
	return &report, nil
}
