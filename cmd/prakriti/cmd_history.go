package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kakunje/prakriti/internal/render"
	"github.com/kakunje/prakriti/internal/store"
	"github.com/spf13/cobra"
)

const historyTimeLayout = "2006-01-02 15:04"

func newHistoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history [patient-id]",
		Short: "List saved patients, or one patient's assessments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openStore()
			if err != nil {
				return err
			}
			defer repo.Close() //nolint:errcheck

			var b strings.Builder
			if len(args) == 0 {
				if err := writePatients(cmd, repo, &b); err != nil {
					return err
				}
			} else if err := writePatientHistory(cmd, repo, args[0], &b); err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}
}

func writePatients(cmd *cobra.Command, repo store.Repository, b *strings.Builder) error {
	patients, err := repo.ListPatients(cmd.Context())
	if err != nil {
		return err
	}
	if len(patients) == 0 {
		b.WriteString("No saved patients. Use \"prakriti evaluate --save\" to store one.\n")
		return nil
	}
	rows := [][]string{{"ID", "Name", "Age", "Gender", "Created"}}
	for _, p := range patients {
		age := ""
		if p.Age > 0 {
			age = strconv.Itoa(p.Age)
		}
		rows = append(rows, []string{p.ID, p.Name, age, p.Gender, p.CreatedAt.Local().Format(historyTimeLayout)})
	}
	render.WriteTable(b, rows)
	return nil
}

func writePatientHistory(cmd *cobra.Command, repo store.Repository, patientID string, b *strings.Builder) error {
	patient, err := repo.GetPatient(cmd.Context(), patientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("patient %s: %w", patientID, err)
		}
		return err
	}
	list, err := repo.ListAssessments(cmd.Context(), patient.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(b, "%s (%s)\n\n", patient.Name, patient.ID)
	if len(list) == 0 {
		b.WriteString("No assessments.\n")
		return nil
	}
	rows := [][]string{{"Assessment", "Date", "Prakriti", "Vikriti", "Assessor"}}
	for _, as := range list {
		rows = append(rows, []string{as.ID, as.CreatedAt.Local().Format(historyTimeLayout), as.Constitution.String(), as.State.String(), as.Assessor})
	}
	render.WriteTable(b, rows)
	return nil
}
