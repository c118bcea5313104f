package main

import (
	"fmt"
	"io"
	"strings"

	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/kakunje/prakriti/internal/render"
	"github.com/spf13/cobra"
)

var questionBanks = []string{"prakriti", "vikriti", "psychometric"}

func newQuestionsCommand(a *app) *cobra.Command {
	var bank string

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List the questionnaire",
		Long: `List the questions of the active rules. Prakriti and Vikriti questions are
answered on a 1-5 scale, psychometric items on a 1-7 scale.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadRules()
			if err != nil {
				return err
			}
			return writeQuestions(cmd.OutOrStdout(), &cfg.Questions, bank)
		},
	}

	cmd.Flags().StringVar(&bank, "bank", "", "Only list one bank: "+strings.Join(questionBanks, ", "))
	return cmd
}

func writeQuestions(w io.Writer, cat *q.Catalog, bank string) error {
	switch bank {
	case "", "prakriti", "vikriti", "psychometric":
	default:
		return fmt.Errorf("unknown bank %q (want %s)", bank, strings.Join(questionBanks, ", "))
	}

	var b strings.Builder
	if bank == "" || bank == "prakriti" {
		b.WriteString("Prakriti (1-5)\n")
		render.WriteTable(&b, questionRows(cat.Constitution))
		b.WriteString("\n")
	}
	if bank == "" || bank == "vikriti" {
		b.WriteString("Vikriti (1-5)\n")
		render.WriteTable(&b, questionRows(cat.State))
		b.WriteString("\n")
	}
	if bank == "" || bank == "psychometric" {
		b.WriteString("Psychometric (1-7)\n")
		rows := [][]string{{"ID", "Trait", "Question"}}
		for _, it := range cat.Personality {
			trait := it.Trait.String()
			if it.Reversed {
				trait += " (R)"
			}
			rows = append(rows, []string{it.ID, trait, it.Prompt})
		}
		render.WriteTable(&b, rows)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func questionRows(questions []q.Question) [][]string {
	rows := [][]string{{"ID", "Weights", "Question"}}
	for _, question := range questions {
		rows = append(rows, []string{question.ID, formatWeights(question.Weights), question.Prompt})
	}
	return rows
}

func formatWeights(weights map[q.Category]float64) string {
	parts := make([]string, 0, len(weights))
	for _, c := range q.Categories {
		if w, ok := weights[c]; ok && w != 0 {
			parts = append(parts, fmt.Sprintf("%s %.1f", c, w))
		}
	}
	return strings.Join(parts, ", ")
}
