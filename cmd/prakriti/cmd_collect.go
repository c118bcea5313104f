package main

import (
	"fmt"
	"os"

	"github.com/kakunje/prakriti/internal/intake"
	"github.com/kakunje/prakriti/internal/wizard"
	"github.com/spf13/cobra"
)

const defaultSheetFile = "answers.yaml"

func newCollectCommand(a *app) *cobra.Command {
	var name string
	var force bool

	cmd := &cobra.Command{
		Use:   "collect [output.yaml]",
		Short: "Fill in an answer sheet interactively",
		Long: `Walk through the patient details and every question, then write the
answers to a YAML sheet (default: answers.yaml) ready for "prakriti evaluate".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultSheetFile
			if len(args) == 1 {
				path = args[0]
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			cfg, err := a.loadRules()
			if err != nil {
				return err
			}
			sheet, err := wizard.Run(cmd.InOrStdin(), cmd.OutOrStdout(), &cfg.Questions, name)
			if err != nil {
				return err
			}
			if err := intake.Save(path, sheet); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nAnswer sheet written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Pre-fill the patient name")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing sheet")

	return cmd
}
