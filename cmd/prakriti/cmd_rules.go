package main

import (
	"fmt"
	"os"

	"github.com/kakunje/prakriti/internal/rules"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultRulesFile = "rules.yaml"

func newRulesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage the questionnaire and recommendation rules file",
	}
	cmd.AddCommand(newRulesInitCommand())
	cmd.AddCommand(newRulesValidateCommand(a))
	cmd.AddCommand(newRulesShowCommand(a))
	return cmd
}

func newRulesInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the built-in rules to a file for editing",
		Long: `Write the built-in questions, career rules and severity thresholds to a
YAML file (default: rules.yaml). Point rules_file in prakriti.yaml at it to
use the edited copy.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultRulesFile
			if len(args) == 1 {
				path = args[0]
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			if err := rules.Save(path, rules.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rules written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newRulesValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check a rules file against the schema and threshold ordering",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.rulesPath()
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no rules file given and rules_file is not set")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading rules file: %w", err)
			}
			cfg, err := rules.Parse(data)
			if err != nil {
				return &ValidationFailureError{Message: path, Err: err}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid (%d prakriti, %d vikriti, %d psychometric questions)\n",
				path, len(cfg.Questions.Constitution), len(cfg.Questions.State), len(cfg.Questions.Personality))
			return nil
		},
	}
}

func newRulesShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective rules as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadRules()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("encoding rules: %w", err)
			}
			return enc.Close()
		},
	}
}
