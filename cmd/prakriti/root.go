package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kakunje/prakriti/internal/assessment"
	"github.com/kakunje/prakriti/internal/config"
	"github.com/kakunje/prakriti/internal/logging"
	"github.com/kakunje/prakriti/internal/rules"
	"github.com/kakunje/prakriti/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

// app carries state shared by subcommands once the root command has loaded
// settings.
type app struct {
	configPath string
	debug      bool
	logFormat  string

	settings *config.Settings
	logger   *zap.Logger
	rules    *rules.Config
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "prakriti",
		Short: "Prakriti - Ayurveda questionnaire scoring and recommendations",
		Long: `Prakriti scores Ayurvedic constitution (Prakriti), current state (Vikriti)
and a short personality inventory, then produces career, relationship and
health recommendations with a plain-language plan.

Answer sheets are YAML or JSON files; use "prakriti collect" to fill one in
interactively and "prakriti evaluate" to turn it into a report bundle.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to prakriti.yaml (default: search upward from the working directory)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: console or json (overrides log_format)")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.init()
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if a.logger != nil {
			a.logger.Sync() //nolint:errcheck
		}
	}

	// Add subcommands
	cmd.AddCommand(newEvaluateCommand(a))
	cmd.AddCommand(newCollectCommand(a))
	cmd.AddCommand(newQuestionsCommand(a))
	cmd.AddCommand(newRulesCommand(a))
	cmd.AddCommand(newHistoryCommand(a))
	cmd.AddCommand(newShowCommand(a))
	cmd.AddCommand(newServeCommand(a))

	return cmd
}

func (a *app) init() error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	settings, err := config.Load(wd, a.configPath)
	if err != nil {
		return err
	}
	a.settings = settings

	level := settings.LogLevel
	if a.debug {
		level = "debug"
	}
	format := settings.LogFormat
	if a.logFormat != "" {
		format = a.logFormat
	}
	logger, err := logging.New(level, format)
	if err != nil {
		return err
	}
	a.logger = logger

	if src := settings.Source(); src != "" {
		logger.Debug("settings loaded", zap.String("file", src))
	}
	return nil
}

// rulesPath resolves the configured rules file against the config file's
// directory. It is empty when no rules file is configured.
func (a *app) rulesPath() string {
	p := a.settings.RulesFile
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if src := a.settings.Source(); src != "" {
		return filepath.Join(filepath.Dir(src), p)
	}
	return p
}

// loadRules returns the configured rules, or the built-in defaults.
func (a *app) loadRules() (*rules.Config, error) {
	if a.rules != nil {
		return a.rules, nil
	}
	cfg := rules.Default()
	if path := a.rulesPath(); path != "" {
		loaded, err := rules.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		a.logger.Debug("rules loaded", zap.String("file", path))
	}
	a.rules = cfg
	return cfg, nil
}

func (a *app) engine() (*assessment.Engine, error) {
	cfg, err := a.loadRules()
	if err != nil {
		return nil, err
	}
	return assessment.NewEngine(cfg, a.logger), nil
}

func (a *app) openStore() (*store.Store, error) {
	s, err := store.Open(a.settings.DatabasePath())
	if err != nil {
		return nil, err
	}
	a.logger.Debug("store opened", zap.String("path", a.settings.DatabasePath()))
	return s, nil
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.ExecuteContext(context.Background())
}
