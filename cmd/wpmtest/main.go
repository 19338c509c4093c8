// Package main provides the CLI entrypoint for wpmtest.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/wpmtest/internal/config"
	"github.com/verte-zerg/wpmtest/internal/generator"
	"github.com/verte-zerg/wpmtest/internal/logging"
	"github.com/verte-zerg/wpmtest/internal/model"
	"github.com/verte-zerg/wpmtest/internal/passage"
	"github.com/verte-zerg/wpmtest/internal/report"
	"github.com/verte-zerg/wpmtest/internal/tui"
)

const defaultLogLevel = "info"

var (
	testDuration int
	testSeed     int64
	logFile      string
	logLevel     string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wpmtest",
		Short:         "Terminal typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTestCmd,
	}

	rootCmd.Flags().IntVar(&testDuration, "duration", 0, "preselected duration in seconds (15, 30 or 60)")
	rootCmd.Flags().Int64Var(&testSeed, "seed", 0, "passage picker seed (0: time-based)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write JSON logs to this file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPassagesCmd())

	return rootCmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "duration", &testDuration, fileCfg.Test.Duration)
	applyInt64Config(cmd, "seed", &testSeed, fileCfg.Test.Seed)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	cfg := model.Config{
		Duration: model.Duration(testDuration),
		Seed:     testSeed,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("wpmtest needs an interactive terminal")
	}

	logger, err := logging.New(logFile, logLevel)
	if err != nil {
		return err
	}
	defer func() {
		// Best-effort flush.
		_ = logger.Sync()
	}()

	gen := generator.New()
	if cfg.Seed != 0 {
		gen = generator.NewSeeded(cfg.Seed)
	}
	catalog := passage.Default()
	logger.Info("starting typing test UI",
		zap.Int("duration_s", int(cfg.Duration)),
		zap.Int("passages", len(catalog)),
	)

	m := tui.NewModel(cfg, catalog, gen, nil, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if res, ok := m.Result(); ok {
		if err := report.RenderResult(cmd.OutOrStdout(), res); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newPassagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passages [query]",
		Short: "List built-in passages, optionally fuzzy-filtered",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPassagesCmd,
	}
}

func runPassagesCmd(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) == 1 {
		query = strings.TrimSpace(args[0])
	}
	entries := passage.Search(passage.Default(), query)
	if err := report.RenderPassages(cmd.OutOrStdout(), entries); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wpmtest configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# duration = 30           # Preselected duration in seconds: 15, 30 or 60 (0: none)
# seed = 0                # Passage picker seed (0: time-based)

[log]
# file = %q
# level = %q
`,
		config.DefaultLogPath(),
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Duration != 0 && !cfg.Duration.Valid() {
		return fmt.Errorf("--duration must be one of 15, 30 or 60")
	}
	return nil
}
