package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/PentesterFlow/accessauditor/internal/progress"
	"github.com/PentesterFlow/accessauditor/internal/shutdown"
	"github.com/PentesterFlow/accessauditor/pkg/auditor"
)

var (
	version = "2.0.0"

	// Global flags
	configFile string
	verbose    bool
	debug      bool
	noColor    bool

	// Audit flags
	maxPages  int
	outputDir string
	format    string
	userAgent string
	insecure  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "accessaudit [target]",
		Short: "Smart Access Control Auditor",
		Long: `Smart Access Control Auditor - reconnaissance for access control testing.

Crawls a target, probes well-known paths, sorts discovered parameters into
risk categories and writes a report with manual test payloads.`,
		Args:          cobra.ExactArgs(1),
		Version:       version,
		RunE:          runAudit,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("accessaudit %s\n", version)
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Long:  "Write a default configuration file (YAML, or JSON for a .json path). Defaults to " + auditor.DefaultConfigPath(),
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file (default: "+auditor.DefaultConfigPath()+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug mode")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Audit flags
	rootCmd.Flags().IntVarP(&maxPages, "max-pages", "m", 30, "Maximum pages to crawl")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "reports", "Directory for reports")
	rootCmd.Flags().StringVarP(&format, "format", "f", auditor.FormatTXT, "Report format (txt, json)")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", "", "User-Agent header (default: browser-like)")
	rootCmd.Flags().BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)

	os.Exit(exitStatus(os.Stderr, rootCmd.Execute()))
}

// reportedError is an error the display has already shown.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// exitStatus prints err unless it was already shown and returns the
// process exit status.
func exitStatus(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var reported *reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return 1
}

func runAudit(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	config.Target = args[0]

	display := progress.New(os.Stdout, progress.Config{
		NoColor: config.NoColor,
		Spinner: isatty.IsTerminal(os.Stdout.Fd()) && !config.Verbose && !config.Debug,
	})
	display.Banner()

	a, err := auditor.New(
		auditor.WithConfig(config),
		auditor.WithDisplay(display),
	)
	if err != nil {
		return fmt.Errorf("failed to create auditor: %w", err)
	}

	// Setup signal handling
	handler := shutdown.New(context.Background(), shutdown.DefaultConfig())
	defer handler.Stop()

	if _, err := a.Run(handler.Context()); err != nil {
		if handler.Interrupted() || shutdown.IsInterrupt(err) {
			display.Interrupted()
			return nil
		}
		display.Error(err)
		return &reportedError{err: err}
	}

	return nil
}

// loadConfig reads the config file, if any, and applies command-line flags
// on top of it. Flags take precedence.
func loadConfig(cmd *cobra.Command) (*auditor.Config, error) {
	config := auditor.DefaultConfig()

	path := configFile
	if path == "" {
		if _, err := os.Stat(auditor.DefaultConfigPath()); err == nil {
			path = auditor.DefaultConfigPath()
		}
	}
	if path != "" {
		fileConfig, err := auditor.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		config = fileConfig
	}

	flags := cmd.Flags()
	if flags.Changed("max-pages") {
		config.MaxPages = maxPages
	}
	if flags.Changed("output-dir") {
		config.OutputDir = outputDir
	}
	if flags.Changed("format") {
		config.Format = format
	}
	if flags.Changed("user-agent") {
		config.UserAgent = userAgent
	}
	if flags.Changed("insecure") {
		config.InsecureSkipVerify = insecure
	}
	if flags.Changed("verbose") {
		config.Verbose = verbose
	}
	if flags.Changed("debug") {
		config.Debug = debug
	}
	if flags.Changed("no-color") {
		config.NoColor = noColor
	}

	return config, nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := auditor.DefaultConfigPath()
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	if err := auditor.DefaultConfig().SaveToFile(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Configuration written to %s\n", path)
	return nil
}
