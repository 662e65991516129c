package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/brizzai/mcp-agent/internal/agent"
	"github.com/brizzai/mcp-agent/internal/app"
	"github.com/brizzai/mcp-agent/internal/config"
	"github.com/brizzai/mcp-agent/internal/export"
	"github.com/brizzai/mcp-agent/internal/logger"
	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/brizzai/mcp-agent/internal/report"
	"github.com/brizzai/mcp-agent/internal/server"
	"github.com/brizzai/mcp-agent/internal/tasklist"
	"github.com/brizzai/mcp-agent/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(expandMultiValueArgs(os.Args[1:]))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.Println(err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The root command prints the aggregated
// report, serve and browse reuse the same sources without printing it.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mcp-agent",
		Short: "Aggregate rules, MCP descriptors and task lists",
		Long: `MCP Agent loads .sexp/.lisp rule files from directories, fetches MCP service
descriptors over HTTP and combines task list files, then prints everything.

-r/--rag, -m/--mcp and -t/--tasklist take one or more values, either repeated
(-t a.md -t b.md) or listed after a single flag (-t a.md b.md). Values are used
as given, commas included. Subcommands go before the flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReport,
	}

	// Place version check in PreRun to ensure flags are parsed first
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}

	config.InitFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the aggregated bundle as MCP tools",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "browse",
			Short: "Browse the aggregated bundle in a terminal UI",
			RunE:  runBrowse,
		},
	)
	return rootCmd
}

// recoverPanic prints the panic with its stack and exits with code 2
func recoverPanic() {
	if r := recover(); r != nil {
		pterm.Error.Printf("\nCaught panic: %v\n", r)
		pterm.Error.Printf("%s\n", debug.Stack())
		os.Exit(2)
	}
}

// setup loads the configuration and initializes the global logger
func setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := logger.InitLogger(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// runPipeline runs every stage, streaming them to reporter
func runPipeline(ctx context.Context, cfg *config.Config, reporter agent.Reporter) (*models.Bundle, error) {
	pipeline, err := app.NewPipeline(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}
	return pipeline.Run(ctx, cfg.Sources, reporter)
}

func runReport(cmd *cobra.Command, _ []string) error {
	defer recoverPanic()

	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	out := cmd.OutOrStdout()
	bundle, err := runPipeline(cmd.Context(), cfg, report.NewConsole(out))
	if errors.Is(err, tasklist.ErrNoContent) {
		logger.Info("Run finished without tasklist content", zap.Error(err))
		return nil
	}
	if err != nil {
		return err
	}

	if cfg.Export.Path != "" {
		path, err := export.ExportBundleToYamlFile(bundle, cfg.Export.Path)
		if err != nil {
			return err
		}
		pterm.Success.WithWriter(out).Printfln("Bundle exported to %s", path)
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	defer recoverPanic()

	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	bundle, err := runPipeline(cmd.Context(), cfg, nil)
	if err != nil && !errors.Is(err, tasklist.ErrNoContent) {
		return err
	}
	if err != nil {
		logger.Warn("Serving without tasklist content", zap.Error(err))
	}

	srv, err := server.NewServer(&cfg.Server, bundle)
	if err != nil {
		return err
	}
	if err := srv.Start(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	defer recoverPanic()

	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	bundle, err := runPipeline(cmd.Context(), cfg, nil)
	if err != nil && !errors.Is(err, tasklist.ErrNoContent) {
		return err
	}

	p := tea.NewProgram(tui.NewAppModel(bundle), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	// Only report the export when the user completed one
	if finalModel, ok := m.(tui.AppModel); ok && finalModel.Exported() {
		pterm.Info.Printfln("Bundle exported to %s", pterm.LightGreen(finalModel.ExportedPath()))
	}
	return nil
}
