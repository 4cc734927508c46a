package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"a11ylens/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "a11ylens",
	Short: "Accessibility overlay diagnostics for captured pages",
	Long: `a11ylens inspects document snapshots for accessibility problems
(missing alternative text, broken labels, keyboard order, access keys) and
renders the findings as a transparent overlay image.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: beforeCommand,
	PersistentPostRun: afterCommand,
}

// exitError carries a process exit status without a message; scan uses it
// when findings cross the --fail-on threshold.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// main registers subcommands and persistent flags and executes the root command.
// Errors are printed once here; the process exits with status 1, or the code
// carried by an exitError.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	addPersistentFlags(rootCmd)

	err := rootCmd.Execute()
	if err != nil {
		dumpTraceRing(os.Stderr)
	}
	afterCommand(nil, nil)
	if err == nil {
		return
	}
	var exit exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintf(os.Stderr, "a11ylens: %v\n", err)
	os.Exit(1)
}

// addPersistentFlags registers the global flags.
func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().String("config", "", "path to a11ylens.toml (default: search from the working directory up)")
	cmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().Bool("timings", false, "show phase timings")
	cmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	cmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|cycle|rule|debug)")
	cmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	cmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	cmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept for ring dumps")
	cmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	cmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	cmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	cmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime execution trace to this file")
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

var traceCleanup, profileCleanup func()

func beforeCommand(cmd *cobra.Command, _ []string) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	// version and rules print through fatih/color's global switch
	switch colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}
	if profileCleanup, err = setupProfiling(cmd); err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	traceCleanup = cleanup
	return nil
}

func afterCommand(*cobra.Command, []string) {
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
	if profileCleanup != nil {
		profileCleanup()
		profileCleanup = nil
	}
}
