package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"globalint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "globalint",
	Short: "Locale-sensitivity analyzer for C# code",
	Long: `globalint finds C# calls whose behavior silently depends on the current culture:
missing IFormatProvider or StringComparison arguments, UI cultures used for
formatting and invariant-culture string comparisons.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupCommand,
}

// exitCode carries a non-zero status that is not an error message,
// e.g. error-severity diagnostics.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit status %d", int(c)) }

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(checkModelCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics to show (0 = from config)")
	pf.String("log-level", "off", "operational log level (off|debug|info|warn|error)")
	pf.Bool("timings", false, "show timing information")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat trace events at this interval (0 = off)")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")
}

// main runs the root command. Command failures exit with status 1, as do
// findings of error severity.
func main() {
	err := rootCmd.Execute()
	runCleanups()
	var code exitCode
	switch {
	case errors.As(err, &code):
		os.Exit(int(code))
	case err != nil:
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
