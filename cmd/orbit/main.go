// orbit renders a rocket circling a planet in the terminal.
//
// Usage:
//
//	orbit list               - List available shader programs
//	orbit run                - Render in the current terminal
//	orbit simulate --ticks N - Run N frames headless and print the final state
//	orbit serve              - Start SSH server for remote viewing
//	orbit flights            - Show the flight log
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--config <path>     - Load a custom orbit.yaml
//	--db <path>         - Set database path (default: ~/.orbit/flights.db)
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-orbit/internal/config"

	// Import shader programs to register them
	_ "github.com/vovakirdan/tui-orbit/internal/shaders/depth"
	_ "github.com/vovakirdan/tui-orbit/internal/shaders/flat"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "orbit",
	Short: "TUI Orbit - A rocket orbiting a planet, rendered in your terminal",
	Long: `TUI Orbit renders a finned rocket on a circular orbit around a planet
using a software shader pipeline that draws into terminal cells.

Available commands:
  list      - Show all shader programs
  run       - Render in this terminal
  simulate  - Advance the orbit headless
  serve     - Start SSH server for remote viewing
  flights   - View the flight log

Examples:
  orbit list
  orbit run --shader depth
  orbit simulate --ticks 1000
  orbit serve --ssh :2222
  orbit flights --tui`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom orbit.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.orbit/flights.db", "Path to flight log database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(flightsCmd)
}

// newLogger builds the process logger. Without --log-file, logs go to
// fallback; the full screen view passes io.Discard so they do not tear
// the frame. The returned func closes the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "orbit",
	})
	return logger, closeFn, nil
}

// loadConfig loads orbit.yaml, reporting where it came from.
func loadConfig(logger *log.Logger) config.Config {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded", "source", source)
	return cfg
}

// mustLogger is newLogger for command entry points.
func mustLogger(fallback io.Writer) (*log.Logger, func()) {
	logger, closeFn, err := newLogger(fallback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, closeFn
}
