package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-orbit/internal/config"
	"github.com/vovakirdan/tui-orbit/internal/core"
	"github.com/vovakirdan/tui-orbit/internal/platform/tui"
	"github.com/vovakirdan/tui-orbit/internal/registry"
	"github.com/vovakirdan/tui-orbit/internal/storage"
)

var (
	flagShader string
	flagMode   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Render the orbit in this terminal",
	Long: `Render the rocket orbit full screen in the current terminal.

Controls:
  Up/Down, k/j    - Thrust
  Left/Right, h/l - Fin count
  [ / ]           - Planet tessellation
  c / Tab         - Toggle follow / user camera
  Mouse drag      - Orbit the camera (user mode)
  Wheel, z/x      - Zoom (user mode)
  Ctrl+S          - Screenshot to ~/.orbit/screenshots
  ?               - Help
  Q/Ctrl+C        - Quit

Examples:
  orbit run
  orbit run --shader depth
  orbit run --mode user
  orbit run --config ./my-orbit.yaml --log-file orbit.log`,
	Run: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagShader, "shader", "", "Shader program (see 'orbit list')")
	runCmd.Flags().StringVar(&flagMode, "mode", "", "Initial camera mode: follow or user")
}

func runRun(cmd *cobra.Command, args []string) {
	if flagShader != "" && !registry.Exists(flagShader) {
		fmt.Fprintf(os.Stderr, "Error: unknown shader %q\n", flagShader)
		fmt.Fprintln(os.Stderr, "Run 'orbit list' to see available shaders.")
		os.Exit(1)
	}

	// The frame owns the terminal; logs only go to --log-file
	logger, closeLog := mustLogger(io.Discard)
	defer closeLog()
	cfg := loadConfig(logger)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	screenshots := ""
	if dir, err := config.DataDir(); err == nil {
		screenshots = filepath.Join(dir, "screenshots")
	} else {
		logger.Warn("screenshots disabled", "error", err)
	}

	opts := tui.Options{
		Config: cfg,
		Shader: flagShader,
		Mode:   flagMode,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
		},
		User:          localUser(),
		ScreenshotDir: screenshots,
		Logger:        logger,
	}

	// Open the flight log
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open flight log: %v\n", err)
		// Continue without storage - rendering still works
		store = nil
	} else {
		opts.Store = store
	}

	runErr := tui.Run(opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func localUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
