package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-orbit/internal/scheduler"
	"github.com/vovakirdan/tui-orbit/internal/session"
)

var (
	flagTicks     int
	flagWidth     int
	flagHeight    int
	flagFrameDump bool
	flagSave      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the render loop headless",
	Long: `Run the full render loop without a terminal for a fixed number of
frames, then print the simulation time, the rocket's orbital angle and the
camera position. Each frame advances time by the current thrust.

Examples:
  orbit simulate --ticks 1000
  orbit simulate --ticks 500 --shader depth --frame
  orbit simulate --ticks 2000 --save`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 1000, "Number of frames to render")
	simulateCmd.Flags().IntVar(&flagWidth, "width", 80, "Surface width in cells")
	simulateCmd.Flags().IntVar(&flagHeight, "height", 24, "Surface height in cells")
	simulateCmd.Flags().StringVar(&flagShader, "shader", "", "Shader program (see 'orbit list')")
	simulateCmd.Flags().StringVar(&flagMode, "mode", "", "Camera mode: follow or user")
	simulateCmd.Flags().BoolVar(&flagFrameDump, "frame", false, "Print the final frame")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the flight log")
}

func runSimulate(cmd *cobra.Command, args []string) {
	if flagTicks <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --ticks must be positive")
		os.Exit(1)
	}

	logger, closeLog := mustLogger(os.Stderr)
	defer closeLog()
	cfg := loadConfig(logger)

	host := scheduler.NewChannelHost(flagTicks)
	sess, err := session.New(session.Options{
		Config:    cfg,
		Shader:    flagShader,
		Mode:      flagMode,
		Width:     flagWidth,
		Height:    flagHeight,
		Refresher: host,
		User:      localUser(),
		Logger:    logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := sess.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := sess.Loop.Run(ctx, host.Events()); err != nil {
		logger.Warn("simulation interrupted", "error", err)
	}

	eye := sess.Camera.Eye()
	center := sess.Camera.Center()
	snap := sess.Meter.Snapshot()

	if flagFrameDump {
		fmt.Println(sess.Renderer.Framebuffer().String())
		fmt.Println()
	}
	fmt.Printf("Shader:   %s\n", sess.Shader)
	fmt.Printf("Frames:   %d\n", sess.Scheduler.Frames())
	fmt.Printf("Time:     %.2f\n", sess.Scheduler.Time())
	fmt.Printf("Angle:    %.2f°\n", sess.RocketAngle())
	fmt.Printf("Eye:      (%.2f, %.2f, %.2f)\n", eye[0], eye[1], eye[2])
	fmt.Printf("Center:   (%.2f, %.2f, %.2f)\n", center[0], center[1], center[2])
	fmt.Printf("Frame:    %.3f ms avg\n", float64(snap.Average.Microseconds())/1000)

	if flagSave {
		saveSimulation(sess)
	}
}

func saveSimulation(sess *session.Session) {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening flight log: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	id, err := store.SaveFlight(sess.Flight())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving flight: %v\n", err)
		return
	}
	fmt.Printf("Saved as flight #%d\n", id)
}
