package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-orbit/internal/platform/tui"
	"github.com/vovakirdan/tui-orbit/internal/storage"
)

var (
	flagFlightsTUI   bool
	flagFlightsUser  string
	flagFlightsLimit int
	flagFlightsClear string
)

var flightsCmd = &cobra.Command{
	Use:   "flights",
	Short: "Show the flight log",
	Long: `Display recorded flights, newest first. A flight is logged when a
render session ends.

Examples:
  orbit flights
  orbit flights --user ada --limit 5
  orbit flights --tui
  orbit flights --clear depth`,
	Run: runFlights,
}

func init() {
	flightsCmd.Flags().BoolVar(&flagFlightsTUI, "tui", false, "Browse the log in an interactive table")
	flightsCmd.Flags().StringVar(&flagFlightsUser, "user", "", "Only show flights by this user")
	flightsCmd.Flags().IntVar(&flagFlightsLimit, "limit", 10, "Number of flights to show")
	flightsCmd.Flags().StringVar(&flagFlightsClear, "clear", "", "Delete all flights of a shader")
}

func openStore() (*storage.Store, error) {
	return storage.Open(flagDBPath)
}

func runFlights(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening flight log: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagFlightsClear != "" {
		if err := store.ClearFlights(flagFlightsClear); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing flights: %v\n", err)
			return
		}
		fmt.Printf("Cleared %s flights.\n", flagFlightsClear)
		return
	}

	if flagFlightsTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunFlights(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	var flights []storage.Flight
	if flagFlightsUser != "" {
		flights, err = store.UserFlights(flagFlightsUser, flagFlightsLimit)
	} else {
		flights, err = store.RecentFlights(flagFlightsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving flights: %v\n", err)
		return
	}

	fmt.Println("Flight Log")
	fmt.Println()

	if len(flights) == 0 {
		fmt.Println("No flights recorded yet.")
		fmt.Println()
		fmt.Println("Run 'orbit run' and quit with q to log the first flight!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %8s  %9s  %8s  %s\n", "#", "User", "Shader", "Frames", "Sim t", "ms/frame", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %8s  %9s  %8s  %s\n", "-", "----", "------", "------", "-----", "--------", "----")
	for i, f := range flights {
		fmt.Printf("  %-4d  %-10s  %-6s  %8d  %9.0f  %8.2f  %s\n",
			i+1, f.User, f.Shader, f.Frames, f.SimTime, f.AvgFrameMS, f.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.AllShaderStats()
	if err != nil || len(stats) == 0 {
		return
	}
	fmt.Println()
	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		st := stats[id]
		fmt.Printf("%s: %d flights, furthest t %.0f\n", id, st.Flights, st.MaxSimTime)
	}
}
