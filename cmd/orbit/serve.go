package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-orbit/internal/platform/tui"
	"github.com/vovakirdan/tui-orbit/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagSSHTickRate int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the orbit SSH server",
	Long: `Start an SSH server that renders the orbit for every connection.

Each SSH connection gets its own render session with its own camera and
controls. Flights are logged per-server (all users share the same log).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.orbit/host_key

Examples:
  orbit serve                           # Listen on :23235 with auto-generated key
  orbit serve --ssh :2222               # Listen on port 2222
  orbit serve --host-key ./my_host_key  # Use specific host key
  orbit serve --shader depth            # Serve the depth shader
  orbit serve --ssh-fps 20              # Lower frame rate for slow links

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagSSHTickRate, "ssh-fps", 30, "Tick rate for remote sessions")
	serveCmd.Flags().StringVar(&flagShader, "shader", "", "Shader program (see 'orbit list')")
	serveCmd.Flags().StringVar(&flagMode, "mode", "", "Initial camera mode: follow or user")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagShader != "" && !registry.Exists(flagShader) {
		fmt.Fprintf(os.Stderr, "Error: unknown shader %q\n", flagShader)
		os.Exit(1)
	}

	logger, closeLog := mustLogger(os.Stderr)
	defer closeLog()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Config = loadConfig(logger)
	cfg.Shader = flagShader
	cfg.Mode = flagMode
	cfg.TickRate = flagSSHTickRate
	cfg.Logger = logger.WithPrefix("orbit-ssh")

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting orbit SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
