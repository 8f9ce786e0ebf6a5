package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the patrol SSH server",
	Long: `Start an SSH server that lets users browse the scenario library,
watch patrols and read the run history.

Each SSH connection gets its own session with a scenario picker.
Run history is shared by everyone connected to the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.patrol/host_key

Examples:
  patrol serve                           # Listen on :23235 with auto-generated key
  patrol serve --ssh :2222               # Listen on port 2222
  patrol serve --host-key ./my_host_key  # Use specific host key
  patrol serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     appCfg.Server.Address,
		HostKeyPath: appCfg.Server.HostKey,
		DBPath:      appCfg.Storage.Path,
		ScenarioDir: appCfg.Scenarios.Dir,
		IdleTimeout: appCfg.Server.IdleTimeout,
		TickRate:    appCfg.Viewer.TickRate,
		ShowLoops:   appCfg.Viewer.ShowLoops,
		Strategy:    appCfg.Search.Strategy,
		Workers:     appCfg.Search.Workers,
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("patrol-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	port := "23235"
	if _, p, err := net.SplitHostPort(cfg.Address); err == nil && p != "" {
		port = p
	}

	fmt.Printf("Starting patrol SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
