package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/glyphball/internal/platform/tui"
)

var (
	flagSSHAddr string
	flagHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the glyphball SSH server",
	Long: `Start an SSH server that lets users connect and watch or play.

Each SSH connection gets its own session with a widget picker menu and
its own widget instance. Session summaries go to the shared database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.glyphball/host_key

Examples:
  glyphball serve                           # Listen on the configured address
  glyphball serve --ssh :2222               # Listen on port 2222
  glyphball serve --host-key ./my_host_key  # Use specific host key
  glyphball serve --no-db                   # Do not record sessions

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     appConfig.Server.Address,
		HostKeyPath: appConfig.Server.HostKey,
		IdleTimeout: appConfig.Server.IdleTimeout,
		TickRate:    appConfig.Runtime.TickRate,
		ShowHelp:    appConfig.Render.ShowHelp,
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if appConfig.Storage.Enabled {
		cfg.DBPath = appConfig.Storage.Path
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting glyphball SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
