package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/maskedit/internal/config"
	"github.com/muurk/maskedit/internal/discovery"
	"github.com/muurk/maskedit/internal/server"
)

// Server command flags
var (
	serveHost     string
	servePort     int
	servePath     string
	serveNoMDNS   bool
	serveInstance string
	serveWatch    bool
	scanTimeout   int
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scanCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen address (empty = all interfaces)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default: preferences server_port)")
	serveCmd.Flags().StringVar(&servePath, "path", discovery.DefaultPath, "WebSocket endpoint path")
	serveCmd.Flags().BoolVar(&serveNoMDNS, "no-mdns", false, "Do not advertise the server over mDNS")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload the profiles file when it changes")
	serveCmd.Flags().StringVar(&serveInstance, "name", "", "mDNS instance name (default: maskedit on <hostname>)")

	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Scan timeout in seconds (default: preferences discover_timeout)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve field sessions over WebSocket",
	Long: `Start a WebSocket server. Every connection gets its own field session,
opened from a profile or a raw mask and driven with JSON commands.

The server is advertised over mDNS as a _maskedit._tcp service unless
--no-mdns is given. With --watch, edits to the profiles file apply to
sessions opened afterwards. It stops on SIGINT or SIGTERM.`,
	Example: `  # Serve on the configured port and advertise it
  maskedit serve

  # Local only, debug logging
  maskedit serve --host 127.0.0.1 --port 9000 --no-mdns --log-level debug`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	port := servePort
	if port == 0 {
		port = reg.Preferences.ServerPort
	}

	watchPath := ""
	if serveWatch {
		watchPath = configPath
		if watchPath == "" {
			if watchPath, err = config.GetConfigPath(); err != nil {
				return err
			}
		}
	}

	srv, err := server.New(&server.Config{
		Host:      serveHost,
		Port:      port,
		Path:      servePath,
		Advertise: !serveNoMDNS,
		Instance:  serveInstance,
		Registry:  reg,
		WatchPath: watchPath,
	})
	if err != nil {
		return err
	}
	if err := srv.Listen(); err != nil {
		return err
	}
	cmd.Printf("Serving field sessions on ws://%s%s\n", srv.Addr(), servePath)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find maskedit servers on the network",
	Long: `Browse for maskedit servers advertised over mDNS and list them with
their WebSocket URLs.`,
	Example: `  # Scan with the configured timeout
  maskedit scan

  # Quick 2-second scan
  maskedit scan --timeout 2`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	timeout := scanTimeout
	if timeout == 0 {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		timeout = reg.Preferences.DiscoverTimeout
	}

	cmd.Printf("Scanning for maskedit servers (timeout: %ds)...\n\n", timeout)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	servers, err := discovery.Scan(ctx, time.Duration(timeout)*time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(servers) == 0 {
		cmd.Println("No servers found.")
		cmd.Println("\nTroubleshooting:")
		cmd.Println("  - Ensure 'maskedit serve' is running without --no-mdns")
		cmd.Println("  - Check that multicast (UDP 5353) is allowed by the firewall")
		cmd.Println("  - Try increasing --timeout for slower networks")
		return nil
	}

	cmd.Printf("Found %d server(s):\n\n", len(servers))
	for i, s := range servers {
		cmd.Printf("%d. %s\n", i+1, s.Instance)
		cmd.Printf("   URL:      %s\n", s.WebSocketURL())
		if s.Version != "" {
			cmd.Printf("   Version:  %s\n", s.Version)
		}
		if p := s.GetMetadata("profiles"); p != "" {
			cmd.Printf("   Profiles: %s\n", p)
		}
		cmd.Println()
	}
	return nil
}
