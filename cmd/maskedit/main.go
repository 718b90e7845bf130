// Maskedit is a command-line host for the masked-input engine.
//
// It parses masks, replays key sequences against a field, runs an
// interactive editor, and serves field sessions over WebSocket.
//
// Usage:
//
//	maskedit [command] [flags]
//
// Running without arguments opens the interactive editor.
// See 'maskedit --help' for available commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/maskedit/internal/config"
	"github.com/muurk/maskedit/internal/logging"
	"github.com/muurk/maskedit/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	logLevel   string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "maskedit",
	Short: "Masked input field engine",
	Long: `A host for masked input fields such as times, dates, IP addresses and amounts.

Masks are made of wildcard characters (0 9 # L ? A a C & H h), literals,
split characters and case shift markers (> < |). Profiles bundle a mask
with per-token ranges, increments and custom values.

If no command is specified, the interactive editor will launch automatically.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logLevel != "" {
			return logging.Initialize(logLevel)
		}
		return logging.InitializeFromEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd, args)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides "+logging.LogLevelEnvVar)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Profiles file (default: user config dir)")

	rootCmd.AddCommand(versionCmd)
}

// loadRegistry reads the profiles file named by --config, or the global one.
func loadRegistry() (*config.Registry, error) {
	if configPath != "" {
		return config.LoadRegistryFrom(configPath)
	}
	return config.LoadRegistry()
}

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionJSON {
			data, err := json.MarshalIndent(version.Get(), "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(data))
			return nil
		}
		cmd.Printf("maskedit %s (commit: %s)\n", version.Version, version.Commit)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version information as JSON")
}
