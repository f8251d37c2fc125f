package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-transform-mcp/internal/config"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "image-mcp",
	Short: "MCP server and command line tool for image transformations",
	Long: `image-mcp keeps a store of named images and transforms them: flips,
component extraction, color matrices, convolution filters, mosaics and edge
detection.

Run without a subcommand to serve MCP over stdin/stdout.

Environment variables:
  IMAGE_MCP_CONFIG=<path>      TOML configuration file
  IMAGE_MCP_LOG_LEVEL=debug    Enable debug logging`,
	SilenceUsage: true,
	RunE:         runServe,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML configuration file (default $IMAGE_MCP_CONFIG)")
}

// loadConfig reads the configuration named by --config or IMAGE_MCP_CONFIG.
func loadConfig() (*config.Config, error) {
	return config.Load(config.Path(configPath))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
