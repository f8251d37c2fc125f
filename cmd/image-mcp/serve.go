package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-transform-mcp/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP over stdin/stdout (the default)",
	Long: `Serve the image tools over the MCP protocol. Requests are read from stdin
and responses written to stdout, so log output goes to stderr or the
configured log file. Configure it in your MCP client (e.g., Claude Desktop).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	closer := cfg.Logging.SetLogger()
	defer closer.Close()

	if cfg.Logging.Debug() {
		log.Printf("Image MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Printf("Server error: %v", err)
		return err
	}
	return nil
}
