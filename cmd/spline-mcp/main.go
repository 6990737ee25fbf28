package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	// build time date
	buildDate = "unknown"
)

func main() {
	var (
		configPath string
		useStdio   bool
		prettyLog  bool
		portFlag   int
	)

	rootCmd := &cobra.Command{
		Use:   "spline-mcp",
		Short: "Spline MCP gateway server",
		Long: `spline-mcp exposes the Spline design-tool REST API as MCP tools behind a
command dispatch gateway with per-operation rate limiting and argument validation.`,
		Version: fmt.Sprintf("%s (built: %s)", version, buildDate),
		// Default to serve command when no subcommand is provided
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, useStdio, prettyLog, cmd.Flags().Changed("pretty"), portFlag)
		},
	}

	// Serve flags are also available on the root command so plain
	// "spline-mcp" starts the server.
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.Flags().IntVar(&portFlag, "port", 0, "Port to listen on (ignored if stdio is used)")
	rootCmd.Flags().BoolVar(&useStdio, "stdio", false, "Use stdio instead of HTTP")
	rootCmd.Flags().BoolVar(&prettyLog, "pretty", false, "Use pretty-printed logs instead of JSON")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newToolsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
