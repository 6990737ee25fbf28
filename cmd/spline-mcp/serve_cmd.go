package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Tarif-dev/spline-mcp-server/internal/config"
	"github.com/Tarif-dev/spline-mcp-server/internal/core"
	"github.com/Tarif-dev/spline-mcp-server/internal/server"
)

// newServeCmd creates the serve command
func newServeCmd() *cobra.Command {
	var (
		configPath string
		useStdio   bool
		prettyLog  bool
		portFlag   int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Spline MCP gateway",
		Long: `Start the Spline MCP gateway. This is the default command when no subcommand
is specified.

The server can run in HTTP mode (default port 8080) or stdio mode for MCP clients.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, useStdio, prettyLog, cmd.Flags().Changed("pretty"), portFlag)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file")
	cmd.Flags().IntVar(&portFlag, "port", 0, "Port to listen on (ignored if stdio is used)")
	cmd.Flags().BoolVar(&useStdio, "stdio", false, "Use stdio instead of HTTP")
	cmd.Flags().BoolVar(&prettyLog, "pretty", false, "Use pretty-printed logs instead of JSON")

	return cmd
}

// resolvePretty picks the log encoding: the CLI flag wins when set, then the
// config file, then terminal detection.
func resolvePretty(cfg *config.Config, prettyFlag, flagSet bool) bool {
	if flagSet {
		return prettyFlag
	}
	if cfg.LogFormat != "" {
		return cfg.LogFormat == config.LogFormatPretty
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// runServe runs the server with the given flags
func runServe(configPath string, useStdio, prettyLog, prettySet bool, portFlag int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return err
	}

	if err := core.Init(resolvePretty(cfg, prettyLog, prettySet)); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return err
	}
	defer zap.L().Sync() //nolint:errcheck // Sync errors on stdout/stderr are not critical

	if portFlag != 0 {
		if portFlag < 0 || portFlag > 65535 {
			return fmt.Errorf("port must be between 0 and 65535, got %d", portFlag)
		}
		cfg.Port = portFlag
	}

	if cfg.APIToken == "" {
		zap.L().Warn("No API token configured, backend calls will be unauthenticated",
			zap.String("hint", "set SPLINE_API_TOKEN or api_token in the config file"))
	}

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if useStdio {
		err = srv.ServeStdio(ctx)
	} else {
		err = srv.Serve(ctx, fmt.Sprintf(":%d", cfg.Port))
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		zap.L().Error("Server exited with error", zap.Error(err))
		return err
	}
	return nil
}
