package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aretw0/enigma/internal/cli"
	"github.com/aretw0/enigma/internal/logging"
	"github.com/aretw0/enigma/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the machine as an MCP Server, so AI agents can encode text, keep sessions
and trace letters as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		opts := globalOptions(cmd)

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		logger := logging.New(logging.Level(opts.Debug))
		slog.SetDefault(logger)
		log.SetOutput(os.Stderr)

		cfg, err := cli.LoadConfig(opts.ConfigPath)
		if err != nil {
			return err
		}
		p, err := cli.OpenPersistence(opts, logger)
		if err != nil {
			return err
		}
		defer p.Close()

		srv := mcp.NewServer(cli.NewManager(cfg, p, logger))

		switch transport {
		case "stdio":
			slog.Info("Starting Enigma MCP Server (Stdio)...")
			return srv.ServeStdio()
		case "sse":
			slog.Info("Starting Enigma MCP Server (SSE)", "port", port)
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			slog.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
