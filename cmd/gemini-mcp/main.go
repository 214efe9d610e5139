// Command gemini-mcp exposes the Gemini CLI as an MCP stdio server.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdxxxx/gemini-mcp/internal/config"
	"github.com/pdxxxx/gemini-mcp/mcp"
)

const version = "0.2.0"

var (
	configPath string
	cliPath    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gemini-mcp",
	Short: "MCP server wrapping the Gemini CLI",
	Long: `gemini-mcp speaks the Model Context Protocol on stdin/stdout and
exposes a single "gemini" tool. Each call spawns the Gemini CLI in the
requested workspace, streams its output, and returns the assistant text
plus a session id for conversation continuity.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&cliPath, "cli-path", "", "Gemini CLI binary name or path (default: gemini)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cliPath != "" {
		cfg.CLIPath = cliPath
	}

	logger := newLogger(cfg)
	logger.Info("starting gemini MCP server", "version", version, "cli", cfg.CLIPath)

	registry := mcp.NewToolRegistry()
	mcp.AddTool(registry, "gemini", geminiToolDescription, geminiHandler(cfg, logger))

	server := mcp.NewServer("gemini-mcp-server", version, registry,
		mcp.WithLogger(logger),
		mcp.WithInstructions("Gemini MCP Server - Wraps Gemini CLI as a standard MCP protocol interface"),
	)

	err = server.Serve(cmd.Context(), os.Stdin, os.Stdout)
	logger.Info("gemini MCP server shutting down")
	return err
}

// newLogger creates a structured logger with the configured verbosity.
// Logs go to stderr; stdout belongs to the protocol.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose, cfg.LogLevel == "debug":
		level = slog.LevelDebug
	case cfg.LogLevel == "warn":
		level = slog.LevelWarn
	case cfg.LogLevel == "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
