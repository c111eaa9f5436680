package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	universemcp "github.com/tari-tools/universe-mcp-go"
	"github.com/tari-tools/universe-mcp-go/audit"
	"github.com/tari-tools/universe-mcp-go/internal/config"
)

// Version information (set at build time via ldflags)
var (
	version = "dev"
	commit  = "unknown"
)

var (
	flagConfig     string
	flagServerPath string
	flagTimeout    time.Duration
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "tari-mcp",
	Short: "Talk to a Tari Universe instance over MCP",
	Long: `tari-mcp launches Tari Universe as an MCP server and queries its
wallet, mining, and node state over stdio.

The server path comes from --server or the config file
(~/.config/tari-mcp/config.toml).`,
	Version: fmt.Sprintf("%s (commit: %s)", version, commit),
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to config file (default: ~/.config/tari-mcp/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagServerPath, "server", "s", "", "Path to the Tari Universe executable")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "Per-request read timeout (0 waits forever)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging to stderr")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadFileConfig reads the TOML config, honoring --config.
func loadFileConfig() (*config.FileConfig, error) {
	cfg, err := config.LoadFile(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// newLogger builds the CLI logger from flags and config.
func newLogger(cfg *config.FileConfig) *slog.Logger {
	level := slog.LevelWarn

	if flagVerbose {
		level = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "error":
			level = slog.LevelError
		}
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// clientOptions merges flags and file config into client options.
func clientOptions(cfg *config.FileConfig, log *slog.Logger, sink universemcp.AuditSink) ([]universemcp.Option, error) {
	serverPath := flagServerPath
	if serverPath == "" {
		serverPath = cfg.Server.Path
	}

	if serverPath == "" {
		return nil, fmt.Errorf("no server path: use --server or set server.path in the config file")
	}

	opts := []universemcp.Option{
		universemcp.WithServerPath(serverPath),
		universemcp.WithLogger(log),
		universemcp.WithClientInfo("tari-mcp", version),
	}

	if len(cfg.Server.Args) > 0 {
		opts = append(opts, universemcp.WithArgs(cfg.Server.Args...))
	}

	if cfg.Server.CloseGraceSeconds > 0 {
		opts = append(opts, universemcp.WithCloseGrace(time.Duration(cfg.Server.CloseGraceSeconds)*time.Second))
	}

	timeout := flagTimeout
	if !rootCmd.PersistentFlags().Changed("timeout") && cfg.Client.ReadTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Client.ReadTimeoutSeconds) * time.Second
	}

	if timeout > 0 {
		opts = append(opts, universemcp.WithReadTimeout(timeout))
	}

	if sink != nil {
		opts = append(opts, universemcp.WithAudit(sink))
	}

	return opts, nil
}

// auditDBPath resolves where the audit database lives.
func auditDBPath(cfg *config.FileConfig) string {
	if cfg.Audit.DBPath != "" {
		return cfg.Audit.DBPath
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "tari-mcp-audit.db"
	}

	return dir + "/tari-mcp/audit.db"
}

// runWithClient wires config, logging, auditing, and client lifecycle
// around a command body.
func runWithClient(ctx context.Context, fn func(ctx context.Context, c universemcp.Client) error) error {
	cfg, err := loadFileConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)

	var sink universemcp.AuditSink

	if cfg.Audit.Enabled {
		rec, err := audit.Open(ctx, auditDBPath(cfg))
		if err != nil {
			return fmt.Errorf("failed to open audit database: %w", err)
		}
		defer rec.Close()

		sink = rec
	}

	opts, err := clientOptions(cfg, log, sink)
	if err != nil {
		return err
	}

	return universemcp.WithClient(ctx, func(c universemcp.Client) error {
		return fn(ctx, c)
	}, opts...)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(data))

	return nil
}
