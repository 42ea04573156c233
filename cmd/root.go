package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/writeit-cli/internal/api"
	cfgpkg "github.com/KaramelBytes/writeit-cli/internal/config"
	"github.com/KaramelBytes/writeit-cli/internal/logging"
	"github.com/KaramelBytes/writeit-cli/internal/store"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Connection flags (override config if set)
	flagAPIBase string
	flagUserID  int64

	// Loaded configuration
	cfg *cfgpkg.Global
	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "writeit",
	Short: "Write It CLI: draft, version and publish articles and books",
	Long: `Write It is a terminal client for the Write It writing backend. Create articles and books,
keep snippets, snapshot versions, run writing tools, and export or publish documents.

Run without a subcommand to browse documents and snippets interactively.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, false, "")
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := rootCmd.ExecuteContext(ctx)
	_ = log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.writeit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagAPIBase, "api-base", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagUserID, "user", 0, "user id to act as (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{APIBase: "http://localhost:8080", UserID: 1, HTTPTimeoutSec: 30}
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("api-base") && strings.TrimSpace(flagAPIBase) != "" {
		cfg.APIBase = flagAPIBase
	}
	if f.Changed("user") && flagUserID > 0 {
		cfg.UserID = flagUserID
	}

	l, err := logging.New(cfg.LogLevel, debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v; using info level\n", err)
		l, _ = logging.New("info", debug)
	}
	log = l
}

// newClient builds the API client from the loaded configuration.
func newClient() *api.Client {
	return api.NewClient(api.Options{
		BaseURL:     cfg.APIBase,
		UserID:      cfg.UserID,
		HTTPTimeout: time.Duration(cfg.HTTPTimeoutSec) * time.Second,
		Logger:      log,
	})
}

func stateDir() (string, error) {
	if cfg != nil && cfg.StateDir != "" {
		return cfg.StateDir, nil
	}
	return cfgpkg.DefaultDir()
}

func draftStore() (*store.MemoryStore, error) {
	dir, err := stateDir()
	if err != nil {
		return nil, err
	}
	return store.NewMemoryStore(dir), nil
}

func prefsStore() (*store.PrefsStore, error) {
	dir, err := stateDir()
	if err != nil {
		return nil, err
	}
	return store.NewPrefsStore(dir), nil
}
