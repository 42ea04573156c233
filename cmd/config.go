package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/KaramelBytes/writeit-cli/internal/api"
	cfgpkg "github.com/KaramelBytes/writeit-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Write It configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "api_base: %s\n", cfg.APIBase)
		fmt.Fprintf(out, "user_id: %d\n", cfg.UserID)
		fmt.Fprintf(out, "http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Fprintf(out, "state_dir: %s\n", cfg.StateDir)
		fmt.Fprintf(out, "theme: %s\n", themeLine())
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "default_type: %s\n", cfg.DefaultType)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if key == "theme" {
			return setTheme(cmd, val)
		}
		// Edit the file alone so env, .env and flag overrides are not persisted.
		file, err := cfgpkg.LoadFile(cfgFile)
		if err != nil {
			return err
		}
		switch key {
		case "api_base":
			if !strings.HasPrefix(val, "http://") && !strings.HasPrefix(val, "https://") {
				return fmt.Errorf("invalid api_base: %s (must start with http:// or https://)", val)
			}
			file.APIBase = strings.TrimRight(val, "/")
		case "user_id":
			i, err := strconv.ParseInt(val, 10, 64)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for user_id: %v", val)
			}
			file.UserID = i
		case "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
			}
			file.HTTPTimeoutSec = i
		case "state_dir":
			file.StateDir = val
		case "log_level":
			var lvl zapcore.Level
			if err := lvl.Set(val); err != nil {
				return fmt.Errorf("invalid log_level: %s", val)
			}
			file.LogLevel = lvl.String()
		case "default_type":
			t, err := api.ParseDocumentType(val)
			if err != nil {
				return err
			}
			file.DefaultType = string(t)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(file, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
