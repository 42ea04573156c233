package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/writeit-cli/internal/store"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the display theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(store.ThemeLight), string(store.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			prefs, err := prefsStore()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prefs.Theme(configTheme()))
			return nil
		}
		return setTheme(cmd, args[0])
	},
}

// setTheme stores the preference that the CLI and the editor both read.
// The config key only seeds it until one is saved.
func setTheme(cmd *cobra.Command, val string) error {
	t, err := store.ParseTheme(val)
	if err != nil {
		return err
	}
	prefs, err := prefsStore()
	if err != nil {
		return err
	}
	if err := prefs.SetTheme(t); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Theme set to %s\n", t)
	return nil
}

// themeLine describes the effective theme and where it comes from.
func themeLine() string {
	def := configTheme()
	prefs, err := prefsStore()
	if err != nil {
		return fmt.Sprintf("%s (config default)", def)
	}
	if t, ok := prefs.Saved(); ok {
		return fmt.Sprintf("%s (saved preference, overrides config default %s)", t, def)
	}
	return fmt.Sprintf("%s (config default)", def)
}

// configTheme is the theme from config, used until one is saved.
func configTheme() store.Theme {
	if cfg == nil {
		return store.ThemeLight
	}
	t, err := store.ParseTheme(cfg.Theme)
	if err != nil {
		return store.ThemeLight
	}
	return t
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
