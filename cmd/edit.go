package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/writeit-cli/internal/tui"
)

var editType string

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the interactive editor",
	Long: `Open the editor for a new article or book. A saved draft memory is restored on start.

Keys: ctrl+s save, alt+s update, f2 spell, f3 seo, f4 ai verify, f5 snapshot, f6 export,
f7 publish to blog, f8 publish to Medium, f9 save memory, f10 restore memory, ctrl+p preview,
ctrl+y copy output, alt+b/i/u/h/l/o/q/k formatting, ctrl+t theme, esc list.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, true, editType)
	},
}

func runTUI(cmd *cobra.Command, inEditor bool, typ string) error {
	t, err := resolveType(typ)
	if err != nil {
		return err
	}
	drafts, err := draftStore()
	if err != nil {
		return err
	}
	prefs, err := prefsStore()
	if err != nil {
		return err
	}
	dir, err := stateDir()
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), tui.Options{
		Client:        newClient(),
		UserID:        cfg.UserID,
		Drafts:        drafts,
		Prefs:         prefs,
		Theme:         configTheme(),
		ExportDir:     filepath.Join(dir, "exports"),
		DefaultType:   t,
		StartInEditor: inEditor,
		Logger:        log,
	})
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editType, "type", "t", "", "ARTICLE or BOOK (default from config)")
}
