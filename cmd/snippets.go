package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/writeit-cli/internal/session"
)

var (
	snippetTitle   string
	snippetContent string
)

var snippetsCmd = &cobra.Command{
	Use:   "snippets",
	Short: "Keep short freeform notes",
}

var snippetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your snippets, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snips, err := newClient().ListSnippets(cmd.Context(), cfg.UserID)
		if err != nil {
			return fmt.Errorf("list snippets: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(snips) == 0 {
			fmt.Fprintln(out, "(no snippets)")
			return nil
		}
		for _, s := range snips {
			fmt.Fprintf(out, "- #%d %s: %s\n", s.ID, s.Title, s.Content)
		}
		return nil
	},
}

var snippetsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a snippet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := session.NewListView(newClient(), cfg.UserID, log)
		s, err := v.CreateSnippet(cmd.Context(), snippetTitle, snippetContent)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Snippet created: #%d %s (%d total)\n", s.ID, s.Title, len(v.Snippets()))
		return nil
	},
}

var snippetsDropInCmd = &cobra.Command{
	Use:   "drop-in <snippet-id> <document-id>",
	Short: "Mark a snippet for insertion into a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		snippetID, err := parseID(args[0])
		if err != nil {
			return err
		}
		docID, err := parseID(args[1])
		if err != nil {
			return err
		}
		msg, err := newClient().DropInSnippet(cmd.Context(), snippetID, docID)
		if err != nil {
			return fmt.Errorf("drop in snippet: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snippetsCmd)
	snippetsCmd.AddCommand(snippetsListCmd, snippetsCreateCmd, snippetsDropInCmd)
	snippetsCreateCmd.Flags().StringVar(&snippetTitle, "title", "", "snippet title")
	snippetsCreateCmd.Flags().StringVar(&snippetContent, "content", "", "snippet text")
	_ = snippetsCreateCmd.MarkFlagRequired("title")
}
