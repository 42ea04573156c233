package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/writeit-cli/internal/content"
)

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Read posts published to the Write It blog",
}

var blogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published posts, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		posts, err := newClient().ListBlogPosts(cmd.Context())
		if err != nil {
			return fmt.Errorf("list posts: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(posts) == 0 {
			fmt.Fprintln(out, "(no posts)")
			return nil
		}
		for _, p := range posts {
			fmt.Fprintf(out, "- %s: %s (%d min read)\n", p.WriteItSlug, p.Title, p.ReadingTimeMinutes)
		}
		return nil
	},
}

var blogShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a published post as markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newClient().GetBlogPost(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		md, err := content.ToMarkdown(p.Content)
		if err != nil {
			return fmt.Errorf("render post: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n\n%s\n", p.Title, md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(blogCmd)
	blogCmd.AddCommand(blogListCmd, blogShowCmd)
}
