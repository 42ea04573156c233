package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/writeit-cli/internal/api"
	"github.com/KaramelBytes/writeit-cli/internal/session"
)

var (
	mediumTags      []string
	mediumCanonical string

	kdpDescription string
	kdpKeywords    []string
	kdpCategories  []string
	kdpCover       string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a saved document to an external channel",
}

func printPublish(cmd *cobra.Command, r *api.PublishResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Published to %s\n", r.Channel)
	for _, l := range session.PublishLines(r) {
		fmt.Fprintf(out, "  %s\n", l)
	}
}

var publishMediumCmd = &cobra.Command{
	Use:   "medium <id>",
	Short: "Publish to Medium",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		r, err := newClient().PublishMedium(cmd.Context(), api.MediumRequest{
			DocumentID:   id,
			Tags:         trimAll(mediumTags),
			CanonicalURL: strings.TrimSpace(mediumCanonical),
		})
		if err != nil {
			return err
		}
		printPublish(cmd, r)
		return nil
	},
}

var publishKDPCmd = &cobra.Command{
	Use:   "kdp <id>",
	Short: "Prepare a KDP upload package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		r, err := newClient().PublishKDP(cmd.Context(), api.KDPRequest{
			DocumentID:  id,
			Description: kdpDescription,
			Keywords:    trimAll(kdpKeywords),
			Categories:  trimAll(kdpCategories),
			CoverURL:    strings.TrimSpace(kdpCover),
		})
		if err != nil {
			return err
		}
		printPublish(cmd, r)
		return nil
	},
}

var publishWriteItCmd = &cobra.Command{
	Use:     "writeit <id>",
	Aliases: []string{"blog"},
	Short:   "Publish to the Write It blog",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		r, err := newClient().PublishWriteIt(cmd.Context(), id)
		if err != nil {
			return err
		}
		printPublish(cmd, r)
		return nil
	},
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.AddCommand(publishMediumCmd, publishKDPCmd, publishWriteItCmd)

	publishMediumCmd.Flags().StringSliceVar(&mediumTags, "tags", nil, "Medium tags")
	publishMediumCmd.Flags().StringVar(&mediumCanonical, "canonical-url", "", "canonical URL")

	publishKDPCmd.Flags().StringVar(&kdpDescription, "description", "", "book description")
	publishKDPCmd.Flags().StringSliceVar(&kdpKeywords, "keywords", nil, "listing keywords")
	publishKDPCmd.Flags().StringSliceVar(&kdpCategories, "categories", nil, "listing categories")
	publishKDPCmd.Flags().StringVar(&kdpCover, "cover-url", "", "cover image URL")
}
