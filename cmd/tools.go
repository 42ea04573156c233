package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/writeit-cli/internal/api"
	"github.com/KaramelBytes/writeit-cli/internal/session"
)

var (
	toolText  string
	toolFile  string
	toolTitle string
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Run writing tools on text, a file, or the draft memory",
	Long: `Writing tools send the plain text of a buffer to the backend. The buffer is --text,
--file, or the draft memory when neither is given.`,
}

// toolSession loads the buffer the tools run against.
func toolSession() (*session.Session, error) {
	s, err := newSession(api.TypeArticle)
	if err != nil {
		return nil, err
	}
	if toolText == "" && toolFile == "" {
		if !s.RestoreDraftMemory() {
			return nil, errors.New(s.Status() + " Pass --text or --file.")
		}
	} else {
		body, err := readContent(toolText, toolFile)
		if err != nil {
			return nil, err
		}
		s.SetContent(body)
	}
	if toolTitle != "" {
		s.SetTitle(toolTitle)
	}
	return s, nil
}

func toolCommand(use, short string, run func(*session.Session, context.Context) ([]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := toolSession()
			if err != nil {
				return err
			}
			lines, err := run(s, cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d words, %d min read\n", s.WordCount(), s.ReadingTime())
			for _, l := range lines {
				fmt.Fprintf(out, "- %s\n", strings.TrimSpace(l))
			}
			return nil
		},
	}
}

var (
	toolsSpellCmd  = toolCommand("spell", "Spell check", (*session.Session).SpellCheck)
	toolsSEOCmd    = toolCommand("seo", "SEO suggestions for the title and text", (*session.Session).SEO)
	toolsVerifyCmd = toolCommand("verify", "AI review of the text", (*session.Session).AIVerify)
)

func init() {
	rootCmd.AddCommand(toolsCmd)
	for _, c := range []*cobra.Command{toolsSpellCmd, toolsSEOCmd, toolsVerifyCmd} {
		toolsCmd.AddCommand(c)
		c.Flags().StringVar(&toolText, "text", "", "text or HTML to check")
		c.Flags().StringVarP(&toolFile, "file", "f", "", "read text from a file")
		c.Flags().StringVar(&toolTitle, "title", "", "title (used by seo)")
	}
}

