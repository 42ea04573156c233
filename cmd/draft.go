package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/writeit-cli/internal/api"
	"github.com/KaramelBytes/writeit-cli/internal/content"
	"github.com/KaramelBytes/writeit-cli/internal/session"
	"github.com/KaramelBytes/writeit-cli/internal/store"
)

var (
	draftTitle    string
	draftType     string
	draftContent  string
	draftFile     string
	draftTags     string
	draftCategory string
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Manage the local draft memory",
	Long:  `The draft memory is a single local slot, independent of the server. Saving overwrites it.`,
}

// newSession builds an editor session over the local draft memory.
func newSession(t api.DocumentType) (*session.Session, error) {
	drafts, err := draftStore()
	if err != nil {
		return nil, err
	}
	return session.New(session.Deps{
		API:    newClient(),
		Drafts: drafts,
		UserID: cfg.UserID,
		Logger: log,
	}, t), nil
}

var draftSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save fields into the draft memory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveType(draftType)
		if err != nil {
			return err
		}
		body, err := readContent(draftContent, draftFile)
		if err != nil {
			return err
		}
		s, err := newSession(t)
		if err != nil {
			return err
		}
		if draftTitle != "" {
			s.SetTitle(draftTitle)
		}
		s.SetTags(draftTags)
		s.SetCategory(draftCategory)
		s.SetContent(body)
		if err := s.SaveDraftMemory(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", s.Status())
		return nil
	},
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Preview the draft memory as markdown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		drafts, err := draftStore()
		if err != nil {
			return err
		}
		m, err := drafts.Load()
		out := cmd.OutOrStdout()
		switch {
		case errors.Is(err, store.ErrNoDraft):
			fmt.Fprintln(out, session.MsgNoDraft)
			return nil
		case errors.Is(err, store.ErrCorruptDraft):
			fmt.Fprintf(out, "⚠ %s\n", session.MsgCorruptDraft)
			log.Info("unreadable draft memory", zap.Error(err))
			return nil
		case err != nil:
			return err
		}
		stats := content.Measure(m.ContentHTML)
		fmt.Fprintf(out, "%s [%s]\n", m.Title, m.DocType)
		fmt.Fprintf(out, "saved %s · %d words · %d min read\n", m.UpdatedAt.Local().Format("2006-01-02 15:04:05"), stats.Words, stats.ReadingMinutes)
		if m.Tags != "" || m.Category != "" {
			fmt.Fprintf(out, "tags: %s  category: %s\n", m.Tags, m.Category)
		}
		md, err := content.ToMarkdown(m.ContentHTML)
		if err != nil {
			return fmt.Errorf("render draft: %w", err)
		}
		if strings.TrimSpace(md) != "" {
			fmt.Fprintf(out, "\n%s\n", md)
		}
		return nil
	},
}

var draftRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the draft memory and save it as a new document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(api.TypeArticle)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !s.RestoreDraftMemory() {
			fmt.Fprintln(out, s.Status())
			return nil
		}
		fmt.Fprintf(out, "✓ %s\n", s.Status())
		doc, err := s.Save(cmd.Context())
		if err != nil {
			return fmt.Errorf("save restored draft: %w", err)
		}
		fmt.Fprintf(out, "✓ Saved document #%d %s\n", doc.ID, doc.Title)
		return nil
	},
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the draft memory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(api.TypeArticle)
		if err != nil {
			return err
		}
		if err := s.ClearDraftMemory(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", s.Status())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(draftCmd)
	draftCmd.AddCommand(draftSaveCmd, draftShowCmd, draftRestoreCmd, draftClearCmd)

	draftSaveCmd.Flags().StringVar(&draftTitle, "title", "", "draft title")
	draftSaveCmd.Flags().StringVarP(&draftType, "type", "t", "", "ARTICLE or BOOK")
	draftSaveCmd.Flags().StringVar(&draftContent, "content", "", "HTML content")
	draftSaveCmd.Flags().StringVarP(&draftFile, "file", "f", "", "read content from a file")
	draftSaveCmd.Flags().StringVar(&draftTags, "tags", "", "comma separated tags")
	draftSaveCmd.Flags().StringVar(&draftCategory, "category", "", "category")
}
