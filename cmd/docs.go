package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/writeit-cli/internal/api"
	"github.com/KaramelBytes/writeit-cli/internal/content"
	"github.com/KaramelBytes/writeit-cli/internal/parser"
	"github.com/KaramelBytes/writeit-cli/internal/session"
	"github.com/KaramelBytes/writeit-cli/internal/utils"
)

var (
	docsQuery string
	docsTag   string

	docTitle    string
	docType     string
	docContent  string
	docFile     string
	docTags     string
	docCategory string

	exportFormat string
	exportOut    string
)

var docsCmd = &cobra.Command{
	Use:     "docs",
	Aliases: []string{"documents"},
	Short:   "List, create, snapshot and export documents",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := session.NewListView(newClient(), cfg.UserID, log)
		err := v.Refresh(cmd.Context(), docsQuery, docsTag)
		out := cmd.OutOrStdout()
		docs := v.Documents()
		if err != nil && len(docs) == 0 {
			return fmt.Errorf("list documents: %w", err)
		}
		if len(docs) == 0 {
			fmt.Fprintln(out, "(no documents)")
			return nil
		}
		for _, d := range docs {
			fmt.Fprintf(out, "- #%d %s [%s] %d words, %d min read", d.ID, d.Title, d.Type, d.WordCount, d.ReadingTimeMinutes)
			if d.Tags != "" {
				fmt.Fprintf(out, " tags: %s", d.Tags)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

// readContent resolves --content or --file into HTML for the buffer.
func readContent(text, file string) (string, error) {
	if text != "" && file != "" {
		return "", fmt.Errorf("use either --content or --file, not both")
	}
	if file == "" {
		return text, nil
	}
	html, err := parser.ParseFile(file)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", filepath.Base(file), err)
	}
	return html, nil
}

var docsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveType(docType)
		if err != nil {
			return err
		}
		body, err := readContent(docContent, docFile)
		if err != nil {
			return err
		}
		title := docTitle
		if strings.TrimSpace(title) == "" {
			title = t.DefaultTitle()
		}
		d, err := newClient().CreateDocument(cmd.Context(), api.DocumentInput{
			Title:    strings.TrimSpace(title),
			Type:     t,
			Content:  content.Sanitize(body),
			UserID:   cfg.UserID,
			Tags:     strings.TrimSpace(docTags),
			Category: strings.TrimSpace(docCategory),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Document created: #%d %s (%d words)\n", d.ID, d.Title, d.WordCount)
		return nil
	},
}

var docsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a document as markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		d, err := newClient().GetDocument(cmd.Context(), id)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "#%d %s [%s]\n", d.ID, d.Title, d.Type)
		fmt.Fprintf(out, "%d words, %d min read\n", d.WordCount, d.ReadingTimeMinutes)
		if d.Tags != "" || d.Category != "" {
			fmt.Fprintf(out, "tags: %s  category: %s\n", d.Tags, d.Category)
		}
		if d.PublishedToWriteIt {
			fmt.Fprintf(out, "published: /blog/%s\n", d.WriteItSlug)
		}
		md, err := content.ToMarkdown(d.Content)
		if err != nil {
			return fmt.Errorf("render document: %w", err)
		}
		fmt.Fprintf(out, "\n%s\n", md)
		return nil
	},
}

var docsSnapshotCmd = &cobra.Command{
	Use:   "snapshot <id>",
	Short: "Store the current server copy as a new version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		v := session.NewListView(newClient(), cfg.UserID, log)
		snap, err := v.CreateSnapshot(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Snapshot saved: document #%d version %d\n", snap.DocumentID, snap.VersionNumber)
		return nil
	},
}

var docsVersionsCmd = &cobra.Command{
	Use:   "versions <id>",
	Short: "List stored versions of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		vs, err := newClient().ListVersions(cmd.Context(), id)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(vs) == 0 {
			fmt.Fprintln(out, "(no versions)")
			return nil
		}
		for _, v := range vs {
			at := ""
			if v.CreatedAt != nil {
				at = v.CreatedAt.Local().Format("2006-01-02 15:04")
			}
			fmt.Fprintf(out, "- v%d %s %s\n", v.VersionNumber, v.Title, at)
		}
		return nil
	},
}

var docsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a document (MARKDOWN, HTML, PDF or EPUB)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		format, err := api.ParseExportFormat(exportFormat)
		if err != nil {
			return err
		}
		res, err := newClient().ExportDocument(cmd.Context(), id, format)
		if err != nil {
			return err
		}
		raw, err := res.Decode()
		if err != nil {
			return err
		}
		path := exportOut
		if path == "" {
			path = utils.SafeFileName(res.FileName, fmt.Sprintf("document-%d", id))
		}
		if err := utils.SafeWriteFile(path, raw); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %s (%s, %d bytes)\n", path, res.MimeType, len(raw))
		return nil
	},
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := newClient().DeleteDocument(cmd.Context(), id); err != nil {
			if api.IsNotFound(err) {
				return fmt.Errorf("document #%d not found", id)
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Document #%d deleted\n", id)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid document id: %q", s)
	}
	return id, nil
}

// resolveType falls back to the configured default type.
func resolveType(s string) (api.DocumentType, error) {
	if strings.TrimSpace(s) == "" && cfg != nil {
		s = cfg.DefaultType
	}
	if strings.TrimSpace(s) == "" {
		return api.TypeArticle, nil
	}
	return api.ParseDocumentType(s)
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.AddCommand(docsListCmd, docsCreateCmd, docsShowCmd, docsSnapshotCmd, docsVersionsCmd, docsExportCmd, docsDeleteCmd)

	docsListCmd.Flags().StringVarP(&docsQuery, "query", "q", "", "filter by title")
	docsListCmd.Flags().StringVar(&docsTag, "tag", "", "filter by tag")

	docsCreateCmd.Flags().StringVar(&docTitle, "title", "", "document title (default \"Untitled Article\"/\"Untitled Book\")")
	docsCreateCmd.Flags().StringVarP(&docType, "type", "t", "", "ARTICLE or BOOK (default from config)")
	docsCreateCmd.Flags().StringVar(&docContent, "content", "", "HTML content")
	docsCreateCmd.Flags().StringVarP(&docFile, "file", "f", "", "read content from a .txt, .md, .html or .docx file")
	docsCreateCmd.Flags().StringVar(&docTags, "tags", "", "comma separated tags")
	docsCreateCmd.Flags().StringVar(&docCategory, "category", "", "category")

	docsExportCmd.Flags().StringVar(&exportFormat, "format", string(api.FormatMarkdown), "MARKDOWN, HTML, PDF or EPUB")
	docsExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default is the server file name)")
}

