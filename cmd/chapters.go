package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/writeit-cli/internal/api"
	"github.com/KaramelBytes/writeit-cli/internal/content"
)

var (
	partTitle    string
	partPosition int
	partContent  string
	partFile     string

	mediaName string
	mediaURL  string
	mediaMime string
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "Structure a book into ordered chapters",
}

var chaptersListCmd = &cobra.Command{
	Use:   "list <document-id>",
	Short: "List a document's chapters in order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		chs, err := newClient().ListChapters(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("list chapters: %w", err)
		}
		printChapters(cmd, chs)
		return nil
	},
}

var chaptersAddCmd = &cobra.Command{
	Use:   "add <document-id>",
	Short: "Add a chapter (appended unless --position is given)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c := newClient()
		pos := partPosition
		if !cmd.Flags().Changed("position") {
			chs, err := c.ListChapters(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("list chapters: %w", err)
			}
			pos = nextPosition(len(chs), func(i int) int { return chs[i].Position })
		}
		ch, err := c.CreateChapter(cmd.Context(), id, api.ChapterInput{Title: strings.TrimSpace(partTitle), Position: pos})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Chapter added: #%d %s at position %d\n", ch.ID, ch.Title, ch.Position)
		return nil
	},
}

var chaptersReorderCmd = &cobra.Command{
	Use:   "reorder <document-id> <chapter-id>...",
	Short: "Number the given chapters 1..n in the order listed",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		moves := make([]api.ChapterPosition, 0, len(args)-1)
		for i, a := range args[1:] {
			chID, err := parseID(a)
			if err != nil {
				return err
			}
			moves = append(moves, api.ChapterPosition{ChapterID: chID, Position: i + 1})
		}
		chs, err := newClient().ReorderChapters(cmd.Context(), id, moves)
		if err != nil {
			if api.IsNotFound(err) {
				return fmt.Errorf("document #%d has no chapters", id)
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Chapters reordered")
		printChapters(cmd, chs)
		return nil
	},
}

func printChapters(cmd *cobra.Command, chs []api.Chapter) {
	out := cmd.OutOrStdout()
	if len(chs) == 0 {
		fmt.Fprintln(out, "(no chapters)")
		return
	}
	for _, ch := range chs {
		fmt.Fprintf(out, "%d. %s (#%d)\n", ch.Position, ch.Title, ch.ID)
	}
}

// nextPosition is one past the highest existing position.
func nextPosition(n int, pos func(int) int) int {
	top := 0
	for i := 0; i < n; i++ {
		if p := pos(i); p > top {
			top = p
		}
	}
	return top + 1
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Manage the sections of a chapter",
}

var sectionsListCmd = &cobra.Command{
	Use:   "list <chapter-id>",
	Short: "List a chapter's sections in order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		secs, err := newClient().ListSections(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("list sections: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(secs) == 0 {
			fmt.Fprintln(out, "(no sections)")
			return nil
		}
		for _, s := range secs {
			st := content.Measure(s.Content)
			fmt.Fprintf(out, "%d. %s (#%d) %d words\n", s.Position, s.Title, s.ID, st.Words)
		}
		return nil
	},
}

var sectionsAddCmd = &cobra.Command{
	Use:   "add <chapter-id>",
	Short: "Add a section (appended unless --position is given)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		body, err := readContent(partContent, partFile)
		if err != nil {
			return err
		}
		c := newClient()
		pos := partPosition
		if !cmd.Flags().Changed("position") {
			secs, err := c.ListSections(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("list sections: %w", err)
			}
			pos = nextPosition(len(secs), func(i int) int { return secs[i].Position })
		}
		s, err := c.CreateSection(cmd.Context(), id, api.SectionInput{
			Title:    strings.TrimSpace(partTitle),
			Content:  content.Sanitize(body),
			Position: pos,
		})
		if err != nil {
			if api.IsNotFound(err) {
				return fmt.Errorf("chapter #%d not found", id)
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Section added: #%d %s at position %d\n", s.ID, s.Title, s.Position)
		return nil
	},
}

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Attach media references to a document",
}

var mediaListCmd = &cobra.Command{
	Use:   "list <document-id>",
	Short: "List a document's media",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		files, err := newClient().ListMedia(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("list media: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintln(out, "(no media)")
			return nil
		}
		for _, f := range files {
			fmt.Fprintf(out, "- #%d %s %s", f.ID, f.FileName, f.URL)
			if f.MimeType != "" {
				fmt.Fprintf(out, " (%s)", f.MimeType)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var mediaAddCmd = &cobra.Command{
	Use:   "add <document-id>",
	Short: "Attach a media file by URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		m, err := newClient().AddMedia(cmd.Context(), id, api.MediaInput{
			FileName: strings.TrimSpace(mediaName),
			URL:      strings.TrimSpace(mediaURL),
			MimeType: strings.TrimSpace(mediaMime),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Media attached: #%d %s\n", m.ID, m.FileName)
		return nil
	},
}

func init() {
	docsCmd.AddCommand(chaptersCmd, sectionsCmd, mediaCmd)
	chaptersCmd.AddCommand(chaptersListCmd, chaptersAddCmd, chaptersReorderCmd)
	sectionsCmd.AddCommand(sectionsListCmd, sectionsAddCmd)
	mediaCmd.AddCommand(mediaListCmd, mediaAddCmd)

	chaptersAddCmd.Flags().StringVar(&partTitle, "title", "", "chapter title")
	chaptersAddCmd.Flags().IntVar(&partPosition, "position", 0, "position in the book")
	_ = chaptersAddCmd.MarkFlagRequired("title")

	sectionsAddCmd.Flags().StringVar(&partTitle, "title", "", "section title")
	sectionsAddCmd.Flags().IntVar(&partPosition, "position", 0, "position in the chapter")
	sectionsAddCmd.Flags().StringVar(&partContent, "content", "", "HTML content")
	sectionsAddCmd.Flags().StringVarP(&partFile, "file", "f", "", "read content from a .txt, .md, .html or .docx file")
	_ = sectionsAddCmd.MarkFlagRequired("title")

	mediaAddCmd.Flags().StringVar(&mediaName, "name", "", "file name")
	mediaAddCmd.Flags().StringVar(&mediaURL, "url", "", "where the file is hosted")
	mediaAddCmd.Flags().StringVar(&mediaMime, "mime", "", "MIME type")
	_ = mediaAddCmd.MarkFlagRequired("name")
	_ = mediaAddCmd.MarkFlagRequired("url")
}
