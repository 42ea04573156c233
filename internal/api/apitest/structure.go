package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/KaramelBytes/writeit-cli/internal/api"
)

func badRequest(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"status": 400, "error": "Bad Request"})
}

func byPosition[T any](items []T, pos func(T) int) []T {
	out := append([]T{}, items...)
	sort.SliceStable(out, func(i, j int) bool { return pos(out[i]) < pos(out[j]) })
	return out
}

func chapterPos(c api.Chapter) int { return c.Position }

func (b *Backend) listChapters(w http.ResponseWriter, r *http.Request) {
	d, ok := b.lookup(r)
	if !ok {
		notFound(w, r)
		return
	}
	b.mu.Lock()
	out := byPosition(b.chapters[d.ID], chapterPos)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createChapter(w http.ResponseWriter, r *http.Request) {
	d, ok := b.lookup(r)
	if !ok {
		notFound(w, r)
		return
	}
	var in api.ChapterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Title) == "" {
		badRequest(w)
		return
	}
	b.mu.Lock()
	b.partID++
	c := api.Chapter{ID: b.partID, DocumentID: d.ID, Title: in.Title, Position: in.Position}
	b.chapters[d.ID] = append(b.chapters[d.ID], c)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, c)
}

// reorderChapters answers in the pre-move order, as the real backend
// saves the list it loaded.
func (b *Backend) reorderChapters(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}
	var moves []api.ChapterPosition
	if err := json.NewDecoder(r.Body).Decode(&moves); err != nil {
		badRequest(w)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	chs := byPosition(b.chapters[id], chapterPos)
	if len(chs) == 0 {
		notFound(w, r)
		return
	}
	for _, m := range moves {
		for i := range chs {
			if chs[i].ID == m.ChapterID {
				chs[i].Position = m.Position
			}
		}
	}
	b.chapters[id] = chs
	writeJSON(w, http.StatusOK, chs)
}

func (b *Backend) chapterExists(id int64) bool {
	for _, chs := range b.chapters {
		for _, c := range chs {
			if c.ID == id {
				return true
			}
		}
	}
	return false
}

func (b *Backend) listSections(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}
	b.mu.Lock()
	out := byPosition(b.sections[id], func(s api.Section) int { return s.Position })
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}
	var in api.SectionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Title) == "" {
		badRequest(w)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.chapterExists(id) {
		notFound(w, r)
		return
	}
	b.partID++
	s := api.Section{ID: b.partID, ChapterID: id, Title: in.Title, Content: in.Content, Position: in.Position}
	b.sections[id] = append(b.sections[id], s)
	writeJSON(w, http.StatusOK, s)
}

func (b *Backend) listMedia(w http.ResponseWriter, r *http.Request) {
	d, ok := b.lookup(r)
	if !ok {
		notFound(w, r)
		return
	}
	b.mu.Lock()
	out := append([]api.MediaFile{}, b.media[d.ID]...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) addMedia(w http.ResponseWriter, r *http.Request) {
	d, ok := b.lookup(r)
	if !ok {
		notFound(w, r)
		return
	}
	var in api.MediaInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.FileName == "" || in.URL == "" {
		badRequest(w)
		return
	}
	b.mu.Lock()
	b.partID++
	m := api.MediaFile{ID: b.partID, DocumentID: d.ID, FileName: in.FileName, URL: in.URL, MimeType: in.MimeType}
	b.media[d.ID] = append(b.media[d.ID], m)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, m)
}

// dropIn answers with a bare string body, like the real backend.
func (b *Backend) dropIn(w http.ResponseWriter, r *http.Request) {
	msg := fmt.Sprintf("Snippet %s is ready to be inserted into document %s", r.PathValue("id"), r.PathValue("documentId"))
	w.Header().Set("Content-Type", "text/plain;charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(msg))
}
