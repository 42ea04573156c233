package content

import (
	"math"
	"strings"
)

// WordsPerMinute matches the backend's reading-time estimate.
const WordsPerMinute = 200

// Stats is the client-side estimate shown while editing. It is not
// required to match the server's counts for a saved document.
type Stats struct {
	Words          int
	ReadingMinutes int
}

// CountWords counts whitespace-separated words in plain text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ReadingTimeMinutes rounds up to whole minutes; zero words is zero minutes.
func ReadingTimeMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

// Measure projects rich content to plain text and counts it.
func Measure(html string) Stats {
	words := CountWords(PlainText(html))
	return Stats{Words: words, ReadingMinutes: ReadingTimeMinutes(words)}
}
