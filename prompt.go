package newsgenie

import (
	"strings"
	"unicode/utf8"
)

// MaxPromptChars is the number of characters of article text sent to the
// summarization model.
const MaxPromptChars = 7000

// MinArticleLength is the shortest text worth summarizing. Supplied content
// below this length is ignored in favor of the URL.
const MinArticleLength = 50

const summaryInstructions = `Summarize the article into EXACTLY 5 important bullet points.
Rules:
- Each bullet MUST start with the bullet character "` + BulletMarker + ` " (bullet + space).
- Produce exactly 5 bullets (no numbering, no extra text).
- Keep each bullet 1-2 short sentences.
- Keep it factual, remove ads, promotions, unrelated links, and author bio.
- If the article contains opinions, label them as opinion in parentheses.

ARTICLE:
`

// BuildSummaryPrompt returns the instruction prompt for text, truncated to
// MaxPromptChars characters.
func BuildSummaryPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString(summaryInstructions)
	sb.WriteString(Truncate(text, MaxPromptChars))
	return sb.String()
}

// Truncate returns at most n characters of s without splitting a rune.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
