package newsgenie

import (
	"context"
	"regexp"
	"strings"
	"unicode"
)

// Bullet formatting constants.
const (
	// BulletMarker is the canonical prefix of a summary bullet.
	BulletMarker = "•"

	// BulletCount is the exact number of bullets in every Summary produced
	// by NormalizeBullets.
	BulletCount = 5

	// PlaceholderBullet pads summaries when the model produced too little.
	PlaceholderBullet = "(summary unavailable)"

	// UnavailableMessage is shown when no article text could be recovered.
	UnavailableMessage = "⚠ Could not extract article content."
)

// Summary is a bullet-point summary of an article.
type Summary struct {
	// Summary holds the bullets joined by newlines, each with its marker.
	Summary string `json:"summary"`

	// Bullets holds the same bullets without markers.
	Bullets []string `json:"bullets"`
}

// Summarizer turns article text into a bullet-point summary using a
// language model.
type Summarizer interface {
	// Summarize sends the first MaxPromptChars characters of text to the
	// model and returns its reply normalized by NormalizeBullets.
	Summarize(ctx context.Context, text string) (*Summary, error)
}

// SummarizeRequest asks for a summary of either supplied content or the
// article at URL.
type SummarizeRequest struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// ArticleSummarizer summarizes an article given its content or URL.
type ArticleSummarizer interface {
	// SummarizeArticle returns UnavailableSummary when no usable text could be
	// obtained, and EINVALID when the request has neither URL nor content.
	SummarizeArticle(ctx context.Context, req SummarizeRequest) (*Summary, error)
}

// UnavailableSummary returns the summary reported when extraction fails.
func UnavailableSummary() *Summary {
	return &Summary{Summary: UnavailableMessage, Bullets: []string{}}
}

var (
	blankLinesRe  = regexp.MustCompile(`\n{2,}`)
	dashMarkerRe  = regexp.MustCompile(`(?m)^\s*-\s+`)
	starMarkerRe  = regexp.MustCompile(`(?m)^\s*\*\s+`)
	digitMarkerRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	markerPrefix  = BulletMarker + " "
)

// NormalizeBullets turns free-form model output into exactly BulletCount
// bullets. Lines using "-", "*" or "1." markers are rewritten to use
// BulletMarker. When fewer than BulletCount marker lines exist, the text is
// split into sentences instead and the first BulletCount sentences become the
// bullets. Missing bullets are filled with PlaceholderBullet.
func NormalizeBullets(raw string) Summary {
	formatted := strings.ReplaceAll(raw, "\r", "")
	formatted = strings.TrimSpace(formatted)
	formatted = blankLinesRe.ReplaceAllString(formatted, "\n")
	formatted = dashMarkerRe.ReplaceAllString(formatted, markerPrefix)
	formatted = starMarkerRe.ReplaceAllString(formatted, markerPrefix)
	formatted = digitMarkerRe.ReplaceAllString(formatted, markerPrefix)
	formatted = strings.TrimSpace(formatted)

	var bullets []string
	for _, line := range strings.Split(formatted, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, markerPrefix) {
			bullets = append(bullets, line)
		}
	}

	if len(bullets) < BulletCount {
		bullets = bullets[:0]
		for _, s := range SplitSentences(formatted) {
			if len(bullets) == BulletCount {
				break
			}
			// Sentences that began a marker line keep their text only.
			s = strings.TrimSpace(strings.TrimPrefix(s, BulletMarker))
			if s == "" {
				continue
			}
			bullets = append(bullets, markerPrefix+strings.Join(strings.Fields(s), " "))
		}
	}

	if len(bullets) > BulletCount {
		bullets = bullets[:BulletCount]
	}
	for len(bullets) < BulletCount {
		bullets = append(bullets, markerPrefix+PlaceholderBullet)
	}

	plain := make([]string, len(bullets))
	for i, b := range bullets {
		plain[i] = strings.TrimSpace(strings.TrimLeftFunc(strings.TrimPrefix(b, BulletMarker), unicode.IsSpace))
	}

	return Summary{
		Summary: strings.Join(bullets, "\n"),
		Bullets: plain,
	}
}

// SplitSentences splits text after '.', '?' or '!' when followed by
// whitespace. Empty sentences are dropped and the rest are trimmed.
func SplitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '?', '!':
		default:
			continue
		}
		if i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		sentences = appendSentence(sentences, string(runes[start:i+1]))
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(runes) {
		sentences = appendSentence(sentences, string(runes[start:]))
	}
	return sentences
}

func appendSentence(sentences []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return sentences
	}
	return append(sentences, s)
}
