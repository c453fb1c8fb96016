package newsgenie

import (
	"net/url"

	"golang.org/x/net/html"
)

// MinContentLength is the number of characters extracted text must exceed
// before any extraction strategy accepts it. Shorter matches are treated as
// navigation, teasers or empty shells.
const MinContentLength = 200

// TextExtractor recovers the main body text of a news article.
type TextExtractor interface {
	// ExtractText returns the trimmed article body found in html, or the
	// empty string when nothing longer than MinContentLength could be
	// recovered. The pageURL is only used to resolve relative references;
	// implementations never fetch it. ExtractText never fails.
	ExtractText(pageURL, html string) string
}

// ContentHeuristic finds the main content of an already parsed page using a
// content-density algorithm (readability and similar).
type ContentHeuristic interface {
	// MainText returns the plain text of the highest scoring content subtree.
	// Implementations must not rely on doc being left unmodified.
	MainText(doc *html.Node, pageURL *url.URL) (string, error)

	// Name returns the heuristic's identifier (e.g., "readability").
	Name() string
}
