package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// siteSelectors match containers of known high-traffic sources.
var siteSelectors = []string{
	".article-body__content",                          // NBC Sports
	".article-body, .article__body, .article-content", // ESPN
}

// genericSelectors are common article containers, most specific first.
var genericSelectors = []string{
	"article",
	".story-body",
	".story-content",
	".article-content",
	".post-content",
	".entry-content",
	"#main-content",
	".content-body",
	".article__content",
	".mw-parser-output", // MediaWiki
}

func fromSiteSelectors(p *page) (string, error) {
	return firstQualifying(p.doc, siteSelectors), nil
}

func fromGenericSelectors(p *page) (string, error) {
	return firstQualifying(p.doc, genericSelectors), nil
}

// firstQualifying checks the first element matched by each selector in turn
// and returns the text of the first one that qualifies. Later matches of the
// same selector are never considered.
func firstQualifying(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(sel.Text())
		if qualifies(text) {
			return text
		}
	}
	return ""
}
