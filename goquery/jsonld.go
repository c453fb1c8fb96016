package goquery

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var ldJSONRe = regexp.MustCompile(`(?is)<script[^>]*application/ld\+json[^>]*>(.*?)</script>`)

// fromStructuredData returns the first qualifying articleBody found in the
// page's LD+JSON blocks. Blocks that are not valid JSON are ignored.
func fromStructuredData(p *page) (string, error) {
	for _, m := range ldJSONRe.FindAllStringSubmatch(p.raw, -1) {
		block := strings.TrimSpace(m[1])
		if !gjson.Valid(block) {
			continue
		}

		v := gjson.Parse(block)
		if body, ok := articleBody(v); ok {
			return body, nil
		}
		if v.IsArray() {
			for _, item := range v.Array() {
				if body, ok := articleBody(item); ok {
					return body, nil
				}
			}
		}
	}
	return "", nil
}

// articleBody returns v.articleBody when v is an object whose articleBody is
// a string long enough to qualify.
func articleBody(v gjson.Result) (string, bool) {
	if !v.IsObject() {
		return "", false
	}
	body := v.Get("articleBody")
	if body.Type != gjson.String || !qualifies(body.Str) {
		return "", false
	}
	return body.Str, true
}
