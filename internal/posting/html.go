package posting

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var markupPattern = regexp.MustCompile(`<(/?[a-zA-Z][a-zA-Z0-9]*)(\s[^<>]*)?/?>`)

// LooksLikeHTML reports whether text contains element tags.
func LooksLikeHTML(text string) bool {
	return markupPattern.MatchString(text)
}

// PlainText converts an HTML description into text, joining text nodes with a
// single space and trimming each of them. Text without markup is returned
// unchanged.
func PlainText(text string) (string, error) {
	if !LooksLikeHTML(text) {
		return text, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("parse html description: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	var parts []string
	doc.Find("body").Contents().Each(func(_ int, s *goquery.Selection) {
		parts = collectText(s, parts)
	})

	return strings.Join(parts, " "), nil
}

func collectText(s *goquery.Selection, parts []string) []string {
	if goquery.NodeName(s) == "#text" {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
		return parts
	}

	s.Contents().Each(func(_ int, child *goquery.Selection) {
		parts = collectText(child, parts)
	})
	return parts
}
