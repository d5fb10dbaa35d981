package collect

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// ExtractText runs a readability-style extractor over a full document and
// returns the article's plain text, or "" when extraction fails or yields
// nothing.
func ExtractText(documentHTML, pageURL string) string {
	documentHTML = strings.TrimSpace(documentHTML)
	if documentHTML == "" {
		return ""
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(documentHTML), parsedURL)
	if err != nil {
		return ""
	}
	return collapseWhitespace(article.TextContent)
}

// HTMLToText strips markup from an HTML fragment and returns its text with
// whitespace collapsed. Script, style, and noscript subtrees are removed.
// Unparseable input yields "".
func HTMLToText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	return collapseWhitespace(doc.Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
