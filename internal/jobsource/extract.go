package jobsource

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

// MinContentLength is the extracted length below which a page is probably
// rendered client-side and worth retrying with --browser.
const MinContentLength = 500

// pagePolicy drops active content (scripts, styles, frames, event
// handlers) from a page while keeping the structure and the class, id and
// data-* attributes the platform selectors match on. Text is left escaped,
// so "Vec&lt;T&gt;" still reads as "Vec<T>" after extraction.
var pagePolicy = newPagePolicy()

func newPagePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"html", "head", "title", "body",
		"main", "article", "section", "aside", "div", "span",
		"header", "footer", "nav", "form",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "hr", "blockquote", "pre", "code",
		"ul", "ol", "li", "dl", "dt", "dd",
		"b", "strong", "i", "em", "u", "small", "sub", "sup",
		"table", "thead", "tbody", "tr", "th", "td",
	)
	p.AllowAttrs("class", "id").Globally()
	p.AllowDataAttributes()
	return p
}

// Extract pulls the posting text out of a page. The page is sanitized
// first. Readability then runs; when it finds less than MinContentLength
// characters the platform selectors are used instead.
func Extract(page string, pageURL *url.URL) (string, error) {
	page = pagePolicy.Sanitize(page)

	text := ""
	if article, err := readability.FromReader(strings.NewReader(page), pageURL); err == nil {
		text = clean(article.TextContent)
	}

	if len([]rune(text)) < MinContentLength {
		platform := PlatformUnknown
		if pageURL != nil {
			platform = DetectPlatform(pageURL.String())
		}
		fallback, err := extractWithSelectors(page, platform)
		if err != nil && text == "" {
			return "", err
		}
		if fallback != "" {
			text = fallback
		}
	}
	return text, nil
}

func extractWithSelectors(page string, platform Platform) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	doc.Find(strings.Join(noiseSelectors(platform), ", ")).Remove()

	var content *goquery.Selection
	for _, sel := range contentSelectors(platform) {
		if s := doc.Find(sel); s.Length() > 0 {
			content = s.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	// Block elements need a line break or their text runs together.
	content.Find("p, li, h1, h2, h3, h4, br, div").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return clean(content.Text()), nil
}

// clean normalizes whitespace in extracted text. The input is already
// decoded text, so angle brackets in it are content, not markup.
func clean(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
