package ingest

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

var excessiveLinesRe = regexp.MustCompile(`\n{3,}`)

// ExtractContent reduces an HTML page to (title, text). Readability-style
// main-content extraction is tried first; pages it cannot segment (sparse
// markup, wiki exports, plain fragments) fall back to a full-page markdown
// conversion so the analyzer still gets the prose.
func ExtractContent(body []byte, pageURL *url.URL) (title, text string, err error) {
	article, rerr := readability.FromReader(bytes.NewReader(body), pageURL)
	if rerr == nil {
		title = strings.TrimSpace(article.Title)
		text = normalizeText(article.TextContent)
	}

	if text != "" {
		return title, text, nil
	}

	markdown, merr := convertToMarkdown(body)
	if merr != nil {
		return "", "", fmt.Errorf("no readable content: %w", merr)
	}
	if title == "" {
		title = extractHTMLTitle(body)
	}
	return title, normalizeText(markdown), nil
}

// converter is safe for concurrent use once built.
var converter = func() *md.Converter {
	c := md.NewConverter("", true, nil)
	c.Use(plugin.GitHubFlavored())
	return c
}()

func convertToMarkdown(body []byte) (string, error) {
	markdown, err := converter.ConvertString(string(body))
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	return markdown, nil
}

// extractHTMLTitle returns the first <title> element's text.
func extractHTMLTitle(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title
}

// normalizeText collapses runaway blank lines and trims trailing space so the
// annotator sees clean sentence text.
func normalizeText(s string) string {
	s = excessiveLinesRe.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
